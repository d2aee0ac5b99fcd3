// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"luma/internal/models"
)

// TrainingStore handles all training-related database operations.
type TrainingStore struct {
	db *sql.DB
}

// NewTrainingStore creates a new TrainingStore with the given database connection.
func NewTrainingStore(db *sql.DB) *TrainingStore {
	return &TrainingStore{db: db}
}

// List returns all trainings ordered by creation date descending.
func (s *TrainingStore) List(ctx context.Context) ([]models.Training, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, subject_id, created_at, updated_at
		FROM trainings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	defer rows.Close()

	var items []models.Training
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.SubjectID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan training: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a training by its UUID. Returns nil if not found.
func (s *TrainingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	t := &models.Training{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, subject_id, created_at, updated_at
		FROM trainings WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.SubjectID, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find training by id: %w", err)
	}
	return t, nil
}

// Insert writes a training row with the id and timestamps already assigned.
func (s *TrainingStore) Insert(ctx context.Context, t *models.Training) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trainings (id, title, description, subject_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Title, t.Description, t.SubjectID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert training: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a training row.
func (s *TrainingStore) Update(ctx context.Context, t *models.Training) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE trainings SET title = $1, description = $2, subject_id = $3, updated_at = $4
		WHERE id = $5
	`, t.Title, t.Description, t.SubjectID, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update training: %w", err)
	}
	return nil
}

// Delete removes a training row; descendants cascade in the database.
func (s *TrainingStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	return nil
}
