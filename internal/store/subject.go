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

// SubjectStore handles all subject-related database operations.
type SubjectStore struct {
	db *sql.DB
}

// NewSubjectStore creates a new SubjectStore with the given database connection.
func NewSubjectStore(db *sql.DB) *SubjectStore {
	return &SubjectStore{db: db}
}

// List returns all subjects ordered by creation date descending.
func (s *SubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM subjects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var items []models.Subject
	for rows.Next() {
		var sub models.Subject
		if err := rows.Scan(&sub.ID, &sub.Title, &sub.Description, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		items = append(items, sub)
	}
	return items, rows.Err()
}

// FindByID retrieves a subject by its UUID. Returns nil if not found.
func (s *SubjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	sub := &models.Subject{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM subjects WHERE id = $1
	`, id).Scan(&sub.ID, &sub.Title, &sub.Description, &sub.CreatedAt, &sub.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subject by id: %w", err)
	}
	return sub, nil
}

// Insert writes a subject row with the id and timestamps already assigned.
func (s *SubjectStore) Insert(ctx context.Context, sub *models.Subject) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Title, sub.Description, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a subject row.
func (s *SubjectStore) Update(ctx context.Context, sub *models.Subject) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE subjects SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, sub.Title, sub.Description, sub.UpdatedAt, sub.ID)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject row. Descendant trainings, modules, topics and
// units fall with it through ON DELETE CASCADE.
func (s *SubjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
