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

// TopicStore handles all topic-related database operations.
type TopicStore struct {
	db *sql.DB
}

// NewTopicStore creates a new TopicStore with the given database connection.
func NewTopicStore(db *sql.DB) *TopicStore {
	return &TopicStore{db: db}
}

// List returns all topics ordered by creation date descending.
func (s *TopicStore) List(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, training_module_id, owner_id, created_at, updated_at
		FROM topics
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var items []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.TrainingModuleID, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a topic by its UUID. Returns nil if not found.
func (s *TopicStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	t := &models.Topic{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, training_module_id, owner_id, created_at, updated_at
		FROM topics WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.TrainingModuleID, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find topic by id: %w", err)
	}
	return t, nil
}

// Insert writes a topic row with the id and timestamps already assigned.
func (s *TopicStore) Insert(ctx context.Context, t *models.Topic) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (id, title, description, training_module_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.Title, t.Description, t.TrainingModuleID, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a topic row.
func (s *TopicStore) Update(ctx context.Context, t *models.Topic) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE topics SET title = $1, description = $2, training_module_id = $3, owner_id = $4, updated_at = $5
		WHERE id = $6
	`, t.Title, t.Description, t.TrainingModuleID, t.OwnerID, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// Delete removes a topic row; its units cascade in the database.
func (s *TopicStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
