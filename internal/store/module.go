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

// ModuleStore handles all training-module database operations.
type ModuleStore struct {
	db *sql.DB
}

// NewModuleStore creates a new ModuleStore with the given database connection.
func NewModuleStore(db *sql.DB) *ModuleStore {
	return &ModuleStore{db: db}
}

// List returns all training modules ordered by creation date descending.
func (s *ModuleStore) List(ctx context.Context) ([]models.TrainingModule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, training_id, created_at, updated_at
		FROM training_modules
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var items []models.TrainingModule
	for rows.Next() {
		var m models.TrainingModule
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.TrainingID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// FindByID retrieves a training module by its UUID. Returns nil if not found.
func (s *ModuleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.TrainingModule, error) {
	m := &models.TrainingModule{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, training_id, created_at, updated_at
		FROM training_modules WHERE id = $1
	`, id).Scan(&m.ID, &m.Title, &m.Description, &m.TrainingID, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find module by id: %w", err)
	}
	return m, nil
}

// Insert writes a module row with the id and timestamps already assigned.
func (s *ModuleStore) Insert(ctx context.Context, m *models.TrainingModule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO training_modules (id, title, description, training_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.Title, m.Description, m.TrainingID, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a module row.
func (s *ModuleStore) Update(ctx context.Context, m *models.TrainingModule) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE training_modules SET title = $1, description = $2, training_id = $3, updated_at = $4
		WHERE id = $5
	`, m.Title, m.Description, m.TrainingID, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	return nil
}

// Delete removes a module row; topics and units cascade in the database.
func (s *ModuleStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM training_modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	return nil
}
