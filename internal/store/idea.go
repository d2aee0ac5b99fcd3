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

// IdeaStore handles all idea-backlog database operations. The frozen author
// snapshot is stored as a JSONB document.
type IdeaStore struct {
	db *sql.DB
}

// NewIdeaStore creates a new IdeaStore with the given database connection.
func NewIdeaStore(db *sql.DB) *IdeaStore {
	return &IdeaStore{db: db}
}

// List returns all ideas ordered by creation date descending.
func (s *IdeaStore) List(ctx context.Context) ([]models.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, author, votes, created_at, updated_at
		FROM ideas
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	var items []models.Idea
	for rows.Next() {
		var i models.Idea
		var author []byte
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &author, &i.Votes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		if err := fromJSONB(author, &i.Author); err != nil {
			return nil, fmt.Errorf("scan idea author: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// Insert writes an idea row with the id and timestamps already assigned.
func (s *IdeaStore) Insert(ctx context.Context, i *models.Idea) error {
	author, err := jsonb(i.Author)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ideas (id, title, description, author, votes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, i.ID, i.Title, i.Description, author, i.Votes, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of an idea row.
func (s *IdeaStore) Update(ctx context.Context, i *models.Idea) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE ideas SET title = $1, description = $2, votes = $3, updated_at = $4
		WHERE id = $5
	`, i.Title, i.Description, i.Votes, i.UpdatedAt, i.ID)
	if err != nil {
		return fmt.Errorf("update idea: %w", err)
	}
	return nil
}

// Delete removes an idea row by ID.
func (s *IdeaStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	return nil
}
