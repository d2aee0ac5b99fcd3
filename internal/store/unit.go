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

// UnitStore handles all unit-related database operations. A unit row carries
// its sub-structures (snippets, comments, tags, media refs) as JSONB
// documents and is always read and written whole.
type UnitStore struct {
	db *sql.DB
}

// NewUnitStore creates a new UnitStore with the given database connection.
func NewUnitStore(db *sql.DB) *UnitStore {
	return &UnitStore{db: db}
}

const unitColumns = `id, title, description, topic_id, editorial_state, target_date,
	notes, speech_text, explanation,
	learning_goals, urls, content_types, custom_content_types,
	images, video, power_point_file, text_snippets,
	comments, explanation_comments, speech_text_comments, tags,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*models.Unit, error) {
	u := &models.Unit{}
	var goals, urls, ctypes, customTypes []byte
	var images, video, ppt, snippets []byte
	var comments, explComments, speechComments, tags []byte

	err := row.Scan(
		&u.ID, &u.Title, &u.Description, &u.TopicID, &u.EditorialState, &u.TargetDate,
		&u.Notes, &u.SpeechText, &u.Explanation,
		&goals, &urls, &ctypes, &customTypes,
		&images, &video, &ppt, &snippets,
		&comments, &explComments, &speechComments, &tags,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Owned collections decode to empty slices, never nil, so the wire
	// shape is stable.
	u.LearningGoals = []string{}
	u.URLs = []string{}
	u.ContentTypes = []string{}
	u.CustomContentTypes = []string{}
	u.Images = []models.ImageRef{}
	u.TextSnippets = []models.Snippet{}
	u.Comments = []models.Comment{}
	u.ExplanationComments = []models.Comment{}
	u.SpeechTextComments = []models.Comment{}
	u.Tags = []models.Tag{}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{goals, &u.LearningGoals},
		{urls, &u.URLs},
		{ctypes, &u.ContentTypes},
		{customTypes, &u.CustomContentTypes},
		{images, &u.Images},
		{video, &u.Video},
		{ppt, &u.PowerPointFile},
		{snippets, &u.TextSnippets},
		{comments, &u.Comments},
		{explComments, &u.ExplanationComments},
		{speechComments, &u.SpeechTextComments},
		{tags, &u.Tags},
	} {
		if err := fromJSONB(col.raw, col.dst); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// unitArgs flattens a unit into the positional insert/update arguments,
// marshaling the JSONB document columns.
func unitArgs(u *models.Unit) ([]any, error) {
	jsonCols := []any{
		u.LearningGoals, u.URLs, u.ContentTypes, u.CustomContentTypes,
		u.Images, u.Video, u.PowerPointFile, u.TextSnippets,
		u.Comments, u.ExplanationComments, u.SpeechTextComments, u.Tags,
	}
	encoded := make([]any, len(jsonCols))
	for i, v := range jsonCols {
		b, err := jsonb(v)
		if err != nil {
			return nil, err
		}
		encoded[i] = b
	}

	args := []any{
		u.ID, u.Title, u.Description, u.TopicID, u.EditorialState, u.TargetDate,
		u.Notes, u.SpeechText, u.Explanation,
	}
	args = append(args, encoded...)
	args = append(args, u.CreatedAt, u.UpdatedAt)
	return args, nil
}

// List returns all units ordered by creation date descending.
func (s *UnitStore) List(ctx context.Context) ([]models.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM units ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var items []models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

// FindByID retrieves a unit by its UUID. Returns nil if not found.
func (s *UnitStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id)
	u, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find unit by id: %w", err)
	}
	return u, nil
}

// Insert writes a unit row with the id and timestamps already assigned.
func (s *UnitStore) Insert(ctx context.Context, u *models.Unit) error {
	args, err := unitArgs(u)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO units (`+unitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`, args...)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// Update rewrites every mutable column of a unit row. Mutations in the
// catalog are whole-entity, so the mirror write is too.
func (s *UnitStore) Update(ctx context.Context, u *models.Unit) error {
	args, err := unitArgs(u)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	// Shift the id from the first insert position to the WHERE clause.
	args = append(args[1:], u.ID)
	_, err = s.db.ExecContext(ctx, `
		UPDATE units SET
			title = $1, description = $2, topic_id = $3, editorial_state = $4, target_date = $5,
			notes = $6, speech_text = $7, explanation = $8,
			learning_goals = $9, urls = $10, content_types = $11, custom_content_types = $12,
			images = $13, video = $14, power_point_file = $15, text_snippets = $16,
			comments = $17, explanation_comments = $18, speech_text_comments = $19, tags = $20,
			created_at = $21, updated_at = $22
		WHERE id = $23
	`, args...)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// Delete removes a unit row by ID.
func (s *UnitStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
