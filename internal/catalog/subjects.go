// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

// SubjectInput carries the caller-provided fields for a new subject.
// Required-field validation happens at the handler boundary; the catalog
// assumes pre-validated input.
type SubjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SubjectPatch is a partial update; nil fields are left untouched.
type SubjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateSubject inserts a new subject at the head of the collection
// (listings are newest-first) and mirrors it to the row store best-effort.
func (c *Catalog) CreateSubject(ctx context.Context, in SubjectInput) models.Subject {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	s := models.Subject{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	c.subjects = append([]models.Subject{s}, c.subjects...)

	c.mirror(ctx, "insert subject", func(ctx context.Context) error {
		return c.remote.InsertSubject(ctx, &s)
	})
	c.snapshotTree()
	return s
}

// UpdateSubject shallow-merges the patch into the matching subject. A
// missing id returns ErrNotFound, which the orchestration layer ignores.
func (c *Catalog) UpdateSubject(ctx context.Context, id uuid.UUID, p SubjectPatch) (models.Subject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexSubject(c.subjects, id)
	if i < 0 {
		return models.Subject{}, ErrNotFound
	}
	s := &c.subjects[i]
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	s.UpdatedAt = now()

	updated := *s
	c.mirror(ctx, "update subject", func(ctx context.Context) error {
		return c.remote.UpdateSubject(ctx, &updated)
	})
	c.snapshotTree()
	return updated, nil
}

// SubjectByID returns the subject, or ok=false when absent.
func (c *Catalog) SubjectByID(id uuid.UUID) (models.Subject, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexSubject(c.subjects, id); i >= 0 {
		return c.subjects[i], true
	}
	return models.Subject{}, false
}

// Subjects returns the collection in insertion order (newest first).
func (c *Catalog) Subjects() []models.Subject {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Subject, len(c.subjects))
	copy(out, c.subjects)
	return out
}

func indexSubject(subjects []models.Subject, id uuid.UUID) int {
	for i := range subjects {
		if subjects[i].ID == id {
			return i
		}
	}
	return -1
}
