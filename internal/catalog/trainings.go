// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

// TrainingInput carries the caller-provided fields for a new training.
// SubjectID may be nil: detached trainings are allowed and simply never
// reached by cascade deletes.
type TrainingInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SubjectID   *uuid.UUID `json:"subject_id"`
}

// TrainingPatch is a partial update; nil fields are left untouched.
type TrainingPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	SubjectID   *uuid.UUID `json:"subject_id"`
}

// CreateTraining inserts a new training at the head of the collection.
func (c *Catalog) CreateTraining(ctx context.Context, in TrainingInput) models.Training {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	t := models.Training{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		SubjectID:   in.SubjectID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	c.trainings = append([]models.Training{t}, c.trainings...)

	c.mirror(ctx, "insert training", func(ctx context.Context) error {
		return c.remote.InsertTraining(ctx, &t)
	})
	c.snapshotTree()
	return t
}

// UpdateTraining shallow-merges the patch into the matching training.
func (c *Catalog) UpdateTraining(ctx context.Context, id uuid.UUID, p TrainingPatch) (models.Training, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexTraining(c.trainings, id)
	if i < 0 {
		return models.Training{}, ErrNotFound
	}
	t := &c.trainings[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.SubjectID != nil {
		t.SubjectID = p.SubjectID
	}
	t.UpdatedAt = now()

	updated := *t
	c.mirror(ctx, "update training", func(ctx context.Context) error {
		return c.remote.UpdateTraining(ctx, &updated)
	})
	c.snapshotTree()
	return updated, nil
}

// TrainingByID returns the training, or ok=false when absent.
func (c *Catalog) TrainingByID(id uuid.UUID) (models.Training, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexTraining(c.trainings, id); i >= 0 {
		return c.trainings[i], true
	}
	return models.Training{}, false
}

// Trainings returns the collection in insertion order.
func (c *Catalog) Trainings() []models.Training {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Training, len(c.trainings))
	copy(out, c.trainings)
	return out
}

// TrainingsBySubject returns the direct children of a subject in collection
// order, not re-sorted.
func (c *Catalog) TrainingsBySubject(subjectID uuid.UUID) []models.Training {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Training
	for _, t := range c.trainings {
		if t.SubjectID != nil && *t.SubjectID == subjectID {
			out = append(out, t)
		}
	}
	return out
}

func indexTraining(trainings []models.Training, id uuid.UUID) int {
	for i := range trainings {
		if trainings[i].ID == id {
			return i
		}
	}
	return -1
}
