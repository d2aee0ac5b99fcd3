// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

// ModuleInput carries the caller-provided fields for a new training module.
type ModuleInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TrainingID  *uuid.UUID `json:"training_id"`
}

// ModulePatch is a partial update; nil fields are left untouched.
type ModulePatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TrainingID  *uuid.UUID `json:"training_id"`
}

// CreateModule inserts a new training module at the head of the collection.
func (c *Catalog) CreateModule(ctx context.Context, in ModuleInput) models.TrainingModule {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	m := models.TrainingModule{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		TrainingID:  in.TrainingID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	c.modules = append([]models.TrainingModule{m}, c.modules...)

	c.mirror(ctx, "insert module", func(ctx context.Context) error {
		return c.remote.InsertModule(ctx, &m)
	})
	c.snapshotTree()
	return m
}

// UpdateModule shallow-merges the patch into the matching module.
func (c *Catalog) UpdateModule(ctx context.Context, id uuid.UUID, p ModulePatch) (models.TrainingModule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexModule(c.modules, id)
	if i < 0 {
		return models.TrainingModule{}, ErrNotFound
	}
	m := &c.modules[i]
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.TrainingID != nil {
		m.TrainingID = p.TrainingID
	}
	m.UpdatedAt = now()

	updated := *m
	c.mirror(ctx, "update module", func(ctx context.Context) error {
		return c.remote.UpdateModule(ctx, &updated)
	})
	c.snapshotTree()
	return updated, nil
}

// ModuleByID returns the module, or ok=false when absent.
func (c *Catalog) ModuleByID(id uuid.UUID) (models.TrainingModule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexModule(c.modules, id); i >= 0 {
		return c.modules[i], true
	}
	return models.TrainingModule{}, false
}

// Modules returns the collection in insertion order.
func (c *Catalog) Modules() []models.TrainingModule {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.TrainingModule, len(c.modules))
	copy(out, c.modules)
	return out
}

// ModulesByTraining returns the direct children of a training.
func (c *Catalog) ModulesByTraining(trainingID uuid.UUID) []models.TrainingModule {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.TrainingModule
	for _, m := range c.modules {
		if m.TrainingID != nil && *m.TrainingID == trainingID {
			out = append(out, m)
		}
	}
	return out
}

func indexModule(modules []models.TrainingModule, id uuid.UUID) int {
	for i := range modules {
		if modules[i].ID == id {
			return i
		}
	}
	return -1
}
