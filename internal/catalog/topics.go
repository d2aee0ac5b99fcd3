// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

// TopicInput carries the caller-provided fields for a new topic.
type TopicInput struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TrainingModuleID *uuid.UUID `json:"training_module_id"`
	OwnerID          *uuid.UUID `json:"owner_id"`
}

// TopicPatch is a partial update; nil fields are left untouched.
type TopicPatch struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	TrainingModuleID *uuid.UUID `json:"training_module_id"`
	OwnerID          *uuid.UUID `json:"owner_id"`
}

// CreateTopic inserts a new topic at the head of the collection.
func (c *Catalog) CreateTopic(ctx context.Context, in TopicInput) models.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	t := models.Topic{
		ID:               uuid.New(),
		Title:            in.Title,
		Description:      in.Description,
		TrainingModuleID: in.TrainingModuleID,
		OwnerID:          in.OwnerID,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	c.topics = append([]models.Topic{t}, c.topics...)

	c.mirror(ctx, "insert topic", func(ctx context.Context) error {
		return c.remote.InsertTopic(ctx, &t)
	})
	c.snapshotTree()
	return t
}

// UpdateTopic shallow-merges the patch into the matching topic.
func (c *Catalog) UpdateTopic(ctx context.Context, id uuid.UUID, p TopicPatch) (models.Topic, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexTopic(c.topics, id)
	if i < 0 {
		return models.Topic{}, ErrNotFound
	}
	t := &c.topics[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.TrainingModuleID != nil {
		t.TrainingModuleID = p.TrainingModuleID
	}
	if p.OwnerID != nil {
		t.OwnerID = p.OwnerID
	}
	t.UpdatedAt = now()

	updated := *t
	c.mirror(ctx, "update topic", func(ctx context.Context) error {
		return c.remote.UpdateTopic(ctx, &updated)
	})
	c.snapshotTree()
	return updated, nil
}

// TopicByID returns the topic, or ok=false when absent.
func (c *Catalog) TopicByID(id uuid.UUID) (models.Topic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexTopic(c.topics, id); i >= 0 {
		return c.topics[i], true
	}
	return models.Topic{}, false
}

// Topics returns the collection in insertion order.
func (c *Catalog) Topics() []models.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// TopicsByModule returns the direct children of a training module.
func (c *Catalog) TopicsByModule(moduleID uuid.UUID) []models.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Topic
	for _, t := range c.topics {
		if t.TrainingModuleID != nil && *t.TrainingModuleID == moduleID {
			out = append(out, t)
		}
	}
	return out
}

func indexTopic(topics []models.Topic, id uuid.UUID) int {
	for i := range topics {
		if topics[i].ID == id {
			return i
		}
	}
	return -1
}
