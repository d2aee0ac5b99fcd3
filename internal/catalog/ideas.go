// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

// IdeaInput carries the caller-provided fields for a new backlog idea.
type IdeaInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IdeaPatch is a partial update; nil fields are left untouched.
type IdeaPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateIdea inserts a new idea at the head of the backlog. The author
// snapshot is frozen at write time, same as comment authors.
func (c *Catalog) CreateIdea(ctx context.Context, in IdeaInput, author models.UserRef) models.Idea {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	i := models.Idea{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Author:      author,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	c.ideas = append([]models.Idea{i}, c.ideas...)

	c.mirror(ctx, "insert idea", func(ctx context.Context) error {
		return c.remote.InsertIdea(ctx, &i)
	})
	return i
}

// UpdateIdea shallow-merges the patch into the matching idea.
func (c *Catalog) UpdateIdea(ctx context.Context, id uuid.UUID, p IdeaPatch) (models.Idea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexIdea(c.ideas, id)
	if i < 0 {
		return models.Idea{}, ErrNotFound
	}
	idea := &c.ideas[i]
	if p.Title != nil {
		idea.Title = *p.Title
	}
	if p.Description != nil {
		idea.Description = *p.Description
	}
	idea.UpdatedAt = now()

	updated := *idea
	c.mirror(ctx, "update idea", func(ctx context.Context) error {
		return c.remote.UpdateIdea(ctx, &updated)
	})
	return updated, nil
}

// VoteIdea bumps an idea's vote count by one.
func (c *Catalog) VoteIdea(ctx context.Context, id uuid.UUID) (models.Idea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexIdea(c.ideas, id)
	if i < 0 {
		return models.Idea{}, ErrNotFound
	}
	idea := &c.ideas[i]
	idea.Votes++
	idea.UpdatedAt = now()

	updated := *idea
	c.mirror(ctx, "vote idea", func(ctx context.Context) error {
		return c.remote.UpdateIdea(ctx, &updated)
	})
	return updated, nil
}

// DeleteIdea removes an idea. A missing id is a silent no-op.
func (c *Catalog) DeleteIdea(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexIdea(c.ideas, id)
	if i < 0 {
		return
	}
	c.ideas = append(c.ideas[:i], c.ideas[i+1:]...)

	c.mirror(ctx, "delete idea", func(ctx context.Context) error {
		return c.remote.DeleteIdea(ctx, id)
	})
}

// Ideas returns the backlog in insertion order (newest first).
func (c *Catalog) Ideas() []models.Idea {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Idea, len(c.ideas))
	copy(out, c.ideas)
	return out
}

// IdeaByID returns the idea, or ok=false when absent.
func (c *Catalog) IdeaByID(id uuid.UUID) (models.Idea, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexIdea(c.ideas, id); i >= 0 {
		return c.ideas[i], true
	}
	return models.Idea{}, false
}

func indexIdea(ideas []models.Idea, id uuid.UUID) int {
	for i := range ideas {
		if ideas[i].ID == id {
			return i
		}
	}
	return -1
}
