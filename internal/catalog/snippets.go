// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"luma/internal/models"
)

// sentenceEnd matches one or more sentence terminators. The splitter is
// deliberately naive: it does not handle abbreviations or decimal points.
var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// SegmentText splits raw text into ordered snippets and REPLACES the unit's
// snippet list wholesale, discarding any prior snippets along with their
// ratings and comments. The UI confirms this with the user before calling.
func (c *Catalog) SegmentText(ctx context.Context, unitID uuid.UUID, text string) ([]models.Snippet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return nil, ErrNotFound
	}

	snippets := segment(text)
	u := &c.units[i]
	u.TextSnippets = snippets
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "segment text", i)
	return snippets, nil
}

// segment is the splitting core: cut on [.!?]+, trim, drop blanks, number
// 1..N left to right.
func segment(text string) []models.Snippet {
	parts := sentenceEnd.Split(text, -1)
	snippets := make([]models.Snippet, 0, len(parts))
	for _, part := range parts {
		content := strings.TrimSpace(part)
		if content == "" {
			continue
		}
		snippets = append(snippets, models.Snippet{
			ID:       uuid.New(),
			Content:  content,
			Order:    len(snippets) + 1,
			Rating:   models.Rating{UserVotes: map[string]bool{}},
			Comments: []models.Comment{},
		})
	}
	return snippets
}

// VoteSnippet applies a toggle vote for userID on one snippet. Casting the
// same vote twice removes it; casting the opposite vote switches it. The
// approved flag is recomputed after every change.
func (c *Catalog) VoteSnippet(ctx context.Context, unitID, snippetID uuid.UUID, userID string, up bool) (models.Snippet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Snippet{}, ErrNotFound
	}
	u := &c.units[i]
	j := indexSnippet(u.TextSnippets, snippetID)
	if j < 0 {
		return models.Snippet{}, ErrNotFound
	}

	sn := &u.TextSnippets[j]
	r := &sn.Rating
	if r.UserVotes == nil {
		r.UserVotes = map[string]bool{}
	}

	prev, voted := r.UserVotes[userID]
	switch {
	case voted && prev == up:
		// Toggle off.
		if up {
			r.Up--
		} else {
			r.Down--
		}
		delete(r.UserVotes, userID)
	case voted:
		// Switch direction.
		if prev {
			r.Up--
		} else {
			r.Down--
		}
		if up {
			r.Up++
		} else {
			r.Down++
		}
		r.UserVotes[userID] = up
	default:
		// First vote.
		if up {
			r.Up++
		} else {
			r.Down++
		}
		r.UserVotes[userID] = up
	}
	sn.RecomputeApproved()
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "vote snippet", i)
	return *sn, nil
}

// CommentSnippet prepends a comment to the snippet's own comment list,
// independent of the unit-level streams.
func (c *Catalog) CommentSnippet(ctx context.Context, unitID, snippetID uuid.UUID, content string, author models.UserRef) (models.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Comment{}, ErrNotFound
	}
	u := &c.units[i]
	j := indexSnippet(u.TextSnippets, snippetID)
	if j < 0 {
		return models.Comment{}, ErrNotFound
	}

	comment := models.Comment{
		ID:        uuid.New(),
		Content:   content,
		Author:    author,
		Context:   "snippet",
		CreatedAt: now(),
	}
	sn := &u.TextSnippets[j]
	sn.Comments = append([]models.Comment{comment}, sn.Comments...)
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "comment snippet", i)
	return comment, nil
}

// ReorderSnippets resequences the unit's snippets to match orderedIDs,
// assigning order 1..N. IDs missing from the list keep their position at
// the tail in previous relative order.
func (c *Catalog) ReorderSnippets(ctx context.Context, unitID uuid.UUID, orderedIDs []uuid.UUID) ([]models.Snippet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := &c.units[i]

	reordered := make([]models.Snippet, 0, len(u.TextSnippets))
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if j := indexSnippet(u.TextSnippets, id); j >= 0 && !seen[id] {
			reordered = append(reordered, u.TextSnippets[j])
			seen[id] = true
		}
	}
	for _, sn := range u.TextSnippets {
		if !seen[sn.ID] {
			reordered = append(reordered, sn)
		}
	}
	for k := range reordered {
		reordered[k].Order = k + 1
	}
	u.TextSnippets = reordered
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "reorder snippets", i)
	return reordered, nil
}

func indexSnippet(snippets []models.Snippet, id uuid.UUID) int {
	for i := range snippets {
		if snippets[i].ID == id {
			return i
		}
	}
	return -1
}
