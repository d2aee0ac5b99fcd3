// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"luma/internal/models"
)

// Comment stream names on a unit.
const (
	StreamUnit        = "unit"
	StreamExplanation = "explanation"
	StreamSpeechText  = "speech_text"
)

// UnitInput carries the caller-provided fields for a new learning unit.
type UnitInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TopicID     *uuid.UUID `json:"topic_id"`
}

// UnitPatch is a partial update of a unit's scalar and list fields. Nil
// fields are left untouched; sub-structures (snippets, tags, comments,
// media) have dedicated mutators.
type UnitPatch struct {
	Title              *string                `json:"title"`
	Description        *string                `json:"description"`
	TopicID            *uuid.UUID             `json:"topic_id"`
	EditorialState     *models.EditorialState `json:"editorial_state"`
	TargetDate         *time.Time             `json:"target_date"`
	Notes              *string                `json:"notes"`
	SpeechText         *string                `json:"speech_text"`
	Explanation        *string                `json:"explanation"`
	LearningGoals      *[]string              `json:"learning_goals"`
	URLs               *[]string              `json:"urls"`
	ContentTypes       *[]string              `json:"content_types"`
	CustomContentTypes *[]string              `json:"custom_content_types"`
}

// CreateUnit inserts a new unit at the head of the collection. New units
// start in planning state with every owned list initialized empty so the
// wire shape is stable from the first read.
func (c *Catalog) CreateUnit(ctx context.Context, in UnitInput) models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := now()
	u := models.Unit{
		ID:                  uuid.New(),
		Title:               in.Title,
		Description:         in.Description,
		TopicID:             in.TopicID,
		EditorialState:      models.StatePlanning,
		LearningGoals:       []string{},
		URLs:                []string{},
		ContentTypes:        []string{},
		CustomContentTypes:  []string{},
		Images:              []models.ImageRef{},
		TextSnippets:        []models.Snippet{},
		Comments:            []models.Comment{},
		ExplanationComments: []models.Comment{},
		SpeechTextComments:  []models.Comment{},
		Tags:                []models.Tag{},
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}
	c.units = append([]models.Unit{u}, c.units...)

	c.mirror(ctx, "insert unit", func(ctx context.Context) error {
		return c.remote.InsertUnit(ctx, &u)
	})
	c.snapshotUnits()
	return u
}

// UpdateUnit shallow-merges the patch into the matching unit.
func (c *Catalog) UpdateUnit(ctx context.Context, id uuid.UUID, p UnitPatch) (models.Unit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, id)
	if i < 0 {
		return models.Unit{}, ErrNotFound
	}
	u := &c.units[i]
	if p.Title != nil {
		u.Title = *p.Title
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	if p.TopicID != nil {
		u.TopicID = p.TopicID
	}
	if p.EditorialState != nil && p.EditorialState.Valid() {
		u.EditorialState = *p.EditorialState
	}
	if p.TargetDate != nil {
		u.TargetDate = p.TargetDate
	}
	if p.Notes != nil {
		u.Notes = *p.Notes
	}
	if p.SpeechText != nil {
		u.SpeechText = *p.SpeechText
	}
	if p.Explanation != nil {
		u.Explanation = *p.Explanation
	}
	if p.LearningGoals != nil {
		u.LearningGoals = *p.LearningGoals
	}
	if p.URLs != nil {
		u.URLs = *p.URLs
	}
	if p.ContentTypes != nil {
		u.ContentTypes = *p.ContentTypes
	}
	if p.CustomContentTypes != nil {
		u.CustomContentTypes = *p.CustomContentTypes
	}
	u.UpdatedAt = now()

	return c.finishUnitMutation(ctx, "update unit", i), nil
}

// finishUnitMutation mirrors the unit row and rewrites the snapshot.
// Must be called with the lock held.
func (c *Catalog) finishUnitMutation(ctx context.Context, op string, i int) models.Unit {
	updated := c.units[i]
	c.mirror(ctx, op, func(ctx context.Context) error {
		return c.remote.UpdateUnit(ctx, &updated)
	})
	c.snapshotUnits()
	return updated
}

// UnitByID returns the unit, or ok=false when absent.
func (c *Catalog) UnitByID(id uuid.UUID) (models.Unit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexUnit(c.units, id); i >= 0 {
		return c.units[i], true
	}
	return models.Unit{}, false
}

// Units returns the collection in insertion order (newest first).
func (c *Catalog) Units() []models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Unit, len(c.units))
	copy(out, c.units)
	return out
}

// UnitsByTopic returns the direct children of a topic in collection order.
func (c *Catalog) UnitsByTopic(topicID uuid.UUID) []models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Unit
	for _, u := range c.units {
		if u.TopicID != nil && *u.TopicID == topicID {
			out = append(out, u)
		}
	}
	return out
}

// Board groups all units by editorial state for the Kanban view. Every
// state appears in the result, empty columns included.
func (c *Catalog) Board() map[models.EditorialState][]models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	board := make(map[models.EditorialState][]models.Unit, len(models.EditorialStates))
	for _, s := range models.EditorialStates {
		board[s] = []models.Unit{}
	}
	for _, u := range c.units {
		board[u.EditorialState] = append(board[u.EditorialState], u)
	}
	return board
}

// AddUnitTag copies a new tag onto the unit. Tags are denormalized by
// design: the same label on two units is two independent records.
func (c *Catalog) AddUnitTag(ctx context.Context, unitID uuid.UUID, label, color string) (models.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Tag{}, ErrNotFound
	}
	tag := models.Tag{ID: uuid.New(), Label: label, Color: color, CreatedAt: now()}
	u := &c.units[i]
	u.Tags = append(u.Tags, tag)
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "add unit tag", i)
	return tag, nil
}

// UpdateUnitTag renames/recolors a tag on one unit only.
func (c *Catalog) UpdateUnitTag(ctx context.Context, unitID, tagID uuid.UUID, label, color string) (models.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Tag{}, ErrNotFound
	}
	u := &c.units[i]
	for j := range u.Tags {
		if u.Tags[j].ID == tagID {
			u.Tags[j].Label = label
			u.Tags[j].Color = color
			u.UpdatedAt = now()
			tag := u.Tags[j]
			c.finishUnitMutation(ctx, "update unit tag", i)
			return tag, nil
		}
	}
	return models.Tag{}, ErrNotFound
}

// RemoveUnitTag deletes a tag from one unit. Missing unit or tag is a
// silent no-op surfaced as ErrNotFound.
func (c *Catalog) RemoveUnitTag(ctx context.Context, unitID, tagID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return ErrNotFound
	}
	u := &c.units[i]
	for j := range u.Tags {
		if u.Tags[j].ID == tagID {
			u.Tags = append(u.Tags[:j], u.Tags[j+1:]...)
			u.UpdatedAt = now()
			c.finishUnitMutation(ctx, "remove unit tag", i)
			return nil
		}
	}
	return ErrNotFound
}

// AddUnitComment prepends a comment to one of the unit's three streams.
// The author snapshot is frozen at write time.
func (c *Catalog) AddUnitComment(ctx context.Context, unitID uuid.UUID, stream, content string, author models.UserRef) (models.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Comment{}, ErrNotFound
	}
	u := &c.units[i]

	comment := models.Comment{
		ID:        uuid.New(),
		Content:   content,
		Author:    author,
		Context:   stream,
		CreatedAt: now(),
	}
	switch stream {
	case StreamExplanation:
		u.ExplanationComments = append([]models.Comment{comment}, u.ExplanationComments...)
	case StreamSpeechText:
		u.SpeechTextComments = append([]models.Comment{comment}, u.SpeechTextComments...)
	default:
		comment.Context = StreamUnit
		u.Comments = append([]models.Comment{comment}, u.Comments...)
	}
	u.UpdatedAt = now()

	c.finishUnitMutation(ctx, "add unit comment", i)
	return comment, nil
}

// AttachImage appends an uploaded image reference to the unit, honoring no
// cap here — caps apply only to the snapshot projection.
func (c *Catalog) AttachImage(ctx context.Context, unitID uuid.UUID, ref models.ImageRef) (models.Unit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.Unit{}, ErrNotFound
	}
	u := &c.units[i]
	u.Images = append(u.Images, ref)
	u.UpdatedAt = now()
	return c.finishUnitMutation(ctx, "attach image", i), nil
}

// RemoveImage drops an image reference and returns it so the caller can
// delete the stored object best-effort.
func (c *Catalog) RemoveImage(ctx context.Context, unitID, imageID uuid.UUID) (models.ImageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return models.ImageRef{}, ErrNotFound
	}
	u := &c.units[i]
	for j := range u.Images {
		if u.Images[j].ID == imageID {
			ref := u.Images[j]
			u.Images = append(u.Images[:j], u.Images[j+1:]...)
			u.UpdatedAt = now()
			c.finishUnitMutation(ctx, "remove image", i)
			return ref, nil
		}
	}
	return models.ImageRef{}, ErrNotFound
}

// SetVideo replaces the unit's single video reference (nil clears it) and
// returns the previous reference for storage cleanup.
func (c *Catalog) SetVideo(ctx context.Context, unitID uuid.UUID, ref *models.VideoRef) (*models.VideoRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := &c.units[i]
	prev := u.Video
	u.Video = ref
	u.UpdatedAt = now()
	c.finishUnitMutation(ctx, "set video", i)
	return prev, nil
}

// SetPowerPoint replaces the unit's presentation file reference (nil
// clears it) and returns the previous reference for storage cleanup.
func (c *Catalog) SetPowerPoint(ctx context.Context, unitID uuid.UUID, ref *models.PowerPointRef) (*models.PowerPointRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexUnit(c.units, unitID)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := &c.units[i]
	prev := u.PowerPointFile
	u.PowerPointFile = ref
	u.UpdatedAt = now()
	c.finishUnitMutation(ctx, "set power point", i)
	return prev, nil
}

func indexUnit(units []models.Unit, id uuid.UUID) int {
	for i := range units {
		if units[i].ID == id {
			return i
		}
	}
	return -1
}
