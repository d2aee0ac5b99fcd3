// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// EditorialState tracks a unit's position on the Kanban board.
type EditorialState string

const (
	StatePlanning  EditorialState = "planning"
	StateDraft     EditorialState = "draft"
	StateReview    EditorialState = "review"
	StateReady     EditorialState = "ready"
	StatePublished EditorialState = "published"
)

// EditorialStates lists all states in board order.
var EditorialStates = []EditorialState{
	StatePlanning, StateDraft, StateReview, StateReady, StatePublished,
}

// Valid reports whether s is one of the known editorial states.
func (s EditorialState) Valid() bool {
	switch s {
	case StatePlanning, StateDraft, StateReview, StateReady, StatePublished:
		return true
	}
	return false
}

// Unit is a learning unit, the leaf of the content hierarchy and by far the
// richest entity. Sub-structures (snippets, comments, tags, media refs) are
// owned by the unit and persisted as JSONB columns in the row store.
type Unit struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	TopicID        *uuid.UUID     `json:"topic_id,omitempty"`
	EditorialState EditorialState `json:"editorial_state"`
	TargetDate     *time.Time     `json:"target_date,omitempty"`

	// Large authoring fields. SpeechText and Explanation are considered
	// remote-only by the snapshot serializer and never written to the
	// local cache.
	Notes       string `json:"notes"`
	SpeechText  string `json:"speech_text"`
	Explanation string `json:"explanation"`

	LearningGoals      []string `json:"learning_goals"`
	URLs               []string `json:"urls"`
	ContentTypes       []string `json:"content_types"`
	CustomContentTypes []string `json:"custom_content_types"`

	Images         []ImageRef     `json:"images"`
	Video          *VideoRef      `json:"video,omitempty"`
	PowerPointFile *PowerPointRef `json:"power_point_file,omitempty"`

	TextSnippets []Snippet `json:"text_snippets"`

	// Three independent comment streams reviewed on the unit detail page.
	Comments            []Comment `json:"comments"`
	ExplanationComments []Comment `json:"explanation_comments"`
	SpeechTextComments  []Comment `json:"speech_text_comments"`

	// Tags are denormalized copies, not references: renaming a tag on one
	// unit never affects another unit holding a tag with the same id.
	Tags []Tag `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageRef describes an image stored in object storage. StoragePath is the
// bucket key used for deletion; PublicURL is what clients render.
type ImageRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PublicURL   string    `json:"public_url"`
	StoragePath string    `json:"storage_path,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// VideoRef describes the unit's single video in object storage.
type VideoRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PublicURL   string    `json:"public_url"`
	StoragePath string    `json:"storage_path,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// PowerPointRef describes the unit's attached presentation file.
type PowerPointRef struct {
	Name        string    `json:"name"`
	PublicURL   string    `json:"public_url,omitempty"`
	StoragePath string    `json:"storage_path,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at,omitempty"`
}

// Tag is a colored label copied by value onto each unit that carries it.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
