// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRef is a denormalized point-in-time snapshot of a user, embedded by
// value into comments and ideas. Once written it is frozen: later profile
// edits do not rewrite existing comments.
type UserRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Role   string    `json:"role"`
}

// Comment is a review note on a unit, an explanation, a speech text, or a
// single snippet. Context names the stream it belongs to.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    UserRef   `json:"author"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}
