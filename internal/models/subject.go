// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package models defines the typed entities of the L.U.M.A content
// hierarchy: Subject → Training → TrainingModule → Topic → Unit, plus the
// supporting records (users, invitations, ideas). Every entity carries a
// service-generated UUID and snake_case JSON tags matching the wire format
// of the row store.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the root of the content hierarchy. Subjects group trainings;
// they have no parent.
type Subject struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
