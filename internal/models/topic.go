// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic belongs to at most one TrainingModule and may have an assigned
// owner responsible for its editorial progress.
type Topic struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TrainingModuleID *uuid.UUID `json:"training_module_id,omitempty"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
