// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package models

import (
	"github.com/google/uuid"
)

// ApprovalThreshold is the number of upvotes at which a snippet counts as
// approved. Fixed globally, not configurable per unit.
const ApprovalThreshold = 2

// Snippet is an atomic, independently votable fragment of a unit's text.
// Order is 1-based; values need not be contiguous but relative order is
// stable after resequencing.
type Snippet struct {
	ID       uuid.UUID  `json:"id"`
	Content  string     `json:"content"`
	Order    int        `json:"order"`
	Approved bool       `json:"approved"`
	Rating   Rating     `json:"rating"`
	Comments []Comment  `json:"comments"`
	ImageID  *uuid.UUID `json:"image_id,omitempty"`
}

// Rating is a per-snippet vote ledger. UserVotes maps user id to vote
// direction (true = up, false = down); a missing entry means no vote.
type Rating struct {
	Up        int             `json:"up"`
	Down      int             `json:"down"`
	UserVotes map[string]bool `json:"user_votes"`
}

// RecomputeApproved derives the approval flag from the current up count.
func (s *Snippet) RecomputeApproved() {
	s.Approved = s.Rating.Up >= ApprovalThreshold
}
