// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"luma/internal/models"
)

// InvitationStore handles workspace invitation rows.
type InvitationStore struct {
	db *sql.DB
}

// NewInvitationStore creates a new InvitationStore with the given database connection.
func NewInvitationStore(db *sql.DB) *InvitationStore {
	return &InvitationStore{db: db}
}

// List returns all invitations, pending first, newest first within each group.
func (s *InvitationStore) List(ctx context.Context) ([]models.Invitation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, role, token, created_at, accepted_at
		FROM invitations
		ORDER BY accepted_at NULLS FIRST, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var items []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.CreatedAt, &inv.AcceptedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

// FindByToken retrieves an invitation by its opaque token. Returns nil if
// not found.
func (s *InvitationStore) FindByToken(ctx context.Context, token string) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, role, token, created_at, accepted_at
		FROM invitations WHERE token = $1
	`, token).Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.CreatedAt, &inv.AcceptedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation by token: %w", err)
	}
	return inv, nil
}

// Insert writes a new pending invitation.
func (s *InvitationStore) Insert(ctx context.Context, inv *models.Invitation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invitations (id, email, role, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, inv.ID, inv.Email, inv.Role, inv.Token, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// MarkAccepted stamps the invitation as redeemed.
func (s *InvitationStore) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE invitations SET accepted_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark invitation accepted: %w", err)
	}
	return nil
}

// Delete removes an invitation by ID.
func (s *InvitationStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}
