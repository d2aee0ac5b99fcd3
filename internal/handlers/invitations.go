// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"luma/internal/models"
	"luma/internal/session"
)

// invitationTokenLength is the byte length of invitation tokens
// (32 bytes = 64 hex chars).
const invitationTokenLength = 32

// InvitationList returns all invitations, pending first. Admin only.
func (api *API) InvitationList(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	items, err := api.invites.List(r.Context())
	if err != nil {
		slog.Error("list invitations failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if items == nil {
		items = []models.Invitation{}
	}
	respondJSON(w, http.StatusOK, items)
}

// InvitationCreate issues a new invitation with an opaque token. Admin only.
func (api *API) InvitationCreate(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "A valid email address is required.")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}
	if role != models.RoleAdmin && role != models.RoleEditor && role != models.RoleViewer {
		respondError(w, http.StatusBadRequest, "Unknown role.")
		return
	}

	token, err := generateInvitationToken()
	if err != nil {
		slog.Error("invitation token generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	inv := &models.Invitation{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      role,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := api.invites.Insert(r.Context(), inv); err != nil {
		slog.Error("insert invitation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	respondJSON(w, http.StatusCreated, inv)
}

// InvitationDelete revokes an invitation. Admin only.
func (api *API) InvitationDelete(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	if err := api.invites.Delete(r.Context(), id); err != nil {
		slog.Error("delete invitation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvitationQR renders the invitation's acceptance URL as a QR code PNG so
// it can be shared in person or on a slide. Admin only.
func (api *API) InvitationQR(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}

	items, err := api.invites.List(r.Context())
	if err != nil {
		slog.Error("list invitations failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	var inv *models.Invitation
	for i := range items {
		if items[i].ID == id {
			inv = &items[i]
			break
		}
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "Invitation not found.")
		return
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	acceptURL := scheme + "://" + r.Host + "/invite/" + inv.Token

	png, err := qrcode.Encode(acceptURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// InvitationAccept redeems a pending invitation: it creates the account,
// marks the invite accepted, and signs the new user in. Public endpoint.
func (api *API) InvitationAccept(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	var req struct {
		Token    string `json:"token"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	inv, err := api.invites.FindByToken(r.Context(), req.Token)
	if err != nil {
		slog.Error("invitation lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "Invitation not found.")
		return
	}
	if inv.AcceptedAt != nil {
		respondError(w, http.StatusGone, "Invitation has already been used.")
		return
	}

	ts := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     inv.Email,
		Role:      inv.Role,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := user.SetPassword(req.Password); err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if err := api.users.Insert(r.Context(), user); err != nil {
		slog.Error("insert user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if err := api.invites.MarkAccepted(r.Context(), inv.ID); err != nil {
		slog.Warn("mark invitation accepted failed", "error", err, "invitation", inv.ID)
	}

	if _, err := api.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: ts,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	respondJSON(w, http.StatusCreated, viewOf(user))
}

// generateInvitationToken creates a cryptographically random token.
func generateInvitationToken() (string, error) {
	b := make([]byte, invitationTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
