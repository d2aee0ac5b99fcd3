// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"luma/internal/middleware"
	"luma/internal/models"
	"luma/internal/session"
)

// userView is the serialized shape of an account returned by auth endpoints.
// The password hash never leaves the store layer.
type userView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Role   string    `json:"role"`
}

func viewOf(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Role: u.Role}
}

// Login authenticates by email and password and creates a session.
func (api *API) Login(w http.ResponseWriter, r *http.Request) {
	if api.accountsUnavailable(w) {
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := api.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	_, err = api.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(user))
}

// Logout destroys the session. Always succeeds, cookie or not.
func (api *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := api.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the account behind the current session.
func (api *API) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	respondJSON(w, http.StatusOK, userView{
		ID:     sess.UserID,
		Name:   sess.Name,
		Email:  sess.Email,
		Avatar: sess.Avatar,
		Role:   sess.Role,
	})
}
