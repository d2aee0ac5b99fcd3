// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Handlers validate input,
// resolve the acting user from the session, and delegate all content
// mutations to the catalog.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"luma/internal/cache"
	"luma/internal/catalog"
	"luma/internal/middleware"
	"luma/internal/models"
	"luma/internal/session"
	"luma/internal/storage"
	"luma/internal/store"
)

// maxJSONBody caps the size of JSON request bodies (1 MB). Media uploads
// have their own, larger limits.
const maxJSONBody = 1 << 20

// API groups the HTTP handlers and their dependencies. Storage, the board
// cache, and the account stores may be nil; the affected endpoints degrade
// gracefully.
type API struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	users    *store.UserStore
	invites  *store.InvitationStore
	storage  *storage.Client
	board    *cache.BoardCache
}

// New creates the API handler group.
func New(cat *catalog.Catalog, sessions *session.Store, users *store.UserStore, invites *store.InvitationStore, storageClient *storage.Client, board *cache.BoardCache) *API {
	return &API{
		catalog:  cat,
		sessions: sessions,
		users:    users,
		invites:  invites,
		storage:  storageClient,
		board:    board,
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error envelope: {"error": "..."}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON parses the request body into dst, enforcing the body size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// urlID parses a UUID route parameter.
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("invalid id")
	}
	return id, nil
}

// actor returns the frozen author snapshot for the session user. Handlers
// behind RequireAuth can assume ok=true.
func actor(r *http.Request) (models.UserRef, bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return models.UserRef{}, false
	}
	return models.UserRef{
		ID:     sess.UserID,
		Name:   sess.Name,
		Avatar: sess.Avatar,
		Role:   sess.Role,
	}, true
}

// accountsUnavailable answers 503 when the server runs without a database
// and therefore without account stores. Content endpoints keep working in
// that mode; login and invitations cannot.
func (api *API) accountsUnavailable(w http.ResponseWriter) bool {
	if api.users == nil || api.invites == nil {
		respondError(w, http.StatusServiceUnavailable, "Account management is unavailable without a database.")
		return true
	}
	return false
}

// invalidateBoard drops the cached Kanban payload after a unit mutation.
func (api *API) invalidateBoard(r *http.Request) {
	if api.board != nil {
		api.board.Invalidate(r.Context())
	}
}
