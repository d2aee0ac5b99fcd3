// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"luma/internal/catalog"
)

// SnippetSegment splits the submitted text into sentence snippets and
// replaces the unit's snippet list wholesale. Existing snippets, along
// with their votes and comments, are discarded; clients confirm with the
// user before calling.
func (api *API) SnippetSegment(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateText(req.Text); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	snippets, err := api.catalog.SegmentText(r.Context(), unitID, req.Text)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	respondJSON(w, http.StatusOK, snippets)
}

// SnippetVote applies the session user's toggle vote on a snippet.
func (api *API) SnippetVote(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	snippetID, err := urlID(r, "snippetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid snippet ID.")
		return
	}
	var req struct {
		Up bool `json:"up"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	voter, ok := actor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	snippet, err := api.catalog.VoteSnippet(r.Context(), unitID, snippetID, voter.ID.String(), req.Up)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Snippet not found.")
		return
	}
	respondJSON(w, http.StatusOK, snippet)
}

// SnippetCommentAdd attaches a comment to a single snippet, independent of
// the unit-level comment streams.
func (api *API) SnippetCommentAdd(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	snippetID, err := urlID(r, "snippetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid snippet ID.")
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateComment(req.Content); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	author, ok := actor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	comment, err := api.catalog.CommentSnippet(r.Context(), unitID, snippetID, req.Content, author)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Snippet not found.")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// SnippetReorder resequences the unit's snippets to the submitted ID
// order. Unknown IDs are ignored; omitted snippets keep their relative
// order at the tail.
func (api *API) SnippetReorder(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	snippets, err := api.catalog.ReorderSnippets(r.Context(), unitID, req.IDs)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	respondJSON(w, http.StatusOK, snippets)
}
