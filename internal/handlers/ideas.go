// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"luma/internal/catalog"
)

// IdeaList returns the idea backlog, newest first.
func (api *API) IdeaList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.catalog.Ideas())
}

// IdeaCreate adds an idea to the backlog with the session user frozen as
// author.
func (api *API) IdeaCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.IdeaInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if msg := validateDescription(in.Description); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	author, ok := actor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	respondJSON(w, http.StatusCreated, api.catalog.CreateIdea(r.Context(), in, author))
}

// IdeaUpdate patches an idea's title or description.
func (api *API) IdeaUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.IdeaPatch
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if p.Title != nil {
		if msg := validateTitle(*p.Title); msg != "" {
			respondError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}
	idea, err := api.catalog.UpdateIdea(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Idea not found.")
		return
	}
	respondJSON(w, http.StatusOK, idea)
}

// IdeaVote bumps an idea's vote count.
func (api *API) IdeaVote(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	idea, err := api.catalog.VoteIdea(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Idea not found.")
		return
	}
	respondJSON(w, http.StatusOK, idea)
}

// IdeaDelete removes an idea. Missing ideas delete silently.
func (api *API) IdeaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteIdea(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
