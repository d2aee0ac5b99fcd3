// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"luma/internal/catalog"
)

// ---------- Units ----------

func (api *API) UnitList(w http.ResponseWriter, r *http.Request) {
	if parent, ok, err := parentFilter(r, "topic_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		respondJSON(w, http.StatusOK, orEmpty(api.catalog.UnitsByTopic(parent)))
		return
	}
	respondJSON(w, http.StatusOK, api.catalog.Units())
}

func (api *API) UnitGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	u, ok := api.catalog.UnitByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (api *API) UnitCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.UnitInput
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
	u := api.catalog.CreateUnit(r.Context(), in)
	api.invalidateBoard(r)
	respondJSON(w, http.StatusCreated, u)
}

func (api *API) UnitUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.UnitPatch
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
	if p.EditorialState != nil && !p.EditorialState.Valid() {
		respondError(w, http.StatusUnprocessableEntity, "Unknown editorial state.")
		return
	}
	for _, text := range []*string{p.SpeechText, p.Explanation, p.Notes} {
		if text == nil {
			continue
		}
		if msg := validateText(*text); msg != "" {
			respondError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}
	u, err := api.catalog.UpdateUnit(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	api.invalidateBoard(r)
	respondJSON(w, http.StatusOK, u)
}

func (api *API) UnitDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteUnit(r.Context(), id)
	api.invalidateBoard(r)
	w.WriteHeader(http.StatusNoContent)
}

// Board serves the Kanban view: all units grouped by editorial state,
// every column present. The serialized payload is cached in Valkey and
// invalidated on any unit mutation.
func (api *API) Board(w http.ResponseWriter, r *http.Request) {
	if api.board != nil {
		if payload, ok := api.board.Get(r.Context()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	board := api.catalog.Board()
	payload, err := json.Marshal(board)
	if err != nil {
		slog.Error("board marshal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if api.board != nil {
		api.board.Set(r.Context(), payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// ---------- Tags ----------

func (api *API) UnitTagAdd(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var req struct {
		Label string `json:"label"`
		Color string `json:"color"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTagLabel(req.Label); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	tag, err := api.catalog.AddUnitTag(r.Context(), unitID, req.Label, req.Color)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	api.invalidateBoard(r)
	respondJSON(w, http.StatusCreated, tag)
}

func (api *API) UnitTagUpdate(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	tagID, err := urlID(r, "tagID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tag ID.")
		return
	}
	var req struct {
		Label string `json:"label"`
		Color string `json:"color"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTagLabel(req.Label); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	tag, err := api.catalog.UpdateUnitTag(r.Context(), unitID, tagID, req.Label, req.Color)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	api.invalidateBoard(r)
	respondJSON(w, http.StatusOK, tag)
}

func (api *API) UnitTagRemove(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	tagID, err := urlID(r, "tagID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tag ID.")
		return
	}
	if err := api.catalog.RemoveUnitTag(r.Context(), unitID, tagID); err == nil {
		api.invalidateBoard(r)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- Comments ----------

// UnitCommentAdd appends a comment to one of the unit's three streams.
// An unknown stream name falls back to the general stream.
func (api *API) UnitCommentAdd(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var req struct {
		Stream  string `json:"stream"`
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
	comment, err := api.catalog.AddUnitComment(r.Context(), unitID, req.Stream, req.Content, author)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}
