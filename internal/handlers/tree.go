// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"luma/internal/catalog"
)

// The four hierarchy levels above units share the same handler shape:
// list (optionally filtered by parent), get, create, patch, cascade delete.

// orEmpty converts a nil filter result into an empty slice so list
// endpoints always serialize as a JSON array.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// parentFilter parses an optional parent-id query parameter.
func parentFilter(r *http.Request, name string) (uuid.UUID, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, errors.New("invalid " + name)
	}
	return id, true, nil
}

// ---------- Subjects ----------

func (api *API) SubjectList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.catalog.Subjects())
}

func (api *API) SubjectGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	s, ok := api.catalog.SubjectByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Subject not found.")
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (api *API) SubjectCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.SubjectInput
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
	respondJSON(w, http.StatusCreated, api.catalog.CreateSubject(r.Context(), in))
}

func (api *API) SubjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.SubjectPatch
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
	s, err := api.catalog.UpdateSubject(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		// A stale id is not an error: the update just doesn't land,
		// same as delete.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// SubjectDelete cascades through trainings, modules, topics, and units.
// Deleting a missing subject is a silent no-op.
func (api *API) SubjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteSubject(r.Context(), id)
	api.invalidateBoard(r)
	w.WriteHeader(http.StatusNoContent)
}

// SubjectTrainings lists the direct children of a subject.
func (api *API) SubjectTrainings(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(api.catalog.TrainingsBySubject(id)))
}

// ---------- Trainings ----------

func (api *API) TrainingList(w http.ResponseWriter, r *http.Request) {
	if parent, ok, err := parentFilter(r, "subject_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		respondJSON(w, http.StatusOK, orEmpty(api.catalog.TrainingsBySubject(parent)))
		return
	}
	respondJSON(w, http.StatusOK, api.catalog.Trainings())
}

func (api *API) TrainingGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	t, ok := api.catalog.TrainingByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Training not found.")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (api *API) TrainingCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.TrainingInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	respondJSON(w, http.StatusCreated, api.catalog.CreateTraining(r.Context(), in))
}

func (api *API) TrainingUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.TrainingPatch
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
	t, err := api.catalog.UpdateTraining(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (api *API) TrainingDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteTraining(r.Context(), id)
	api.invalidateBoard(r)
	w.WriteHeader(http.StatusNoContent)
}

// TrainingModules lists the direct children of a training.
func (api *API) TrainingModules(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(api.catalog.ModulesByTraining(id)))
}

// ---------- Training modules ----------

func (api *API) ModuleList(w http.ResponseWriter, r *http.Request) {
	if parent, ok, err := parentFilter(r, "training_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		respondJSON(w, http.StatusOK, orEmpty(api.catalog.ModulesByTraining(parent)))
		return
	}
	respondJSON(w, http.StatusOK, api.catalog.Modules())
}

func (api *API) ModuleGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	m, ok := api.catalog.ModuleByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Module not found.")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (api *API) ModuleCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.ModuleInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	respondJSON(w, http.StatusCreated, api.catalog.CreateModule(r.Context(), in))
}

func (api *API) ModuleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.ModulePatch
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
	m, err := api.catalog.UpdateModule(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (api *API) ModuleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteModule(r.Context(), id)
	api.invalidateBoard(r)
	w.WriteHeader(http.StatusNoContent)
}

// ModuleTopics lists the direct children of a training module.
func (api *API) ModuleTopics(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(api.catalog.TopicsByModule(id)))
}

// ---------- Topics ----------

func (api *API) TopicList(w http.ResponseWriter, r *http.Request) {
	if parent, ok, err := parentFilter(r, "training_module_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		respondJSON(w, http.StatusOK, orEmpty(api.catalog.TopicsByModule(parent)))
		return
	}
	respondJSON(w, http.StatusOK, api.catalog.Topics())
}

func (api *API) TopicGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	t, ok := api.catalog.TopicByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Topic not found.")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (api *API) TopicCreate(w http.ResponseWriter, r *http.Request) {
	var in catalog.TopicInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	respondJSON(w, http.StatusCreated, api.catalog.CreateTopic(r.Context(), in))
}

func (api *API) TopicUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	var p catalog.TopicPatch
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
	t, err := api.catalog.UpdateTopic(r.Context(), id, p)
	if errors.Is(err, catalog.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (api *API) TopicDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	api.catalog.DeleteTopic(r.Context(), id)
	api.invalidateBoard(r)
	w.WriteHeader(http.StatusNoContent)
}

// TopicUnits lists the direct children of a topic.
func (api *API) TopicUnits(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(api.catalog.UnitsByTopic(id)))
}
