// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"luma/internal/catalog"
	"luma/internal/models"
	"luma/internal/xmlport"
)

// maxImportBody caps XML import payloads (16 MB).
const maxImportBody = 16 << 20

// Export streams the whole content tree as an XML document.
func (api *API) Export(w http.ResponseWriter, r *http.Request) {
	doc := xmlport.Build(
		api.catalog.Subjects(),
		api.catalog.Trainings(),
		api.catalog.Modules(),
		api.catalog.Topics(),
		api.catalog.Units(),
	)
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="luma-content.xml"`)
	if err := doc.Encode(w); err != nil {
		slog.Error("content export failed", "error", err)
	}
}

// Import creates the entities described by an XML document. Entities are
// created with fresh ids; parent references inside the document are
// remapped level by level so the hierarchy survives. References to ids
// not present in the document are dropped, leaving those entities
// detached.
func (api *API) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBody)
	doc, err := xmlport.Decode(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid XML document.")
		return
	}

	ctx := r.Context()
	remap := make(map[uuid.UUID]uuid.UUID)
	lookup := func(old *uuid.UUID) *uuid.UUID {
		if old == nil {
			return nil
		}
		if fresh, ok := remap[*old]; ok {
			return &fresh
		}
		return nil
	}

	for _, s := range doc.Subjects {
		created := api.catalog.CreateSubject(ctx, catalog.SubjectInput{Title: s.Title, Description: s.Description})
		remap[s.ID] = created.ID
	}
	for _, t := range doc.Trainings {
		created := api.catalog.CreateTraining(ctx, catalog.TrainingInput{
			Title: t.Title, Description: t.Description, SubjectID: lookup(t.SubjectID),
		})
		remap[t.ID] = created.ID
	}
	for _, m := range doc.Modules {
		created := api.catalog.CreateModule(ctx, catalog.ModuleInput{
			Title: m.Title, Description: m.Description, TrainingID: lookup(m.TrainingID),
		})
		remap[m.ID] = created.ID
	}
	for _, t := range doc.Topics {
		created := api.catalog.CreateTopic(ctx, catalog.TopicInput{
			Title: t.Title, Description: t.Description, TrainingModuleID: lookup(t.ModuleID),
		})
		remap[t.ID] = created.ID
	}

	var unitCount int
	for _, xu := range doc.Units {
		created := api.catalog.CreateUnit(ctx, catalog.UnitInput{
			Title: xu.Title, Description: xu.Description, TopicID: lookup(xu.TopicID),
		})
		remap[xu.ID] = created.ID

		patch := catalog.UnitPatch{}
		if state := models.EditorialState(xu.EditorialState); state.Valid() {
			patch.EditorialState = &state
		}
		if xu.Notes != "" {
			patch.Notes = &xu.Notes
		}
		if xu.SpeechText != "" {
			patch.SpeechText = &xu.SpeechText
		}
		if xu.Explanation != "" {
			patch.Explanation = &xu.Explanation
		}
		if len(xu.LearningGoals) > 0 {
			patch.LearningGoals = &xu.LearningGoals
		}
		if len(xu.URLs) > 0 {
			patch.URLs = &xu.URLs
		}
		if len(xu.ContentTypes) > 0 {
			patch.ContentTypes = &xu.ContentTypes
		}
		if _, err := api.catalog.UpdateUnit(ctx, created.ID, patch); err != nil {
			slog.Warn("import unit patch failed", "error", err, "unit", created.ID)
		}
		for _, tag := range xu.Tags {
			if _, err := api.catalog.AddUnitTag(ctx, created.ID, tag.Label, tag.Color); err != nil {
				slog.Warn("import unit tag failed", "error", err, "unit", created.ID)
			}
		}
		unitCount++
	}

	api.invalidateBoard(r)
	respondJSON(w, http.StatusCreated, map[string]int{
		"subjects":  len(doc.Subjects),
		"trainings": len(doc.Trainings),
		"modules":   len(doc.Modules),
		"topics":    len(doc.Topics),
		"units":     unitCount,
	})
}
