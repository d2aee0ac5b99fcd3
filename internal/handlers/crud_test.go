package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"luma/internal/models"
)

func TestSubjectCRUD(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var created models.Subject
	rr := doJSON(t, router, http.MethodPost, "/api/subjects", map[string]string{
		"title":       "Mathematics",
		"description": "All math content",
	}, &created)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	if created.ID == uuid.Nil || created.Title != "Mathematics" {
		t.Fatalf("created = %+v", created)
	}

	var fetched models.Subject
	rr = doJSON(t, router, http.MethodGet, "/api/subjects/"+created.ID.String(), nil, &fetched)
	if rr.Code != http.StatusOK || fetched.ID != created.ID {
		t.Fatalf("get status = %d, fetched = %+v", rr.Code, fetched)
	}

	var updated models.Subject
	rr = doJSON(t, router, http.MethodPatch, "/api/subjects/"+created.ID.String(), map[string]string{
		"title": "Applied Mathematics",
	}, &updated)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d", rr.Code)
	}
	if updated.Title != "Applied Mathematics" || updated.Description != "All math content" {
		t.Errorf("patch not shallow-merged: %+v", updated)
	}

	rr = doJSON(t, router, http.MethodDelete, "/api/subjects/"+created.ID.String(), nil, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = doJSON(t, router, http.MethodGet, "/api/subjects/"+created.ID.String(), nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rr.Code)
	}
}

func TestSubjectCreateValidation(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing title", map[string]string{"description": "x"}, http.StatusUnprocessableEntity},
		{"blank title", map[string]string{"title": "   "}, http.StatusUnprocessableEntity},
		{"title too long", map[string]string{"title": strings.Repeat("x", 301)}, http.StatusUnprocessableEntity},
		{"valid", map[string]string{"title": "ok"}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/api/subjects", tt.body, nil)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

// Mutations against a stale id don't fail loudly: the update silently
// doesn't land, exactly like delete. Only reads report missing entities.
func TestUpdateMissingSubjectIsSilent(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	rr := doJSON(t, router, http.MethodPatch, "/api/subjects/"+uuid.NewString(), map[string]string{"title": "x"}, nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rr.Body.String())
	}

	var subjects []models.Subject
	doJSON(t, router, http.MethodGet, "/api/subjects", nil, &subjects)
	if len(subjects) != 0 {
		t.Errorf("subjects = %+v, want none created", subjects)
	}
}

func TestUpdateMissingEntitiesAreSilent(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	paths := []string{
		"/api/trainings/" + uuid.NewString(),
		"/api/modules/" + uuid.NewString(),
		"/api/topics/" + uuid.NewString(),
		"/api/units/" + uuid.NewString(),
	}
	for _, path := range paths {
		rr := doJSON(t, router, http.MethodPatch, path, map[string]string{"title": "x"}, nil)
		if rr.Code != http.StatusNoContent {
			t.Errorf("PATCH %s status = %d, want 204", path, rr.Code)
		}
	}
}

func TestDeleteMissingSubjectIsSilent(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	rr := doJSON(t, router, http.MethodDelete, "/api/subjects/"+uuid.NewString(), nil, nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
}

func TestTrainingListFilteredBySubject(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var subject models.Subject
	doJSON(t, router, http.MethodPost, "/api/subjects", map[string]string{"title": "Physics"}, &subject)

	doJSON(t, router, http.MethodPost, "/api/trainings", map[string]any{
		"title": "Mechanics", "subject_id": subject.ID,
	}, nil)
	doJSON(t, router, http.MethodPost, "/api/trainings", map[string]any{
		"title": "Detached",
	}, nil)

	var filtered []models.Training
	rr := doJSON(t, router, http.MethodGet, "/api/trainings?subject_id="+subject.ID.String(), nil, &filtered)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(filtered) != 1 || filtered[0].Title != "Mechanics" {
		t.Errorf("filtered = %+v", filtered)
	}

	var all []models.Training
	doJSON(t, router, http.MethodGet, "/api/trainings", nil, &all)
	if len(all) != 2 {
		t.Errorf("unfiltered = %+v", all)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/trainings?subject_id=not-a-uuid", nil, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d", rr.Code)
	}
}

func TestChildListings(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var subject models.Subject
	doJSON(t, router, http.MethodPost, "/api/subjects", map[string]string{"title": "Biology"}, &subject)
	var training models.Training
	doJSON(t, router, http.MethodPost, "/api/trainings", map[string]any{"title": "Genetics", "subject_id": subject.ID}, &training)
	var module models.TrainingModule
	doJSON(t, router, http.MethodPost, "/api/modules", map[string]any{"title": "Mendel", "training_id": training.ID}, &module)
	var topic models.Topic
	doJSON(t, router, http.MethodPost, "/api/topics", map[string]any{"title": "Punnett squares", "training_module_id": module.ID}, &topic)
	doJSON(t, router, http.MethodPost, "/api/units", map[string]any{"title": "Monohybrid cross", "topic_id": topic.ID}, nil)

	var trainings []models.Training
	rr := doJSON(t, router, http.MethodGet, "/api/subjects/"+subject.ID.String()+"/trainings", nil, &trainings)
	if rr.Code != http.StatusOK || len(trainings) != 1 {
		t.Errorf("subject trainings: status %d, %+v", rr.Code, trainings)
	}

	var modules []models.TrainingModule
	doJSON(t, router, http.MethodGet, "/api/trainings/"+training.ID.String()+"/modules", nil, &modules)
	if len(modules) != 1 || modules[0].Title != "Mendel" {
		t.Errorf("training modules = %+v", modules)
	}

	var topics []models.Topic
	doJSON(t, router, http.MethodGet, "/api/modules/"+module.ID.String()+"/topics", nil, &topics)
	if len(topics) != 1 {
		t.Errorf("module topics = %+v", topics)
	}

	var units []models.Unit
	doJSON(t, router, http.MethodGet, "/api/topics/"+topic.ID.String()+"/units", nil, &units)
	if len(units) != 1 || units[0].Title != "Monohybrid cross" {
		t.Errorf("topic units = %+v", units)
	}

	// A missing parent lists as empty, not as an error.
	var none []models.Training
	rr = doJSON(t, router, http.MethodGet, "/api/subjects/"+uuid.NewString()+"/trainings", nil, &none)
	if rr.Code != http.StatusOK || len(none) != 0 {
		t.Errorf("missing parent: status %d, %+v", rr.Code, none)
	}
}

// TestCascadeDeleteOverHTTP walks a full subject branch through the API
// and verifies every level disappears when the subject goes.
func TestCascadeDeleteOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var subject models.Subject
	doJSON(t, router, http.MethodPost, "/api/subjects", map[string]string{"title": "Chemistry"}, &subject)
	var training models.Training
	doJSON(t, router, http.MethodPost, "/api/trainings", map[string]any{"title": "Organic", "subject_id": subject.ID}, &training)
	var module models.TrainingModule
	doJSON(t, router, http.MethodPost, "/api/modules", map[string]any{"title": "Alkanes", "training_id": training.ID}, &module)
	var topic models.Topic
	doJSON(t, router, http.MethodPost, "/api/topics", map[string]any{"title": "Naming", "training_module_id": module.ID}, &topic)
	var unit models.Unit
	doJSON(t, router, http.MethodPost, "/api/units", map[string]any{"title": "IUPAC rules", "topic_id": topic.ID}, &unit)

	rr := doJSON(t, router, http.MethodDelete, "/api/subjects/"+subject.ID.String(), nil, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	for _, path := range []string{
		"/api/trainings/" + training.ID.String(),
		"/api/modules/" + module.ID.String(),
		"/api/topics/" + topic.ID.String(),
		"/api/units/" + unit.ID.String(),
	} {
		if rr := doJSON(t, router, http.MethodGet, path, nil, nil); rr.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rr.Code)
		}
	}
}

func TestIdeaLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var idea models.Idea
	rr := doJSON(t, router, http.MethodPost, "/api/ideas", map[string]string{
		"title":       "Add flashcard mode",
		"description": "Quiz view over approved snippets",
	}, &idea)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rr.Code)
	}
	if idea.Author.Name != testSession.Name {
		t.Errorf("author = %+v, want frozen session user", idea.Author)
	}

	var voted models.Idea
	doJSON(t, router, http.MethodPost, "/api/ideas/"+idea.ID.String()+"/vote", nil, &voted)
	doJSON(t, router, http.MethodPost, "/api/ideas/"+idea.ID.String()+"/vote", nil, &voted)
	if voted.Votes != 2 {
		t.Errorf("votes = %d, want 2", voted.Votes)
	}

	rr = doJSON(t, router, http.MethodDelete, "/api/ideas/"+idea.ID.String(), nil, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	var remaining []models.Idea
	doJSON(t, router, http.MethodGet, "/api/ideas", nil, &remaining)
	if len(remaining) != 0 {
		t.Errorf("remaining = %+v", remaining)
	}
}

func TestMarkdownPreview(t *testing.T) {
	api := newTestAPI(t)
	router := testRouter(api)

	var resp map[string]string
	rr := doJSON(t, router, http.MethodPost, "/api/preview/markdown", map[string]string{
		"source": "# Heading\n\n**bold**",
	}, &resp)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(resp["html"], "<h1") || !strings.Contains(resp["html"], "<strong>bold</strong>") {
		t.Errorf("html = %q", resp["html"])
	}
}
