package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"luma/internal/models"
)

// newStoredUnit builds a unit with every JSONB document populated.
func newStoredUnit(title string) *models.Unit {
	ts := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Unit{
		ID:             uuid.New(),
		Title:          title,
		Description:    "round-trip fixture",
		EditorialState: models.StateDraft,
		Notes:          "some notes",
		SpeechText:     "spoken words",
		Explanation:    "an explanation",
		LearningGoals:  []string{"goal one", "goal two"},
		URLs:           []string{"https://example.com"},
		ContentTypes:   []string{"video"},
		CustomContentTypes: []string{"quiz"},
		Images: []models.ImageRef{{
			ID:          uuid.New(),
			Name:        "diagram.png",
			PublicURL:   "https://cdn.example.com/diagram.png",
			StoragePath: "images/x/diagram.png",
			ContentType: "image/png",
			SizeBytes:   2048,
			UploadedAt:  ts,
		}},
		Video: &models.VideoRef{
			ID:        uuid.New(),
			Name:      "intro.mp4",
			PublicURL: "https://cdn.example.com/intro.mp4",
		},
		TextSnippets: []models.Snippet{{
			ID:      uuid.New(),
			Content: "First sentence",
			Order:   1,
			Rating:  models.Rating{Up: 2, UserVotes: map[string]bool{"alice": true, "bob": true}},
			Approved: true,
			Comments: []models.Comment{},
		}},
		Comments: []models.Comment{{
			ID:        uuid.New(),
			Content:   "looks good",
			Author:    models.UserRef{ID: uuid.New(), Name: "Rae"},
			Context:   "unit",
			CreatedAt: ts,
		}},
		ExplanationComments: []models.Comment{},
		SpeechTextComments:  []models.Comment{},
		Tags: []models.Tag{{
			ID: uuid.New(), Label: "priority", Color: "#ff0000", CreatedAt: ts,
		}},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestUnitJSONBRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewUnitStore(db)
	ctx := context.Background()

	u := newStoredUnit("store-test-roundtrip-unit")
	t.Cleanup(func() { cleanUnits(t, db, u.Title) })

	if err := s.Insert(ctx, u); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("unit not found after insert")
	}

	if got.Title != u.Title || got.EditorialState != models.StateDraft {
		t.Errorf("scalars = %q/%q", got.Title, got.EditorialState)
	}
	if len(got.LearningGoals) != 2 || got.LearningGoals[0] != "goal one" {
		t.Errorf("learning goals = %+v", got.LearningGoals)
	}
	if len(got.Images) != 1 || got.Images[0].StoragePath != "images/x/diagram.png" {
		t.Errorf("images = %+v", got.Images)
	}
	if got.Video == nil || got.Video.Name != "intro.mp4" {
		t.Errorf("video = %+v", got.Video)
	}
	if got.PowerPointFile != nil {
		t.Errorf("power point = %+v, want nil", got.PowerPointFile)
	}
	if len(got.TextSnippets) != 1 {
		t.Fatalf("snippets = %+v", got.TextSnippets)
	}
	sn := got.TextSnippets[0]
	if !sn.Approved || sn.Rating.Up != 2 || !sn.Rating.UserVotes["alice"] {
		t.Errorf("snippet rating = %+v approved=%v", sn.Rating, sn.Approved)
	}
	if len(got.Comments) != 1 || got.Comments[0].Author.Name != "Rae" {
		t.Errorf("comments = %+v", got.Comments)
	}
	if got.ExplanationComments == nil || got.SpeechTextComments == nil {
		t.Error("empty comment streams decoded as nil")
	}
	if len(got.Tags) != 1 || got.Tags[0].Label != "priority" {
		t.Errorf("tags = %+v", got.Tags)
	}
}

func TestUnitUpdateRewritesDocuments(t *testing.T) {
	db := testDB(t)
	s := NewUnitStore(db)
	ctx := context.Background()

	u := newStoredUnit("store-test-update-unit")
	t.Cleanup(func() { cleanUnits(t, db, u.Title) })

	if err := s.Insert(ctx, u); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	u.EditorialState = models.StateReview
	u.TextSnippets = []models.Snippet{}
	u.Video = nil
	u.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := s.Update(ctx, u); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.EditorialState != models.StateReview {
		t.Errorf("state = %q, want review", got.EditorialState)
	}
	if len(got.TextSnippets) != 0 {
		t.Errorf("snippets not cleared: %+v", got.TextSnippets)
	}
	if got.Video != nil {
		t.Errorf("video not cleared: %+v", got.Video)
	}
}

func TestUnitFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	s := NewUnitStore(db)

	got, err := s.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
