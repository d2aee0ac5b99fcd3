package xmlport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"luma/internal/models"
)

func TestRoundTrip(t *testing.T) {
	subjectID := uuid.New()
	trainingID := uuid.New()
	topicID := uuid.New()

	subjects := []models.Subject{{ID: subjectID, Title: "Mathematics", Description: "Core subject"}}
	trainings := []models.Training{
		{ID: trainingID, SubjectID: &subjectID, Title: "Algebra Basics"},
		{ID: uuid.New(), Title: "Detached Training"}, // no parent
	}
	units := []models.Unit{{
		ID:             uuid.New(),
		TopicID:        &topicID,
		Title:          "Linear Equations",
		EditorialState: models.StateDraft,
		Notes:          "solve for x",
		LearningGoals:  []string{"isolate the variable", "check the solution"},
		Tags:           []models.Tag{{ID: uuid.New(), Label: "priority", Color: "#ff0000"}},
	}}

	doc := Build(subjects, trainings, nil, nil, units)

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("missing XML header: %q", out[:40])
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got.Subjects) != 1 || got.Subjects[0].Title != "Mathematics" {
		t.Errorf("subjects = %+v", got.Subjects)
	}
	if len(got.Trainings) != 2 {
		t.Fatalf("trainings = %+v", got.Trainings)
	}
	if got.Trainings[0].SubjectID == nil || *got.Trainings[0].SubjectID != subjectID {
		t.Errorf("training parent not preserved: %+v", got.Trainings[0])
	}
	if got.Trainings[1].SubjectID != nil {
		t.Errorf("detached training gained a parent: %+v", got.Trainings[1])
	}

	if len(got.Units) != 1 {
		t.Fatalf("units = %+v", got.Units)
	}
	u := got.Units[0]
	if u.EditorialState != "draft" {
		t.Errorf("editorial state = %q", u.EditorialState)
	}
	if u.TopicID == nil || *u.TopicID != topicID {
		t.Errorf("unit topic not preserved: %+v", u)
	}
	if len(u.LearningGoals) != 2 || u.LearningGoals[0] != "isolate the variable" {
		t.Errorf("learning goals = %v", u.LearningGoals)
	}
	if len(u.Tags) != 1 || u.Tags[0].Label != "priority" || u.Tags[0].Color != "#ff0000" {
		t.Errorf("tags = %+v", u.Tags)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("not xml at all")); err == nil {
		t.Error("expected error for malformed input")
	}
}
