package models

import "testing"

// TestEditorialStateValid verifies that only the five board states are
// accepted.
func TestEditorialStateValid(t *testing.T) {
	tests := []struct {
		name  string
		state EditorialState
		want  bool
	}{
		{name: "planning", state: StatePlanning, want: true},
		{name: "draft", state: StateDraft, want: true},
		{name: "review", state: StateReview, want: true},
		{name: "ready", state: StateReady, want: true},
		{name: "published", state: StatePublished, want: true},
		{name: "empty state", state: EditorialState(""), want: false},
		{name: "unknown state", state: EditorialState("shipped"), want: false},
		{name: "uppercase DRAFT", state: EditorialState("DRAFT"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Valid(); got != tt.want {
				t.Errorf("EditorialState(%q).Valid() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

// TestEditorialStatesBoardOrder verifies the column order the board is
// built from.
func TestEditorialStatesBoardOrder(t *testing.T) {
	want := []EditorialState{StatePlanning, StateDraft, StateReview, StateReady, StatePublished}
	if len(EditorialStates) != len(want) {
		t.Fatalf("EditorialStates = %v", EditorialStates)
	}
	for i, s := range want {
		if EditorialStates[i] != s {
			t.Errorf("EditorialStates[%d] = %q, want %q", i, EditorialStates[i], s)
		}
	}
}
