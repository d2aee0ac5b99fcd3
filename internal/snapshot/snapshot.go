// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package snapshot derives a bounded-size local snapshot of the in-memory
// catalog, sized to fit the capacity-limited local key-value cache. The unit
// collection — the largest and richest — goes through a three-tier lossy
// projection: a reduced per-unit shape, then an emergency minimal shape when
// the serialized payload exceeds the budget, then a last-resort stub list
// when even that write fails. A snapshot write never propagates an error;
// the cache is a fallback read path and must not break a mutation.
package snapshot

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"luma/internal/models"
)

// Cache keys. Units are the only projected collection; the four small
// hierarchy collections are stored verbatim.
const (
	KeyUnits     = "snapshot:units"
	KeySubjects  = "snapshot:subjects"
	KeyTrainings = "snapshot:trainings"
	KeyModules   = "snapshot:modules"
	KeyTopics    = "snapshot:topics"
)

// PlaceholderLargeText replaces speech text and explanations in snapshots.
// Those fields are remote-only; the placeholder tells a degraded client the
// content exists but was not cached.
const PlaceholderLargeText = "[stored remotely]"

// Tier identifies which degradation level a snapshot write landed on.
type Tier int

const (
	// TierNone means every tier failed and nothing usable was written.
	TierNone Tier = iota
	// TierFull is the normal reduced projection.
	TierFull
	// TierEmergency is the minimal per-unit shape used when the full
	// projection exceeds the size threshold.
	TierEmergency
	// TierLastResort is the cleared-key stub list written when even the
	// emergency payload cannot be stored.
	TierLastResort
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierEmergency:
		return "emergency"
	case TierLastResort:
		return "last-resort"
	default:
		return "none"
	}
}

// KV is the slice of the local cache the serializer needs.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, val []byte) error
	Delete(key string) error
}

// Policy holds the projection caps. The values are empirically chosen
// operating constants, kept configurable; the three-tier strategy itself is
// the contract.
type Policy struct {
	DescriptionMax    int
	NotesMax          int
	LearningGoalsMax  int
	URLsMax           int
	ImagesMax         int
	SnippetsMax       int
	SnippetContentMax int
	// EmergencyThresholdBytes is the serialized-size trigger for the
	// emergency tier.
	EmergencyThresholdBytes int
	// LastResortUnits is how many unit stubs the last-resort tier keeps.
	LastResortUnits int
}

// DefaultPolicy returns the standard caps.
func DefaultPolicy() Policy {
	return Policy{
		DescriptionMax:          500,
		NotesMax:                1000,
		LearningGoalsMax:        5,
		URLsMax:                 10,
		ImagesMax:               10,
		SnippetsMax:             10,
		SnippetContentMax:       100,
		EmergencyThresholdBytes: 8 << 20,
		LastResortUnits:         10,
	}
}

// Writer serializes catalog state into the local cache.
type Writer struct {
	kv     KV
	policy Policy
}

// NewWriter creates a snapshot writer over the given cache.
func NewWriter(kv KV, policy Policy) *Writer {
	if policy.EmergencyThresholdBytes <= 0 {
		policy = DefaultPolicy()
	}
	return &Writer{kv: kv, policy: policy}
}

// Policy returns the writer's projection caps.
func (w *Writer) Policy() Policy { return w.policy }

// mediaRef is the stripped image/video shape kept in full-tier snapshots:
// no inline binary, no size/type/path.
type mediaRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PublicURL  string    `json:"public_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// snippetRef is the stripped snippet shape: rating, comments and image
// reference are dropped, content is truncated.
type snippetRef struct {
	ID       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	Order    int       `json:"order"`
	Approved bool      `json:"approved"`
}

type pptRef struct {
	Name string `json:"name"`
}

// unitFull is the tier-1 reduced projection of a unit. Field tags match the
// models.Unit wire names so a restored snapshot decodes straight back into
// the model with the uncached fields zeroed.
type unitFull struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	TopicID        *uuid.UUID            `json:"topic_id,omitempty"`
	EditorialState models.EditorialState `json:"editorial_state"`
	TargetDate     *time.Time            `json:"target_date,omitempty"`

	Notes       string `json:"notes"`
	SpeechText  string `json:"speech_text"`
	Explanation string `json:"explanation"`

	LearningGoals      []string `json:"learning_goals"`
	URLs               []string `json:"urls"`
	ContentTypes       []string `json:"content_types"`
	CustomContentTypes []string `json:"custom_content_types"`

	Images         []mediaRef `json:"images"`
	Video          *mediaRef  `json:"video,omitempty"`
	PowerPointFile *pptRef    `json:"power_point_file,omitempty"`

	TextSnippets []snippetRef `json:"text_snippets"`

	Comments            []models.Comment `json:"comments"`
	ExplanationComments []models.Comment `json:"explanation_comments"`
	SpeechTextComments  []models.Comment `json:"speech_text_comments"`

	Tags []models.Tag `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// unitMin is the tier-2 emergency shape.
type unitMin struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	EditorialState models.EditorialState `json:"editorial_state"`
	TopicID        *uuid.UUID            `json:"topic_id,omitempty"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// unitStub is the tier-3 last-resort shape.
type unitStub struct {
	ID      uuid.UUID  `json:"id"`
	Title   string     `json:"title"`
	TopicID *uuid.UUID `json:"topic_id,omitempty"`
}

// WriteUnits persists the unit collection through the tier cascade and
// reports which tier was written. Errors at one tier fall through to the
// next; they are logged, never returned.
func (w *Writer) WriteUnits(units []models.Unit) Tier {
	payload, err := json.Marshal(w.projectAll(units))
	switch {
	case err != nil:
		slog.Warn("snapshot full-tier marshal failed", "error", err)
	case len(payload) > w.policy.EmergencyThresholdBytes:
		slog.Warn("snapshot exceeds size budget, degrading",
			"bytes", len(payload), "budget", w.policy.EmergencyThresholdBytes)
	default:
		if err := w.kv.Set(KeyUnits, payload); err != nil {
			slog.Warn("snapshot full-tier write failed", "error", err)
		} else {
			return TierFull
		}
	}
	return w.writeEmergency(units)
}

func (w *Writer) writeEmergency(units []models.Unit) Tier {
	mins := make([]unitMin, len(units))
	for i, u := range units {
		mins[i] = unitMin{
			ID:             u.ID,
			Title:          u.Title,
			EditorialState: u.EditorialState,
			TopicID:        u.TopicID,
			UpdatedAt:      u.UpdatedAt,
		}
	}
	payload, err := json.Marshal(mins)
	if err == nil {
		if err = w.kv.Set(KeyUnits, payload); err == nil {
			slog.Info("snapshot written at emergency tier", "units", len(units))
			return TierEmergency
		}
	}
	slog.Warn("snapshot emergency-tier write failed", "error", err)
	return w.writeLastResort(units)
}

func (w *Writer) writeLastResort(units []models.Unit) Tier {
	// Clear whatever is under the key before attempting the stub write; a
	// corrupted or oversized previous value must not survive.
	if err := w.kv.Delete(KeyUnits); err != nil {
		slog.Warn("snapshot key clear failed", "error", err)
	}

	n := w.policy.LastResortUnits
	if n > len(units) {
		n = len(units)
	}
	stubs := make([]unitStub, n)
	for i := 0; i < n; i++ {
		stubs[i] = unitStub{ID: units[i].ID, Title: units[i].Title, TopicID: units[i].TopicID}
	}
	payload, err := json.Marshal(stubs)
	if err == nil {
		if err = w.kv.Set(KeyUnits, payload); err == nil {
			slog.Warn("snapshot written at last-resort tier", "units", n)
			return TierLastResort
		}
	}
	slog.Error("snapshot unwritable at every tier", "error", err)
	return TierNone
}

// projectAll applies the tier-1 projection to every unit.
func (w *Writer) projectAll(units []models.Unit) []unitFull {
	out := make([]unitFull, len(units))
	for i := range units {
		out[i] = w.project(&units[i])
	}
	return out
}

func (w *Writer) project(u *models.Unit) unitFull {
	p := w.policy
	f := unitFull{
		ID:             u.ID,
		Title:          u.Title,
		Description:    truncate(u.Description, p.DescriptionMax),
		TopicID:        u.TopicID,
		EditorialState: u.EditorialState,
		TargetDate:     u.TargetDate,
		Notes:          truncate(u.Notes, p.NotesMax),

		LearningGoals:      capStrings(u.LearningGoals, p.LearningGoalsMax),
		URLs:               capStrings(u.URLs, p.URLsMax),
		ContentTypes:       u.ContentTypes,
		CustomContentTypes: u.CustomContentTypes,

		// Comment streams are always emptied: they are cheap to refetch
		// and can be arbitrarily large.
		Comments:            []models.Comment{},
		ExplanationComments: []models.Comment{},
		SpeechTextComments:  []models.Comment{},

		Tags: u.Tags,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	// Large text bodies never enter the cache, only a sentinel.
	if u.SpeechText != "" {
		f.SpeechText = PlaceholderLargeText
	}
	if u.Explanation != "" {
		f.Explanation = PlaceholderLargeText
	}

	nImages := len(u.Images)
	if nImages > p.ImagesMax {
		nImages = p.ImagesMax
	}
	f.Images = make([]mediaRef, nImages)
	for i := 0; i < nImages; i++ {
		img := u.Images[i]
		f.Images[i] = mediaRef{ID: img.ID, Name: img.Name, PublicURL: img.PublicURL, UploadedAt: img.UploadedAt}
	}

	if u.Video != nil {
		f.Video = &mediaRef{ID: u.Video.ID, Name: u.Video.Name, PublicURL: u.Video.PublicURL, UploadedAt: u.Video.UploadedAt}
	}
	if u.PowerPointFile != nil {
		f.PowerPointFile = &pptRef{Name: u.PowerPointFile.Name}
	}

	nSnips := len(u.TextSnippets)
	if nSnips > p.SnippetsMax {
		nSnips = p.SnippetsMax
	}
	f.TextSnippets = make([]snippetRef, nSnips)
	for i := 0; i < nSnips; i++ {
		s := u.TextSnippets[i]
		f.TextSnippets[i] = snippetRef{
			ID:       s.ID,
			Content:  truncate(s.Content, p.SnippetContentMax),
			Order:    s.Order,
			Approved: s.Approved,
		}
	}

	return f
}

// WriteTree persists the four small hierarchy collections verbatim. They
// are orders of magnitude smaller than units; a write failure is logged and
// the keys are left stale.
func (w *Writer) WriteTree(subjects []models.Subject, trainings []models.Training, modules []models.TrainingModule, topics []models.Topic) {
	w.writePlain(KeySubjects, subjects)
	w.writePlain(KeyTrainings, trainings)
	w.writePlain(KeyModules, modules)
	w.writePlain(KeyTopics, topics)
}

func (w *Writer) writePlain(key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("snapshot marshal failed", "key", key, "error", err)
		return
	}
	if err := w.kv.Set(key, payload); err != nil {
		slog.Warn("snapshot write failed", "key", key, "error", err)
	}
}

// ReadUnits restores the cached unit collection. Whatever tier was last
// written decodes into models.Unit with the uncached fields zeroed.
func (w *Writer) ReadUnits() ([]models.Unit, bool) {
	payload, ok, err := w.kv.Get(KeyUnits)
	if err != nil {
		slog.Warn("snapshot read failed", "key", KeyUnits, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var units []models.Unit
	if err := json.Unmarshal(payload, &units); err != nil {
		slog.Warn("snapshot decode failed", "key", KeyUnits, "error", err)
		return nil, false
	}
	return units, true
}

// ReadTree restores the four small collections. Missing or undecodable keys
// come back as empty slices; ok is false only if none of the keys exist.
func (w *Writer) ReadTree() (subjects []models.Subject, trainings []models.Training, modules []models.TrainingModule, topics []models.Topic, ok bool) {
	ok = readPlain(w.kv, KeySubjects, &subjects) || ok
	ok = readPlain(w.kv, KeyTrainings, &trainings) || ok
	ok = readPlain(w.kv, KeyModules, &modules) || ok
	ok = readPlain(w.kv, KeyTopics, &topics) || ok
	return subjects, trainings, modules, topics, ok
}

func readPlain(kv KV, key string, v any) bool {
	payload, ok, err := kv.Get(key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		slog.Warn("snapshot decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// capStrings returns at most max entries of s, never nil.
func capStrings(s []string, max int) []string {
	if s == nil {
		return []string{}
	}
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
