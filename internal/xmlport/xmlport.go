// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package xmlport serializes the content tree to an XML interchange
// document and back. The document carries the authoring hierarchy
// (subjects through units with their writable fields and tags); review
// artifacts like votes and comments stay out of the exchange format.
package xmlport

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"luma/internal/models"
)

// Document is the root of the interchange format. Sections are flat;
// parent links are carried as id references so detached branches survive
// a round trip.
type Document struct {
	XMLName    xml.Name   `xml:"content"`
	ExportedAt time.Time  `xml:"exported_at,attr"`
	Subjects   []Subject  `xml:"subjects>subject"`
	Trainings  []Training `xml:"trainings>training"`
	Modules    []Module   `xml:"modules>module"`
	Topics     []Topic    `xml:"topics>topic"`
	Units      []Unit     `xml:"units>unit"`
}

type Subject struct {
	ID          uuid.UUID `xml:"id,attr"`
	Title       string    `xml:"title"`
	Description string    `xml:"description,omitempty"`
}

type Training struct {
	ID          uuid.UUID  `xml:"id,attr"`
	SubjectID   *uuid.UUID `xml:"subject_id,attr,omitempty"`
	Title       string     `xml:"title"`
	Description string     `xml:"description,omitempty"`
}

type Module struct {
	ID          uuid.UUID  `xml:"id,attr"`
	TrainingID  *uuid.UUID `xml:"training_id,attr,omitempty"`
	Title       string     `xml:"title"`
	Description string     `xml:"description,omitempty"`
}

type Topic struct {
	ID          uuid.UUID  `xml:"id,attr"`
	ModuleID    *uuid.UUID `xml:"training_module_id,attr,omitempty"`
	Title       string     `xml:"title"`
	Description string     `xml:"description,omitempty"`
}

type Unit struct {
	ID             uuid.UUID  `xml:"id,attr"`
	TopicID        *uuid.UUID `xml:"topic_id,attr,omitempty"`
	EditorialState string     `xml:"editorial_state,attr"`
	Title          string     `xml:"title"`
	Description    string     `xml:"description,omitempty"`
	Notes          string     `xml:"notes,omitempty"`
	SpeechText     string     `xml:"speech_text,omitempty"`
	Explanation    string     `xml:"explanation,omitempty"`
	LearningGoals  []string   `xml:"learning_goals>goal"`
	URLs           []string   `xml:"urls>url"`
	ContentTypes   []string   `xml:"content_types>type"`
	Tags           []Tag      `xml:"tags>tag"`
}

type Tag struct {
	Label string `xml:"label,attr"`
	Color string `xml:"color,attr,omitempty"`
}

// Build assembles an interchange document from the in-memory collections.
func Build(subjects []models.Subject, trainings []models.Training, modules []models.TrainingModule, topics []models.Topic, units []models.Unit) *Document {
	doc := &Document{ExportedAt: time.Now().UTC()}
	for _, s := range subjects {
		doc.Subjects = append(doc.Subjects, Subject{ID: s.ID, Title: s.Title, Description: s.Description})
	}
	for _, t := range trainings {
		doc.Trainings = append(doc.Trainings, Training{ID: t.ID, SubjectID: t.SubjectID, Title: t.Title, Description: t.Description})
	}
	for _, m := range modules {
		doc.Modules = append(doc.Modules, Module{ID: m.ID, TrainingID: m.TrainingID, Title: m.Title, Description: m.Description})
	}
	for _, t := range topics {
		doc.Topics = append(doc.Topics, Topic{ID: t.ID, ModuleID: t.TrainingModuleID, Title: t.Title, Description: t.Description})
	}
	for _, u := range units {
		xu := Unit{
			ID:             u.ID,
			TopicID:        u.TopicID,
			EditorialState: string(u.EditorialState),
			Title:          u.Title,
			Description:    u.Description,
			Notes:          u.Notes,
			SpeechText:     u.SpeechText,
			Explanation:    u.Explanation,
			LearningGoals:  u.LearningGoals,
			URLs:           u.URLs,
			ContentTypes:   u.ContentTypes,
		}
		for _, tag := range u.Tags {
			xu.Tags = append(xu.Tags, Tag{Label: tag.Label, Color: tag.Color})
		}
		doc.Units = append(doc.Units, xu)
	}
	return doc
}

// Encode writes the document as indented XML with a standard header.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode content document: %w", err)
	}
	return enc.Close()
}

// Decode parses an interchange document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content document: %w", err)
	}
	return &doc, nil
}
