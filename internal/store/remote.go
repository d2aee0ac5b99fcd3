// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"luma/internal/catalog"
	"luma/internal/models"
)

// Remote adapts the row stores to the catalog's mirror interface. Every
// method maps one-to-one onto a store call; the catalog decides what is
// best-effort and what is fatal.
type Remote struct {
	subjects    *SubjectStore
	trainings   *TrainingStore
	modules     *ModuleStore
	topics      *TopicStore
	units       *UnitStore
	ideas       *IdeaStore
}

// NewRemote bundles per-table stores into the catalog's remote mirror.
func NewRemote(db *sql.DB) *Remote {
	return &Remote{
		subjects:  NewSubjectStore(db),
		trainings: NewTrainingStore(db),
		modules:   NewModuleStore(db),
		topics:    NewTopicStore(db),
		units:     NewUnitStore(db),
		ideas:     NewIdeaStore(db),
	}
}

// Load reads all six collections for catalog hydration.
func (r *Remote) Load(ctx context.Context) (*catalog.Collections, error) {
	cols := &catalog.Collections{}
	var err error

	if cols.Subjects, err = r.subjects.List(ctx); err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	if cols.Trainings, err = r.trainings.List(ctx); err != nil {
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	if cols.Modules, err = r.modules.List(ctx); err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	if cols.Topics, err = r.topics.List(ctx); err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	if cols.Units, err = r.units.List(ctx); err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	if cols.Ideas, err = r.ideas.List(ctx); err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}
	return cols, nil
}

func (r *Remote) InsertSubject(ctx context.Context, s *models.Subject) error {
	return r.subjects.Insert(ctx, s)
}

func (r *Remote) UpdateSubject(ctx context.Context, s *models.Subject) error {
	return r.subjects.Update(ctx, s)
}

func (r *Remote) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return r.subjects.Delete(ctx, id)
}

func (r *Remote) InsertTraining(ctx context.Context, t *models.Training) error {
	return r.trainings.Insert(ctx, t)
}

func (r *Remote) UpdateTraining(ctx context.Context, t *models.Training) error {
	return r.trainings.Update(ctx, t)
}

func (r *Remote) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	return r.trainings.Delete(ctx, id)
}

func (r *Remote) InsertModule(ctx context.Context, m *models.TrainingModule) error {
	return r.modules.Insert(ctx, m)
}

func (r *Remote) UpdateModule(ctx context.Context, m *models.TrainingModule) error {
	return r.modules.Update(ctx, m)
}

func (r *Remote) DeleteModule(ctx context.Context, id uuid.UUID) error {
	return r.modules.Delete(ctx, id)
}

func (r *Remote) InsertTopic(ctx context.Context, t *models.Topic) error {
	return r.topics.Insert(ctx, t)
}

func (r *Remote) UpdateTopic(ctx context.Context, t *models.Topic) error {
	return r.topics.Update(ctx, t)
}

func (r *Remote) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	return r.topics.Delete(ctx, id)
}

func (r *Remote) InsertUnit(ctx context.Context, u *models.Unit) error {
	return r.units.Insert(ctx, u)
}

func (r *Remote) UpdateUnit(ctx context.Context, u *models.Unit) error {
	return r.units.Update(ctx, u)
}

func (r *Remote) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return r.units.Delete(ctx, id)
}

func (r *Remote) InsertIdea(ctx context.Context, i *models.Idea) error {
	return r.ideas.Insert(ctx, i)
}

func (r *Remote) UpdateIdea(ctx context.Context, i *models.Idea) error {
	return r.ideas.Update(ctx, i)
}

func (r *Remote) DeleteIdea(ctx context.Context, id uuid.UUID) error {
	return r.ideas.Delete(ctx, id)
}

// compile-time interface check
var _ catalog.Remote = (*Remote)(nil)
