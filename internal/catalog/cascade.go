// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// cascade.go implements the cascade mutation engine: deleting a hierarchy
// node removes every transitive descendant across all five collections.
//
// The full descendant set is computed from the CURRENT collections before
// any removal. Computing level N+1 after level N has already been filtered
// would silently yield an empty set and leave orphans behind.
//
// Only the top-level row is deleted remotely; the row store's ON DELETE
// CASCADE rules remove the descendant rows. The in-memory cascade always
// completes regardless of the remote outcome.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"luma/internal/models"
)

type idSet map[uuid.UUID]struct{}

func (s idSet) has(id *uuid.UUID) bool {
	if id == nil {
		return false
	}
	_, ok := s[*id]
	return ok
}

// DeleteSubject removes a subject and every descendant training, module,
// topic, and unit. A missing id is a silent no-op.
func (c *Catalog) DeleteSubject(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexSubject(c.subjects, id) < 0 {
		return
	}

	trainingIDs := idSet{}
	for _, t := range c.trainings {
		if t.SubjectID != nil && *t.SubjectID == id {
			trainingIDs[t.ID] = struct{}{}
		}
	}
	moduleIDs, topicIDs, unitIDs := c.descendantsOfTrainings(trainingIDs)

	c.subjects = filterSubjects(c.subjects, idSet{id: {}})
	c.applyCascade(trainingIDs, moduleIDs, topicIDs, unitIDs)

	c.mirror(ctx, "delete subject", func(ctx context.Context) error {
		return c.remote.DeleteSubject(ctx, id)
	})
	c.snapshotTree()
	c.snapshotUnits()
}

// DeleteTraining removes a training and every descendant module, topic,
// and unit.
func (c *Catalog) DeleteTraining(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexTraining(c.trainings, id) < 0 {
		return
	}

	trainingIDs := idSet{id: {}}
	moduleIDs, topicIDs, unitIDs := c.descendantsOfTrainings(trainingIDs)
	c.applyCascade(trainingIDs, moduleIDs, topicIDs, unitIDs)

	c.mirror(ctx, "delete training", func(ctx context.Context) error {
		return c.remote.DeleteTraining(ctx, id)
	})
	c.snapshotTree()
	c.snapshotUnits()
}

// DeleteModule removes a training module and every descendant topic and unit.
func (c *Catalog) DeleteModule(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexModule(c.modules, id) < 0 {
		return
	}

	moduleIDs := idSet{id: {}}
	topicIDs, unitIDs := c.descendantsOfModules(moduleIDs)
	c.applyCascade(nil, moduleIDs, topicIDs, unitIDs)

	c.mirror(ctx, "delete module", func(ctx context.Context) error {
		return c.remote.DeleteModule(ctx, id)
	})
	c.snapshotTree()
	c.snapshotUnits()
}

// DeleteTopic removes a topic and its units.
func (c *Catalog) DeleteTopic(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexTopic(c.topics, id) < 0 {
		return
	}

	topicIDs := idSet{id: {}}
	unitIDs := c.unitsOfTopics(topicIDs)
	c.applyCascade(nil, nil, topicIDs, unitIDs)

	c.mirror(ctx, "delete topic", func(ctx context.Context) error {
		return c.remote.DeleteTopic(ctx, id)
	})
	c.snapshotTree()
	c.snapshotUnits()
}

// DeleteUnit removes a single unit. Units are leaves; there is no cascade.
func (c *Catalog) DeleteUnit(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexUnit(c.units, id) < 0 {
		return
	}
	c.units = filterUnits(c.units, idSet{id: {}})

	c.mirror(ctx, "delete unit", func(ctx context.Context) error {
		return c.remote.DeleteUnit(ctx, id)
	})
	c.snapshotUnits()
}

// descendantsOfTrainings walks modules → topics → units under the given
// training ids, reading only pre-mutation state.
func (c *Catalog) descendantsOfTrainings(trainingIDs idSet) (moduleIDs, topicIDs, unitIDs idSet) {
	moduleIDs = idSet{}
	for _, m := range c.modules {
		if trainingIDs.has(m.TrainingID) {
			moduleIDs[m.ID] = struct{}{}
		}
	}
	topicIDs, unitIDs = c.descendantsOfModules(moduleIDs)
	return moduleIDs, topicIDs, unitIDs
}

func (c *Catalog) descendantsOfModules(moduleIDs idSet) (topicIDs, unitIDs idSet) {
	topicIDs = idSet{}
	for _, t := range c.topics {
		if moduleIDs.has(t.TrainingModuleID) {
			topicIDs[t.ID] = struct{}{}
		}
	}
	return topicIDs, c.unitsOfTopics(topicIDs)
}

func (c *Catalog) unitsOfTopics(topicIDs idSet) idSet {
	unitIDs := idSet{}
	for _, u := range c.units {
		if topicIDs.has(u.TopicID) {
			unitIDs[u.ID] = struct{}{}
		}
	}
	return unitIDs
}

// applyCascade removes the computed descendant sets from every collection.
// Nil sets mean "nothing at this level".
func (c *Catalog) applyCascade(trainingIDs, moduleIDs, topicIDs, unitIDs idSet) {
	if len(trainingIDs) > 0 {
		c.trainings = filterTrainings(c.trainings, trainingIDs)
	}
	if len(moduleIDs) > 0 {
		c.modules = filterModules(c.modules, moduleIDs)
	}
	if len(topicIDs) > 0 {
		c.topics = filterTopics(c.topics, topicIDs)
	}
	if len(unitIDs) > 0 {
		c.units = filterUnits(c.units, unitIDs)
	}
}

func filterSubjects(in []models.Subject, drop idSet) []models.Subject {
	out := in[:0:0]
	for _, s := range in {
		if _, ok := drop[s.ID]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func filterTrainings(in []models.Training, drop idSet) []models.Training {
	out := in[:0:0]
	for _, t := range in {
		if _, ok := drop[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func filterModules(in []models.TrainingModule, drop idSet) []models.TrainingModule {
	out := in[:0:0]
	for _, m := range in {
		if _, ok := drop[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

func filterTopics(in []models.Topic, drop idSet) []models.Topic {
	out := in[:0:0]
	for _, t := range in {
		if _, ok := drop[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func filterUnits(in []models.Unit, drop idSet) []models.Unit {
	out := in[:0:0]
	for _, u := range in {
		if _, ok := drop[u.ID]; !ok {
			out = append(out, u)
		}
	}
	return out
}
