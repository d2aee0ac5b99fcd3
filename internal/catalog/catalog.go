// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package catalog is the in-memory content store at the heart of L.U.M.A.
// It holds the five hierarchy collections (subjects, trainings, modules,
// topics, units) plus the idea backlog, and applies every mutation
// optimistically: the in-memory state always updates, the PostgreSQL mirror
// is written best-effort with a bounded timeout, and remote failures are
// logged and swallowed. After any mutation the relevant collections are
// re-snapshotted into the bounded local cache.
//
// Mutations are serialized by a single mutex, so no two mutations on the
// same collection ever interleave. There is no coordination across
// processes: concurrent writers race last-writer-wins at the row store.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"luma/internal/models"
	"luma/internal/snapshot"
)

// ErrNotFound marks an operation against an id that is not in the catalog.
// Callers at the orchestration layer treat it as a silent no-op, never as a
// user-facing error.
var ErrNotFound = errors.New("catalog: not found")

// DefaultRemoteTimeout bounds every mirror write so a hung row store cannot
// stall a mutation indefinitely.
const DefaultRemoteTimeout = 5 * time.Second

// Collections bundles everything the catalog holds, as loaded from or
// mirrored to the row store.
type Collections struct {
	Subjects  []models.Subject
	Trainings []models.Training
	Modules   []models.TrainingModule
	Topics    []models.Topic
	Units     []models.Unit
	Ideas     []models.Idea
}

// Remote mirrors catalog mutations to the backing row store. Every method
// is best-effort from the catalog's point of view: an error degrades the
// record to local-only, it never rolls back in-memory state.
//
// Deletes are issued for the top-level row only; the row store's own
// referential rules (ON DELETE CASCADE) remove descendant rows.
type Remote interface {
	Load(ctx context.Context) (*Collections, error)

	InsertSubject(ctx context.Context, s *models.Subject) error
	UpdateSubject(ctx context.Context, s *models.Subject) error
	DeleteSubject(ctx context.Context, id uuid.UUID) error

	InsertTraining(ctx context.Context, t *models.Training) error
	UpdateTraining(ctx context.Context, t *models.Training) error
	DeleteTraining(ctx context.Context, id uuid.UUID) error

	InsertModule(ctx context.Context, m *models.TrainingModule) error
	UpdateModule(ctx context.Context, m *models.TrainingModule) error
	DeleteModule(ctx context.Context, id uuid.UUID) error

	InsertTopic(ctx context.Context, t *models.Topic) error
	UpdateTopic(ctx context.Context, t *models.Topic) error
	DeleteTopic(ctx context.Context, id uuid.UUID) error

	InsertUnit(ctx context.Context, u *models.Unit) error
	UpdateUnit(ctx context.Context, u *models.Unit) error
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	InsertIdea(ctx context.Context, i *models.Idea) error
	UpdateIdea(ctx context.Context, i *models.Idea) error
	DeleteIdea(ctx context.Context, id uuid.UUID) error
}

// Snapshotter persists catalog state into the bounded local cache.
type Snapshotter interface {
	WriteUnits(units []models.Unit) snapshot.Tier
	WriteTree(subjects []models.Subject, trainings []models.Training, modules []models.TrainingModule, topics []models.Topic)
	ReadUnits() ([]models.Unit, bool)
	ReadTree() (subjects []models.Subject, trainings []models.Training, modules []models.TrainingModule, topics []models.Topic, ok bool)
}

// Catalog holds the collections and serializes all mutations.
type Catalog struct {
	mu sync.Mutex

	subjects  []models.Subject
	trainings []models.Training
	modules   []models.TrainingModule
	topics    []models.Topic
	units     []models.Unit
	ideas     []models.Idea

	remote        Remote      // nil = local-only mode
	snap          Snapshotter // nil = snapshotting disabled
	remoteTimeout time.Duration
}

// New creates an empty catalog. remote and snap may be nil; remoteTimeout
// <= 0 selects DefaultRemoteTimeout.
func New(remote Remote, snap Snapshotter, remoteTimeout time.Duration) *Catalog {
	if remoteTimeout <= 0 {
		remoteTimeout = DefaultRemoteTimeout
	}
	return &Catalog{
		remote:        remote,
		snap:          snap,
		remoteTimeout: remoteTimeout,
	}
}

// Hydrate fills the catalog from the row store, falling back to the local
// snapshot when the store is unreachable. The row store is the source of
// truth; the snapshot is a lossy projection good enough to keep authoring
// usable offline.
func (c *Catalog) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.remote != nil {
		loadCtx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
		defer cancel()
		cols, err := c.remote.Load(loadCtx)
		if err == nil {
			c.subjects = cols.Subjects
			c.trainings = cols.Trainings
			c.modules = cols.Modules
			c.topics = cols.Topics
			c.units = cols.Units
			c.ideas = cols.Ideas
			slog.Info("catalog hydrated from row store",
				"subjects", len(c.subjects), "units", len(c.units))
			return
		}
		slog.Warn("row store unreachable, hydrating from local snapshot", "error", err)
	}

	if c.snap == nil {
		return
	}
	if units, ok := c.snap.ReadUnits(); ok {
		c.units = units
	}
	if subjects, trainings, modules, topics, ok := c.snap.ReadTree(); ok {
		c.subjects = subjects
		c.trainings = trainings
		c.modules = modules
		c.topics = topics
	}
	slog.Info("catalog hydrated from local snapshot",
		"subjects", len(c.subjects), "units", len(c.units))
}

// mirror runs a remote write with a bounded timeout, logging and swallowing
// any failure. The mutation that called it proceeds regardless.
func (c *Catalog) mirror(ctx context.Context, op string, fn func(ctx context.Context) error) {
	if c.remote == nil {
		return
	}
	mctx, cancel := context.WithTimeout(withoutCancel(ctx), c.remoteTimeout)
	defer cancel()
	if err := fn(mctx); err != nil {
		slog.Warn("remote write degraded to local-only", "op", op, "error", err)
	}
}

// withoutCancel detaches the mirror write from the caller's cancellation so
// a client hang-up after the in-memory update does not skip the mirror,
// while the timeout still bounds it.
func withoutCancel(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

// snapshotUnits re-derives the bounded unit snapshot. Called after every
// mutation that changes the unit collection.
func (c *Catalog) snapshotUnits() {
	if c.snap != nil {
		c.snap.WriteUnits(c.units)
	}
}

// snapshotTree re-derives the snapshot of the four small collections.
func (c *Catalog) snapshotTree() {
	if c.snap != nil {
		c.snap.WriteTree(c.subjects, c.trainings, c.modules, c.topics)
	}
}

// now returns the timestamp applied to created/updated fields.
func now() time.Time {
	return time.Now().UTC()
}
