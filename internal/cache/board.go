// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// board.go provides a Valkey-backed cache for the serialized Kanban board.
// The board groups every unit by editorial state and is the most requested
// read in the app, so the JSON payload is cached briefly and invalidated on
// any unit mutation.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// boardKey is the Valkey key holding the serialized board.
	boardKey = "board:units"

	// DefaultBoardTTL bounds staleness if an invalidation is ever missed.
	DefaultBoardTTL = 30 * time.Second
)

// BoardCache manages the cached board payload in Valkey.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBoardCache creates a board cache backed by the given Valkey client.
func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	if ttl == 0 {
		ttl = DefaultBoardTTL
	}
	return &BoardCache{client: client, ttl: ttl}
}

// Get retrieves the cached board JSON. Returns false on miss.
func (bc *BoardCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := bc.client.Get(ctx, boardKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("board cache get error", "error", err)
		return nil, false
	}
	return val, true
}

// Set stores the serialized board with the configured TTL.
func (bc *BoardCache) Set(ctx context.Context, payload []byte) {
	if err := bc.client.Set(ctx, boardKey, payload, bc.ttl).Err(); err != nil {
		slog.Warn("board cache set error", "error", err)
	}
}

// Invalidate drops the cached board. Called after every unit mutation.
func (bc *BoardCache) Invalidate(ctx context.Context) {
	if err := bc.client.Del(ctx, boardKey).Err(); err != nil {
		slog.Warn("board cache invalidate error", "error", err)
	}
}
