// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the L.U.M.A content server.
// It loads configuration, connects to services, hydrates the in-memory
// catalog, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luma/internal/cache"
	"luma/internal/catalog"
	"luma/internal/config"
	"luma/internal/database"
	"luma/internal/handlers"
	"luma/internal/localkv"
	"luma/internal/router"
	"luma/internal/session"
	"luma/internal/snapshot"
	"luma/internal/storage"
	"luma/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL. The row store is a best-effort mirror: the
	// server still starts when the database is unreachable, serving from
	// the local cache snapshot instead.
	var remote catalog.Remote
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Warn("database unreachable, running local-only", "error", err)
	} else {
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		remote = store.NewRemote(db)
	}

	// Open the size-bounded local cache and its snapshot writer.
	kv, err := localkv.Open(cfg.CachePath, cfg.CacheMaxValueBytes)
	if err != nil {
		slog.Error("failed to open local cache", "error", err, "path", cfg.CachePath)
		os.Exit(1)
	}
	defer kv.Close()

	policy := snapshot.DefaultPolicy()
	policy.EmergencyThresholdBytes = int(cfg.SnapshotMaxBytes)
	snap := snapshot.NewWriter(kv, policy)

	// Build the in-memory catalog and hydrate it from the row store, or
	// from the last snapshot when the row store is down.
	cat := catalog.New(remote, snap, cfg.RemoteTimeout())
	cat.Hydrate(context.Background())

	// Connect to Valkey (sessions + board cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	boardCache := cache.NewBoardCache(valkeyClient, cache.DefaultBoardTTL)

	// Account stores require the database; without it the auth endpoints
	// fail at request time rather than blocking startup.
	var userStore *store.UserStore
	var invitationStore *store.InvitationStore
	if db != nil {
		userStore = store.NewUserStore(db)
		invitationStore = store.NewInvitationStore(db)
	}

	// Connect to S3-compatible object storage (optional — media uploads
	// are disabled without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	api := handlers.New(cat, sessionStore, userStore, invitationStore, storageClient, boardCache)

	r, loginLimiter := router.New(sessionStore, api)
	defer loginLimiter.Stop()

	// WriteTimeout accommodates XML exports of large content trees and
	// media uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
