// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP middleware chains for the L.U.M.A API.
// The /api route table itself lives on handlers.API so the same tree is
// served in production and exercised by the handler tests.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"luma/internal/handlers"
	"luma/internal/middleware"
	"luma/internal/session"
)

// loginRateLimit caps login attempts per client IP to slow down
// credential stuffing.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped on
// shutdown.
func New(sessionStore *session.Store, api *handlers.API) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
	r.Mount("/api", api.Routes(loginLimiter.Middleware))

	return r, loginLimiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
