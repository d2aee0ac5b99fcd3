// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"luma/internal/middleware"
)

// Routes builds the /api route tree. This is the single route table: the
// production router mounts it and the handler tests exercise it, so a
// route cannot exist in one and not the other. authLimiter, when non-nil,
// wraps the public credential endpoints; the router passes the login rate
// limiter there.
func (api *API) Routes(authLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.CSRF)

	// Auth surface — accessible without a session.
	r.Group(func(r chi.Router) {
		if authLimiter != nil {
			r.Use(authLimiter)
		}
		r.Post("/auth/login", api.Login)
		r.Post("/invite/accept", api.InvitationAccept)
	})
	r.Post("/auth/logout", api.Logout)
	r.Get("/auth/me", api.Me)

	// Authenticated content API.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", api.SubjectList)
			r.Post("/", api.SubjectCreate)
			r.Get("/{id}", api.SubjectGet)
			r.Patch("/{id}", api.SubjectUpdate)
			r.Delete("/{id}", api.SubjectDelete)
			r.Get("/{id}/trainings", api.SubjectTrainings)
		})

		r.Route("/trainings", func(r chi.Router) {
			r.Get("/", api.TrainingList)
			r.Post("/", api.TrainingCreate)
			r.Get("/{id}", api.TrainingGet)
			r.Patch("/{id}", api.TrainingUpdate)
			r.Delete("/{id}", api.TrainingDelete)
			r.Get("/{id}/modules", api.TrainingModules)
		})

		r.Route("/modules", func(r chi.Router) {
			r.Get("/", api.ModuleList)
			r.Post("/", api.ModuleCreate)
			r.Get("/{id}", api.ModuleGet)
			r.Patch("/{id}", api.ModuleUpdate)
			r.Delete("/{id}", api.ModuleDelete)
			r.Get("/{id}/topics", api.ModuleTopics)
		})

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", api.TopicList)
			r.Post("/", api.TopicCreate)
			r.Get("/{id}", api.TopicGet)
			r.Patch("/{id}", api.TopicUpdate)
			r.Delete("/{id}", api.TopicDelete)
			r.Get("/{id}/units", api.TopicUnits)
		})

		r.Route("/units", func(r chi.Router) {
			r.Get("/", api.UnitList)
			r.Post("/", api.UnitCreate)
			r.Get("/{id}", api.UnitGet)
			r.Patch("/{id}", api.UnitUpdate)
			r.Delete("/{id}", api.UnitDelete)

			r.Post("/{id}/tags", api.UnitTagAdd)
			r.Put("/{id}/tags/{tagID}", api.UnitTagUpdate)
			r.Delete("/{id}/tags/{tagID}", api.UnitTagRemove)

			r.Post("/{id}/comments", api.UnitCommentAdd)

			r.Post("/{id}/snippets/segment", api.SnippetSegment)
			r.Put("/{id}/snippets/order", api.SnippetReorder)
			r.Post("/{id}/snippets/{snippetID}/vote", api.SnippetVote)
			r.Post("/{id}/snippets/{snippetID}/comments", api.SnippetCommentAdd)

			r.Post("/{id}/images", api.UnitImageUpload)
			r.Delete("/{id}/images/{imageID}", api.UnitImageDelete)
			r.Post("/{id}/video", api.UnitVideoUpload)
			r.Delete("/{id}/video", api.UnitVideoDelete)
			r.Post("/{id}/powerpoint", api.UnitPowerPointUpload)
			r.Delete("/{id}/powerpoint", api.UnitPowerPointDelete)
		})

		r.Get("/board", api.Board)

		r.Route("/ideas", func(r chi.Router) {
			r.Get("/", api.IdeaList)
			r.Post("/", api.IdeaCreate)
			r.Patch("/{id}", api.IdeaUpdate)
			r.Post("/{id}/vote", api.IdeaVote)
			r.Delete("/{id}", api.IdeaDelete)
		})

		r.Post("/preview/markdown", api.MarkdownPreview)

		r.Get("/export", api.Export)
		r.Post("/import", api.Import)

		// Workspace administration — admin only.
		r.Route("/invitations", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", api.InvitationList)
			r.Post("/", api.InvitationCreate)
			r.Delete("/{id}", api.InvitationDelete)
			r.Get("/{id}/qr", api.InvitationQR)
		})
	})

	return r
}
