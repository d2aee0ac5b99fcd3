// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"luma/internal/markdown"
)

// MarkdownPreview renders submitted Markdown to HTML server-side so every
// client previews notes and explanations identically.
func (api *API) MarkdownPreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateText(req.Source); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	html, err := markdown.ToHTML(req.Source)
	if err != nil {
		slog.Error("markdown render failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to render preview.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"html": html})
}
