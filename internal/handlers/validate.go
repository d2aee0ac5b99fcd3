// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content fields.
const (
	maxTitleLen    = 300
	maxDescLen     = 10_000
	maxTextLen     = 200_000
	maxCommentLen  = 10_000
	maxTagLabelLen = 100
)

// validateTitle checks a required title field and returns the first error found.
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateDescription checks an optional description field.
func validateDescription(desc string) string {
	if utf8.RuneCountInString(desc) > maxDescLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}

// validateComment checks a required comment body.
func validateComment(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Comment content is required."
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "Comment is too long (max 10,000 characters)."
	}
	return ""
}

// validateTagLabel checks a required tag label.
func validateTagLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "Tag label is required."
	}
	if utf8.RuneCountInString(label) > maxTagLabelLen {
		return "Tag label is too long (max 100 characters)."
	}
	return ""
}

// validateText checks a long-form authoring text (speech text, explanation).
func validateText(text string) string {
	if utf8.RuneCountInString(text) > maxTextLen {
		return "Text is too long (max 200,000 characters)."
	}
	return ""
}
