// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"luma/internal/catalog"
	"luma/internal/models"
	"luma/internal/storage"
)

const (
	// maxImageSize is the maximum allowed image upload size (10 MB).
	maxImageSize = 10 << 20

	// maxVideoSize is the maximum allowed video upload size (200 MB).
	maxVideoSize = 200 << 20

	// maxSlidesSize is the maximum allowed presentation upload size (50 MB).
	maxSlidesSize = 50 << 20
)

// allowedImageTypes defines MIME types accepted for unit images.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// allowedVideoTypes defines MIME types accepted for the unit video.
var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// readUpload pulls the "file" part from a multipart request, sniffs its
// content type, and returns the bytes. The sniffed type wins over the
// client-declared one except for formats DetectContentType cannot see
// (SVG, Office files), which are recognized by extension.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (data []byte, filename, contentType string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", "", errors.New("file too large")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", errors.New("no file provided")
	}
	defer file.Close()
	if header.Size > maxSize {
		return nil, "", "", errors.New("file too large")
	}

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", errors.New("failed to read file")
	}

	contentType = http.DetectContentType(data[:min(len(data), 512)])
	lower := strings.ToLower(header.Filename)
	switch {
	case strings.HasSuffix(lower, ".svg") && (strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")):
		contentType = "image/svg+xml"
	case strings.HasSuffix(lower, ".pptx") && contentType == "application/zip":
		contentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case strings.HasSuffix(lower, ".ppt") && contentType == "application/octet-stream":
		contentType = "application/vnd.ms-powerpoint"
	}

	return data, header.Filename, contentType, nil
}

// uploadObject stores the bytes under a fresh media key and returns the
// key and public URL.
func (api *API) uploadObject(r *http.Request, kind string, unitID uuid.UUID, filename, contentType string, data []byte) (key, url string, err error) {
	key = storage.MediaKey(kind, unitID, filename)
	if err := api.storage.Upload(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", "", err
	}
	return key, api.storage.FileURL(key), nil
}

// deleteObject removes a stored object best-effort. A dangling object
// costs storage, a missing reference costs nothing.
func (api *API) deleteObject(r *http.Request, key string) {
	if key == "" {
		return
	}
	if err := api.storage.Delete(r.Context(), key); err != nil {
		slog.Warn("media object delete failed", "error", err, "key", key)
	}
}

// ---------- Images ----------

// UnitImageUpload stores an image in object storage and attaches its
// reference to the unit.
func (api *API) UnitImageUpload(w http.ResponseWriter, r *http.Request) {
	if api.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	if _, ok := api.catalog.UnitByID(unitID); !ok {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}

	data, filename, contentType, err := readUpload(w, r, maxImageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !allowedImageTypes[contentType] {
		respondError(w, http.StatusBadRequest, "File type "+contentType+" is not allowed.")
		return
	}

	key, url, err := api.uploadObject(r, "images", unitID, filename, contentType, data)
	if err != nil {
		slog.Error("image upload failed", "error", err, "unit", unitID)
		respondError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	ref := models.ImageRef{
		ID:          uuid.New(),
		Name:        filename,
		PublicURL:   url,
		StoragePath: key,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	u, err := api.catalog.AttachImage(r.Context(), unitID, ref)
	if errors.Is(err, catalog.ErrNotFound) {
		api.deleteObject(r, key)
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

// UnitImageDelete detaches an image from the unit and removes the stored
// object best-effort.
func (api *API) UnitImageDelete(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	imageID, err := urlID(r, "imageID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid image ID.")
		return
	}
	ref, err := api.catalog.RemoveImage(r.Context(), unitID, imageID)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Image not found.")
		return
	}
	if api.storage != nil {
		api.deleteObject(r, ref.StoragePath)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- Video ----------

// UnitVideoUpload replaces the unit's single video. The previous object,
// if any, is removed from storage best-effort.
func (api *API) UnitVideoUpload(w http.ResponseWriter, r *http.Request) {
	if api.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	if _, ok := api.catalog.UnitByID(unitID); !ok {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}

	data, filename, contentType, err := readUpload(w, r, maxVideoSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !allowedVideoTypes[contentType] {
		respondError(w, http.StatusBadRequest, "File type "+contentType+" is not allowed.")
		return
	}

	key, url, err := api.uploadObject(r, "videos", unitID, filename, contentType, data)
	if err != nil {
		slog.Error("video upload failed", "error", err, "unit", unitID)
		respondError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	ref := &models.VideoRef{
		ID:          uuid.New(),
		Name:        filename,
		PublicURL:   url,
		StoragePath: key,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	prev, err := api.catalog.SetVideo(r.Context(), unitID, ref)
	if errors.Is(err, catalog.ErrNotFound) {
		api.deleteObject(r, key)
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	if prev != nil {
		api.deleteObject(r, prev.StoragePath)
	}
	respondJSON(w, http.StatusCreated, ref)
}

// UnitVideoDelete clears the unit's video reference and removes the
// stored object best-effort.
func (api *API) UnitVideoDelete(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	prev, err := api.catalog.SetVideo(r.Context(), unitID, nil)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	if prev != nil && api.storage != nil {
		api.deleteObject(r, prev.StoragePath)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- Presentation ----------

// UnitPowerPointUpload replaces the unit's presentation file.
func (api *API) UnitPowerPointUpload(w http.ResponseWriter, r *http.Request) {
	if api.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	if _, ok := api.catalog.UnitByID(unitID); !ok {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}

	data, filename, contentType, err := readUpload(w, r, maxSlidesSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !strings.Contains(contentType, "powerpoint") && !strings.Contains(contentType, "presentationml") {
		respondError(w, http.StatusBadRequest, "Only PowerPoint files are allowed.")
		return
	}

	key, url, err := api.uploadObject(r, "presentations", unitID, filename, contentType, data)
	if err != nil {
		slog.Error("presentation upload failed", "error", err, "unit", unitID)
		respondError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	ref := &models.PowerPointRef{
		Name:        filename,
		PublicURL:   url,
		StoragePath: key,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	prev, err := api.catalog.SetPowerPoint(r.Context(), unitID, ref)
	if errors.Is(err, catalog.ErrNotFound) {
		api.deleteObject(r, key)
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	if prev != nil {
		api.deleteObject(r, prev.StoragePath)
	}
	respondJSON(w, http.StatusCreated, ref)
}

// UnitPowerPointDelete clears the unit's presentation reference.
func (api *API) UnitPowerPointDelete(w http.ResponseWriter, r *http.Request) {
	unitID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}
	prev, err := api.catalog.SetPowerPoint(r.Context(), unitID, nil)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Unit not found.")
		return
	}
	if prev != nil && api.storage != nil {
		api.deleteObject(r, prev.StoragePath)
	}
	w.WriteHeader(http.StatusNoContent)
}
