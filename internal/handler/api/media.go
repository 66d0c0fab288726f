// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/store"
)

// allowedMedia maps sniffed content types to stored file extensions.
var allowedMedia = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadMedia handles POST /media (multipart field "file", optional "alt").
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		WriteError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	mime := http.DetectContentType(head[:n])
	ext, ok := allowedMedia[mime]
	if !ok {
		WriteValidationError(w, map[string]string{"file": "only JPEG, PNG, GIF and WebP images are allowed"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.internalError(w, r, "Failed to store upload", err)
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		h.internalError(w, r, "Failed to store upload", err)
		return
	}
	name := uuid.NewString() + ext
	path := filepath.Join(h.uploadsDir, name)
	size, err := writeFile(path, file)
	if err != nil {
		h.internalError(w, r, "Failed to store upload", err)
		return
	}

	m, err := h.queries.CreateMedia(r.Context(), store.CreateMediaParams{
		Filename:     name,
		OriginalName: truncate(filepath.Base(header.Filename), 255),
		MimeType:     mime,
		Size:         size,
		URL:          h.uploadsURL + "/" + name,
		Alt:          truncate(strings.TrimSpace(r.FormValue("alt")), 255),
	})
	if err != nil {
		_ = os.Remove(path)
		h.internalError(w, r, "Failed to store upload", err)
		return
	}
	h.logger.InfoContext(r.Context(), "media uploaded", "media_id", m.ID, "size", size, "mime", mime)
	WriteCreated(w, "File uploaded successfully", m)
}

func writeFile(path string, src io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}

// ListMedia handles GET /media.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	lq := model.ParseListQuery(r.URL.Query())
	items, total, err := h.queries.ListMedia(r.Context(), lq)
	if err != nil {
		h.internalError(w, r, "Failed to fetch media", err)
		return
	}
	WriteList(w, "Media retrieved successfully", items, lq, total)
}

// DeleteMedia handles DELETE /media/{id}. The file is removed after the row.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Media")
	if !ok {
		return
	}
	m, err := h.queries.GetMedia(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Media not found", "Failed to delete media")
		return
	}
	if err := h.queries.DeleteMedia(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Media not found", "Failed to delete media")
		return
	}
	if err := os.Remove(filepath.Join(h.uploadsDir, filepath.Base(m.Filename))); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.WarnContext(r.Context(), "failed to remove media file", "error", err, "media_id", id)
	}
	WriteMessage(w, "Media deleted successfully")
}
