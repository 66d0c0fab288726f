// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var mediaTable = table[model.Media]{
	name:    "media",
	columns: `id, filename, original_name, mime_type, size, url, alt, created_at`,
	search:  []string{"original_name", "alt"},
	order:   "created_at DESC, id DESC",
	scan: func(r rowScanner) (model.Media, error) {
		var m model.Media
		err := r.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size, &m.URL, &m.Alt, &m.CreatedAt)
		return m, err
	},
}

// CreateMediaParams describes a stored upload.
type CreateMediaParams struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	URL          string
	Alt          string
}

// CreateMedia records an uploaded file.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (model.Media, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO media
		(filename, original_name, mime_type, size, url, alt, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Filename, arg.OriginalName, arg.MimeType, arg.Size, arg.URL, arg.Alt, now())
	if err != nil {
		return model.Media{}, fmt.Errorf("inserting media: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Media{}, err
	}
	return q.GetMedia(ctx, id)
}

// ListMedia returns one page of uploads.
func (q *Queries) ListMedia(ctx context.Context, lq model.ListQuery) ([]model.Media, int64, error) {
	return mediaTable.list(ctx, q.db, lq)
}

// GetMedia returns one upload.
func (q *Queries) GetMedia(ctx context.Context, id int64) (model.Media, error) {
	return mediaTable.get(ctx, q.db, id)
}

// DeleteMedia removes an upload record.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	return mediaTable.delete(ctx, q.db, id)
}
