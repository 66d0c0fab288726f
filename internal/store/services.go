// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var servicesTable = table[model.Service]{
	name: "services",
	columns: `id, title, slug, description, content, icon, image, features, price, status,
		featured, sort_order, meta_title, meta_description, created_at, updated_at`,
	search:       []string{"title", "description", "content"},
	publicStatus: model.StatusActive,
	featured:     true,
	order:        "sort_order ASC, created_at DESC",
	sorts: map[string]string{
		"newest": "created_at DESC",
		"oldest": "created_at ASC",
		"title":  "title COLLATE NOCASE ASC",
	},
	scan: func(r rowScanner) (model.Service, error) {
		var s model.Service
		err := r.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.Content, &s.Icon, &s.Image,
			&s.Features, &s.Price, &s.Status, &s.Featured, &s.SortOrder, &s.MetaTitle,
			&s.MetaDescription, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
}

// ListServices returns one page of services and the total match count.
func (q *Queries) ListServices(ctx context.Context, lq model.ListQuery) ([]model.Service, int64, error) {
	return servicesTable.list(ctx, q.db, lq)
}

// GetService returns a service by ID.
func (q *Queries) GetService(ctx context.Context, id int64) (model.Service, error) {
	return servicesTable.get(ctx, q.db, id)
}

// GetServiceBySlug returns a service by slug.
func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (model.Service, error) {
	return servicesTable.getBy(ctx, q.db, "slug", slug)
}

// CreateService inserts a service.
func (q *Queries) CreateService(ctx context.Context, in model.ServiceInput) (model.Service, error) {
	slug, err := uniqueSlug(ctx, q.db, "services", in.Slug, in.Title, "service", 0)
	if err != nil {
		return model.Service{}, err
	}
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO services
		(title, slug, description, content, icon, image, features, price, status, featured,
		 sort_order, meta_title, meta_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, slug, in.Description, in.Content, in.Icon, in.Image, in.Features, in.Price,
		in.Status, in.Featured, in.SortOrder, in.MetaTitle, in.MetaDescription, ts, ts)
	if err != nil {
		return model.Service{}, fmt.Errorf("inserting service: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Service{}, err
	}
	return q.GetService(ctx, id)
}

// UpdateService overwrites the editable fields of a service.
func (q *Queries) UpdateService(ctx context.Context, id int64, in model.ServiceInput) (model.Service, error) {
	slug, err := uniqueSlug(ctx, q.db, "services", in.Slug, in.Title, "service", id)
	if err != nil {
		return model.Service{}, err
	}
	res, err := q.db.ExecContext(ctx, `UPDATE services SET
		title = ?, slug = ?, description = ?, content = ?, icon = ?, image = ?, features = ?,
		price = ?, status = ?, featured = ?, sort_order = ?, meta_title = ?, meta_description = ?,
		updated_at = ?
		WHERE id = ?`,
		in.Title, slug, in.Description, in.Content, in.Icon, in.Image, in.Features, in.Price,
		in.Status, in.Featured, in.SortOrder, in.MetaTitle, in.MetaDescription, now(), id)
	if err != nil {
		return model.Service{}, fmt.Errorf("updating service: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.Service{}, err
	}
	return q.GetService(ctx, id)
}

// DeleteService removes a service.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	return servicesTable.delete(ctx, q.db, id)
}

// SetServiceStatus changes a service's status.
func (q *Queries) SetServiceStatus(ctx context.Context, id int64, status string) (model.Service, error) {
	return servicesTable.setStatus(ctx, q.db, id, status)
}

// DeleteAllServices clears the services table.
func (q *Queries) DeleteAllServices(ctx context.Context) (int64, error) {
	return servicesTable.deleteAll(ctx, q.db)
}

// CountServices returns the number of services, optionally restricted to one status.
func (q *Queries) CountServices(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return servicesTable.count(ctx, q.db, "")
	}
	return servicesTable.count(ctx, q.db, "status = ?", status)
}
