// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var projectsTable = table[model.Project]{
	name: "projects",
	columns: `id, title, slug, description, content, category, client, location, cover_image,
		images, technologies, tags, status, featured, completed_at, meta_title, meta_description,
		created_at, updated_at`,
	search:       []string{"title", "description", "client", "location"},
	publicStatus: model.StatusPublished,
	featured:     true,
	category:     true,
	order:        "featured DESC, created_at DESC",
	sorts: map[string]string{
		"newest": "created_at DESC",
		"oldest": "created_at ASC",
		"title":  "title COLLATE NOCASE ASC",
	},
	scan: func(r rowScanner) (model.Project, error) {
		var p model.Project
		var completed sql.NullTime
		err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Content, &p.Category, &p.Client,
			&p.Location, &p.CoverImage, &p.Images, &p.Technologies, &p.Tags, &p.Status, &p.Featured,
			&completed, &p.MetaTitle, &p.MetaDescription, &p.CreatedAt, &p.UpdatedAt)
		p.CompletedAt = timePtr(completed)
		return p, err
	},
}

// ListProjects returns one page of projects and the total match count.
func (q *Queries) ListProjects(ctx context.Context, lq model.ListQuery) ([]model.Project, int64, error) {
	return projectsTable.list(ctx, q.db, lq)
}

// GetProject returns a project by ID.
func (q *Queries) GetProject(ctx context.Context, id int64) (model.Project, error) {
	return projectsTable.get(ctx, q.db, id)
}

// GetProjectBySlug returns a project by slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	return projectsTable.getBy(ctx, q.db, "slug", slug)
}

// CreateProject inserts a project.
func (q *Queries) CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	slug, err := uniqueSlug(ctx, q.db, "projects", in.Slug, in.Title, "project", 0)
	if err != nil {
		return model.Project{}, err
	}
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO projects
		(title, slug, description, content, category, client, location, cover_image, images,
		 technologies, tags, status, featured, completed_at, meta_title, meta_description,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, slug, in.Description, in.Content, in.Category, in.Client, in.Location,
		in.CoverImage, in.Images, in.Technologies, in.Tags, in.Status, in.Featured,
		nullTime(in.CompletedAt), in.MetaTitle, in.MetaDescription, ts, ts)
	if err != nil {
		return model.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProject(ctx, id)
}

// UpdateProject overwrites the editable fields of a project.
func (q *Queries) UpdateProject(ctx context.Context, id int64, in model.ProjectInput) (model.Project, error) {
	slug, err := uniqueSlug(ctx, q.db, "projects", in.Slug, in.Title, "project", id)
	if err != nil {
		return model.Project{}, err
	}
	res, err := q.db.ExecContext(ctx, `UPDATE projects SET
		title = ?, slug = ?, description = ?, content = ?, category = ?, client = ?, location = ?,
		cover_image = ?, images = ?, technologies = ?, tags = ?, status = ?, featured = ?,
		completed_at = ?, meta_title = ?, meta_description = ?, updated_at = ?
		WHERE id = ?`,
		in.Title, slug, in.Description, in.Content, in.Category, in.Client, in.Location,
		in.CoverImage, in.Images, in.Technologies, in.Tags, in.Status, in.Featured,
		nullTime(in.CompletedAt), in.MetaTitle, in.MetaDescription, now(), id)
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.Project{}, err
	}
	return q.GetProject(ctx, id)
}

// DeleteProject removes a project.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	return projectsTable.delete(ctx, q.db, id)
}

// SetProjectStatus changes a project's status.
func (q *Queries) SetProjectStatus(ctx context.Context, id int64, status string) (model.Project, error) {
	return projectsTable.setStatus(ctx, q.db, id, status)
}

// DeleteAllProjects clears the projects table.
func (q *Queries) DeleteAllProjects(ctx context.Context) (int64, error) {
	return projectsTable.deleteAll(ctx, q.db)
}

// CountProjects returns the number of projects, optionally restricted to one status.
func (q *Queries) CountProjects(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return projectsTable.count(ctx, q.db, "")
	}
	return projectsTable.count(ctx, q.db, "status = ?", status)
}

// ListProjectCategories returns distinct non-empty categories of published projects.
func (q *Queries) ListProjectCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM projects WHERE category != '' AND status = ? ORDER BY category`,
		model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("listing project categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cats := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
