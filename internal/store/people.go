// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var sortOrderSorts = map[string]string{
	"newest": "created_at DESC",
	"oldest": "created_at ASC",
}

var teamTable = table[model.TeamMember]{
	name:         "team_members",
	columns:      `id, name, position, bio, image, email, linkedin, skills, status, sort_order, created_at, updated_at`,
	search:       []string{"name", "position", "bio"},
	publicStatus: model.StatusActive,
	order:        "sort_order ASC, name COLLATE NOCASE ASC",
	sorts:        sortOrderSorts,
	scan: func(r rowScanner) (model.TeamMember, error) {
		var m model.TeamMember
		err := r.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Image, &m.Email, &m.LinkedIn,
			&m.Skills, &m.Status, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
		return m, err
	},
}

// ListTeamMembers returns one page of team members.
func (q *Queries) ListTeamMembers(ctx context.Context, lq model.ListQuery) ([]model.TeamMember, int64, error) {
	return teamTable.list(ctx, q.db, lq)
}

// GetTeamMember returns a team member by ID.
func (q *Queries) GetTeamMember(ctx context.Context, id int64) (model.TeamMember, error) {
	return teamTable.get(ctx, q.db, id)
}

// CreateTeamMember inserts a team member.
func (q *Queries) CreateTeamMember(ctx context.Context, in model.TeamMemberInput) (model.TeamMember, error) {
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO team_members
		(name, position, bio, image, email, linkedin, skills, status, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Position, in.Bio, in.Image, in.Email, in.LinkedIn, in.Skills, in.Status,
		in.SortOrder, ts, ts)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("inserting team member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.TeamMember{}, err
	}
	return q.GetTeamMember(ctx, id)
}

// UpdateTeamMember overwrites the editable fields of a team member.
func (q *Queries) UpdateTeamMember(ctx context.Context, id int64, in model.TeamMemberInput) (model.TeamMember, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE team_members SET
		name = ?, position = ?, bio = ?, image = ?, email = ?, linkedin = ?, skills = ?, status = ?,
		sort_order = ?, updated_at = ?
		WHERE id = ?`,
		in.Name, in.Position, in.Bio, in.Image, in.Email, in.LinkedIn, in.Skills, in.Status,
		in.SortOrder, now(), id)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("updating team member: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.TeamMember{}, err
	}
	return q.GetTeamMember(ctx, id)
}

// DeleteTeamMember removes a team member.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	return teamTable.delete(ctx, q.db, id)
}

// SetTeamMemberStatus changes a team member's status.
func (q *Queries) SetTeamMemberStatus(ctx context.Context, id int64, status string) (model.TeamMember, error) {
	return teamTable.setStatus(ctx, q.db, id, status)
}

var testimonialsTable = table[model.Testimonial]{
	name: "testimonials",
	columns: `id, client_name, client_position, company, content, rating, avatar, status, featured,
		sort_order, created_at, updated_at`,
	search:       []string{"client_name", "company", "content"},
	publicStatus: model.StatusActive,
	featured:     true,
	order:        "sort_order ASC, created_at DESC",
	sorts:        sortOrderSorts,
	scan: func(r rowScanner) (model.Testimonial, error) {
		var t model.Testimonial
		err := r.Scan(&t.ID, &t.ClientName, &t.ClientPosition, &t.Company, &t.Content, &t.Rating,
			&t.Avatar, &t.Status, &t.Featured, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	},
}

// ListTestimonials returns one page of testimonials.
func (q *Queries) ListTestimonials(ctx context.Context, lq model.ListQuery) ([]model.Testimonial, int64, error) {
	return testimonialsTable.list(ctx, q.db, lq)
}

// GetTestimonial returns a testimonial by ID.
func (q *Queries) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	return testimonialsTable.get(ctx, q.db, id)
}

// CreateTestimonial inserts a testimonial.
func (q *Queries) CreateTestimonial(ctx context.Context, in model.TestimonialInput) (model.Testimonial, error) {
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO testimonials
		(client_name, client_position, company, content, rating, avatar, status, featured,
		 sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ClientName, in.ClientPosition, in.Company, in.Content, in.Rating, in.Avatar, in.Status,
		in.Featured, in.SortOrder, ts, ts)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("inserting testimonial: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonial(ctx, id)
}

// UpdateTestimonial overwrites the editable fields of a testimonial.
func (q *Queries) UpdateTestimonial(ctx context.Context, id int64, in model.TestimonialInput) (model.Testimonial, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE testimonials SET
		client_name = ?, client_position = ?, company = ?, content = ?, rating = ?, avatar = ?,
		status = ?, featured = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		in.ClientName, in.ClientPosition, in.Company, in.Content, in.Rating, in.Avatar, in.Status,
		in.Featured, in.SortOrder, now(), id)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("updating testimonial: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonial(ctx, id)
}

// DeleteTestimonial removes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	return testimonialsTable.delete(ctx, q.db, id)
}

// SetTestimonialStatus changes a testimonial's status.
func (q *Queries) SetTestimonialStatus(ctx context.Context, id int64, status string) (model.Testimonial, error) {
	return testimonialsTable.setStatus(ctx, q.db, id, status)
}

// DeleteAllTestimonials clears the testimonials table.
func (q *Queries) DeleteAllTestimonials(ctx context.Context) (int64, error) {
	return testimonialsTable.deleteAll(ctx, q.db)
}

// CountTestimonials returns the number of testimonials.
func (q *Queries) CountTestimonials(ctx context.Context) (int64, error) {
	return testimonialsTable.count(ctx, q.db, "")
}

var clientsTable = table[model.Client]{
	name: "clients",
	columns: `id, name, logo, website, industry, description, status, featured, sort_order,
		created_at, updated_at`,
	search:       []string{"name", "industry", "description"},
	publicStatus: model.StatusActive,
	featured:     true,
	order:        "sort_order ASC, name COLLATE NOCASE ASC",
	sorts:        sortOrderSorts,
	scan: func(r rowScanner) (model.Client, error) {
		var c model.Client
		err := r.Scan(&c.ID, &c.Name, &c.Logo, &c.Website, &c.Industry, &c.Description, &c.Status,
			&c.Featured, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
}

// ListClients returns one page of clients.
func (q *Queries) ListClients(ctx context.Context, lq model.ListQuery) ([]model.Client, int64, error) {
	return clientsTable.list(ctx, q.db, lq)
}

// GetClient returns a client by ID.
func (q *Queries) GetClient(ctx context.Context, id int64) (model.Client, error) {
	return clientsTable.get(ctx, q.db, id)
}

// CreateClient inserts a client.
func (q *Queries) CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO clients
		(name, logo, website, industry, description, status, featured, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Logo, in.Website, in.Industry, in.Description, in.Status, in.Featured,
		in.SortOrder, ts, ts)
	if err != nil {
		return model.Client{}, fmt.Errorf("inserting client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Client{}, err
	}
	return q.GetClient(ctx, id)
}

// UpdateClient overwrites the editable fields of a client.
func (q *Queries) UpdateClient(ctx context.Context, id int64, in model.ClientInput) (model.Client, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE clients SET
		name = ?, logo = ?, website = ?, industry = ?, description = ?, status = ?, featured = ?,
		sort_order = ?, updated_at = ?
		WHERE id = ?`,
		in.Name, in.Logo, in.Website, in.Industry, in.Description, in.Status, in.Featured,
		in.SortOrder, now(), id)
	if err != nil {
		return model.Client{}, fmt.Errorf("updating client: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.Client{}, err
	}
	return q.GetClient(ctx, id)
}

// DeleteClient removes a client.
func (q *Queries) DeleteClient(ctx context.Context, id int64) error {
	return clientsTable.delete(ctx, q.db, id)
}

// SetClientStatus changes a client's status.
func (q *Queries) SetClientStatus(ctx context.Context, id int64, status string) (model.Client, error) {
	return clientsTable.setStatus(ctx, q.db, id, status)
}
