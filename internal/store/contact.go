// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/textura/internal/model"
)

var contactTable = table[model.ContactSubmission]{
	name: "contact_submissions",
	columns: `id, name, email, phone, company, subject, service, message, status, ip_address,
		user_agent, created_at, updated_at`,
	search: []string{"name", "email", "company", "subject", "message"},
	order:  "created_at DESC, id DESC",
	sorts:  map[string]string{"oldest": "created_at ASC, id ASC"},
	scan: func(r rowScanner) (model.ContactSubmission, error) {
		var c model.ContactSubmission
		err := r.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Subject, &c.Service,
			&c.Message, &c.Status, &c.IPAddress, &c.UserAgent, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
}

// CreateContactSubmissionParams holds a submission with its request metadata.
type CreateContactSubmissionParams struct {
	model.ContactInput
	IPAddress string
	UserAgent string
}

// CreateContactSubmission stores a new UNREAD submission.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO contact_submissions
		(name, email, phone, company, subject, service, message, status, ip_address, user_agent,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Subject, arg.Service, arg.Message,
		model.StatusUnread, arg.IPAddress, arg.UserAgent, ts, ts)
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("inserting contact submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactSubmission{}, err
	}
	return q.GetContactSubmission(ctx, id)
}

// ListContactSubmissions returns one page of submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context, lq model.ListQuery) ([]model.ContactSubmission, int64, error) {
	return contactTable.list(ctx, q.db, lq)
}

// GetContactSubmission returns a submission by ID.
func (q *Queries) GetContactSubmission(ctx context.Context, id int64) (model.ContactSubmission, error) {
	return contactTable.get(ctx, q.db, id)
}

// SetContactSubmissionStatus changes a submission's status.
func (q *Queries) SetContactSubmissionStatus(ctx context.Context, id int64, status string) (model.ContactSubmission, error) {
	return contactTable.setStatus(ctx, q.db, id, status)
}

// DeleteContactSubmission removes a submission.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	return contactTable.delete(ctx, q.db, id)
}

// ContactStats counts submissions per status. Today is measured from UTC midnight.
func (q *Queries) ContactStats(ctx context.Context) (model.ContactStats, error) {
	var s model.ContactStats
	midnight := now().Truncate(24 * time.Hour)
	err := q.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'UNREAD' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'READ' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'REPLIED' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'ARCHIVED' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM contact_submissions`, midnight).
		Scan(&s.Total, &s.Unread, &s.Read, &s.Replied, &s.Archived, &s.Today)
	if err != nil {
		return s, fmt.Errorf("counting contact submissions: %w", err)
	}
	return s, nil
}
