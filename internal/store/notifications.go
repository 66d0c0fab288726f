// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var notificationsTable = table[model.Notification]{
	name:    "notifications",
	columns: `id, type, title, message, link, is_read, created_at`,
	search:  []string{"title", "message"},
	order:   "created_at DESC, id DESC",
	scan: func(r rowScanner) (model.Notification, error) {
		var n model.Notification
		err := r.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.CreatedAt)
		return n, err
	},
}

// CreateNotificationParams contains the fields of a new notification.
type CreateNotificationParams struct {
	Type    string
	Title   string
	Message string
	Link    string
}

// CreateNotification inserts an unread notification.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (model.Notification, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO notifications (type, title, message, link, is_read, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		arg.Type, arg.Title, arg.Message, arg.Link, now())
	if err != nil {
		return model.Notification{}, fmt.Errorf("inserting notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Notification{}, err
	}
	return notificationsTable.get(ctx, q.db, id)
}

// ListNotifications returns one page of notifications, newest first.
// Unread restricts the page to unread entries.
func (q *Queries) ListNotifications(ctx context.Context, lq model.ListQuery) ([]model.Notification, int64, error) {
	lq = lq.Normalized()
	where := ""
	if lq.Unread {
		where = " WHERE is_read = 0"
	}

	var total int64
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications"+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting notifications: %w", err)
	}

	rows, err := q.db.QueryContext(ctx, "SELECT "+notificationsTable.columns+" FROM notifications"+where+
		" ORDER BY "+notificationsTable.order+" LIMIT ? OFFSET ?", lq.Limit, lq.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Notification{}
	for rows.Next() {
		n, err := notificationsTable.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// CountUnreadNotifications returns the number of unread notifications.
func (q *Queries) CountUnreadNotifications(ctx context.Context) (int64, error) {
	return notificationsTable.count(ctx, q.db, "is_read = 0")
}

// MarkNotificationRead marks one notification read.
func (q *Queries) MarkNotificationRead(ctx context.Context, id int64) (model.Notification, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return model.Notification{}, fmt.Errorf("marking notification read: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.Notification{}, err
	}
	return notificationsTable.get(ctx, q.db, id)
}

// MarkAllNotificationsRead marks every notification read and returns how many changed.
func (q *Queries) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE is_read = 0`)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return res.RowsAffected()
}

// DeleteNotification removes a notification.
func (q *Queries) DeleteNotification(ctx context.Context, id int64) error {
	return notificationsTable.delete(ctx, q.db, id)
}
