// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var usersTable = table[model.User]{
	name:    "users",
	columns: `id, email, name, role, password_hash, last_login_at, created_at, updated_at`,
	order:   "id ASC",
	scan: func(r rowScanner) (model.User, error) {
		var u model.User
		var lastLogin sql.NullTime
		err := r.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
		u.LastLoginAt = timePtr(lastLogin)
		return u, err
	},
}

// UpsertUserParams contains the fields of an admin account.
type UpsertUserParams struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

// UpsertUser creates the account or resets its name, role and password.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (model.User, error) {
	ts := now()
	_, err := q.db.ExecContext(ctx, `INSERT INTO users (email, name, role, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at`,
		arg.Email, arg.Name, arg.Role, arg.PasswordHash, ts, ts)
	if err != nil {
		return model.User{}, fmt.Errorf("upserting user: %w", err)
	}
	return q.GetUserByEmail(ctx, arg.Email)
}

// GetUser returns a user by ID.
func (q *Queries) GetUser(ctx context.Context, id int64) (model.User, error) {
	return usersTable.get(ctx, q.db, id)
}

// GetUserByEmail returns a user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return usersTable.getBy(ctx, q.db, "email", email)
}

// UpdateUserLastLogin stamps last_login_at.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, now(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return expectOne(res)
}

// UpdateUserPassword replaces the stored hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	res, err := q.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now(), id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return expectOne(res)
}

// CountUsers returns the number of accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	return usersTable.count(ctx, q.db, "")
}
