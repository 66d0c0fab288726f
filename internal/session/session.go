// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the admin session manager of the web process.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// CookieName is the session cookie name outside development. The __Host-
// prefix pins the cookie to the exact host over HTTPS.
const CookieName = "__Host-textura_session"

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);
`

// EnsureSchema creates the table used by the SQLite session store.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}
	return nil
}

// Manager wraps the scs session manager and its store.
type Manager struct {
	*scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// New creates a session manager backed by db. Expired sessions are purged
// every cleanup interval until Close is called.
func New(db *sql.DB, isDev bool, lifetime, cleanup time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}
	st := sqlite3store.NewWithCleanupInterval(db, cleanup)

	sm := scs.New()
	sm.Store = st
	sm.Lifetime = lifetime
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	sm.Cookie.Path = "/"
	if !isDev {
		sm.Cookie.Name = CookieName
	}

	return &Manager{SessionManager: sm, store: st}
}

// Close stops the background cleanup.
func (m *Manager) Close() {
	m.store.StopCleanup()
}
