// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/util"
)

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = errors.New("store: not found")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs typed queries against a DBTX.
type Queries struct {
	db DBTX
}

// New creates Queries over db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// table describes how to list, fetch and delete rows of one resource.
type table[T any] struct {
	name         string
	columns      string
	search       []string
	publicStatus string
	featured     bool
	category     bool
	order        string
	sorts        map[string]string
	scan         func(rowScanner) (T, error)
}

func (t table[T]) where(q model.ListQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Search != "" && len(t.search) > 0 {
		like := "%" + escapeLike(q.Search) + "%"
		ors := make([]string, len(t.search))
		for i, col := range t.search {
			ors[i] = col + ` LIKE ? ESCAPE '\'`
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	switch {
	case q.Status != "":
		conds = append(conds, "status = ?")
		args = append(args, q.Status)
	case q.Active && t.publicStatus != "":
		conds = append(conds, "status = ?")
		args = append(args, t.publicStatus)
	}
	if q.Featured && t.featured {
		conds = append(conds, "featured = 1")
	}
	if q.Category != "" && t.category {
		conds = append(conds, "category = ?")
		args = append(args, q.Category)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (t table[T]) orderBy(sort string) string {
	if o, ok := t.sorts[sort]; ok {
		return o
	}
	return t.order
}

func (t table[T]) list(ctx context.Context, db DBTX, q model.ListQuery) ([]T, int64, error) {
	q = q.Normalized()
	where, args := t.where(q)

	var total int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", t.name, err)
	}

	query := "SELECT " + t.columns + " FROM " + t.name + where +
		" ORDER BY " + t.orderBy(q.Sort) + " LIMIT ? OFFSET ?"
	rows, err := db.QueryContext(ctx, query, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", t.name, err)
	}
	defer func() { _ = rows.Close() }()

	items := []T{}
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", t.name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (t table[T]) getBy(ctx context.Context, db DBTX, column string, value any) (T, error) {
	row := db.QueryRowContext(ctx, "SELECT "+t.columns+" FROM "+t.name+" WHERE "+column+" = ?", value)
	item, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item, ErrNotFound
	}
	if err != nil {
		return item, fmt.Errorf("getting %s: %w", t.name, err)
	}
	return item, nil
}

func (t table[T]) get(ctx context.Context, db DBTX, id int64) (T, error) {
	return t.getBy(ctx, db, "id", id)
}

func (t table[T]) delete(ctx context.Context, db DBTX, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", t.name, err)
	}
	return expectOne(res)
}

func (t table[T]) deleteAll(ctx context.Context, db DBTX) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM "+t.name)
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", t.name, err)
	}
	return res.RowsAffected()
}

func (t table[T]) setStatus(ctx context.Context, db DBTX, id int64, status string) (T, error) {
	res, err := db.ExecContext(ctx, "UPDATE "+t.name+" SET status = ?, updated_at = ? WHERE id = ?", status, now(), id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("updating %s status: %w", t.name, err)
	}
	if err := expectOne(res); err != nil {
		var zero T
		return zero, err
	}
	return t.get(ctx, db, id)
}

func (t table[T]) count(ctx context.Context, db DBTX, where string, args ...any) (int64, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + t.name
	if where != "" {
		query += " WHERE " + where
	}
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// uniqueSlug derives a slug from want (or title) that no other row uses.
func uniqueSlug(ctx context.Context, db DBTX, tbl, want, title, fallback string, excludeID int64) (string, error) {
	base := util.Slugify(want)
	if base == "" {
		base = util.Slugify(title)
	}
	if base == "" {
		base = fallback
	}

	slug := base
	for n := 2; ; n++ {
		var exists bool
		err := db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM "+tbl+" WHERE slug = ? AND id != ?)", slug, excludeID).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = util.SuffixSlug(base, n)
	}
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func now() time.Time {
	return time.Now().UTC()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
