// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

// DefaultSettingGroup is used when a setting is upserted without a group.
const DefaultSettingGroup = "general"

// ListSettings returns every setting ordered by group and key.
func (q *Queries) ListSettings(ctx context.Context) ([]model.Setting, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT key, value, setting_group, updated_at FROM settings ORDER BY setting_group, key`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Setting{}
	for rows.Next() {
		var s model.Setting
		var raw string
		if err := rows.Scan(&s.Key, &raw, &s.Group, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Value = json.RawMessage(raw)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SettingsMap returns all settings as key to raw JSON value.
func (q *Queries) SettingsMap(ctx context.Context) (map[string]json.RawMessage, error) {
	list, err := q.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	return out, nil
}

// GetSetting returns one setting.
func (q *Queries) GetSetting(ctx context.Context, key string) (model.Setting, error) {
	var s model.Setting
	var raw string
	err := q.db.QueryRowContext(ctx,
		`SELECT key, value, setting_group, updated_at FROM settings WHERE key = ?`, key).
		Scan(&s.Key, &raw, &s.Group, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	if err != nil {
		return s, fmt.Errorf("getting setting: %w", err)
	}
	s.Value = json.RawMessage(raw)
	return s, nil
}

// UpsertSetting inserts or replaces a setting. value must be valid JSON.
// An empty group keeps the existing group of the key.
func (q *Queries) UpsertSetting(ctx context.Context, key string, value json.RawMessage, group string) error {
	if !json.Valid(value) {
		return fmt.Errorf("setting %q: value is not valid JSON", key)
	}
	insertGroup := group
	if insertGroup == "" {
		insertGroup = DefaultSettingGroup
	}
	_, err := q.db.ExecContext(ctx, `INSERT INTO settings (key, value, setting_group, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			setting_group = CASE WHEN ? = '' THEN settings.setting_group ELSE excluded.setting_group END,
			updated_at = excluded.updated_at`,
		key, string(value), insertGroup, now(), group)
	if err != nil {
		return fmt.Errorf("upserting setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a setting.
func (q *Queries) DeleteSetting(ctx context.Context, key string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}
	return expectOne(res)
}
