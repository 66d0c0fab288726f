// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the resource records shared by the store, the JSON
// API, the backend client and the admin screens, together with their status
// enumerations and the response envelope.
package model

import "slices"

// Lifecycle statuses.
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
	StatusUnread    = "UNREAD"
	StatusRead      = "READ"
	StatusReplied   = "REPLIED"
)

// Status sets per resource family.
var (
	ActiveStatuses  = []string{StatusActive, StatusInactive}
	ProjectStatuses = []string{StatusDraft, StatusPublished}
	BlogStatuses    = []string{StatusDraft, StatusPublished, StatusArchived}
	ContactStatuses = []string{StatusUnread, StatusRead, StatusReplied, StatusArchived}
)

// ValidStatus reports whether s is one of allowed.
func ValidStatus(allowed []string, s string) bool {
	return slices.Contains(allowed, s)
}

// RoleAdmin is the only role allowed into the dashboard.
const RoleAdmin = "admin"

// Notification types.
const (
	NotificationContact = "CONTACT"
	NotificationSystem  = "SYSTEM"
)

// StatusInput is the body of PUT /{resource}/{id}/status.
type StatusInput struct {
	Status string `json:"status" validate:"required"`
}
