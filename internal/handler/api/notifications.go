// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/textura/internal/model"
)

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	lq := model.ParseListQuery(r.URL.Query())
	items, total, err := h.queries.ListNotifications(r.Context(), lq)
	if err != nil {
		h.internalError(w, r, "Failed to fetch notifications", err)
		return
	}
	WriteList(w, "Notifications retrieved successfully", items, lq, total)
}

// UnreadNotificationCount handles GET /notifications/unread-count.
func (h *Handler) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.queries.CountUnreadNotifications(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to count notifications", err)
		return
	}
	WriteSuccess(w, "Unread count retrieved successfully", model.UnreadCount{Count: n})
}

// MarkNotificationRead handles PUT /notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Notification")
	if !ok {
		return
	}
	n, err := h.queries.MarkNotificationRead(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Notification not found", "Failed to update notification")
		return
	}
	WriteSuccess(w, "Notification marked as read", n)
}

// MarkAllNotificationsRead handles PUT /notifications/read-all.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	changed, err := h.queries.MarkAllNotificationsRead(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to update notifications", err)
		return
	}
	WriteSuccess(w, "All notifications marked as read", map[string]int64{"updated": changed})
}

// DeleteNotification handles DELETE /notifications/{id}.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Notification")
	if !ok {
		return
	}
	if err := h.queries.DeleteNotification(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Notification not found", "Failed to delete notification")
		return
	}
	WriteMessage(w, "Notification deleted successfully")
}
