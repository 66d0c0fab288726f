// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/olegiv/textura/internal/metrics"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/store"
	"github.com/olegiv/textura/internal/util"
)

// SubmitContact handles the public POST /contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if !decodeJSON(w, r, &in) {
		metrics.ContactSubmissionsTotal.WithLabelValues("invalid").Inc()
		return
	}
	in.Normalize()
	if errs := h.validate.Struct(&in); errs != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues("invalid").Inc()
		WriteValidationError(w, errs)
		return
	}

	ctx := r.Context()
	sub, err := h.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ContactInput: in,
		IPAddress:    util.RemoteIP(r),
		UserAgent:    truncate(r.UserAgent(), 500),
	})
	if err != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues("error").Inc()
		h.internalError(w, r, "Failed to send message", err)
		return
	}
	metrics.ContactSubmissionsTotal.WithLabelValues("accepted").Inc()

	title := "New message from " + sub.Name
	if sub.Subject != "" {
		title += ": " + sub.Subject
	}
	if _, err := h.queries.CreateNotification(ctx, store.CreateNotificationParams{
		Type:    model.NotificationContact,
		Title:   truncate(title, 200),
		Message: truncate(sub.Message, 280),
		Link:    fmt.Sprintf("/admin/contact/%d", sub.ID),
	}); err != nil {
		h.logger.WarnContext(ctx, "failed to create contact notification", "error", err, "submission_id", sub.ID)
	}

	h.logger.InfoContext(ctx, "contact submission received", "submission_id", sub.ID)
	WriteCreated(w, "Message sent successfully", sub)
}

// ListContactSubmissions handles GET /contact/submissions.
func (h *Handler) ListContactSubmissions(w http.ResponseWriter, r *http.Request) {
	lq := model.ParseListQuery(r.URL.Query())
	items, total, err := h.queries.ListContactSubmissions(r.Context(), lq)
	if err != nil {
		h.internalError(w, r, "Failed to fetch contact submissions", err)
		return
	}
	WriteList(w, "Contact submissions retrieved successfully", items, lq, total)
}

// GetContactSubmission handles GET /contact/submissions/{id}.
func (h *Handler) GetContactSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Contact submission")
	if !ok {
		return
	}
	sub, err := h.queries.GetContactSubmission(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "Contact submission not found", "Failed to fetch contact submission")
		return
	}
	WriteSuccess(w, "Contact submission retrieved successfully", sub)
}

// SetContactSubmissionStatus handles PUT /contact/submissions/{id}/status.
func (h *Handler) SetContactSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Contact submission")
	if !ok {
		return
	}
	var in model.StatusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if !model.ValidStatus(model.ContactStatuses, status) {
		WriteJSON(w, http.StatusBadRequest, model.Envelope[any]{
			Success: false,
			Message: "Invalid status",
			Errors:  map[string]string{"status": "status must be one of: " + strings.Join(model.ContactStatuses, ", ")},
		})
		return
	}
	sub, err := h.queries.SetContactSubmissionStatus(r.Context(), id, status)
	if err != nil {
		h.storeError(w, r, err, "Contact submission not found", "Failed to update contact submission status")
		return
	}
	WriteSuccess(w, "Contact submission status updated successfully", sub)
}

// DeleteContactSubmission handles DELETE /contact/submissions/{id}.
func (h *Handler) DeleteContactSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "Contact submission")
	if !ok {
		return
	}
	if err := h.queries.DeleteContactSubmission(r.Context(), id); err != nil {
		h.storeError(w, r, err, "Contact submission not found", "Failed to delete contact submission")
		return
	}
	WriteMessage(w, "Contact submission deleted successfully")
}

// ContactStats handles GET /contact/stats.
func (h *Handler) ContactStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ContactStats(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch contact stats", err)
		return
	}
	WriteSuccess(w, "Contact stats retrieved successfully", stats)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
