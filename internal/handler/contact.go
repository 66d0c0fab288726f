// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/seo"
	"github.com/olegiv/textura/internal/util"
)

// ContactData is the data of the contact page.
type ContactData struct {
	Form     model.ContactInput
	Errors   map[string]string
	Services []model.Service
}

// ContactForm renders the contact page.
func (h *Handler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, ContactData{Form: model.ContactInput{Service: r.URL.Query().Get("service")}}, "")
}

// renderContact renders the contact page. A non-empty message is shown as an
// error in place of any pending flash.
func (h *Handler) renderContact(w http.ResponseWriter, r *http.Request, status int, data ContactData, message string) {
	data.Services, _ = listPublic(r.Context(), h, "services", model.ListQuery{Limit: 50}, fallback.Services(), fallback.MatchService)
	td := h.view(seo.PageData{Title: "Contact", Path: "/contact", Summary: "Tell us about your project."})
	td.Data = data
	if message != "" {
		td.Flash = message
		td.FlashType = "error"
	}
	h.renderer.Status(w, r, status, "site/contact", td)
}

// SubmitContact forwards the contact form to the backend with the visitor's
// address and user agent.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, "/contact", "Invalid form data")
		return
	}
	in := model.ContactInput{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Company: r.PostForm.Get("company"),
		Subject: r.PostForm.Get("subject"),
		Service: r.PostForm.Get("service"),
		Message: r.PostForm.Get("message"),
	}
	in.Normalize()

	if err := h.sendContact(r, in); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			h.renderContact(w, r, apiErr.Status, ContactData{Form: in, Errors: apiErr.Errors}, apiErr.Message)
			return
		}
		h.logger.ErrorContext(r.Context(), "contact submission failed", "error", err)
		h.renderContact(w, r, http.StatusBadGateway, ContactData{Form: in}, "Failed to send message. Please try again later.")
		return
	}
	h.flashSuccess(w, r, "/contact", "Thank you! Your message has been sent. We will be in touch shortly.")
}

func (h *Handler) sendContact(r *http.Request, in model.ContactInput) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := h.client.NewRequest(r.Context(), http.MethodPost, "contact", nil, bytes.NewReader(body), "")
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", util.RemoteIP(r))
	req.Header.Set("User-Agent", r.UserAgent())
	_, err = client.Decode[model.ContactSubmission](h.client.Do(req))
	return err
}

// AdminContactListData is the data of the messages screen.
type AdminContactListData struct {
	Items      []model.ContactSubmission
	Pagination Pagination
	Status     string
	Statuses   []string
	Stats      model.ContactStats
}

// AdminContactList renders contact submissions with a status filter.
func (h *Handler) AdminContactList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lq := model.ListQuery{Page: pageNumber(r), Limit: 25, Status: r.URL.Query().Get("status")}.Normalized()
	page, err := client.List[model.ContactSubmission](ctx, h.client, "contact/submissions", lq, h.token(r))
	if err != nil {
		h.backendError(w, r, redirectAdmin, err)
		return
	}
	stats, err := client.Call[model.ContactStats](ctx, h.client, http.MethodGet, "contact/stats", nil, nil, h.token(r))
	if err != nil {
		h.logger.WarnContext(ctx, "fetching contact stats", "error", err)
	}

	h.renderer.Page(w, r, "admin/contact_list", h.adminData(r, "Messages", AdminContactListData{
		Items:      page.Items,
		Pagination: BuildPagination(page.Pagination, "/admin/contact", r.URL.Query()),
		Status:     lq.Status,
		Statuses:   model.ContactStatuses,
		Stats:      stats.Data,
	}))
}

// AdminContactDetailData is the data of one message.
type AdminContactDetailData struct {
	Submission model.ContactSubmission
	Statuses   []string
}

// AdminContactDetail shows one submission. Opening an unread message marks it read.
func (h *Handler) AdminContactDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		h.flashError(w, r, "/admin/contact", "Message not found")
		return
	}
	ctx := r.Context()
	sub, err := client.Get[model.ContactSubmission](ctx, h.client, "contact/submissions", id, h.token(r))
	if err != nil {
		h.backendError(w, r, "/admin/contact", err)
		return
	}
	if sub.Status == model.StatusUnread {
		updated, err := h.setContactStatus(r, id, model.StatusRead)
		if err != nil {
			h.logger.WarnContext(ctx, "marking message read", "id", id, "error", err)
		} else {
			sub = updated
		}
	}
	h.renderer.Page(w, r, "admin/contact_detail", h.adminData(r, "Message from "+sub.Name, AdminContactDetailData{
		Submission: sub,
		Statuses:   model.ContactStatuses,
	}))
}

// AdminContactStatus changes the status of a submission.
func (h *Handler) AdminContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		h.flashError(w, r, "/admin/contact", "Message not found")
		return
	}
	back := "/admin/contact/" + strconv.FormatInt(id, 10)
	if !h.parseFormOrRedirect(w, r, back) {
		return
	}
	if _, err := h.setContactStatus(r, id, r.PostForm.Get("status")); err != nil {
		h.backendError(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Status updated")
}

// AdminContactDelete deletes a submission.
func (h *Handler) AdminContactDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		h.flashError(w, r, "/admin/contact", "Message not found")
		return
	}
	path := "contact/submissions/" + strconv.FormatInt(id, 10)
	if _, err := client.Call[any](r.Context(), h.client, http.MethodDelete, path, nil, nil, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/contact", err)
		return
	}
	h.flashSuccess(w, r, "/admin/contact", "Message deleted")
}

func (h *Handler) setContactStatus(r *http.Request, id int64, status string) (model.ContactSubmission, error) {
	path := "contact/submissions/" + strconv.FormatInt(id, 10) + "/status"
	env, err := client.Call[model.ContactSubmission](r.Context(), h.client, http.MethodPut, path, nil,
		model.StatusInput{Status: status}, h.token(r))
	return env.Data, err
}
