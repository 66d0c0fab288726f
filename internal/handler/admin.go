// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/model"
)

// ResourceCount is one tile of the dashboard.
type ResourceCount struct {
	Resource *AdminResource
	Total    int64
}

// DashboardData is the data of the admin dashboard.
type DashboardData struct {
	Stats  model.ContactStats
	Counts []ResourceCount
	Latest []model.ContactSubmission
}

// Dashboard renders contact stats, counts per resource and the latest messages.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := h.token(r)
	data := DashboardData{Counts: make([]ResourceCount, len(h.resources))}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := client.Call[model.ContactStats](gctx, h.client, http.MethodGet, "contact/stats", nil, nil, token)
		data.Stats = env.Data
		return err
	})
	g.Go(func() error {
		page, err := client.List[model.ContactSubmission](gctx, h.client, "contact/submissions", model.ListQuery{Limit: 5}, token)
		data.Latest = page.Items
		return err
	})
	for i, res := range h.resources {
		g.Go(func() error {
			data.Counts[i].Resource = res
			page, err := client.List[json.RawMessage](gctx, h.client, res.Path, model.ListQuery{Limit: 1}, token)
			if page.Pagination != nil {
				data.Counts[i].Total = page.Pagination.Total
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if client.IsUnauthorized(err) {
			h.backendError(w, r, redirectAdmin, err)
			return
		}
		h.logger.WarnContext(ctx, "dashboard partially loaded", "error", err)
		h.renderer.Flash(r, "error", "Some figures could not be loaded: "+errorMessage(err))
	}

	h.renderer.Page(w, r, "admin/dashboard", h.adminData(r, "Dashboard", data))
}

// SettingRow is one key/value pair of the settings editor.
type SettingRow struct {
	Key   string
	Value string
}

// SettingsData is the data of the settings editor.
type SettingsData struct {
	Rows []SettingRow
}

// AdminSettings renders the key/value editor.
func (h *Handler) AdminSettings(w http.ResponseWriter, r *http.Request) {
	m, err := h.client.Settings(r.Context())
	if err != nil {
		h.backendError(w, r, redirectAdmin, err)
		return
	}
	rows := make([]SettingRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, SettingRow{Key: k, Value: settingText(v)})
	}
	slices.SortFunc(rows, func(a, b SettingRow) int { return strings.Compare(a.Key, b.Key) })
	h.renderer.Page(w, r, "admin/settings", h.adminData(r, "Settings", SettingsData{Rows: rows}))
}

// SaveSettings stores all submitted rows in one call. Rows arrive as
// parallel key[] and value[] fields; a row with an empty key is skipped.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, "/admin/settings") {
		return
	}
	keys := r.PostForm["key"]
	values := r.PostForm["value"]
	body := make(map[string]json.RawMessage, len(keys))
	for i, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		body[k] = settingValue(v)
	}
	if len(body) == 0 {
		h.flashError(w, r, "/admin/settings", "Nothing to save")
		return
	}

	if _, err := client.Call[any](r.Context(), h.client, http.MethodPut, "settings", nil, body, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/settings", err)
		return
	}
	h.afterSettingsChange(r.Context())
	h.flashSuccess(w, r, "/admin/settings", "Settings saved")
}

// DeleteSetting removes one key.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, "/admin/settings") {
		return
	}
	key := strings.TrimSpace(r.PostForm.Get("key"))
	if key == "" {
		h.flashError(w, r, "/admin/settings", "Setting not found")
		return
	}
	if _, err := client.Call[any](r.Context(), h.client, http.MethodDelete, "settings/"+url.PathEscape(key), nil, nil, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/settings", err)
		return
	}
	h.afterSettingsChange(r.Context())
	h.flashSuccess(w, r, "/admin/settings", "Setting "+key+" removed")
}

func (h *Handler) afterSettingsChange(ctx context.Context) {
	h.fetcher.Invalidate(ctx, "settings")
	if err := h.RefreshSettings(ctx); err != nil {
		h.logger.WarnContext(ctx, "refreshing site settings", "error", err)
	}
}

// settingText renders a stored value for editing. Strings are shown bare and
// anything else as JSON.
func settingText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// settingValue is the inverse of settingText: valid JSON objects, arrays,
// numbers and booleans are kept, everything else is stored as a string.
func settingValue(text string) json.RawMessage {
	t := strings.TrimSpace(text)
	if t != "" && t != "null" && json.Valid([]byte(t)) && !strings.HasPrefix(t, `"`) {
		return json.RawMessage(t)
	}
	b, _ := json.Marshal(text)
	return b
}

// maxUploadBody caps the multipart body accepted by the upload form.
const maxUploadBody = 12 << 20

// MediaData is the data of the media library.
type MediaData struct {
	Items      []model.Media
	Pagination Pagination
}

// AdminMedia renders the media grid.
func (h *Handler) AdminMedia(w http.ResponseWriter, r *http.Request) {
	lq := model.ListQuery{Page: pageNumber(r), Limit: 24}
	page, err := client.List[model.Media](r.Context(), h.client, "media", lq, h.token(r))
	if err != nil {
		h.backendError(w, r, redirectAdmin, err)
		return
	}
	h.renderer.Page(w, r, "admin/media", h.adminData(r, "Media", MediaData{
		Items:      page.Items,
		Pagination: BuildPagination(page.Pagination, "/admin/media", r.URL.Query()),
	}))
}

// UploadMedia streams an uploaded file to the backend as multipart.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.flashError(w, r, "/admin/media", "Choose a file to upload")
		return
	}
	defer func() { _ = file.Close() }()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeMultipart(mw, header.Filename, file, r.FormValue("alt"))
		_ = pw.CloseWithError(err)
	}()

	env, err := client.Upload[model.Media](r.Context(), h.client, "media", pr, mw.FormDataContentType(), h.token(r))
	_ = pr.Close()
	if err != nil {
		h.backendError(w, r, "/admin/media", err)
		return
	}
	h.flashSuccess(w, r, "/admin/media", "Uploaded "+env.Data.OriginalName)
}

func writeMultipart(mw *multipart.Writer, filename string, src io.Reader, alt string) error {
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	if alt != "" {
		if err := mw.WriteField("alt", alt); err != nil {
			return err
		}
	}
	return mw.Close()
}

// DeleteMedia removes one file.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		h.flashError(w, r, "/admin/media", "Media not found")
		return
	}
	if _, err := client.Call[any](r.Context(), h.client, http.MethodDelete, "media/"+strconv.FormatInt(id, 10), nil, nil, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/media", err)
		return
	}
	h.flashSuccess(w, r, "/admin/media", "File deleted")
}

// NotificationsData is the data of the notifications screen.
type NotificationsData struct {
	Items      []model.Notification
	Pagination Pagination
	Unread     bool
}

// AdminNotifications lists notifications, optionally unread only.
func (h *Handler) AdminNotifications(w http.ResponseWriter, r *http.Request) {
	unread := r.URL.Query().Get("unread") == "true"
	lq := model.ListQuery{Page: pageNumber(r), Limit: 25, Unread: unread}
	page, err := client.List[model.Notification](r.Context(), h.client, "notifications", lq, h.token(r))
	if err != nil {
		h.backendError(w, r, redirectAdmin, err)
		return
	}
	h.renderer.Page(w, r, "admin/notifications", h.adminData(r, "Notifications", NotificationsData{
		Items:      page.Items,
		Pagination: BuildPagination(page.Pagination, "/admin/notifications", r.URL.Query()),
		Unread:     unread,
	}))
}

// MarkNotificationRead marks one notification read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		h.flashError(w, r, "/admin/notifications", "Notification not found")
		return
	}
	path := "notifications/" + strconv.FormatInt(id, 10) + "/read"
	if _, err := client.Call[any](r.Context(), h.client, http.MethodPut, path, nil, nil, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/notifications", err)
		return
	}
	http.Redirect(w, r, "/admin/notifications", http.StatusSeeOther)
}

// MarkAllNotificationsRead marks every notification read.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if _, err := client.Call[any](r.Context(), h.client, http.MethodPut, "notifications/read-all", nil, nil, h.token(r)); err != nil {
		h.backendError(w, r, "/admin/notifications", err)
		return
	}
	h.flashSuccess(w, r, "/admin/notifications", "All notifications marked as read")
}

// HeroAnalytics renders view, click and CTR figures of the hero slides.
func (h *Handler) HeroAnalytics(w http.ResponseWriter, r *http.Request) {
	env, err := client.Call[model.HeroAnalytics](r.Context(), h.client, http.MethodGet, "hero-slides/analytics/summary", nil, nil, h.token(r))
	if err != nil {
		h.backendError(w, r, "/admin/hero-slides", err)
		return
	}
	h.renderer.Page(w, r, "admin/hero_analytics", h.adminData(r, "Hero slide analytics", env.Data))
}
