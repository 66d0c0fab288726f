// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/render"
)

// FieldKind selects the form control and the parsing of a field.
type FieldKind string

// Field kinds.
const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindMarkdown FieldKind = "markdown"
	KindList     FieldKind = "list"
	KindSelect   FieldKind = "select"
	KindNumber   FieldKind = "number"
	KindCheckbox FieldKind = "checkbox"
	KindDate     FieldKind = "date"
	KindURL      FieldKind = "url"
	KindEmail    FieldKind = "email"
)

// Field describes one editable attribute. Name is the JSON key on the backend.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
	Help     string
}

// AdminResource is the schema of a generic admin CRUD screen.
type AdminResource struct {
	Path     string // backend resource and admin URL segment
	Name     string
	Plural   string
	TitleKey string
	Statuses []string
	Fields   []Field
	Columns  []string
}

// URL returns the admin URL of the resource, with optional extra segments.
func (res *AdminResource) URL(parts ...any) string {
	u := "/admin/" + res.Path
	for _, p := range parts {
		u += "/" + fmt.Sprint(p)
	}
	return u
}

// Field returns the field named name.
func (res *AdminResource) Field(name string) (Field, bool) {
	for _, f := range res.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the column heading of a field.
func (res *AdminResource) Label(name string) string {
	if f, ok := res.Field(name); ok {
		return f.Label
	}
	return name
}

// NextStatus returns the status after current in the cycle of Statuses.
func (res *AdminResource) NextStatus(current any) string {
	if len(res.Statuses) == 0 {
		return ""
	}
	i := slices.Index(res.Statuses, fmt.Sprint(current))
	return res.Statuses[(i+1)%len(res.Statuses)]
}

// Title returns the display title of a record.
func (res *AdminResource) Title(rec map[string]any) string {
	return Cell(rec, res.TitleKey)
}

// Cell formats one value of rec.
func (res *AdminResource) Cell(rec map[string]any, key string) string { return Cell(rec, key) }

// ID returns the id of rec.
func (res *AdminResource) ID(rec map[string]any) int64 { return RecordID(rec) }

// Cell formats a record value for a table cell.
func Cell(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, it := range v {
			parts = append(parts, fmt.Sprint(it))
		}
		return strings.Join(parts, ", ")
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// RecordID returns the numeric id of a decoded record.
func RecordID(rec map[string]any) int64 {
	if v, ok := rec["id"].(float64); ok {
		return int64(v)
	}
	return 0
}

// matchRecord reports whether any string value of rec contains q.
func matchRecord(rec map[string]any, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, v := range rec {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// FormValues converts a decoded record into form input values.
func (res *AdminResource) FormValues(rec map[string]any) map[string]string {
	values := make(map[string]string, len(res.Fields))
	for _, f := range res.Fields {
		v, ok := rec[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case KindList:
			if items, ok := v.([]any); ok {
				lines := make([]string, 0, len(items))
				for _, it := range items {
					lines = append(lines, fmt.Sprint(it))
				}
				values[f.Name] = strings.Join(lines, "\n")
			}
		case KindCheckbox:
			if b, ok := v.(bool); ok && b {
				values[f.Name] = "on"
			}
		case KindDate:
			if s, ok := v.(string); ok && len(s) >= 10 {
				values[f.Name] = s[:10]
			}
		default:
			values[f.Name] = Cell(rec, f.Name)
		}
	}
	return values
}

// ParseForm builds the backend payload from a submitted form. It returns the
// payload, the raw values for re-rendering and the per-field errors.
func (res *AdminResource) ParseForm(form url.Values) (map[string]any, map[string]string, map[string]string) {
	payload := make(map[string]any, len(res.Fields))
	values := make(map[string]string, len(res.Fields))
	errs := map[string]string{}

	for _, f := range res.Fields {
		raw := strings.TrimSpace(form.Get(f.Name))
		values[f.Name] = raw
		if f.Required && raw == "" && f.Kind != KindCheckbox {
			errs[f.Name] = f.Label + " is required"
			continue
		}

		switch f.Kind {
		case KindList:
			lines := model.ParseLines(raw)
			values[f.Name] = lines.Lines()
			payload[f.Name] = []string(lines)
		case KindNumber:
			if raw == "" {
				payload[f.Name] = 0
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs[f.Name] = f.Label + " must be a whole number"
				continue
			}
			payload[f.Name] = n
		case KindCheckbox:
			on := raw == "on" || raw == "true"
			if on {
				values[f.Name] = "on"
			}
			payload[f.Name] = on
		case KindDate:
			if raw == "" {
				payload[f.Name] = nil
				continue
			}
			t, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				errs[f.Name] = f.Label + " must be a date"
				continue
			}
			payload[f.Name] = t
		case KindSelect:
			if raw != "" && len(f.Options) > 0 && !slices.Contains(f.Options, raw) {
				errs[f.Name] = f.Label + " has an invalid value"
				continue
			}
			payload[f.Name] = raw
		default:
			payload[f.Name] = raw
		}
	}
	if len(errs) == 0 {
		errs = nil
	}
	return payload, values, errs
}

// AdminListData is the data of a resource list screen.
type AdminListData struct {
	Resource   *AdminResource
	Items      []map[string]any
	Pagination Pagination
	Query      string
	Status     string
}

// AdminFormData is the data of a create or edit form.
type AdminFormData struct {
	Resource *AdminResource
	ID       int64
	Values   map[string]string
	Errors   map[string]string
	Message  string
}

// IsNew reports whether the form creates a record.
func (d AdminFormData) IsNew() bool { return d.ID == 0 }

// Action returns the form's target URL.
func (d AdminFormData) Action() string {
	if d.IsNew() {
		return d.Resource.URL()
	}
	return d.Resource.URL(d.ID)
}

var statusField = Field{Name: "status", Label: "Status", Kind: KindSelect, Required: true}

func withStatus(statuses []string, fields ...Field) []Field {
	s := statusField
	s.Options = statuses
	return append(fields, s)
}

var seoFields = []Field{
	{Name: "metaTitle", Label: "Meta title", Kind: KindText},
	{Name: "metaDescription", Label: "Meta description", Kind: KindTextarea},
}

// AdminResources returns the schemas of the generic admin screens.
func AdminResources() []*AdminResource {
	return []*AdminResource{
		{
			Path: "services", Name: "Service", Plural: "Services", TitleKey: "title",
			Statuses: model.ActiveStatuses,
			Columns:  []string{"title", "price", "featured", "sortOrder"},
			Fields: withStatus(model.ActiveStatuses, append([]Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "slug", Label: "Slug", Kind: KindText, Help: "Generated from the title when empty"},
				{Name: "description", Label: "Description", Kind: KindTextarea, Required: true},
				{Name: "content", Label: "Content", Kind: KindMarkdown},
				{Name: "icon", Label: "Icon", Kind: KindText},
				{Name: "image", Label: "Image URL", Kind: KindText},
				{Name: "features", Label: "Features", Kind: KindList, Help: "One per line"},
				{Name: "price", Label: "Price", Kind: KindText},
				{Name: "featured", Label: "Featured", Kind: KindCheckbox},
				{Name: "sortOrder", Label: "Sort order", Kind: KindNumber},
			}, seoFields...)...),
		},
		{
			Path: "projects", Name: "Project", Plural: "Projects", TitleKey: "title",
			Statuses: model.ProjectStatuses,
			Columns:  []string{"title", "category", "client", "featured"},
			Fields: withStatus(model.ProjectStatuses, append([]Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "slug", Label: "Slug", Kind: KindText, Help: "Generated from the title when empty"},
				{Name: "description", Label: "Description", Kind: KindTextarea, Required: true},
				{Name: "content", Label: "Content", Kind: KindMarkdown},
				{Name: "category", Label: "Category", Kind: KindSelect, Options: append([]string{""}, projectCategories...)},
				{Name: "client", Label: "Client", Kind: KindText},
				{Name: "location", Label: "Location", Kind: KindText},
				{Name: "coverImage", Label: "Cover image URL", Kind: KindText},
				{Name: "images", Label: "Gallery images", Kind: KindList, Help: "One URL per line"},
				{Name: "technologies", Label: "Materials", Kind: KindList, Help: "One per line"},
				{Name: "tags", Label: "Tags", Kind: KindList, Help: "One per line"},
				{Name: "featured", Label: "Featured", Kind: KindCheckbox},
				{Name: "completedAt", Label: "Completed", Kind: KindDate},
			}, seoFields...)...),
		},
		{
			Path: "blog", Name: "Blog post", Plural: "Blog posts", TitleKey: "title",
			Statuses: model.BlogStatuses,
			Columns:  []string{"title", "category", "author", "views"},
			Fields: withStatus(model.BlogStatuses, append([]Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "slug", Label: "Slug", Kind: KindText, Help: "Generated from the title when empty"},
				{Name: "excerpt", Label: "Excerpt", Kind: KindTextarea},
				{Name: "content", Label: "Content", Kind: KindMarkdown, Required: true},
				{Name: "coverImage", Label: "Cover image URL", Kind: KindText},
				{Name: "author", Label: "Author", Kind: KindText},
				{Name: "category", Label: "Category", Kind: KindText},
				{Name: "tags", Label: "Tags", Kind: KindList, Help: "One per line"},
				{Name: "featured", Label: "Featured", Kind: KindCheckbox},
				{Name: "publishedAt", Label: "Published", Kind: KindDate},
			}, seoFields...)...),
		},
		{
			Path: "team", Name: "Team member", Plural: "Team", TitleKey: "name",
			Statuses: model.ActiveStatuses,
			Columns:  []string{"name", "position", "sortOrder"},
			Fields: withStatus(model.ActiveStatuses,
				Field{Name: "name", Label: "Name", Kind: KindText, Required: true},
				Field{Name: "position", Label: "Position", Kind: KindText, Required: true},
				Field{Name: "bio", Label: "Bio", Kind: KindTextarea},
				Field{Name: "image", Label: "Photo URL", Kind: KindText},
				Field{Name: "email", Label: "Email", Kind: KindEmail},
				Field{Name: "linkedin", Label: "LinkedIn", Kind: KindURL},
				Field{Name: "skills", Label: "Skills", Kind: KindList, Help: "One per line"},
				Field{Name: "sortOrder", Label: "Sort order", Kind: KindNumber},
			),
		},
		{
			Path: "testimonials", Name: "Testimonial", Plural: "Testimonials", TitleKey: "clientName",
			Statuses: model.ActiveStatuses,
			Columns:  []string{"clientName", "company", "rating", "featured"},
			Fields: withStatus(model.ActiveStatuses,
				Field{Name: "clientName", Label: "Client name", Kind: KindText, Required: true},
				Field{Name: "clientPosition", Label: "Position", Kind: KindText},
				Field{Name: "company", Label: "Company", Kind: KindText},
				Field{Name: "content", Label: "Testimonial", Kind: KindTextarea, Required: true},
				Field{Name: "rating", Label: "Rating", Kind: KindNumber, Help: "1 to 5"},
				Field{Name: "avatar", Label: "Avatar URL", Kind: KindText},
				Field{Name: "featured", Label: "Featured", Kind: KindCheckbox},
				Field{Name: "sortOrder", Label: "Sort order", Kind: KindNumber},
			),
		},
		{
			Path: "hero-slides", Name: "Hero slide", Plural: "Hero slides", TitleKey: "title",
			Statuses: model.ActiveStatuses,
			Columns:  []string{"title", "sortOrder", "views", "clicks"},
			Fields: withStatus(model.ActiveStatuses,
				Field{Name: "title", Label: "Title", Kind: KindText, Required: true},
				Field{Name: "subtitle", Label: "Subtitle", Kind: KindText},
				Field{Name: "description", Label: "Description", Kind: KindTextarea},
				Field{Name: "image", Label: "Image URL", Kind: KindText, Required: true},
				Field{Name: "ctaText", Label: "Button text", Kind: KindText},
				Field{Name: "ctaLink", Label: "Button link", Kind: KindText},
				Field{Name: "sortOrder", Label: "Sort order", Kind: KindNumber},
			),
		},
		{
			Path: "clients", Name: "Client", Plural: "Clients", TitleKey: "name",
			Statuses: model.ActiveStatuses,
			Columns:  []string{"name", "industry", "featured", "sortOrder"},
			Fields: withStatus(model.ActiveStatuses,
				Field{Name: "name", Label: "Name", Kind: KindText, Required: true},
				Field{Name: "logo", Label: "Logo URL", Kind: KindText},
				Field{Name: "website", Label: "Website", Kind: KindURL},
				Field{Name: "industry", Label: "Industry", Kind: KindText},
				Field{Name: "description", Label: "Description", Kind: KindTextarea},
				Field{Name: "featured", Label: "Featured", Kind: KindCheckbox},
				Field{Name: "sortOrder", Label: "Sort order", Kind: KindNumber},
			),
		},
	}
}

// adminData wraps screen data with the admin layout fields.
func (h *Handler) adminData(r *http.Request, title string, data any) render.TemplateData {
	return render.TemplateData{
		Title:       title,
		Site:        h.site.View(),
		Data:        data,
		CurrentPath: r.URL.Path,
		Admin:       h.adminUser(r),
	}
}

func requestID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// resourceList renders the list screen of res.
func (h *Handler) resourceList(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := r.URL.Query()
		lq := model.ListQuery{Page: pageNumber(r), Limit: 50, Status: qs.Get("status")}
		page, err := client.List[map[string]any](r.Context(), h.client, res.Path, lq, h.token(r))
		if err != nil {
			if client.IsUnauthorized(err) {
				h.backendError(w, r, res.URL(), err)
				return
			}
			h.renderer.Flash(r, "error", errorMessage(err))
		}

		search := strings.TrimSpace(qs.Get("q"))
		items := make([]map[string]any, 0, len(page.Items))
		for _, rec := range page.Items {
			if matchRecord(rec, search) {
				items = append(items, rec)
			}
		}

		h.renderer.Page(w, r, "admin/resource_list", h.adminData(r, res.Plural, AdminListData{
			Resource:   res,
			Items:      items,
			Pagination: BuildPagination(page.Pagination, res.URL(), qs),
			Query:      search,
			Status:     lq.Normalized().Status,
		}))
	}
}

// resourceNew renders an empty form.
func (h *Handler) resourceNew(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := map[string]string{}
		if len(res.Statuses) > 0 {
			values["status"] = res.Statuses[0]
		}
		h.renderer.Page(w, r, "admin/resource_form", h.adminData(r, "New "+strings.ToLower(res.Name),
			AdminFormData{Resource: res, Values: values}))
	}
}

// resourceEdit renders the form of an existing record.
func (h *Handler) resourceEdit(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			h.flashError(w, r, res.URL(), res.Name+" not found")
			return
		}
		rec, err := client.Get[map[string]any](r.Context(), h.client, res.Path, id, h.token(r))
		if err != nil {
			h.backendError(w, r, res.URL(), err)
			return
		}
		h.renderer.Page(w, r, "admin/resource_form", h.adminData(r, "Edit "+strings.ToLower(res.Name),
			AdminFormData{Resource: res, ID: id, Values: res.FormValues(rec)}))
	}
}

// resourceSave handles create (no id) and update submissions.
func (h *Handler) resourceSave(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID := requestID(r)
		if chi.URLParam(r, "id") != "" && !hasID {
			h.flashError(w, r, res.URL(), res.Name+" not found")
			return
		}
		if !h.parseFormOrRedirect(w, r, res.URL()) {
			return
		}

		payload, values, errs := res.ParseForm(r.PostForm)
		form := AdminFormData{Resource: res, ID: id, Values: values, Errors: errs}
		title := "New " + strings.ToLower(res.Name)
		if hasID {
			title = "Edit " + strings.ToLower(res.Name)
		}
		if errs != nil {
			form.Message = "Please correct the errors below."
			h.renderer.Status(w, r, http.StatusUnprocessableEntity, "admin/resource_form", h.adminData(r, title, form))
			return
		}

		method, path, verb := http.MethodPost, res.Path, "created"
		if hasID {
			method, path, verb = http.MethodPut, res.Path+"/"+strconv.FormatInt(id, 10), "updated"
		}
		_, err := client.Call[map[string]any](r.Context(), h.client, method, path, nil, payload, h.token(r))
		if err != nil {
			if client.IsUnauthorized(err) {
				h.backendError(w, r, res.URL(), err)
				return
			}
			form.Message = errorMessage(err)
			form.Errors = fieldErrors(err)
			status := http.StatusUnprocessableEntity
			var apiErr *client.APIError
			if !errors.As(err, &apiErr) {
				status = http.StatusBadGateway
			}
			h.renderer.Status(w, r, status, "admin/resource_form", h.adminData(r, title, form))
			return
		}

		h.fetcher.Invalidate(r.Context(), res.Path)
		h.flashSuccess(w, r, res.URL(), res.Name+" "+verb+" successfully")
	}
}

// resourceDelete deletes a record.
func (h *Handler) resourceDelete(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			h.flashError(w, r, res.URL(), res.Name+" not found")
			return
		}
		path := res.Path + "/" + strconv.FormatInt(id, 10)
		if _, err := client.Call[any](r.Context(), h.client, http.MethodDelete, path, nil, nil, h.token(r)); err != nil {
			h.backendError(w, r, res.URL(), err)
			return
		}
		h.fetcher.Invalidate(r.Context(), res.Path)
		h.flashSuccess(w, r, res.URL(), res.Name+" deleted successfully")
	}
}

// resourceStatus sets the status of a record from the list screen.
func (h *Handler) resourceStatus(res *AdminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			h.flashError(w, r, res.URL(), res.Name+" not found")
			return
		}
		if !h.parseFormOrRedirect(w, r, res.URL()) {
			return
		}
		status := r.PostForm.Get("status")
		path := res.Path + "/" + strconv.FormatInt(id, 10) + "/status"
		_, err := client.Call[map[string]any](r.Context(), h.client, http.MethodPut, path, nil,
			model.StatusInput{Status: status}, h.token(r))
		if err != nil {
			h.backendError(w, r, res.URL(), err)
			return
		}
		h.fetcher.Invalidate(r.Context(), res.Path)
		h.flashSuccess(w, r, res.URL(), res.Name+" status set to "+strings.ToLower(status))
	}
}

// mountResource registers the screens of res on r.
func (h *Handler) mountResource(r chi.Router, res *AdminResource) {
	r.Route("/"+res.Path, func(r chi.Router) {
		r.Get("/", h.resourceList(res))
		r.Get("/new", h.resourceNew(res))
		r.Post("/", h.resourceSave(res))
		r.Get("/{id}/edit", h.resourceEdit(res))
		r.Post("/{id}", h.resourceSave(res))
		r.Post("/{id}/delete", h.resourceDelete(res))
		r.Post("/{id}/status", h.resourceStatus(res))
	})
}
