// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
)

// Resource wires the CRUD endpoints of one content type. T is the stored
// record and I its create/update payload.
type Resource[T any, I any] struct {
	// Name is the singular display name used in messages, e.g. "Service".
	Name string
	// Plural is used in list messages, e.g. "Services".
	Plural string
	// Statuses are the accepted status values; PublicStatus is the one
	// anonymous callers may see.
	Statuses     []string
	PublicStatus string

	List      func(context.Context, model.ListQuery) ([]T, int64, error)
	Get       func(context.Context, int64) (T, error)
	GetBySlug func(context.Context, string) (T, error)
	Create    func(context.Context, I) (T, error)
	Update    func(context.Context, int64, I) (T, error)
	Delete    func(context.Context, int64) error
	SetStatus func(context.Context, int64, string) (T, error)

	// Input extracts the editable fields of a record; Normalize cleans a payload.
	Input     func(T) I
	Normalize func(*I)
	// Status reads the status of a record.
	Status func(T) string
	// OnSlugView runs after a public slug lookup.
	OnSlugView func(context.Context, T)

	validate *Validator
	h        *Handler
}

// Routes mounts the resource on r. requireAuth guards mutating endpoints.
func (res *Resource[T, I]) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", res.list)
	if res.GetBySlug != nil {
		r.Get("/slug/{slug}", res.getBySlug)
	}
	r.Get("/{id}", res.get)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", res.create)
		r.Put("/{id}", res.update)
		r.Delete("/{id}", res.delete)
		r.Put("/{id}/status", res.setStatus)
	})
}

func (res *Resource[T, I]) lower() string {
	return strings.ToLower(res.Name)
}

func (res *Resource[T, I]) notFound() string {
	return res.Name + " not found"
}

// visible reports whether an anonymous caller may see rec.
func (res *Resource[T, I]) visible(r *http.Request, rec T) bool {
	if middleware.IsAdmin(r) || res.PublicStatus == "" || res.Status == nil {
		return true
	}
	return res.Status(rec) == res.PublicStatus
}

func (res *Resource[T, I]) list(w http.ResponseWriter, r *http.Request) {
	lq := model.ParseListQuery(r.URL.Query())
	if !middleware.IsAdmin(r) && res.PublicStatus != "" {
		lq.Status = ""
		lq.Active = true
	}

	items, total, err := res.List(r.Context(), lq)
	if err != nil {
		res.h.internalError(w, r, "Failed to fetch "+strings.ToLower(res.Plural), err)
		return
	}
	WriteList(w, res.Plural+" retrieved successfully", items, lq, total)
}

func (res *Resource[T, I]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, res.Name)
	if !ok {
		return
	}
	rec, err := res.Get(r.Context(), id)
	if err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to fetch "+res.lower())
		return
	}
	if !res.visible(r, rec) {
		WriteError(w, http.StatusNotFound, res.notFound())
		return
	}
	WriteSuccess(w, res.Name+" retrieved successfully", rec)
}

func (res *Resource[T, I]) getBySlug(w http.ResponseWriter, r *http.Request) {
	rec, err := res.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to fetch "+res.lower())
		return
	}
	if !res.visible(r, rec) {
		WriteError(w, http.StatusNotFound, res.notFound())
		return
	}
	if res.OnSlugView != nil && !middleware.IsAdmin(r) {
		res.OnSlugView(r.Context(), rec)
	}
	WriteSuccess(w, res.Name+" retrieved successfully", rec)
}

// validateInput normalizes in and writes a 400 when it is invalid.
func (res *Resource[T, I]) validateInput(w http.ResponseWriter, in *I) bool {
	if res.Normalize != nil {
		res.Normalize(in)
	}
	if errs := res.validate.Struct(in); errs != nil {
		WriteValidationError(w, errs)
		return false
	}
	return true
}

func (res *Resource[T, I]) create(w http.ResponseWriter, r *http.Request) {
	var in I
	if !decodeJSON(w, r, &in) || !res.validateInput(w, &in) {
		return
	}
	rec, err := res.Create(r.Context(), in)
	if err != nil {
		res.h.internalError(w, r, "Failed to create "+res.lower(), err)
		return
	}
	res.h.logger.InfoContext(r.Context(), res.lower()+" created", "user_id", callerID(r))
	WriteCreated(w, res.Name+" created successfully", rec)
}

// update applies the body onto the stored record, so absent fields keep their value.
func (res *Resource[T, I]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, res.Name)
	if !ok {
		return
	}
	current, err := res.Get(r.Context(), id)
	if err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to update "+res.lower())
		return
	}

	in := res.Input(current)
	if !decodeJSON(w, r, &in) || !res.validateInput(w, &in) {
		return
	}
	rec, err := res.Update(r.Context(), id, in)
	if err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to update "+res.lower())
		return
	}
	WriteSuccess(w, res.Name+" updated successfully", rec)
}

func (res *Resource[T, I]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, res.Name)
	if !ok {
		return
	}
	if err := res.Delete(r.Context(), id); err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to delete "+res.lower())
		return
	}
	res.h.logger.InfoContext(r.Context(), res.lower()+" deleted", "id", id, "user_id", callerID(r))
	WriteMessage(w, res.Name+" deleted successfully")
}

func (res *Resource[T, I]) setStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, res.Name)
	if !ok {
		return
	}
	var in model.StatusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if !model.ValidStatus(res.Statuses, status) {
		WriteJSON(w, http.StatusBadRequest, model.Envelope[any]{
			Success: false,
			Message: "Invalid status",
			Errors:  map[string]string{"status": "status must be one of: " + strings.Join(res.Statuses, ", ")},
		})
		return
	}
	rec, err := res.SetStatus(r.Context(), id, status)
	if err != nil {
		res.h.storeError(w, r, err, res.notFound(), "Failed to update "+res.lower()+" status")
		return
	}
	WriteSuccess(w, res.Name+" status updated successfully", rec)
}

func callerID(r *http.Request) int64 {
	if c := middleware.GetClaims(r); c != nil {
		return c.UserID()
	}
	return 0
}
