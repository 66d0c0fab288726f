// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers of the backend API.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/textura/internal/auth"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/store"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Config holds the dependencies of the API handlers.
type Config struct {
	DB             *sql.DB
	Issuer         *auth.TokenIssuer
	Logger         *slog.Logger
	UploadsDir     string
	UploadsURL     string
	MaxUploadBytes int64
	Login          *middleware.LoginProtection
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db             *sql.DB
	queries        *store.Queries
	issuer         *auth.TokenIssuer
	logger         *slog.Logger
	validate       *Validator
	login          *middleware.LoginProtection
	uploadsDir     string
	uploadsURL     string
	maxUploadBytes int64
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	login := cfg.Login
	if login == nil {
		login = middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	}
	uploadsURL := strings.TrimSuffix(cfg.UploadsURL, "/")
	if uploadsURL == "" {
		uploadsURL = "/uploads"
	}
	return &Handler{
		db:             cfg.DB,
		queries:        store.New(cfg.DB),
		issuer:         cfg.Issuer,
		logger:         logger,
		validate:       NewValidator(),
		login:          login,
		uploadsDir:     cfg.UploadsDir,
		uploadsURL:     uploadsURL,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a 200 envelope carrying data.
func WriteSuccess[T any](w http.ResponseWriter, message string, data T) {
	WriteJSON(w, http.StatusOK, model.Envelope[T]{Success: true, Message: message, Data: data})
}

// WriteCreated writes a 201 envelope carrying data.
func WriteCreated[T any](w http.ResponseWriter, message string, data T) {
	WriteJSON(w, http.StatusCreated, model.Envelope[T]{Success: true, Message: message, Data: data})
}

// WriteList writes a 200 envelope with one page of items.
func WriteList[T any](w http.ResponseWriter, message string, items []T, lq model.ListQuery, total int64) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, model.Envelope[[]T]{
		Success:    true,
		Message:    message,
		Data:       items,
		Pagination: model.NewPagination(lq.Page, lq.Limit, total),
	})
}

// WriteMessage writes a successful envelope without data.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, model.Envelope[any]{Success: true, Message: message})
}

// WriteError writes a failed envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, model.Envelope[any]{Success: false, Message: message})
}

// WriteValidationError writes a 400 envelope with per-field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteJSON(w, http.StatusBadRequest, model.Envelope[any]{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// internalError logs err and writes a 500 envelope with message.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.ErrorContext(r.Context(), message, "error", err, "path", r.URL.Path)
	WriteError(w, http.StatusInternalServerError, message)
}

// storeError maps a store error: ErrNotFound becomes 404 notFound, anything
// else a logged 500 with failed.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error, notFound, failed string) {
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, notFound)
		return
	}
	h.internalError(w, r, failed, err)
}

// decodeJSON decodes the request body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ParseIDParam parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// requireID parses {id} or writes a 400.
func requireID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid "+strings.ToLower(entity)+" ID")
		return 0, false
	}
	return id, true
}
