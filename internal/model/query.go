// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Paging limits.
const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset well inside int range.
	MaxPage = math.MaxInt32 / MaxLimit
)

// ListQuery carries list filters between the storefront, the admin screens,
// the backend client and the store.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Category string
	Sort     string
	Active   bool
	Featured bool
	Unread   bool
}

// Offset returns the row offset of the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Normalized clamps paging to sane bounds.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	return q
}

// ParseListQuery reads a ListQuery from URL query values.
func ParseListQuery(v url.Values) ListQuery {
	page, _ := strconv.Atoi(v.Get("page"))
	limit, _ := strconv.Atoi(v.Get("limit"))
	return ListQuery{
		Page:     page,
		Limit:    limit,
		Search:   v.Get("search"),
		Status:   v.Get("status"),
		Category: v.Get("category"),
		Sort:     v.Get("sort"),
		Active:   v.Get("active") == "true",
		Featured: v.Get("featured") == "true",
		Unread:   v.Get("unread") == "true",
	}.Normalized()
}

// Values encodes the query for an outbound request. Zero fields are omitted.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	setIf(v, "search", q.Search)
	setIf(v, "status", q.Status)
	setIf(v, "category", q.Category)
	setIf(v, "sort", q.Sort)
	if q.Active {
		v.Set("active", "true")
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Unread {
		v.Set("unread", "true")
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
