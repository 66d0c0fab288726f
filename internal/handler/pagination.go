// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/url"

	"github.com/olegiv/textura/internal/model"
)

// Pagination holds pagination links for storefront and admin templates.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	Pages       []PaginationPage
}

// PaginationPage represents a single page link.
type PaginationPage struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// BuildPagination turns a backend pagination block into page links.
// baseURL is the path without query string (e.g. "/projects") and query the
// current filters to preserve; its page parameter is ignored.
func BuildPagination(p *model.Pagination, baseURL string, query url.Values) Pagination {
	if p == nil {
		return Pagination{CurrentPage: 1, TotalPages: 1}
	}
	totalPages := max(p.TotalPages, 1)
	current := ClampPage(p.Page, totalPages)

	params := make(url.Values)
	for k, v := range query {
		if k != "page" && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}
	qs := params.Encode()
	buildURL := func(page int) string {
		if qs != "" {
			return fmt.Sprintf("%s?%s&page=%d", baseURL, qs, page)
		}
		return fmt.Sprintf("%s?page=%d", baseURL, page)
	}

	pg := Pagination{
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  p.Total,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
	}
	if pg.HasPrev {
		pg.PrevURL = buildURL(current - 1)
	}
	if pg.HasNext {
		pg.NextURL = buildURL(current + 1)
	}

	// Show at most 5 pages around the current one, with ellipses.
	start, end := current-2, current+2
	if start < 1 {
		start, end = 1, 5
	}
	if end > totalPages {
		end = totalPages
		start = max(end-4, 1)
	}

	if start > 1 {
		pg.Pages = append(pg.Pages, PaginationPage{Number: 1, URL: buildURL(1)})
		if start > 2 {
			pg.Pages = append(pg.Pages, PaginationPage{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		pg.Pages = append(pg.Pages, PaginationPage{Number: i, URL: buildURL(i), IsCurrent: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			pg.Pages = append(pg.Pages, PaginationPage{IsEllipsis: true})
		}
		pg.Pages = append(pg.Pages, PaginationPage{Number: totalPages, URL: buildURL(totalPages)})
	}
	return pg
}

// ClampPage ensures page is within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
