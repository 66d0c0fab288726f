// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/textura/internal/markdown"
	"github.com/olegiv/textura/internal/model"
)

// Funcs returns the template function map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"dateInput":      dateInput,
		"truncate":       truncate,
		"markdown":       renderMarkdown,
		"plain":          markdown.PlainText,
		"lines":          func(l model.StringList) string { return l.Lines() },
		"join":           func(l model.StringList, sep string) string { return strings.Join(l, sep) },
		"toJSON":         toJSON,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
		"seq":            seq,
		"stars":          stars,
		"pct":            func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) + "%" },
		"pageURL":        pageURL,
		"hasPrefix":      strings.HasPrefix,
		"lower":          strings.ToLower,
		"statusClass":    statusClass,
		"dict":           dict,
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

func formatDate(v any) string {
	if t, ok := asTime(v); ok {
		return t.Format("Jan 2, 2006")
	}
	return ""
}

func formatDateTime(v any) string {
	if t, ok := asTime(v); ok {
		return t.Format("Jan 2, 2006 3:04 PM")
	}
	return ""
}

// dateInput formats a date for <input type="date">.
func dateInput(v any) string {
	if t, ok := asTime(v); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func renderMarkdown(s string) template.HTML {
	out, err := markdown.Render(s)
	if err != nil {
		return ""
	}
	return out
}

func toJSON(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return template.JS(data) //nolint:gosec // json.Marshal escapes HTML
}

func seq(start, end int) []int {
	var out []int
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// stars returns a five-star rating string.
func stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// pageURL returns "?<query>" with page replaced.
func pageURL(q url.Values, page int) string {
	v := url.Values{}
	for k, vals := range q {
		v[k] = append([]string(nil), vals...)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	} else {
		v.Del("page")
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}

func statusClass(status string) string {
	switch status {
	case model.StatusActive, model.StatusPublished, model.StatusReplied:
		return "badge-success"
	case model.StatusUnread:
		return "badge-warning"
	case model.StatusArchived, model.StatusInactive:
		return "badge-muted"
	default:
		return "badge-info"
	}
}

// dict builds a map from key/value pairs for passing to sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
