// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders blog content to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	// ugc allows the tags markdown produces plus heading ids.
	ugc = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		p.RequireNoFollowOnLinks(true)
		return p
	}()

	strict = bluemonday.StrictPolicy()
)

// Render converts markdown to sanitized HTML. Raw HTML in the source is
// passed through goldmark's escaping and then sanitized.
func Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(ugc.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// Sanitize strips unsafe markup from HTML.
func Sanitize(html string) template.HTML {
	return template.HTML(ugc.Sanitize(html)) //nolint:gosec // sanitized
}

// PlainText removes every tag, e.g. for meta descriptions.
func PlainText(s string) string {
	return strings.Join(strings.Fields(strict.Sanitize(s)), " ")
}

// Excerpt returns the first n runes of the plain text of markdown source.
func Excerpt(source string, n int) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	text := []rune(PlainText(buf.String()))
	if len(text) <= n {
		return string(text)
	}
	return strings.TrimSpace(string(text[:n])) + "…"
}
