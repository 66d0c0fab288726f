// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			source:   "# Linen\n\nWashed *linen* softens.",
			contains: []string{`<h1 id="linen">Linen</h1>`, "<em>linen</em>"},
		},
		{
			name:     "table extension",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "raw script is dropped",
			source:   "hello <script>alert(1)</script>",
			excludes: []string{"<script"},
		},
		{
			name:     "javascript link is dropped",
			source:   "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "links get nofollow",
			source:   "[mill](https://example.com)",
			contains: []string{`rel="nofollow"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.source)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(got), want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(string(got), bad) {
					t.Errorf("output %q contains %q", got, bad)
				}
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	got := string(Sanitize(`<p onclick="x()">hi</p><img src=x onerror=alert(1)>`))
	if strings.Contains(got, "onclick") || strings.Contains(got, "onerror") {
		t.Errorf("Sanitize kept event handlers: %q", got)
	}
}

func TestPlainTextAndExcerpt(t *testing.T) {
	if got := PlainText("<p>Hello   <b>world</b></p>"); got != "Hello world" {
		t.Errorf("PlainText = %q", got)
	}
	if got := Excerpt("**Bold** start of a long post", 10); got != "Bold start…" {
		t.Errorf("Excerpt = %q", got)
	}
	if got := Excerpt("short", 10); got != "short" {
		t.Errorf("Excerpt = %q", got)
	}
}
