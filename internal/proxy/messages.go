// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package proxy

import "net/http"

type resource struct {
	singular string
	plural   string
	// special maps "METHOD last-segment" to a fixed message.
	special map[string]string
}

var resources = map[string]resource{
	"services":     {singular: "service", plural: "services"},
	"projects":     {singular: "project", plural: "projects"},
	"blog":         {singular: "blog post", plural: "blog posts"},
	"team":         {singular: "team member", plural: "team members"},
	"testimonials": {singular: "testimonial", plural: "testimonials"},
	"clients":      {singular: "client", plural: "clients"},
	"hero-slides": {singular: "hero slide", plural: "hero slides", special: map[string]string{
		"POST track-click": "Failed to track click",
		"POST *":           "Failed to track view",
		"GET summary":      "Failed to fetch hero slide analytics",
	}},
	"contact": {singular: "contact submission", plural: "contact submissions", special: map[string]string{
		"POST contact":    "Failed to send message",
		"GET submissions": "Failed to fetch contact submissions",
		"GET stats":       "Failed to fetch contact stats",
	}},
	"settings": {singular: "setting", plural: "settings", special: map[string]string{
		"PUT settings": "Failed to update settings",
	}},
	"notifications": {singular: "notification", plural: "notifications", special: map[string]string{
		"GET unread-count": "Failed to fetch unread count",
		"PUT read-all":     "Failed to mark notifications as read",
		"PUT read":         "Failed to mark notification as read",
	}},
	"auth": {singular: "session", plural: "sessions", special: map[string]string{
		"POST login": "Login failed",
		"GET me":     "Failed to fetch current user",
	}},
	"media": {singular: "media file", plural: "media", special: map[string]string{
		"POST media": "Failed to upload file",
	}},
}

// failureMessage returns the static message sent when the backend cannot be
// reached. segments[0] is the resource path.
func (res resource) failureMessage(method string, segments []string) string {
	last := segments[len(segments)-1]
	if msg, ok := res.special[method+" "+last]; ok {
		return msg
	}
	if len(segments) > 1 {
		if msg, ok := res.special[method+" *"]; ok {
			return msg
		}
	}

	switch method {
	case http.MethodGet, http.MethodHead:
		if len(segments) == 1 {
			return "Failed to fetch " + res.plural
		}
		return "Failed to fetch " + res.singular
	case http.MethodPost:
		return "Failed to create " + res.singular
	case http.MethodPut, http.MethodPatch:
		if last == "status" {
			return "Failed to update " + res.singular + " status"
		}
		return "Failed to update " + res.singular
	case http.MethodDelete:
		return "Failed to delete " + res.singular
	}
	return "Request failed"
}
