// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fallback holds the literal records the storefront shows when the
// backend is unreachable and nothing is cached.
package fallback

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/olegiv/textura/internal/model"
)

// Services returns the fallback services, featured first.
func Services() []model.Service {
	return slices.Clone(services)
}

// ServiceBySlug returns the fallback service with slug.
func ServiceBySlug(slug string) (model.Service, bool) {
	return bySlug(services, slug, func(s model.Service) string { return s.Slug })
}

// Projects returns the fallback projects.
func Projects() []model.Project {
	return slices.Clone(projects)
}

// ProjectBySlug returns the fallback project with slug.
func ProjectBySlug(slug string) (model.Project, bool) {
	return bySlug(projects, slug, func(p model.Project) string { return p.Slug })
}

// BlogPosts returns the fallback blog posts, newest first.
func BlogPosts() []model.BlogPost {
	return slices.Clone(posts)
}

// BlogPostBySlug returns the fallback blog post with slug.
func BlogPostBySlug(slug string) (model.BlogPost, bool) {
	return bySlug(posts, slug, func(p model.BlogPost) string { return p.Slug })
}

func Testimonials() []model.Testimonial { return slices.Clone(testimonials) }

func TeamMembers() []model.TeamMember { return slices.Clone(team) }

func Clients() []model.Client { return slices.Clone(clients) }

func HeroSlides() []model.HeroSlide { return slices.Clone(heroSlides) }

// Settings returns the default site settings map.
func Settings() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(settings))
	for k, v := range settings {
		out[k] = json.RawMessage(v)
	}
	return out
}

// Page applies category, featured, search and paging of q to items.
// match reports whether an item passes the text and category filters.
func Page[T any](items []T, q model.ListQuery, match func(T, model.ListQuery) bool) ([]T, *model.Pagination) {
	q = q.Normalized()
	var kept []T
	for _, it := range items {
		if match == nil || match(it, q) {
			kept = append(kept, it)
		}
	}
	total := int64(len(kept))
	start := min(q.Offset(), len(kept))
	end := min(start+q.Limit, len(kept))
	return kept[start:end], model.NewPagination(q.Page, q.Limit, total)
}

// MatchProject filters projects by category, featured and search.
func MatchProject(p model.Project, q model.ListQuery) bool {
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.Featured && !p.Featured {
		return false
	}
	return containsFold(q.Search, p.Title, p.Description)
}

// MatchBlogPost filters posts by category, featured and search.
func MatchBlogPost(p model.BlogPost, q model.ListQuery) bool {
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.Featured && !p.Featured {
		return false
	}
	return containsFold(q.Search, p.Title, p.Excerpt, p.Content)
}

// MatchService filters services by featured and search.
func MatchService(s model.Service, q model.ListQuery) bool {
	if q.Featured && !s.Featured {
		return false
	}
	return containsFold(q.Search, s.Title, s.Description)
}

func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func bySlug[T any](items []T, slug string, key func(T) string) (T, bool) {
	for _, it := range items {
		if key(it) == slug {
			return it, true
		}
	}
	var zero T
	return zero, false
}

var published = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

var services = []model.Service{
	{
		ID: 1, Title: "Bespoke Upholstery", Slug: "bespoke-upholstery", Icon: "sofa",
		Description: "Hand-finished upholstery in natural fibres, built to order for residential and hospitality interiors.",
		Features:    model.StringList{"Fabric consultation", "Hand-tied springs", "Natural fibre fillings"},
		Price:       "From $1,200", Status: model.StatusActive, Featured: true, SortOrder: 1,
	},
	{
		ID: 2, Title: "Made-to-Measure Drapery", Slug: "made-to-measure-drapery", Icon: "curtains",
		Description: "Curtains and blinds cut, lined and finished in our workroom, measured and installed by our fitters.",
		Features:    model.StringList{"On-site measuring", "Interlined and blackout options"},
		Price:       "From $650", Status: model.StatusActive, Featured: true, SortOrder: 2,
	},
	{
		ID: 3, Title: "Custom Woven Textiles", Slug: "custom-woven-textiles", Icon: "loom",
		Description: "Limited-run jacquards and plain weaves developed with partner mills to a project's palette.",
		Features:    model.StringList{"Colour matching", "Strike-offs within three weeks"},
		Price:       "On request", Status: model.StatusActive, Featured: true, SortOrder: 3,
	},
}

var projects = []model.Project{
	{
		ID: 1, Title: "Harbour House Residence", Slug: "harbour-house-residence",
		Description: "Full soft-furnishing scheme for a coastal home: drapery, upholstery and bed linens.",
		Category:    "Residential", Location: "Sydney",
		Technologies: model.StringList{"Belgian linen", "Wool bouclé"},
		Status:       model.StatusPublished, Featured: true,
	},
	{
		ID: 2, Title: "Maison Verre Boutique Hotel", Slug: "maison-verre-boutique-hotel",
		Description: "Woven headboards, blackout drapery and banquette seating for forty guest rooms.",
		Category:    "Hospitality", Client: "Maison Verre", Location: "Lyon",
		Technologies: model.StringList{"Custom jacquard", "Flame-retardant velvet"},
		Status:       model.StatusPublished, Featured: true,
	},
}

var posts = []model.BlogPost{
	{
		ID: 1, Title: "Choosing Linen for Coastal Homes", Slug: "choosing-linen-for-coastal-homes",
		Excerpt:  "Why washed linen ages well in salt air, and how to line it.",
		Content:  "Linen softens with every wash and shrugs off humidity.\n\nFor drapery near the sea, pair it with a cotton sateen lining.",
		Author:   "Textura Studio", Category: "Materials", Tags: model.StringList{"linen", "drapery"},
		Status:   model.StatusPublished, PublishedAt: &published,
	},
}

var testimonials = []model.Testimonial{
	{
		ID: 1, ClientName: "Claire Dubois", ClientPosition: "General Manager", Company: "Maison Verre",
		Content: "The workroom delivered forty rooms of drapery on schedule and the finish is impeccable.",
		Rating:  5, Status: model.StatusActive, Featured: true, SortOrder: 1,
	},
	{
		ID: 2, ClientName: "James Whitford", ClientPosition: "Homeowner",
		Content: "Our sofa was reupholstered in a linen they sourced for us. It looks better than the day we bought it.",
		Rating:  5, Status: model.StatusActive, Featured: true, SortOrder: 2,
	},
}

var team = []model.TeamMember{
	{
		ID: 1, Name: "Elena Marsh", Position: "Founder and Head of Design",
		Bio:    "Trained as a weaver before founding the studio.",
		Skills: model.StringList{"Weave design", "Colour"}, Status: model.StatusActive, SortOrder: 1,
	},
}

var clients = []model.Client{
	{ID: 1, Name: "Maison Verre", Industry: "Hospitality", Status: model.StatusActive, Featured: true, SortOrder: 1},
	{ID: 2, Name: "Atelier Nord", Industry: "Retail", Status: model.StatusActive, Featured: true, SortOrder: 2},
}

var heroSlides = []model.HeroSlide{
	{
		ID: 1, Title: "Textiles Made to Last", Subtitle: "Bespoke upholstery and drapery",
		Description: "Designed, woven and finished by hand.",
		Image:       "/static/img/hero-default.jpg", CTAText: "Explore services", CTALink: "/services",
		Status: model.StatusActive, SortOrder: 1,
	},
}

var settings = map[string]string{
	"site_name":        `"Textura"`,
	"site_tagline":     `"Luxury textiles, made to measure"`,
	"site_description": `"Bespoke upholstery, drapery and woven textiles for homes and hospitality."`,
	"contact_email":    `"studio@textura.local"`,
	"contact_phone":    `""`,
	"contact_address":  `""`,
	"social_links":     `{}`,
}
