// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/textura/internal/auth"
	"github.com/olegiv/textura/internal/model"
)

// SeedOptions configures the bootstrap admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// SeedResult reports how many fixture rows were written.
type SeedResult struct {
	Services     int
	Projects     int
	Testimonials int
	HeroCleared  int64
	AdminEmail   string
}

// Seed wipes the fixture tables and reinserts the sample records, then
// upserts the bootstrap admin. Running it twice leaves the same rows.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) (SeedResult, error) {
	var result SeedResult

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return result, fmt.Errorf("hashing admin password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := New(tx)

	if _, err := q.DeleteAllServices(ctx); err != nil {
		return result, err
	}
	if _, err := q.DeleteAllProjects(ctx); err != nil {
		return result, err
	}
	if _, err := q.DeleteAllTestimonials(ctx); err != nil {
		return result, err
	}
	if result.HeroCleared, err = q.DeleteAllHeroSlides(ctx); err != nil {
		return result, err
	}

	for _, in := range seedServices {
		in.Normalize()
		if _, err := q.CreateService(ctx, in); err != nil {
			return result, fmt.Errorf("seeding service %q: %w", in.Title, err)
		}
		result.Services++
	}
	for _, in := range seedProjects {
		in.Normalize()
		if _, err := q.CreateProject(ctx, in); err != nil {
			return result, fmt.Errorf("seeding project %q: %w", in.Title, err)
		}
		result.Projects++
	}
	for _, in := range seedTestimonials {
		in.Normalize()
		if _, err := q.CreateTestimonial(ctx, in); err != nil {
			return result, fmt.Errorf("seeding testimonial %q: %w", in.ClientName, err)
		}
		result.Testimonials++
	}

	admin, err := q.UpsertUser(ctx, UpsertUserParams{
		Email:        opts.AdminEmail,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return result, fmt.Errorf("seeding admin user: %w", err)
	}
	result.AdminEmail = admin.Email

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("committing seed: %w", err)
	}

	slog.InfoContext(ctx, "seed completed",
		"services", result.Services,
		"projects", result.Projects,
		"testimonials", result.Testimonials,
		"hero_slides_cleared", result.HeroCleared,
		"admin", result.AdminEmail,
	)
	return result, nil
}

var seedServices = []model.ServiceInput{
	{
		Title:       "Bespoke Upholstery",
		Description: "Hand-finished upholstery in natural fibres, built to order for residential and hospitality interiors.",
		Icon:        "sofa",
		Features:    model.StringList{"Fabric consultation", "Hand-tied springs", "Natural fibre fillings", "Two-year workmanship guarantee"},
		Price:       "From $1,200",
		Status:      model.StatusActive,
		Featured:    true,
		SortOrder:   1,
	},
	{
		Title:       "Made-to-Measure Drapery",
		Description: "Curtains and blinds cut, lined and finished in our workroom, measured and installed by our fitters.",
		Icon:        "curtains",
		Features:    model.StringList{"On-site measuring", "Interlined and blackout options", "Motorised track installation"},
		Price:       "From $650",
		Status:      model.StatusActive,
		Featured:    true,
		SortOrder:   2,
	},
	{
		Title:       "Custom Woven Textiles",
		Description: "Limited-run jacquards and plain weaves developed with partner mills to a project's palette.",
		Icon:        "loom",
		Features:    model.StringList{"Colour matching", "Strike-offs within three weeks", "Minimum run of 30 metres"},
		Price:       "On request",
		Status:      model.StatusActive,
		Featured:    true,
		SortOrder:   3,
	},
	{
		Title:       "Textile Restoration",
		Description: "Cleaning, repair and re-backing of heirloom tapestries, rugs and antique upholstery.",
		Icon:        "needle",
		Features:    model.StringList{"Condition report", "Conservation-grade materials", "Collection and delivery"},
		Price:       "From $300",
		Status:      model.StatusActive,
		SortOrder:   4,
	},
}

var seedProjects = []model.ProjectInput{
	{
		Title:        "Harbour House Residence",
		Description:  "Full soft-furnishing scheme for a six-bedroom coastal home: drapery, upholstery and bed linens.",
		Category:     "Residential",
		Client:       "Private client",
		Location:     "Sydney",
		Technologies: model.StringList{"Belgian linen", "Wool bouclé", "Motorised tracks"},
		Tags:         model.StringList{"coastal", "linen"},
		Status:       model.StatusPublished,
		Featured:     true,
	},
	{
		Title:        "Maison Verre Boutique Hotel",
		Description:  "Woven headboards, blackout drapery and banquette seating for forty guest rooms and the lobby bar.",
		Category:     "Hospitality",
		Client:       "Maison Verre",
		Location:     "Lyon",
		Technologies: model.StringList{"Custom jacquard", "Flame-retardant velvet"},
		Tags:         model.StringList{"hotel", "velvet"},
		Status:       model.StatusPublished,
		Featured:     true,
	},
	{
		Title:        "Atelier Nord Showroom",
		Description:  "Acoustic wall panels and a textile installation for a Scandinavian furniture showroom.",
		Category:     "Commercial",
		Client:       "Atelier Nord",
		Location:     "Copenhagen",
		Technologies: model.StringList{"Wool felt", "Acoustic backing"},
		Tags:         model.StringList{"acoustic", "retail"},
		Status:       model.StatusPublished,
	},
}

var seedTestimonials = []model.TestimonialInput{
	{
		ClientName:     "Claire Dubois",
		ClientPosition: "General Manager",
		Company:        "Maison Verre",
		Content:        "The workroom delivered forty rooms of drapery on schedule and the finish is impeccable.",
		Rating:         5,
		Status:         model.StatusActive,
		Featured:       true,
		SortOrder:      1,
	},
	{
		ClientName:     "James Whitford",
		ClientPosition: "Homeowner",
		Content:        "Our sofa was reupholstered in a linen they sourced for us. It looks better than the day we bought it.",
		Rating:         5,
		Status:         model.StatusActive,
		Featured:       true,
		SortOrder:      2,
	},
	{
		ClientName:     "Sofie Lindqvist",
		ClientPosition: "Creative Director",
		Company:        "Atelier Nord",
		Content:        "They understood the brief immediately and the acoustic panels transformed the showroom.",
		Rating:         4,
		Status:         model.StatusActive,
		SortOrder:      3,
	},
}
