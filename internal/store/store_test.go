// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/olegiv/textura/internal/model"
)

// testDB creates a migrated database in a temp dir.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func newService(title string) model.ServiceInput {
	in := model.ServiceInput{
		Title:       title,
		Description: "D",
		Features:    model.StringList{"a", "", "b"},
		Status:      model.StatusActive,
	}
	in.Normalize()
	return in
}

func TestMigrateVersion(t *testing.T) {
	db := testDB(t)
	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 3 {
		t.Errorf("version = %d, want 3", v)
	}
}

func TestServiceCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	created, err := q.CreateService(ctx, newService("Test"))
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if created.ID == 0 || created.Slug != "test" {
		t.Errorf("created = %+v", created)
	}
	if len(created.Features) != 2 || created.Features[1] != "b" {
		t.Errorf("Features = %v, want [a b]", created.Features)
	}

	items, total, err := q.ListServices(ctx, model.ListQuery{})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "Test" {
		t.Errorf("list = %d %+v", total, items)
	}

	in := created.Input()
	in.Price = "From $10"
	updated, err := q.UpdateService(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("UpdateService: %v", err)
	}
	if updated.Price != "From $10" || updated.Description != "D" {
		t.Errorf("updated = %+v", updated)
	}

	if err := q.DeleteService(ctx, created.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if err := q.DeleteService(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
	if _, err := q.GetService(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetService after delete = %v, want ErrNotFound", err)
	}
}

func TestUniqueSlug(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	a, err := q.CreateService(ctx, newService("Drapery"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := q.CreateService(ctx, newService("Drapery"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Slug != "drapery" || b.Slug != "drapery-2" {
		t.Errorf("slugs = %q, %q", a.Slug, b.Slug)
	}

	// Updating a row keeps its own slug.
	again, err := q.UpdateService(ctx, a.ID, a.Input())
	if err != nil {
		t.Fatal(err)
	}
	if again.Slug != "drapery" {
		t.Errorf("slug after update = %q", again.Slug)
	}

	bySlug, err := q.GetServiceBySlug(ctx, "drapery-2")
	if err != nil || bySlug.ID != b.ID {
		t.Errorf("GetServiceBySlug = %+v, %v", bySlug, err)
	}
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	for i, title := range []string{"Linen Drapery", "Velvet Upholstery", "Wool Rugs"} {
		in := newService(title)
		if i == 2 {
			in.Status = model.StatusInactive
		}
		in.Featured = i == 0
		if _, err := q.CreateService(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		query model.ListQuery
		want  int64
	}{
		{"all", model.ListQuery{}, 3},
		{"active only", model.ListQuery{Active: true}, 2},
		{"explicit status", model.ListQuery{Status: model.StatusInactive}, 1},
		{"search", model.ListQuery{Search: "velvet"}, 1},
		{"search escapes wildcard", model.ListQuery{Search: "%"}, 0},
		{"featured", model.ListQuery{Featured: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := q.ListServices(ctx, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}

	page, total, err := q.ListServices(ctx, model.ListQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("page 2 = %d items of %d", len(page), total)
	}
}

func TestContactStatusAndStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	var ids []int64
	for _, name := range []string{"Ann", "Ben"} {
		c, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{
			ContactInput: model.ContactInput{Name: name, Email: name + "@example.com", Message: "Hello there"},
			IPAddress:    "203.0.113.5",
		})
		if err != nil {
			t.Fatalf("CreateContactSubmission: %v", err)
		}
		if c.Status != model.StatusUnread {
			t.Errorf("status = %q, want UNREAD", c.Status)
		}
		ids = append(ids, c.ID)
	}

	before, err := q.ContactStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if before.Total != 2 || before.Unread != 2 || before.Today != 2 {
		t.Errorf("stats before = %+v", before)
	}

	if _, err := q.SetContactSubmissionStatus(ctx, ids[0], model.StatusRead); err != nil {
		t.Fatal(err)
	}
	after, err := q.ContactStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if after.Unread != before.Unread-1 || after.Read != 1 {
		t.Errorf("stats after = %+v", after)
	}

	if _, err := q.SetContactSubmissionStatus(ctx, 999, model.StatusRead); !errors.Is(err, ErrNotFound) {
		t.Errorf("status on missing id = %v", err)
	}
}

func TestHeroSlideTracking(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	in := model.HeroSlideInput{Title: "Autumn Linens", Image: "/uploads/autumn.jpg"}
	in.Normalize()
	slide, err := q.CreateHeroSlide(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	for range 4 {
		if _, err := q.TrackHeroSlide(ctx, slide.ID, model.HeroEventView, "desktop"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := q.TrackHeroSlide(ctx, slide.ID, model.HeroEventClick, "mobile")
	if err != nil {
		t.Fatal(err)
	}
	if got.Views != 4 || got.Clicks != 1 {
		t.Errorf("counters = %d/%d", got.Views, got.Clicks)
	}

	if _, err := q.TrackHeroSlide(ctx, 404, model.HeroEventView, "desktop"); !errors.Is(err, ErrNotFound) {
		t.Errorf("tracking missing slide = %v, want ErrNotFound", err)
	}

	a, err := q.HeroSlideAnalytics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalSlides != 1 || a.ActiveSlides != 1 || a.TotalViews != 4 || a.TotalClicks != 1 || a.AverageCTR != 25 {
		t.Errorf("analytics = %+v", a)
	}
	if len(a.Devices) != 2 {
		t.Errorf("devices = %+v", a.Devices)
	}
}

func TestSettings(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if err := q.UpsertSetting(ctx, "site_name", json.RawMessage(`"Textura"`), "branding"); err != nil {
		t.Fatal(err)
	}
	if err := q.UpsertSetting(ctx, "site_name", json.RawMessage(`"Textura Atelier"`), ""); err != nil {
		t.Fatal(err)
	}
	if err := q.UpsertSetting(ctx, "broken", json.RawMessage(`{`), ""); err == nil {
		t.Error("invalid JSON accepted")
	}

	s, err := q.GetSetting(ctx, "site_name")
	if err != nil {
		t.Fatal(err)
	}
	if string(s.Value) != `"Textura Atelier"` || s.Group != "branding" {
		t.Errorf("setting = %+v", s)
	}

	if err := q.DeleteSetting(ctx, "site_name"); err != nil {
		t.Fatal(err)
	}
	if _, err := q.GetSetting(ctx, "site_name"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSetting after delete = %v", err)
	}
}

func TestNotifications(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	for _, title := range []string{"one", "two", "three"} {
		if _, err := q.CreateNotification(ctx, CreateNotificationParams{Type: model.NotificationContact, Title: title}); err != nil {
			t.Fatal(err)
		}
	}
	list, _, err := q.ListNotifications(ctx, model.ListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.MarkNotificationRead(ctx, list[0].ID); err != nil {
		t.Fatal(err)
	}

	n, err := q.CountUnreadNotifications(ctx)
	if err != nil || n != 2 {
		t.Errorf("unread = %d, %v", n, err)
	}
	_, total, err := q.ListNotifications(ctx, model.ListQuery{Unread: true})
	if err != nil || total != 2 {
		t.Errorf("unread list total = %d, %v", total, err)
	}

	changed, err := q.MarkAllNotificationsRead(ctx)
	if err != nil || changed != 2 {
		t.Errorf("MarkAllNotificationsRead = %d, %v", changed, err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	in := model.HeroSlideInput{Title: "Old", Image: "/x.jpg"}
	in.Normalize()
	if _, err := q.CreateHeroSlide(ctx, in); err != nil {
		t.Fatal(err)
	}

	opts := SeedOptions{AdminEmail: "admin@textura.local", AdminPassword: "changeme1234"}
	for run := 1; run <= 2; run++ {
		res, err := Seed(ctx, db, opts)
		if err != nil {
			t.Fatalf("Seed run %d: %v", run, err)
		}
		if res.Services != len(seedServices) || res.Projects != len(seedProjects) || res.Testimonials != len(seedTestimonials) {
			t.Errorf("run %d result = %+v", run, res)
		}
	}

	services, _ := q.CountServices(ctx, "")
	projects, _ := q.CountProjects(ctx, "")
	testimonials, _ := q.CountTestimonials(ctx)
	users, _ := q.CountUsers(ctx)
	if services != int64(len(seedServices)) || projects != int64(len(seedProjects)) ||
		testimonials != int64(len(seedTestimonials)) || users != 1 {
		t.Errorf("counts = %d services, %d projects, %d testimonials, %d users", services, projects, testimonials, users)
	}

	_, heroTotal, _ := q.ListHeroSlides(ctx, model.ListQuery{})
	if heroTotal != 0 {
		t.Errorf("hero slides = %d, want 0", heroTotal)
	}

	admin, err := q.GetUserByEmail(ctx, "admin@textura.local")
	if err != nil {
		t.Fatal(err)
	}
	if !admin.IsAdmin() || admin.PasswordHash == "" {
		t.Errorf("admin = %+v", admin)
	}
}

func TestBlogPublishStampsDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	in := model.BlogPostInput{Title: "Caring for Velvet", Content: "# Velvet"}
	in.Normalize()
	post, err := q.CreateBlogPost(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if post.PublishedAt != nil {
		t.Fatal("draft should have no publish date")
	}

	published, err := q.SetBlogPostStatus(ctx, post.ID, model.StatusPublished)
	if err != nil {
		t.Fatal(err)
	}
	if published.PublishedAt == nil || published.Status != model.StatusPublished {
		t.Errorf("published = %+v", published)
	}

	if err := q.IncrementBlogPostViews(ctx, post.ID); err != nil {
		t.Fatal(err)
	}
	again, _ := q.GetBlogPostBySlug(ctx, "caring-for-velvet")
	if again.Views != 1 {
		t.Errorf("views = %d", again.Views)
	}
}
