// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var heroSlidesTable = table[model.HeroSlide]{
	name: "hero_slides",
	columns: `id, title, subtitle, description, image, cta_text, cta_link, status, sort_order,
		views, clicks, created_at, updated_at`,
	search:       []string{"title", "subtitle", "description"},
	publicStatus: model.StatusActive,
	order:        "sort_order ASC, id ASC",
	sorts: map[string]string{
		"newest": "created_at DESC",
		"views":  "views DESC",
		"clicks": "clicks DESC",
	},
	scan: func(r rowScanner) (model.HeroSlide, error) {
		var s model.HeroSlide
		err := r.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Description, &s.Image, &s.CTAText,
			&s.CTALink, &s.Status, &s.SortOrder, &s.Views, &s.Clicks, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
}

// ListHeroSlides returns one page of hero slides.
func (q *Queries) ListHeroSlides(ctx context.Context, lq model.ListQuery) ([]model.HeroSlide, int64, error) {
	return heroSlidesTable.list(ctx, q.db, lq)
}

// GetHeroSlide returns a hero slide by ID.
func (q *Queries) GetHeroSlide(ctx context.Context, id int64) (model.HeroSlide, error) {
	return heroSlidesTable.get(ctx, q.db, id)
}

// CreateHeroSlide inserts a hero slide.
func (q *Queries) CreateHeroSlide(ctx context.Context, in model.HeroSlideInput) (model.HeroSlide, error) {
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO hero_slides
		(title, subtitle, description, image, cta_text, cta_link, status, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Subtitle, in.Description, in.Image, in.CTAText, in.CTALink, in.Status,
		in.SortOrder, ts, ts)
	if err != nil {
		return model.HeroSlide{}, fmt.Errorf("inserting hero slide: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.HeroSlide{}, err
	}
	return q.GetHeroSlide(ctx, id)
}

// UpdateHeroSlide overwrites the editable fields of a hero slide. Counters are kept.
func (q *Queries) UpdateHeroSlide(ctx context.Context, id int64, in model.HeroSlideInput) (model.HeroSlide, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE hero_slides SET
		title = ?, subtitle = ?, description = ?, image = ?, cta_text = ?, cta_link = ?, status = ?,
		sort_order = ?, updated_at = ?
		WHERE id = ?`,
		in.Title, in.Subtitle, in.Description, in.Image, in.CTAText, in.CTALink, in.Status,
		in.SortOrder, now(), id)
	if err != nil {
		return model.HeroSlide{}, fmt.Errorf("updating hero slide: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.HeroSlide{}, err
	}
	return q.GetHeroSlide(ctx, id)
}

// DeleteHeroSlide removes a hero slide and its events.
func (q *Queries) DeleteHeroSlide(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM hero_slide_events WHERE slide_id = ?`, id); err != nil {
		return fmt.Errorf("deleting hero slide events: %w", err)
	}
	return heroSlidesTable.delete(ctx, q.db, id)
}

// SetHeroSlideStatus changes a hero slide's status.
func (q *Queries) SetHeroSlideStatus(ctx context.Context, id int64, status string) (model.HeroSlide, error) {
	return heroSlidesTable.setStatus(ctx, q.db, id, status)
}

// DeleteAllHeroSlides clears hero slides and their events.
func (q *Queries) DeleteAllHeroSlides(ctx context.Context) (int64, error) {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM hero_slide_events`); err != nil {
		return 0, fmt.Errorf("clearing hero slide events: %w", err)
	}
	return heroSlidesTable.deleteAll(ctx, q.db)
}

// TrackHeroSlide increments the view or click counter of a slide and
// records the event with the caller's device class.
func (q *Queries) TrackHeroSlide(ctx context.Context, id int64, kind, device string) (model.HeroSlide, error) {
	column := "views"
	if kind == model.HeroEventClick {
		column = "clicks"
	}
	res, err := q.db.ExecContext(ctx, "UPDATE hero_slides SET "+column+" = "+column+" + 1 WHERE id = ?", id)
	if err != nil {
		return model.HeroSlide{}, fmt.Errorf("tracking hero slide %s: %w", kind, err)
	}
	if err := expectOne(res); err != nil {
		return model.HeroSlide{}, err
	}
	if _, err := q.db.ExecContext(ctx,
		`INSERT INTO hero_slide_events (slide_id, kind, device, created_at) VALUES (?, ?, ?, ?)`,
		id, kind, device, now()); err != nil {
		return model.HeroSlide{}, fmt.Errorf("recording hero slide event: %w", err)
	}
	return q.GetHeroSlide(ctx, id)
}

// HeroSlideAnalytics aggregates counters across all slides.
func (q *Queries) HeroSlideAnalytics(ctx context.Context) (model.HeroAnalytics, error) {
	out := model.HeroAnalytics{Slides: []model.HeroSlideStats{}, Devices: []model.DeviceCount{}}

	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, status, views, clicks FROM hero_slides ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return out, fmt.Errorf("listing hero slide stats: %w", err)
	}
	for rows.Next() {
		var s model.HeroSlideStats
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.Views, &s.Clicks); err != nil {
			_ = rows.Close()
			return out, err
		}
		s.CTR = model.ClickThroughRate(s.Views, s.Clicks)
		out.Slides = append(out.Slides, s)
		out.TotalSlides++
		if s.Status == model.StatusActive {
			out.ActiveSlides++
		}
		out.TotalViews += s.Views
		out.TotalClicks += s.Clicks
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}
	out.AverageCTR = model.ClickThroughRate(out.TotalViews, out.TotalClicks)

	devRows, err := q.db.QueryContext(ctx, `SELECT device,
		SUM(CASE WHEN kind = 'view' THEN 1 ELSE 0 END),
		SUM(CASE WHEN kind = 'click' THEN 1 ELSE 0 END)
		FROM hero_slide_events GROUP BY device ORDER BY device`)
	if err != nil {
		return out, fmt.Errorf("aggregating hero slide devices: %w", err)
	}
	defer func() { _ = devRows.Close() }()
	for devRows.Next() {
		var d model.DeviceCount
		if err := devRows.Scan(&d.Device, &d.Views, &d.Clicks); err != nil {
			return out, err
		}
		out.Devices = append(out.Devices, d)
	}
	return out, devRows.Err()
}
