// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// HeroSlide is one slide of the home page carousel.
type HeroSlide struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CTAText     string    `json:"ctaText"`
	CTALink     string    `json:"ctaLink"`
	Status      string    `json:"status"`
	SortOrder   int       `json:"sortOrder"`
	Views       int64     `json:"views"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HeroSlideInput is the create/update payload of a hero slide.
type HeroSlideInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"max=200"`
	Description string `json:"description" validate:"max=1000"`
	Image       string `json:"image" validate:"required,max=500"`
	CTAText     string `json:"ctaText" validate:"max=100"`
	CTALink     string `json:"ctaLink" validate:"max=500"`
	Status      string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

// Input returns the editable fields of s.
func (s HeroSlide) Input() HeroSlideInput {
	return HeroSlideInput{
		Title: s.Title, Subtitle: s.Subtitle, Description: s.Description, Image: s.Image,
		CTAText: s.CTAText, CTALink: s.CTALink, Status: s.Status, SortOrder: s.SortOrder,
	}
}

// Normalize trims text.
func (in *HeroSlideInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Image = strings.TrimSpace(in.Image)
	in.CTALink = strings.TrimSpace(in.CTALink)
	in.Status = defaultStatus(in.Status, StatusActive)
}

// CTR returns clicks per view as a percentage.
func (s HeroSlide) CTR() float64 {
	return ClickThroughRate(s.Views, s.Clicks)
}

// ClickThroughRate returns clicks/views*100, rounded to two decimals.
func ClickThroughRate(views, clicks int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(clicks*10000/views) / 100
}

// Hero slide event kinds.
const (
	HeroEventView  = "view"
	HeroEventClick = "click"
)

// HeroSlideStats is one row of the analytics summary.
type HeroSlideStats struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Status string  `json:"status"`
	Views  int64   `json:"views"`
	Clicks int64   `json:"clicks"`
	CTR    float64 `json:"ctr"`
}

// DeviceCount is an event tally for one device class.
type DeviceCount struct {
	Device string `json:"device"`
	Views  int64  `json:"views"`
	Clicks int64  `json:"clicks"`
}

// HeroAnalytics is the response of GET /hero-slides/analytics/summary.
type HeroAnalytics struct {
	TotalSlides  int64            `json:"totalSlides"`
	ActiveSlides int64            `json:"activeSlides"`
	TotalViews   int64            `json:"totalViews"`
	TotalClicks  int64            `json:"totalClicks"`
	AverageCTR   float64          `json:"averageCtr"`
	Slides       []HeroSlideStats `json:"slides"`
	Devices      []DeviceCount    `json:"devices"`
}
