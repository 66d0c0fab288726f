// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Service is an offering shown on the services pages.
type Service struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	Icon            string     `json:"icon"`
	Image           string     `json:"image"`
	Features        StringList `json:"features"`
	Price           string     `json:"price"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	SortOrder       int        `json:"sortOrder"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ServiceInput is the create/update payload of a service.
type ServiceInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"omitempty,max=200"`
	Description     string     `json:"description" validate:"required,max=2000"`
	Content         string     `json:"content"`
	Icon            string     `json:"icon" validate:"max=100"`
	Image           string     `json:"image" validate:"max=500"`
	Features        StringList `json:"features" validate:"max=30,dive,max=200"`
	Price           string     `json:"price" validate:"max=100"`
	Status          string     `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Featured        bool       `json:"featured"`
	SortOrder       int        `json:"sortOrder" validate:"gte=0"`
	MetaTitle       string     `json:"metaTitle" validate:"max=200"`
	MetaDescription string     `json:"metaDescription" validate:"max=320"`
}

// Input returns the editable fields of s.
func (s Service) Input() ServiceInput {
	return ServiceInput{
		Title: s.Title, Slug: s.Slug, Description: s.Description, Content: s.Content,
		Icon: s.Icon, Image: s.Image, Features: s.Features, Price: s.Price,
		Status: s.Status, Featured: s.Featured, SortOrder: s.SortOrder,
		MetaTitle: s.MetaTitle, MetaDescription: s.MetaDescription,
	}
}

// Normalize trims text and drops blank list entries.
func (in *ServiceInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Features = in.Features.Clean()
	in.Status = defaultStatus(in.Status, StatusActive)
}

// Project is a portfolio entry.
type Project struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	Category        string     `json:"category"`
	Client          string     `json:"client"`
	Location        string     `json:"location"`
	CoverImage      string     `json:"coverImage"`
	Images          StringList `json:"images"`
	Technologies    StringList `json:"technologies"`
	Tags            StringList `json:"tags"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	CompletedAt     *time.Time `json:"completedAt"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ProjectInput is the create/update payload of a project.
type ProjectInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"omitempty,max=200"`
	Description     string     `json:"description" validate:"required,max=2000"`
	Content         string     `json:"content"`
	Category        string     `json:"category" validate:"max=100"`
	Client          string     `json:"client" validate:"max=200"`
	Location        string     `json:"location" validate:"max=200"`
	CoverImage      string     `json:"coverImage" validate:"max=500"`
	Images          StringList `json:"images" validate:"max=50,dive,max=500"`
	Technologies    StringList `json:"technologies" validate:"max=30,dive,max=100"`
	Tags            StringList `json:"tags" validate:"max=30,dive,max=100"`
	Status          string     `json:"status" validate:"required,oneof=DRAFT PUBLISHED"`
	Featured        bool       `json:"featured"`
	CompletedAt     *time.Time `json:"completedAt"`
	MetaTitle       string     `json:"metaTitle" validate:"max=200"`
	MetaDescription string     `json:"metaDescription" validate:"max=320"`
}

// Input returns the editable fields of p.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Title: p.Title, Slug: p.Slug, Description: p.Description, Content: p.Content,
		Category: p.Category, Client: p.Client, Location: p.Location, CoverImage: p.CoverImage,
		Images: p.Images, Technologies: p.Technologies, Tags: p.Tags, Status: p.Status,
		Featured: p.Featured, CompletedAt: p.CompletedAt,
		MetaTitle: p.MetaTitle, MetaDescription: p.MetaDescription,
	}
}

// Normalize trims text and drops blank list entries.
func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Category = strings.TrimSpace(in.Category)
	in.Images = in.Images.Clean()
	in.Technologies = in.Technologies.Clean()
	in.Tags = in.Tags.Clean()
	in.Status = defaultStatus(in.Status, StatusDraft)
}

// BlogPost is a markdown article.
type BlogPost struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	CoverImage      string     `json:"coverImage"`
	Author          string     `json:"author"`
	Category        string     `json:"category"`
	Tags            StringList `json:"tags"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	Views           int64      `json:"views"`
	PublishedAt     *time.Time `json:"publishedAt"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BlogPostInput is the create/update payload of a blog post.
type BlogPostInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"omitempty,max=200"`
	Excerpt         string     `json:"excerpt" validate:"max=500"`
	Content         string     `json:"content" validate:"required"`
	CoverImage      string     `json:"coverImage" validate:"max=500"`
	Author          string     `json:"author" validate:"max=100"`
	Category        string     `json:"category" validate:"max=100"`
	Tags            StringList `json:"tags" validate:"max=30,dive,max=100"`
	Status          string     `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
	Featured        bool       `json:"featured"`
	PublishedAt     *time.Time `json:"publishedAt"`
	MetaTitle       string     `json:"metaTitle" validate:"max=200"`
	MetaDescription string     `json:"metaDescription" validate:"max=320"`
}

// Input returns the editable fields of p.
func (p BlogPost) Input() BlogPostInput {
	return BlogPostInput{
		Title: p.Title, Slug: p.Slug, Excerpt: p.Excerpt, Content: p.Content,
		CoverImage: p.CoverImage, Author: p.Author, Category: p.Category, Tags: p.Tags,
		Status: p.Status, Featured: p.Featured, PublishedAt: p.PublishedAt,
		MetaTitle: p.MetaTitle, MetaDescription: p.MetaDescription,
	}
}

// Normalize trims text, drops blank tags and stamps PublishedAt on first publish.
func (in *BlogPostInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Category = strings.TrimSpace(in.Category)
	in.Tags = in.Tags.Clean()
	in.Status = defaultStatus(in.Status, StatusDraft)
	if in.Status == StatusPublished && in.PublishedAt == nil {
		now := time.Now().UTC()
		in.PublishedAt = &now
	}
}

func defaultStatus(s, def string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}
