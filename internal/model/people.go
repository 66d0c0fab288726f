// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// TeamMember is a person on the about page.
type TeamMember struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Position  string     `json:"position"`
	Bio       string     `json:"bio"`
	Image     string     `json:"image"`
	Email     string     `json:"email"`
	LinkedIn  string     `json:"linkedin"`
	Skills    StringList `json:"skills"`
	Status    string     `json:"status"`
	SortOrder int        `json:"sortOrder"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TeamMemberInput is the create/update payload of a team member.
type TeamMemberInput struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Position  string     `json:"position" validate:"required,max=200"`
	Bio       string     `json:"bio" validate:"max=5000"`
	Image     string     `json:"image" validate:"max=500"`
	Email     string     `json:"email" validate:"omitempty,email"`
	LinkedIn  string     `json:"linkedin" validate:"omitempty,url"`
	Skills    StringList `json:"skills" validate:"max=30,dive,max=100"`
	Status    string     `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	SortOrder int        `json:"sortOrder" validate:"gte=0"`
}

// Input returns the editable fields of m.
func (m TeamMember) Input() TeamMemberInput {
	return TeamMemberInput{
		Name: m.Name, Position: m.Position, Bio: m.Bio, Image: m.Image, Email: m.Email,
		LinkedIn: m.LinkedIn, Skills: m.Skills, Status: m.Status, SortOrder: m.SortOrder,
	}
}

// Normalize trims text and drops blank skills.
func (in *TeamMemberInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.Email = strings.TrimSpace(in.Email)
	in.Skills = in.Skills.Clean()
	in.Status = defaultStatus(in.Status, StatusActive)
}

// Testimonial is a client quote.
type Testimonial struct {
	ID             int64     `json:"id"`
	ClientName     string    `json:"clientName"`
	ClientPosition string    `json:"clientPosition"`
	Company        string    `json:"company"`
	Content        string    `json:"content"`
	Rating         int       `json:"rating"`
	Avatar         string    `json:"avatar"`
	Status         string    `json:"status"`
	Featured       bool      `json:"featured"`
	SortOrder      int       `json:"sortOrder"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TestimonialInput is the create/update payload of a testimonial.
type TestimonialInput struct {
	ClientName     string `json:"clientName" validate:"required,max=200"`
	ClientPosition string `json:"clientPosition" validate:"max=200"`
	Company        string `json:"company" validate:"max=200"`
	Content        string `json:"content" validate:"required,max=5000"`
	Rating         int    `json:"rating" validate:"gte=1,lte=5"`
	Avatar         string `json:"avatar" validate:"max=500"`
	Status         string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Featured       bool   `json:"featured"`
	SortOrder      int    `json:"sortOrder" validate:"gte=0"`
}

// Input returns the editable fields of t.
func (t Testimonial) Input() TestimonialInput {
	return TestimonialInput{
		ClientName: t.ClientName, ClientPosition: t.ClientPosition, Company: t.Company,
		Content: t.Content, Rating: t.Rating, Avatar: t.Avatar, Status: t.Status,
		Featured: t.Featured, SortOrder: t.SortOrder,
	}
}

// Normalize trims text and defaults the rating to five stars.
func (in *TestimonialInput) Normalize() {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.Content = strings.TrimSpace(in.Content)
	if in.Rating == 0 {
		in.Rating = 5
	}
	in.Status = defaultStatus(in.Status, StatusActive)
}

// Client is a brand shown in the clients strip.
type Client struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Logo        string    `json:"logo"`
	Website     string    `json:"website"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Featured    bool      `json:"featured"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClientInput is the create/update payload of a client.
type ClientInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Logo        string `json:"logo" validate:"max=500"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Featured    bool   `json:"featured"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

// Input returns the editable fields of c.
func (c Client) Input() ClientInput {
	return ClientInput{
		Name: c.Name, Logo: c.Logo, Website: c.Website, Industry: c.Industry,
		Description: c.Description, Status: c.Status, Featured: c.Featured, SortOrder: c.SortOrder,
	}
}

// Normalize trims text.
func (in *ClientInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Website = strings.TrimSpace(in.Website)
	in.Status = defaultStatus(in.Status, StatusActive)
}
