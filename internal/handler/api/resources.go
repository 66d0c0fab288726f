// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"

	"github.com/olegiv/textura/internal/model"
)

// Services returns the /services resource.
func (h *Handler) Services() *Resource[model.Service, model.ServiceInput] {
	q := h.queries
	return &Resource[model.Service, model.ServiceInput]{
		Name: "Service", Plural: "Services",
		Statuses: model.ActiveStatuses, PublicStatus: model.StatusActive,
		List: q.ListServices, Get: q.GetService, GetBySlug: q.GetServiceBySlug,
		Create: q.CreateService, Update: q.UpdateService, Delete: q.DeleteService,
		SetStatus: q.SetServiceStatus,
		Input:     model.Service.Input,
		Normalize: (*model.ServiceInput).Normalize,
		Status:    func(s model.Service) string { return s.Status },
		validate:  h.validate, h: h,
	}
}

// Projects returns the /projects resource.
func (h *Handler) Projects() *Resource[model.Project, model.ProjectInput] {
	q := h.queries
	return &Resource[model.Project, model.ProjectInput]{
		Name: "Project", Plural: "Projects",
		Statuses: model.ProjectStatuses, PublicStatus: model.StatusPublished,
		List: q.ListProjects, Get: q.GetProject, GetBySlug: q.GetProjectBySlug,
		Create: q.CreateProject, Update: q.UpdateProject, Delete: q.DeleteProject,
		SetStatus: q.SetProjectStatus,
		Input:     model.Project.Input,
		Normalize: (*model.ProjectInput).Normalize,
		Status:    func(p model.Project) string { return p.Status },
		validate:  h.validate, h: h,
	}
}

// BlogPosts returns the /blog resource. Public slug reads count a view.
func (h *Handler) BlogPosts() *Resource[model.BlogPost, model.BlogPostInput] {
	q := h.queries
	return &Resource[model.BlogPost, model.BlogPostInput]{
		Name: "Blog post", Plural: "Blog posts",
		Statuses: model.BlogStatuses, PublicStatus: model.StatusPublished,
		List: q.ListBlogPosts, Get: q.GetBlogPost, GetBySlug: q.GetBlogPostBySlug,
		Create: q.CreateBlogPost, Update: q.UpdateBlogPost, Delete: q.DeleteBlogPost,
		SetStatus: q.SetBlogPostStatus,
		Input:     model.BlogPost.Input,
		Normalize: (*model.BlogPostInput).Normalize,
		Status:    func(p model.BlogPost) string { return p.Status },
		OnSlugView: func(ctx context.Context, p model.BlogPost) {
			if err := q.IncrementBlogPostViews(ctx, p.ID); err != nil {
				h.logger.WarnContext(ctx, "failed to count blog view", "error", err, "post_id", p.ID)
			}
		},
		validate: h.validate, h: h,
	}
}

// TeamMembers returns the /team resource.
func (h *Handler) TeamMembers() *Resource[model.TeamMember, model.TeamMemberInput] {
	q := h.queries
	return &Resource[model.TeamMember, model.TeamMemberInput]{
		Name: "Team member", Plural: "Team members",
		Statuses: model.ActiveStatuses, PublicStatus: model.StatusActive,
		List: q.ListTeamMembers, Get: q.GetTeamMember,
		Create: q.CreateTeamMember, Update: q.UpdateTeamMember, Delete: q.DeleteTeamMember,
		SetStatus: q.SetTeamMemberStatus,
		Input:     model.TeamMember.Input,
		Normalize: (*model.TeamMemberInput).Normalize,
		Status:    func(m model.TeamMember) string { return m.Status },
		validate:  h.validate, h: h,
	}
}

// Testimonials returns the /testimonials resource.
func (h *Handler) Testimonials() *Resource[model.Testimonial, model.TestimonialInput] {
	q := h.queries
	return &Resource[model.Testimonial, model.TestimonialInput]{
		Name: "Testimonial", Plural: "Testimonials",
		Statuses: model.ActiveStatuses, PublicStatus: model.StatusActive,
		List: q.ListTestimonials, Get: q.GetTestimonial,
		Create: q.CreateTestimonial, Update: q.UpdateTestimonial, Delete: q.DeleteTestimonial,
		SetStatus: q.SetTestimonialStatus,
		Input:     model.Testimonial.Input,
		Normalize: (*model.TestimonialInput).Normalize,
		Status:    func(t model.Testimonial) string { return t.Status },
		validate:  h.validate, h: h,
	}
}

// HeroSlides returns the /hero-slides resource. Tracking and analytics
// routes are mounted separately.
func (h *Handler) HeroSlides() *Resource[model.HeroSlide, model.HeroSlideInput] {
	q := h.queries
	return &Resource[model.HeroSlide, model.HeroSlideInput]{
		Name: "Hero slide", Plural: "Hero slides",
		Statuses: model.ActiveStatuses, PublicStatus: model.StatusActive,
		List: q.ListHeroSlides, Get: q.GetHeroSlide,
		Create: q.CreateHeroSlide, Update: q.UpdateHeroSlide, Delete: q.DeleteHeroSlide,
		SetStatus: q.SetHeroSlideStatus,
		Input:     model.HeroSlide.Input,
		Normalize: (*model.HeroSlideInput).Normalize,
		Status:    func(s model.HeroSlide) string { return s.Status },
		validate:  h.validate, h: h,
	}
}

// Clients returns the /clients resource.
func (h *Handler) Clients() *Resource[model.Client, model.ClientInput] {
	q := h.queries
	return &Resource[model.Client, model.ClientInput]{
		Name: "Client", Plural: "Clients",
		Statuses: model.ActiveStatuses, PublicStatus: model.StatusActive,
		List: q.ListClients, Get: q.GetClient,
		Create: q.CreateClient, Update: q.UpdateClient, Delete: q.DeleteClient,
		SetStatus: q.SetClientStatus,
		Input:     model.Client.Input,
		Normalize: (*model.ClientInput).Normalize,
		Status:    func(c model.Client) string { return c.Status },
		validate:  h.validate, h: h,
	}
}
