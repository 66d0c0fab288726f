// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/markdown"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/render"
	"github.com/olegiv/textura/internal/seo"
)

// defaultOGImage is the share image of pages without their own.
const defaultOGImage = "/static/img/og-default.png"

// view builds the common template data of a storefront page.
func (h *Handler) view(page seo.PageData) render.TemplateData {
	v := h.site.View()
	meta := seo.BuildMeta(page, seo.SiteConfig{
		SiteName:        v.Name,
		SiteURL:         v.BaseURL,
		SiteDescription: v.Description,
		DefaultImage:    defaultOGImage,
	})
	return render.TemplateData{Title: meta.Title, Meta: meta, Site: v}
}

// listPublic fetches one page of a public resource. Fallback records are
// filtered and paged with the same query.
func listPublic[T any](ctx context.Context, h *Handler, resource string, q model.ListQuery, fb []T, match func(T, model.ListQuery) bool) ([]T, *model.Pagination) {
	q.Active = true
	q = q.Normalized()
	items, pagination := fallback.Page(fb, q, match)

	page, _ := client.FetchWithFallback(ctx, h.fetcher, resource, "list:"+q.Values().Encode(),
		client.Page[T]{Items: items, Pagination: pagination},
		func(ctx context.Context, c *client.Client) (client.Page[T], error) {
			return client.List[T](ctx, c, resource, q, "")
		})
	if page.Pagination == nil {
		page.Pagination = model.NewPagination(q.Page, q.Limit, int64(len(page.Items)))
	}
	return page.Items, page.Pagination
}

// fetchBySlug fetches one public record. ok is false when the backend has no
// such record, or when it is unreachable and there is no fallback.
func fetchBySlug[T any](ctx context.Context, h *Handler, resource, slug string, fb T, hasFallback bool) (T, bool) {
	v, src := client.FetchWithFallback(ctx, h.fetcher, resource, "slug:"+slug, fb,
		func(ctx context.Context, c *client.Client) (T, error) {
			return client.BySlug[T](ctx, c, resource, slug)
		})
	switch src {
	case client.SourceMissing:
		return v, false
	case client.SourceFallback:
		return v, hasFallback
	}
	return v, true
}

func pageNumber(r *http.Request) int {
	p, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return max(p, 1)
}

// HomeData is the data of the home page.
type HomeData struct {
	Slides       []model.HeroSlide
	Services     []model.Service
	Projects     []model.Project
	Testimonials []model.Testimonial
	Clients      []model.Client
	Posts        []model.BlogPost
}

// Home renders the home page. The sections are fetched concurrently.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data HomeData
	var g errgroup.Group

	g.Go(func() error {
		data.Slides, _ = listPublic(ctx, h, "hero-slides", model.ListQuery{Limit: 10}, fallback.HeroSlides(), nil)
		return nil
	})
	g.Go(func() error {
		data.Services, _ = listPublic(ctx, h, "services", model.ListQuery{Limit: 6, Featured: true}, fallback.Services(), fallback.MatchService)
		return nil
	})
	g.Go(func() error {
		data.Projects, _ = listPublic(ctx, h, "projects", model.ListQuery{Limit: 6, Featured: true}, fallback.Projects(), fallback.MatchProject)
		return nil
	})
	g.Go(func() error {
		data.Testimonials, _ = listPublic(ctx, h, "testimonials", model.ListQuery{Limit: 6}, fallback.Testimonials(), nil)
		return nil
	})
	g.Go(func() error {
		data.Clients, _ = listPublic(ctx, h, "clients", model.ListQuery{Limit: 12}, fallback.Clients(), nil)
		return nil
	})
	g.Go(func() error {
		data.Posts, _ = listPublic(ctx, h, "blog", model.ListQuery{Limit: 3}, fallback.BlogPosts(), fallback.MatchBlogPost)
		return nil
	})
	_ = g.Wait()

	td := h.view(seo.PageData{Path: "/"})
	v := td.Site
	td.JSONLD = seo.BuildOrganizationSchema(seo.OrganizationSchema{
		Name:        v.Name,
		URL:         v.BaseURL,
		Description: v.Description,
		Email:       v.ContactEmail,
		Telephone:   v.ContactPhone,
		SameAs:      socialLinks(v.Social),
	})
	td.Data = data
	h.renderer.Page(w, r, "site/home", td)
}

// ListData is the data of a paginated storefront list.
type ListData[T any] struct {
	Items      []T
	Pagination Pagination
	Category   string
	Search     string
	Categories []string
}

// Services renders the services list.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	items, _ := listPublic(r.Context(), h, "services", model.ListQuery{Limit: 50}, fallback.Services(), fallback.MatchService)
	td := h.view(seo.PageData{Title: "Services", Path: "/services", Summary: "Upholstery, drapery and custom textiles, made to order."})
	td.Data = ListData[model.Service]{Items: items}
	h.renderer.Page(w, r, "site/services", td)
}

// ServiceDetailData is the data of a service page.
type ServiceDetailData struct {
	Service model.Service
	Others  []model.Service
}

// ServiceDetail renders one service by slug.
func (h *Handler) ServiceDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	fb, ok := fallback.ServiceBySlug(slug)
	svc, found := fetchBySlug(r.Context(), h, "services", slug, fb, ok)
	if !found {
		h.NotFound(w, r)
		return
	}

	all, _ := listPublic(r.Context(), h, "services", model.ListQuery{Limit: 50}, fallback.Services(), fallback.MatchService)
	others := make([]model.Service, 0, len(all))
	for _, s := range all {
		if s.Slug != svc.Slug {
			others = append(others, s)
		}
	}

	td := h.view(seo.PageData{
		Title: svc.Title, Path: "/services/" + svc.Slug,
		MetaTitle: svc.MetaTitle, MetaDescription: svc.MetaDescription,
		Summary: svc.Description, Image: svc.Image,
	})
	td.Data = ServiceDetailData{Service: svc, Others: others}
	h.renderer.Page(w, r, "site/service", td)
}

// Projects renders the portfolio with category filter and pagination.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	q := model.ListQuery{Page: pageNumber(r), Limit: 9, Category: r.URL.Query().Get("category")}
	items, p := listPublic(r.Context(), h, "projects", q, fallback.Projects(), fallback.MatchProject)

	td := h.view(seo.PageData{Title: "Projects", Path: "/projects", Summary: "Residential, hospitality and commercial textile projects."})
	td.Data = ListData[model.Project]{
		Items:      items,
		Pagination: BuildPagination(p, "/projects", r.URL.Query()),
		Category:   q.Category,
		Categories: projectCategories,
	}
	h.renderer.Page(w, r, "site/projects", td)
}

// projectCategories are the filter options of the portfolio.
var projectCategories = []string{"Residential", "Hospitality", "Commercial"}

// ProjectDetail renders one project by slug.
func (h *Handler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	fb, ok := fallback.ProjectBySlug(slug)
	p, found := fetchBySlug(r.Context(), h, "projects", slug, fb, ok)
	if !found {
		h.NotFound(w, r)
		return
	}
	td := h.view(seo.PageData{
		Title: p.Title, Path: "/projects/" + p.Slug,
		MetaTitle: p.MetaTitle, MetaDescription: p.MetaDescription,
		Summary: p.Description, Image: p.CoverImage,
	})
	td.Data = p
	h.renderer.Page(w, r, "site/project", td)
}

// Blog renders the blog index with search, category and pagination.
func (h *Handler) Blog(w http.ResponseWriter, r *http.Request) {
	q := model.ListQuery{
		Page:     pageNumber(r),
		Limit:    9,
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	items, p := listPublic(r.Context(), h, "blog", q, fallback.BlogPosts(), fallback.MatchBlogPost)

	td := h.view(seo.PageData{Title: "Journal", Path: "/blog", Summary: "Notes on materials, making and care.", NoIndex: q.Search != ""})
	td.Data = ListData[model.BlogPost]{
		Items:      items,
		Pagination: BuildPagination(p, "/blog", r.URL.Query()),
		Category:   q.Category,
		Search:     q.Search,
	}
	h.renderer.Page(w, r, "site/blog", td)
}

// BlogPostData is the data of a blog post page.
type BlogPostData struct {
	Post model.BlogPost
}

// BlogPost renders one post by slug.
func (h *Handler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	fb, ok := fallback.BlogPostBySlug(slug)
	post, found := fetchBySlug(r.Context(), h, "blog", slug, fb, ok)
	if !found {
		h.NotFound(w, r)
		return
	}

	summary := post.Excerpt
	if summary == "" {
		summary = markdown.Excerpt(post.Content, 160)
	}
	td := h.view(seo.PageData{
		Title: post.Title, Path: "/blog/" + post.Slug,
		MetaTitle: post.MetaTitle, MetaDescription: post.MetaDescription,
		Summary: summary, Image: post.CoverImage, Article: true,
	})
	td.JSONLD = seo.BuildArticleSchema(td.Meta, post.Title, post.Author, post.PublishedAt, post.UpdatedAt)
	td.Data = BlogPostData{Post: post}
	h.renderer.Page(w, r, "site/post", td)
}

// Testimonials renders all active testimonials.
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	items, _ := listPublic(r.Context(), h, "testimonials", model.ListQuery{Limit: 50}, fallback.Testimonials(), nil)
	td := h.view(seo.PageData{Title: "Testimonials", Path: "/testimonials", Summary: "What our clients say."})
	td.Data = ListData[model.Testimonial]{Items: items}
	h.renderer.Page(w, r, "site/testimonials", td)
}

// AboutData is the data of the about page.
type AboutData struct {
	Team    []model.TeamMember
	Clients []model.Client
}

// About renders the studio page with team and clients.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data AboutData
	var g errgroup.Group
	g.Go(func() error {
		data.Team, _ = listPublic(ctx, h, "team", model.ListQuery{Limit: 50}, fallback.TeamMembers(), nil)
		return nil
	})
	g.Go(func() error {
		data.Clients, _ = listPublic(ctx, h, "clients", model.ListQuery{Limit: 50}, fallback.Clients(), nil)
		return nil
	})
	_ = g.Wait()

	td := h.view(seo.PageData{Title: "About", Path: "/about", Summary: "The studio, the team and the people we work with."})
	td.Data = data
	h.renderer.Page(w, r, "site/about", td)
}

// NotFound renders the storefront 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	td := h.view(seo.PageData{Title: "Page not found", Path: r.URL.Path, NoIndex: true})
	h.renderer.Status(w, r, http.StatusNotFound, "site/not_found", td)
}

func socialLinks(m map[string]string) []string {
	var out []string
	for _, k := range []string{"instagram", "facebook", "linkedin", "pinterest", "x"} {
		if v := m[k]; v != "" {
			out = append(out, v)
		}
	}
	return out
}
