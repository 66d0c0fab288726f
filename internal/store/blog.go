// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/textura/internal/model"
)

var blogTable = table[model.BlogPost]{
	name: "blog_posts",
	columns: `id, title, slug, excerpt, content, cover_image, author, category, tags, status,
		featured, views, published_at, meta_title, meta_description, created_at, updated_at`,
	search:       []string{"title", "excerpt", "content"},
	publicStatus: model.StatusPublished,
	featured:     true,
	category:     true,
	order:        "COALESCE(published_at, created_at) DESC",
	sorts: map[string]string{
		"newest":  "COALESCE(published_at, created_at) DESC",
		"oldest":  "COALESCE(published_at, created_at) ASC",
		"popular": "views DESC",
		"title":   "title COLLATE NOCASE ASC",
	},
	scan: func(r rowScanner) (model.BlogPost, error) {
		var p model.BlogPost
		var published sql.NullTime
		err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.Author,
			&p.Category, &p.Tags, &p.Status, &p.Featured, &p.Views, &published, &p.MetaTitle,
			&p.MetaDescription, &p.CreatedAt, &p.UpdatedAt)
		p.PublishedAt = timePtr(published)
		return p, err
	},
}

// ListBlogPosts returns one page of posts and the total match count.
func (q *Queries) ListBlogPosts(ctx context.Context, lq model.ListQuery) ([]model.BlogPost, int64, error) {
	return blogTable.list(ctx, q.db, lq)
}

// GetBlogPost returns a post by ID.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	return blogTable.get(ctx, q.db, id)
}

// GetBlogPostBySlug returns a post by slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return blogTable.getBy(ctx, q.db, "slug", slug)
}

// IncrementBlogPostViews bumps the view counter of a post.
func (q *Queries) IncrementBlogPostViews(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("incrementing views: %w", err)
	}
	return expectOne(res)
}

// CreateBlogPost inserts a post.
func (q *Queries) CreateBlogPost(ctx context.Context, in model.BlogPostInput) (model.BlogPost, error) {
	slug, err := uniqueSlug(ctx, q.db, "blog_posts", in.Slug, in.Title, "post", 0)
	if err != nil {
		return model.BlogPost{}, err
	}
	ts := now()
	res, err := q.db.ExecContext(ctx, `INSERT INTO blog_posts
		(title, slug, excerpt, content, cover_image, author, category, tags, status, featured,
		 published_at, meta_title, meta_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, slug, in.Excerpt, in.Content, in.CoverImage, in.Author, in.Category, in.Tags,
		in.Status, in.Featured, nullTime(in.PublishedAt), in.MetaTitle, in.MetaDescription, ts, ts)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("inserting blog post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.BlogPost{}, err
	}
	return q.GetBlogPost(ctx, id)
}

// UpdateBlogPost overwrites the editable fields of a post.
func (q *Queries) UpdateBlogPost(ctx context.Context, id int64, in model.BlogPostInput) (model.BlogPost, error) {
	slug, err := uniqueSlug(ctx, q.db, "blog_posts", in.Slug, in.Title, "post", id)
	if err != nil {
		return model.BlogPost{}, err
	}
	res, err := q.db.ExecContext(ctx, `UPDATE blog_posts SET
		title = ?, slug = ?, excerpt = ?, content = ?, cover_image = ?, author = ?, category = ?,
		tags = ?, status = ?, featured = ?, published_at = ?, meta_title = ?, meta_description = ?,
		updated_at = ?
		WHERE id = ?`,
		in.Title, slug, in.Excerpt, in.Content, in.CoverImage, in.Author, in.Category, in.Tags,
		in.Status, in.Featured, nullTime(in.PublishedAt), in.MetaTitle, in.MetaDescription, now(), id)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("updating blog post: %w", err)
	}
	if err := expectOne(res); err != nil {
		return model.BlogPost{}, err
	}
	return q.GetBlogPost(ctx, id)
}

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	return blogTable.delete(ctx, q.db, id)
}

// SetBlogPostStatus changes a post's status and stamps published_at on first publish.
func (q *Queries) SetBlogPostStatus(ctx context.Context, id int64, status string) (model.BlogPost, error) {
	if status == model.StatusPublished {
		if _, err := q.db.ExecContext(ctx,
			`UPDATE blog_posts SET published_at = ? WHERE id = ? AND published_at IS NULL`, now(), id); err != nil {
			return model.BlogPost{}, fmt.Errorf("stamping published_at: %w", err)
		}
	}
	return blogTable.setStatus(ctx, q.db, id, status)
}

// CountBlogPosts returns the number of posts, optionally restricted to one status.
func (q *Queries) CountBlogPosts(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return blogTable.count(ctx, q.db, "")
	}
	return blogTable.count(ctx, q.db, "status = ?", status)
}

// ListBlogCategories returns distinct non-empty categories of published posts.
func (q *Queries) ListBlogCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM blog_posts WHERE category != '' AND status = ? ORDER BY category`,
		model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("listing blog categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cats := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
