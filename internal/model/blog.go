package model

import (
	"errors"
	"time"
)

// Blog represents a single blog entry with its metadata.
type Blog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Author    *string   `db:"author" json:"author"`
	URL       string    `db:"url" json:"url"`
	Likes     int       `db:"likes" json:"likes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined field (not in blogs table)
	Owner *OwnerSummary `json:"user,omitempty"`
}

// OwnerSummary is the minimal owner projection attached to listed blogs.
type OwnerSummary struct {
	ID       int64   `db:"id" json:"id"`
	Username string  `db:"username" json:"username"`
	Name     *string `db:"name" json:"name"`
}

// BlogSummary is a lightweight representation used when populating a
// user's owned blogs.
type BlogSummary struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
	URL   string `db:"url" json:"url"`
	Likes int    `db:"likes" json:"likes"`
}

// CreateBlogRequest is the request body for creating a blog.
type CreateBlogRequest struct {
	Title  string  `json:"title"`
	Author *string `json:"author"`
	URL    string  `json:"url"`
	Likes  *int    `json:"likes"`
}

// UpdateBlogRequest is the request body for updating a blog.
// Nil fields are left untouched.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// Blog errors
var (
	ErrBlogNotFound     = errors.New("blog not found")
	ErrNotBlogOwner     = errors.New("not the owner of this blog")
	ErrTitleURLRequired = errors.New("title and url are required")
	ErrNegativeLikes    = errors.New("likes must be a non-negative integer")
)
