package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bloglist/internal/model"
)

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts a new blog and appends it to the owner's reverse index
// in one transaction, so the two collections cannot drift on this path.
func (r *blogRepository) Create(ctx context.Context, userID int64, title string, author *string, url string, likes int) (*model.Blog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var blog model.Blog
	query := `
		INSERT INTO blogs (user_id, title, author, url, likes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, author, url, likes, created_at, updated_at
	`
	err = tx.GetContext(ctx, &blog, query, userID, title, author, url, likes)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET blog_ids = array_append(blog_ids, $1), updated_at = NOW()
		WHERE id = $2
	`, blog.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("append to owner index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &blog, nil
}

// GetAll retrieves every blog, oldest first.
func (r *blogRepository) GetAll(ctx context.Context) ([]model.Blog, error) {
	query := `
		SELECT id, user_id, title, author, url, likes, created_at, updated_at
		FROM blogs
		ORDER BY id
	`

	var blogs []model.Blog
	err := r.db.SelectContext(ctx, &blogs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get blogs: %w", err)
	}

	return blogs, nil
}

// GetByID retrieves a single blog.
func (r *blogRepository) GetByID(ctx context.Context, blogID int64) (*model.Blog, error) {
	query := `
		SELECT id, user_id, title, author, url, likes, created_at, updated_at
		FROM blogs
		WHERE id = $1
	`

	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, query, blogID)
	if err == sql.ErrNoRows {
		return nil, model.ErrBlogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}

	return &blog, nil
}

// GetSummariesByIDs batch-loads blog projections for populating user listings.
func (r *blogRepository) GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.BlogSummary, error) {
	if len(ids) == 0 {
		return []model.BlogSummary{}, nil
	}

	query := `
		SELECT id, title, url, likes
		FROM blogs
		WHERE id = ANY($1)
	`

	var summaries []model.BlogSummary
	err := r.db.SelectContext(ctx, &summaries, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get blog summaries: %w", err)
	}

	return summaries, nil
}

// Update applies the non-nil fields of the request to the blog row.
// Nil fields fall back to the current column values via COALESCE.
func (r *blogRepository) Update(ctx context.Context, blogID int64, fields model.UpdateBlogRequest) (*model.Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($2, title),
		    author = COALESCE($3, author),
		    url = COALESCE($4, url),
		    likes = COALESCE($5, likes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, title, author, url, likes, created_at, updated_at
	`

	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, query, blogID, fields.Title, fields.Author, fields.URL, fields.Likes)
	if err == sql.ErrNoRows {
		return nil, model.ErrBlogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	return &blog, nil
}

// Delete removes a blog and prunes it from the owner's reverse index
// in one transaction.
func (r *blogRepository) Delete(ctx context.Context, blogID, ownerID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, blogID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrBlogNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET blog_ids = array_remove(blog_ids, $1), updated_at = NOW()
		WHERE id = $2
	`, blogID, ownerID)
	if err != nil {
		return fmt.Errorf("prune owner index: %w", err)
	}

	return tx.Commit()
}
