package repository

import (
	"context"

	"bloglist/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetAll(ctx context.Context) ([]model.User, error)
	// GetSummariesByIDs returns minimal owner projections for the given user IDs.
	GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.OwnerSummary, error)
	// SetBlogIDs overwrites a user's owned-blog reverse index.
	SetBlogIDs(ctx context.Context, userID int64, blogIDs []int64) error
}

type BlogRepository interface {
	// Create inserts a blog and appends its ID to the owner's reverse index
	// in a single transaction.
	Create(ctx context.Context, userID int64, title string, author *string, url string, likes int) (*model.Blog, error)
	GetAll(ctx context.Context) ([]model.Blog, error)
	GetByID(ctx context.Context, blogID int64) (*model.Blog, error)
	// GetSummariesByIDs returns lightweight blog projections for the given blog IDs.
	GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.BlogSummary, error)
	// Update applies the non-nil fields and returns the updated row.
	Update(ctx context.Context, blogID int64, fields model.UpdateBlogRequest) (*model.Blog, error)
	// Delete removes a blog and its entry in the owner's reverse index
	// in a single transaction.
	Delete(ctx context.Context, blogID, ownerID int64) error
}
