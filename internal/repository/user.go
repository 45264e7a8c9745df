package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bloglist/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, name, password_hashed, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, blog_ids, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Name,
		u.PasswordHashed,
	)

	err := row.Scan(
		&u.ID,
		&u.BlogIDs,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, name, password_hashed, blog_ids, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, name, password_hashed, blog_ids, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves every user, oldest first.
func (r *userRepository) GetAll(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, username, name, password_hashed, blog_ids, created_at, updated_at
		FROM users
		ORDER BY id
	`

	var users []model.User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

// GetSummariesByIDs batch-loads owner projections to avoid N+1 queries
// when annotating a blog listing.
func (r *userRepository) GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.OwnerSummary, error) {
	if len(ids) == 0 {
		return []model.OwnerSummary{}, nil
	}

	query := `
		SELECT id, username, name
		FROM users
		WHERE id = ANY($1)
	`

	var owners []model.OwnerSummary
	err := r.db.SelectContext(ctx, &owners, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get owner summaries: %w", err)
	}

	return owners, nil
}

// SetBlogIDs overwrites the user's reverse index with the given blog IDs.
func (r *userRepository) SetBlogIDs(ctx context.Context, userID int64, blogIDs []int64) error {
	query := `UPDATE users SET blog_ids = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, pq.Array(blogIDs), userID)
	if err != nil {
		return fmt.Errorf("failed to set blog ids: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
