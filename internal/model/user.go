package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Minimum lengths enforced at registration time.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// User represents a registered account that owns blogs.
type User struct {
	ID             int64         `db:"id" json:"id"`
	Username       string        `db:"username" json:"username"`
	Name           *string       `db:"name" json:"name"`
	PasswordHashed string        `db:"password_hashed" json:"-"` // "-" hides from JSON output
	BlogIDs        pq.Int64Array `db:"blog_ids" json:"-"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`

	// Joined field (not a users column): blog summaries resolved from BlogIDs.
	Blogs []BlogSummary `json:"blogs,omitempty"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string  `json:"username"`
	Name     *string `json:"name"`
	Password string  `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token alongside the identity it binds.
type LoginResponse struct {
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTooShort is returned when the username is under the minimum length
	ErrUsernameTooShort = errors.New("username too short")

	// ErrPasswordTooShort is returned when the password is under the minimum length
	ErrPasswordTooShort = errors.New("password too short")
)
