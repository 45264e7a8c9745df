package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/model"
	"bloglist/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo     repository.UserRepository
	blogRepo repository.BlogRepository
}

func NewUserService(repo repository.UserRepository, blogRepo repository.BlogRepository) *UserService {
	return &UserService{
		repo:     repo,
		blogRepo: blogRepo,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < model.MinUsernameLength {
		return nil, model.ErrUsernameTooShort
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	// Check if username already exists
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		Name:           req.Name,
		PasswordHashed: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with username and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Don't reveal whether username exists or not
		return nil, model.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// List returns all users with their owned blogs populated from the
// reverse index, each blog reduced to a title/url/likes summary.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var blogIDs []int64
	for _, u := range users {
		blogIDs = append(blogIDs, u.BlogIDs...)
	}

	summaries, err := s.blogRepo.GetSummariesByIDs(ctx, blogIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.BlogSummary, len(summaries))
	for _, b := range summaries {
		byID[b.ID] = b
	}

	for i := range users {
		blogs := make([]model.BlogSummary, 0, len(users[i].BlogIDs))
		for _, id := range users[i].BlogIDs {
			if b, ok := byID[id]; ok {
				blogs = append(blogs, b)
			}
		}
		users[i].Blogs = blogs
	}

	return users, nil
}
