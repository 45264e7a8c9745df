package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bloglist/internal/model"
	"bloglist/internal/repository"
	"bloglist/internal/stats"
)

// BlogService enforces ownership and validation rules around the blog
// lifecycle. Listing and reads are public; create and delete act on behalf
// of a resolved user identity.
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		userRepo: userRepo,
	}
}

// List returns all blogs, each annotated with a minimal owner projection
// when the owner still exists.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var ownerIDs []int64
	for _, b := range blogs {
		if !seen[b.UserID] {
			seen[b.UserID] = true
			ownerIDs = append(ownerIDs, b.UserID)
		}
	}

	owners, err := s.userRepo.GetSummariesByIDs(ctx, ownerIDs)
	if err != nil {
		log.Printf("[BlogService] Failed to load owner projections: %v", err)
		return blogs, nil
	}

	byID := make(map[int64]model.OwnerSummary, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}

	for i := range blogs {
		if owner, ok := byID[blogs[i].UserID]; ok {
			o := owner
			blogs[i].Owner = &o
		}
	}

	return blogs, nil
}

// GetByID retrieves a single blog.
func (s *BlogService) GetByID(ctx context.Context, blogID int64) (*model.Blog, error) {
	return s.blogRepo.GetByID(ctx, blogID)
}

// Create persists a blog owned by the given user. The identity must resolve
// to an existing user; absent likes default to zero.
func (s *BlogService) Create(ctx context.Context, userID int64, req model.CreateBlogRequest) (*model.Blog, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// A signed token whose identity no longer resolves carries no credentials.
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.URL) == "" {
		return nil, model.ErrTitleURLRequired
	}

	likes := 0
	if req.Likes != nil {
		if *req.Likes < 0 {
			return nil, model.ErrNegativeLikes
		}
		likes = *req.Likes
	}

	blog, err := s.blogRepo.Create(ctx, owner.ID, req.Title, req.Author, req.URL, likes)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	blog.Owner = &model.OwnerSummary{
		ID:       owner.ID,
		Username: owner.Username,
		Name:     owner.Name,
	}

	return blog, nil
}

// Update applies a partial update by ID. No ownership check: any caller
// may update a blog, which keeps like counts writable without a token.
func (s *BlogService) Update(ctx context.Context, blogID int64, req model.UpdateBlogRequest) (*model.Blog, error) {
	if req.Likes != nil && *req.Likes < 0 {
		return nil, model.ErrNegativeLikes
	}
	return s.blogRepo.Update(ctx, blogID, req)
}

// Delete removes a blog after verifying the requester owns it.
func (s *BlogService) Delete(ctx context.Context, blogID, userID int64) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.UserID != userID {
		return model.ErrNotBlogOwner
	}

	if err := s.blogRepo.Delete(ctx, blogID, blog.UserID); err != nil {
		return err
	}

	log.Printf("[BlogService] User %d deleted blog %d", userID, blogID)
	return nil
}

// Stats reduces the current blog collection to its summary report.
func (s *BlogService) Stats(ctx context.Context) (*stats.Report, error) {
	blogs, err := s.blogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &stats.Report{
		TotalLikes: stats.TotalLikes(blogs),
		Favorite:   stats.FavoriteBlog(blogs),
		MostBlogs:  stats.MostBlogs(blogs),
		MostLikes:  stats.MostLikes(blogs),
	}, nil
}
