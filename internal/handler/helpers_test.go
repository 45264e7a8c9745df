package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/config"
	"bloglist/internal/handler"
	"bloglist/internal/model"
	"bloglist/internal/service"
	transporthttp "bloglist/internal/transport/http"
)

const testJWTSecret = "handler-test-secret"

// In-memory repositories backing the full router, so requests exercise the
// real middleware, handlers and services end to end.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]model.User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.OwnerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var owners []model.OwnerSummary
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			owners = append(owners, model.OwnerSummary{ID: u.ID, Username: u.Username, Name: u.Name})
		}
	}
	return owners, nil
}

func (f *fakeUserRepo) SetBlogIDs(ctx context.Context, userID int64, blogIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.BlogIDs = append([]int64(nil), blogIDs...)
	return nil
}

type fakeBlogRepo struct {
	mu     sync.Mutex
	nextID int64
	blogs  map[int64]*model.Blog
	users  *fakeUserRepo
}

func newFakeBlogRepo(users *fakeUserRepo) *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[int64]*model.Blog), users: users}
}

func (f *fakeBlogRepo) Create(ctx context.Context, userID int64, title string, author *string, url string, likes int) (*model.Blog, error) {
	f.mu.Lock()
	f.nextID++
	blog := &model.Blog{
		ID:     f.nextID,
		UserID: userID,
		Title:  title,
		Author: author,
		URL:    url,
		Likes:  likes,
	}
	f.blogs[blog.ID] = blog
	f.mu.Unlock()

	// Mirror the transactional append to the owner's reverse index
	owner, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := f.users.SetBlogIDs(ctx, userID, append(owner.BlogIDs, blog.ID)); err != nil {
		return nil, err
	}

	copied := *blog
	return &copied, nil
}

func (f *fakeBlogRepo) GetAll(ctx context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blogs := make([]model.Blog, 0, len(f.blogs))
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.blogs[id]; ok {
			blogs = append(blogs, *b)
		}
	}
	return blogs, nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, blogID int64) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[blogID]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBlogRepo) GetSummariesByIDs(ctx context.Context, ids []int64) ([]model.BlogSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var summaries []model.BlogSummary
	for _, id := range ids {
		if b, ok := f.blogs[id]; ok {
			summaries = append(summaries, model.BlogSummary{ID: b.ID, Title: b.Title, URL: b.URL, Likes: b.Likes})
		}
	}
	return summaries, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, blogID int64, fields model.UpdateBlogRequest) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[blogID]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	if fields.Title != nil {
		b.Title = *fields.Title
	}
	if fields.Author != nil {
		b.Author = fields.Author
	}
	if fields.URL != nil {
		b.URL = *fields.URL
	}
	if fields.Likes != nil {
		b.Likes = *fields.Likes
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, blogID, ownerID int64) error {
	f.mu.Lock()
	if _, ok := f.blogs[blogID]; !ok {
		f.mu.Unlock()
		return model.ErrBlogNotFound
	}
	delete(f.blogs, blogID)
	f.mu.Unlock()

	owner, err := f.users.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := make([]int64, 0, len(owner.BlogIDs))
	for _, id := range owner.BlogIDs {
		if id != blogID {
			kept = append(kept, id)
		}
	}
	return f.users.SetBlogIDs(ctx, ownerID, kept)
}

// testEnv bundles the wired router with direct access to the fakes.
type testEnv struct {
	router      http.Handler
	userRepo    *fakeUserRepo
	blogRepo    *fakeBlogRepo
	authService *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: testJWTSecret, TokenMaxAge: 3600}
	userRepo := newFakeUserRepo()
	blogRepo := newFakeBlogRepo(userRepo)

	userService := service.NewUserService(userRepo, blogRepo)
	authService := service.NewAuthService(cfg)
	blogService := service.NewBlogService(blogRepo, userRepo)

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		AuthHandler: handler.NewAuthHandler(userService, authService),
		UserHandler: handler.NewUserHandler(userService),
		BlogHandler: handler.NewBlogHandler(blogService),
		JWTSecret:   cfg.JWTSecret,
	})

	return &testEnv{
		router:      router,
		userRepo:    userRepo,
		blogRepo:    blogRepo,
		authService: authService,
	}
}

// registerUser seeds a user directly through the repository.
func (e *testEnv) registerUser(t *testing.T, username, password string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &model.User{Username: username, PasswordHashed: string(hashed)}
	if err := e.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// tokenFor issues a real signed token for the given user ID.
func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()

	token, err := e.authService.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON runs a request through the router and records the response.
func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

// errorMessage extracts the message from the error envelope.
func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v (body: %s)", err, resp.Body.String())
	}
	return envelope.Error.Message
}
