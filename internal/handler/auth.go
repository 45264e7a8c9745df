package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloglist/internal/httputil"
	"bloglist/internal/model"
	"bloglist/internal/service"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Login handles user login
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			// Same response for unknown user and wrong password
			httputil.WriteUnauthorized(w, "invalid username or password")
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	token, err := h.authService.GenerateAccessToken(user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	response := model.LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}
	httputil.WriteJSON(w, http.StatusOK, response)
}
