package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mfreitas/storegate/internal/api/middleware"
	"github.com/mfreitas/storegate/internal/api/request"
	"github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/services/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if len(req.Password) < 6 {
		WriteError(w, NewInvalidRequestError("password must be at least 6 characters"))
		return
	}
	if req.FullName == "" {
		WriteError(w, NewInvalidRequestError("full_name is required"))
		return
	}

	identity, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromIdentity(identity))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	identity, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromIdentity(identity))
}

// CheckStatus handles GET /api/v1/auth/check-status
func (h *AuthHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	identity, err := h.authService.RenewToken(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromIdentity(identity))
}
