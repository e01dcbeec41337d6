package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Signup validates and creates a user account and returns its ID.
	//
	// If any field is blank or the email is taken, the error will be returned together with zero ID.
	Signup(ctx context.Context, req *models.SignupRequest) (int, error)
	// Method Login verifies credentials and returns a signed bearer token.
	//
	// Unknown emails and wrong passwords produce the same Auth error.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}

// AuthHandler handles signup and login requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

// Signup handles POST /signup
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} models.SignupResponse
// @Failure 400 {object} models.MessageResponse "Missing fields or email already in use"
// @Failure 500 {object} models.MessageResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to sign up user")
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.SignupResponse{
		Message: "User created successfully",
		UserID:  userID,
	})
}

// Login handles POST /login
// @Summary Login user
// @Description Authenticate with email and password; returns a bearer token valid for one hour
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.MessageResponse "Missing fields or invalid credentials"
// @Failure 500 {object} models.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to login user")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
