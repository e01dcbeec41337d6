package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for listing users.
type UserService interface {
	GetAll(ctx context.Context) ([]models.User, error)
}

// UserHandler handles HTTP requests for users
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all user handler routes behind "authMiddleware"
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/users", h.GetAll)
}

// GetAll handles GET /users
// @Summary List users
// @Description Password hashes are never returned
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /users [get]
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to get users")
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}
