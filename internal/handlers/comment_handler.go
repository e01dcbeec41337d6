package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for Comments business logic.
type CommentService interface {
	// Method Create validates and stores a comment and returns its ID.
	Create(ctx context.Context, req *models.CommentRequest) (int, error)
	// Method GetByRecipeID retrieves all comments of the recipe with "recipeID".
	GetByRecipeID(ctx context.Context, recipeID int) ([]models.Comment, error)
}

// CommentHandler handles HTTP requests for recipe comments
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all comment handler routes
func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/comments", h.Create)
	r.Get("/recipes/{id}/comments", h.GetByRecipeID)
}

// Create handles POST /comments
// @Summary Add a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body models.CommentRequest true "Comment"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create comment")
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// GetByRecipeID handles GET /recipes/{id}/comments
// @Summary List comments of a recipe
// @Tags comments
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /recipes/{id}/comments [get]
func (h *CommentHandler) GetByRecipeID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	comments, err := h.service.GetByRecipeID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get comments")
		return
	}

	h.RespondJSON(w, http.StatusOK, comments)
}
