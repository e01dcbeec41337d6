package services

import (
	"context"
	"strings"

	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/models"
)

// CommentRepository is the interface that wraps methods for Comments table data access
type CommentRepository interface {
	// Method Create inserts a new comment and sets its generated ID.
	//
	// A "RecipeID" that does not reference an existing recipe is rejected by the database.
	Create(ctx context.Context, comment *models.Comment) error
	// Method GetByRecipeID retrieves all comments of a recipe.
	GetByRecipeID(ctx context.Context, recipeID int) ([]models.Comment, error)
}

type commentService struct {
	repo CommentRepository
}

// NewCommentService creates a new comment service
func NewCommentService(repo CommentRepository) *commentService {
	return &commentService{repo: repo}
}

// Create validates and inserts a comment, returning its ID
func (s *commentService) Create(ctx context.Context, req *models.CommentRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	text := strings.TrimSpace(req.Comment)
	if req.RecipeID <= 0 || name == "" || text == "" {
		return 0, apperrors.Validation("recipe_id, name, and comment are required")
	}

	comment := &models.Comment{
		RecipeID: req.RecipeID,
		Name:     name,
		Comment:  text,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// GetByRecipeID retrieves all comments of a recipe
func (s *commentService) GetByRecipeID(ctx context.Context, recipeID int) ([]models.Comment, error) {
	return s.repo.GetByRecipeID(ctx, recipeID)
}
