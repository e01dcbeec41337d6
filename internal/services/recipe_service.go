package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/storage"
	"go.uber.org/zap"
)

// RecipeRepository is the interface that wraps methods for Recipes table data access
type RecipeRepository interface {
	// Method GetAll retrieves all recipes in database order.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Recipe, error)
	// Method GetByID retrieves a recipe by its ID.
	//
	// If recipe with such ID does not exist, a NotFound error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Recipe, error)
	// Method GetByCategory retrieves all recipes whose category equals "category".
	GetByCategory(ctx context.Context, category string) ([]models.Recipe, error)
	// Method SearchByIngredients retrieves recipes whose ingredients contain any of "terms" as a substring.
	SearchByIngredients(ctx context.Context, terms []string) ([]models.Recipe, error)
	// Method Create inserts a new recipe and sets its generated ID.
	Create(ctx context.Context, recipe *models.Recipe) error
	// Method Update applies the non-nil fields of "req" to the recipe with "id".
	//
	// Returns the number of matched rows; zero means no recipe with such ID exists.
	Update(ctx context.Context, id int, req *models.RecipeRequest) (int64, error)
	// Method Delete deletes the recipe with "id".
	//
	// Returns the number of deleted rows; zero means no recipe with such ID exists.
	Delete(ctx context.Context, id int) (int64, error)
}

// ImageStorage is the interface that wraps methods for uploaded image storage
type ImageStorage interface {
	// Method Save writes the content of "reader" to a file called "name".
	Save(name string, reader io.Reader) error
	// Method Delete removes the file called "name".
	Delete(name string) error
}

// ImageUpload is an image file attached to a create recipe request
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type recipeService struct {
	repo    RecipeRepository
	storage ImageStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewRecipeService creates a new recipe service
func NewRecipeService(repo RecipeRepository, storage ImageStorage, logger *zap.Logger) *recipeService {
	return &recipeService{
		repo:    repo,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// GetAll retrieves all recipes
func (s *recipeService) GetAll(ctx context.Context) ([]models.Recipe, error) {
	return s.repo.GetAll(ctx)
}

// GetByID retrieves a recipe by ID
func (s *recipeService) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByCategory retrieves all recipes of a category
func (s *recipeService) GetByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	return s.repo.GetByCategory(ctx, category)
}

// Create validates and inserts a new recipe, storing the optional image first.
// Returns the generated recipe ID.
func (s *recipeService) Create(ctx context.Context, req *models.RecipeRequest, image *ImageUpload) (int, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return 0, apperrors.Validation("title is required")
	}

	recipe := req.ToRecipe()
	// only a stored upload sets the image path
	recipe.ImagePath = nil

	var storedName string
	if image != nil {
		storedName = storage.GenerateFileName(s.now(), image.Filename)
		if err := s.storage.Save(storedName, image.Content); err != nil {
			s.logger.Error("failed to store recipe image", zap.Error(err), zap.String("filename", image.Filename))
			return 0, apperrors.Storage("failed to store image", err)
		}
		imagePath := storage.PublicPath(storedName)
		recipe.ImagePath = &imagePath
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		if storedName != "" {
			if delErr := s.storage.Delete(storedName); delErr != nil {
				s.logger.Warn("failed to remove orphaned recipe image", zap.Error(delErr), zap.String("file", storedName))
			}
		}
		return 0, err
	}

	s.logger.Info("recipe created", zap.Int("id", recipe.ID))
	return recipe.ID, nil
}

// Update applies a partial update to a recipe
func (s *recipeService) Update(ctx context.Context, id int, req *models.RecipeRequest) error {
	if req.IsEmpty() {
		return apperrors.Validation("no fields to update")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return apperrors.Validation("title cannot be empty")
	}

	count, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("recipe not found")
	}
	return nil
}

// Delete deletes a recipe. Comments of the recipe are removed by the database.
func (s *recipeService) Delete(ctx context.Context, id int) error {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("recipe not found")
	}
	return nil
}

// Search retrieves recipes whose ingredients contain any of the given terms.
// Blank terms are ignored; a NotFound error is returned when nothing matches.
func (s *recipeService) Search(ctx context.Context, ingredients []string) ([]models.Recipe, error) {
	terms := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		if term := strings.TrimSpace(ingredient); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, apperrors.Validation("ingredients must contain at least one non-empty value")
	}

	recipes, err := s.repo.SearchByIngredients(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("error searching recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, apperrors.NotFound("no recipes found with the provided ingredients")
	}
	return recipes, nil
}
