package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

const recipeColumns = `id, title, description, serves, prep_time, cook_time, ingredients, method, category, rating, image_path, created_at, updated_at`

// likeEscaper escapes LIKE wildcards so search terms match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *sql.DB, logger *zap.Logger) *recipeRepository {
	return &recipeRepository{
		db:     db,
		logger: logger,
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	err := s.Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.Description,
		&recipe.Serves,
		&recipe.PrepTime,
		&recipe.CookTime,
		&recipe.Ingredients,
		&recipe.Method,
		&recipe.Category,
		&recipe.Rating,
		&recipe.ImagePath,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// queryRecipes runs a SELECT returning recipe rows
func (r *recipeRepository) queryRecipes(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// GetAll retrieves all recipes
func (r *recipeRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`

	recipes, err := r.queryRecipes(ctx, query)
	if err != nil {
		r.logger.Error("failed to get all recipes", zap.Error(err))
		return nil, apperrors.Storage("failed to get recipes", err)
	}
	return recipes, nil
}

// GetByID retrieves a recipe by its ID
func (r *recipeRepository) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ? LIMIT 1`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("recipe not found")
	}
	if err != nil {
		r.logger.Error("failed to get recipe by id", zap.Error(err), zap.Int("id", id))
		return nil, apperrors.Storage("failed to get recipe", err)
	}

	return recipe, nil
}

// GetByCategory retrieves all recipes of a category
func (r *recipeRepository) GetByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE category = ?`

	recipes, err := r.queryRecipes(ctx, query, category)
	if err != nil {
		r.logger.Error("failed to get recipes by category", zap.Error(err), zap.String("category", category))
		return nil, apperrors.Storage("failed to get recipes", err)
	}
	return recipes, nil
}

// SearchByIngredients retrieves recipes whose ingredients text contains any of the terms
func (r *recipeRepository) SearchByIngredients(ctx context.Context, terms []string) ([]models.Recipe, error) {
	if len(terms) == 0 {
		return []models.Recipe{}, nil
	}

	conditions := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))
	for _, term := range terms {
		conditions = append(conditions, "ingredients LIKE ?")
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE ` + strings.Join(conditions, " OR ")

	recipes, err := r.queryRecipes(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to search recipes", zap.Error(err), zap.Strings("ingredients", terms))
		return nil, apperrors.Storage("failed to search recipes", err)
	}
	return recipes, nil
}

// ListImagePaths returns every image path recorded on a recipe
func (r *recipeRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	query := `SELECT image_path FROM recipes WHERE image_path IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list image paths", zap.Error(err))
		return nil, apperrors.Storage("failed to list image paths", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, apperrors.Storage("failed to list image paths", err)
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to list image paths", err)
	}

	return paths, nil
}

// Create inserts a new recipe and sets its generated ID
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	query := `
		INSERT INTO recipes (title, description, serves, prep_time, cook_time, ingredients, method, category, rating, image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		recipe.Title,
		recipe.Description,
		recipe.Serves,
		recipe.PrepTime,
		recipe.CookTime,
		recipe.Ingredients,
		recipe.Method,
		recipe.Category,
		recipe.Rating,
		recipe.ImagePath,
	)
	if err != nil {
		r.logger.Error("failed to create recipe", zap.Error(err))
		return apperrors.Storage("failed to create recipe", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return apperrors.Storage("failed to create recipe", err)
	}

	recipe.ID = int(id)
	return nil
}

// Update updates the provided recipe fields (partial update) and returns the number of matched rows
func (r *recipeRepository) Update(ctx context.Context, id int, req *models.RecipeRequest) (int64, error) {
	// Build dynamic UPDATE query based on provided fields
	var setParts []string
	var args []any

	if req.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Serves != nil {
		setParts = append(setParts, "serves = ?")
		args = append(args, *req.Serves)
	}
	if req.PrepTime != nil {
		setParts = append(setParts, "prep_time = ?")
		args = append(args, *req.PrepTime)
	}
	if req.CookTime != nil {
		setParts = append(setParts, "cook_time = ?")
		args = append(args, *req.CookTime)
	}
	if req.Ingredients != nil {
		setParts = append(setParts, "ingredients = ?")
		args = append(args, string(*req.Ingredients))
	}
	if req.Method != nil {
		setParts = append(setParts, "method = ?")
		args = append(args, string(*req.Method))
	}
	if req.Category != nil {
		setParts = append(setParts, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Rating != nil {
		setParts = append(setParts, "rating = ?")
		args = append(args, *req.Rating)
	}
	if req.ImagePath != nil {
		setParts = append(setParts, "image_path = ?")
		args = append(args, *req.ImagePath)
	}

	if len(setParts) == 0 {
		return 0, apperrors.Validation("no fields to update")
	}

	query := fmt.Sprintf(`UPDATE recipes SET %s WHERE id = ?`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update recipe", zap.Error(err), zap.Int("id", id))
		return 0, apperrors.Storage("failed to update recipe", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Storage("failed to get rows affected", err)
	}

	return rowsAffected, nil
}

// Delete deletes a recipe by ID and returns the number of deleted rows
func (r *recipeRepository) Delete(ctx context.Context, id int) (int64, error) {
	query := `DELETE FROM recipes WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete recipe", zap.Error(err), zap.Int("id", id))
		return 0, apperrors.Storage("failed to delete recipe", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Storage("failed to get rows affected", err)
	}

	return rowsAffected, nil
}
