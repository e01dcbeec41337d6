package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

// commentRepository implements CommentRepository
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new comment and sets its generated ID.
// A recipe_id that does not reference an existing recipe fails on the foreign key.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (recipe_id, name, comment)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.RecipeID, comment.Name, comment.Comment)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err), zap.Int("recipeId", comment.RecipeID))
		return apperrors.Storage("failed to add comment", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return apperrors.Storage("failed to add comment", err)
	}

	comment.ID = int(id)
	return nil
}

// GetByRecipeID retrieves all comments of a recipe
func (r *commentRepository) GetByRecipeID(ctx context.Context, recipeID int) ([]models.Comment, error) {
	query := `
		SELECT id, recipe_id, name, comment, created_at, updated_at
		FROM comments
		WHERE recipe_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		r.logger.Error("failed to get comments", zap.Error(err), zap.Int("recipeId", recipeID))
		return nil, apperrors.Storage("failed to fetch comments", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.Name, &c.Comment, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error("failed to scan comment", zap.Error(err))
			return nil, apperrors.Storage("failed to fetch comments", fmt.Errorf("failed to scan comment: %w", err))
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating comments", zap.Error(err))
		return nil, apperrors.Storage("failed to fetch comments", err)
	}

	return comments, nil
}
