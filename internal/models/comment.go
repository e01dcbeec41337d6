package models

import "time"

// Comment represents a comment left on a recipe
type Comment struct {
	ID        int        `json:"id"`
	RecipeID  int        `json:"recipe_id"`
	Name      string     `json:"name"`
	Comment   string     `json:"comment"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CommentRequest represents a create comment request
type CommentRequest struct {
	RecipeID int    `json:"recipe_id"`
	Name     string `json:"name"`
	Comment  string `json:"comment"`
}
