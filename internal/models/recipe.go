package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Recipe represents a recipe in the catalog
type Recipe struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Serves      *string    `json:"serves"`
	PrepTime    *string    `json:"prep_time"`
	CookTime    *string    `json:"cook_time"`
	Ingredients *string    `json:"ingredients"`
	Method      *string    `json:"method"`
	Category    *string    `json:"category"`
	Rating      *float64   `json:"rating"`
	ImagePath   *string    `json:"image_path"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// RecipeRequest represents a create or update request for a recipe.
// Every field is optional on update; nil fields are left untouched.
type RecipeRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Serves      *string   `json:"serves"`
	PrepTime    *string   `json:"prep_time"`
	CookTime    *string   `json:"cook_time"`
	Ingredients *TextList `json:"ingredients"`
	Method      *TextList `json:"method"`
	Category    *string   `json:"category"`
	Rating      *float64  `json:"rating"`
	ImagePath   *string   `json:"image_path"`
}

// IsEmpty reports whether the request carries no fields at all
func (r *RecipeRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Serves == nil &&
		r.PrepTime == nil && r.CookTime == nil && r.Ingredients == nil &&
		r.Method == nil && r.Category == nil && r.Rating == nil && r.ImagePath == nil
}

// ToRecipe converts the request into a Recipe ready for insertion
func (r *RecipeRequest) ToRecipe() *Recipe {
	recipe := &Recipe{
		Description: r.Description,
		Serves:      r.Serves,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Category:    r.Category,
		Rating:      r.Rating,
		ImagePath:   r.ImagePath,
	}
	if r.Title != nil {
		recipe.Title = *r.Title
	}
	if r.Ingredients != nil {
		recipe.Ingredients = r.Ingredients.StringPtr()
	}
	if r.Method != nil {
		recipe.Method = r.Method.StringPtr()
	}
	return recipe
}

// TextList is a free-text column that may be sent either as a plain string
// or as a JSON array of strings. Arrays are stored as their JSON encoding.
type TextList string

// UnmarshalJSON implements json.Unmarshaler
func (t *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextList(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("list must contain only strings: %w", err)
		}
		encoded, err := json.Marshal(items)
		if err != nil {
			return err
		}
		*t = TextList(encoded)
	default:
		return fmt.Errorf("expected string or array of strings")
	}
	return nil
}

// StringPtr returns the stored text as a string pointer
func (t *TextList) StringPtr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// SearchRequest represents an ingredients search request
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// CreatedResponse is returned after a successful insert
type CreatedResponse struct {
	ID int `json:"id"`
}

// MessageResponse carries a human readable status message
type MessageResponse struct {
	Message string `json:"message"`
}
