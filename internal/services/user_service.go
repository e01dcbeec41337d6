package services

import (
	"context"

	"github.com/recipebook/backend/internal/models"
)

type userService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *userService {
	return &userService{repo: repo}
}

// GetAll retrieves all users
func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}
