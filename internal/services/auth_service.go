package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/auth"
	"github.com/recipebook/backend/internal/models"
	"go.uber.org/zap"
)

// invalidCredentials is returned for both unknown emails and wrong passwords
const invalidCredentials = "invalid email or password"

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database and sets its generated ID.
	//
	// If the email is already taken, a Conflict error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// If user with such email does not exist, a NotFound error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
}

// TokenIssuer issues bearer tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID int) (string, error)
}

// authService implements signup and login
type authService struct {
	userRepo    UserRepository
	tokenIssuer TokenIssuer
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenIssuer TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// normalizeEmail trims and lower-cases an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user account and returns its ID.
//
// The existence check is an optimization; the unique index on email is what
// rejects a concurrent duplicate signup.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return 0, apperrors.Validation("name, email, and password are required")
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return 0, apperrors.Validation(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.Conflict("email already in use")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, apperrors.Storage("failed to create user", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}

	s.logger.Info("user signed up", zap.Int("userId", user.ID))
	return user.ID, nil
}

// Login verifies credentials and returns a bearer token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", apperrors.Validation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return "", apperrors.Auth(invalidCredentials)
		}
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return "", apperrors.Auth(invalidCredentials)
	}

	token, err := s.tokenIssuer.GenerateToken(user.ID)
	if err != nil {
		return "", apperrors.Storage("failed to generate token", err)
	}

	return token, nil
}
