package services

import (
	"context"
	"errors"
	"io"

	"github.com/recipebook/backend/internal/models"
)

func strPtr(s string) *string { return &s }

// mockRecipeRepository is a mock implementation of RecipeRepository
type mockRecipeRepository struct {
	recipes     []models.Recipe
	recipe      *models.Recipe
	err         error
	createErr   error
	createdID   int
	created     *models.Recipe
	rows        int64
	searchTerms []string
}

func (m *mockRecipeRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes, nil
}

func (m *mockRecipeRepository) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipe, nil
}

func (m *mockRecipeRepository) GetByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes, nil
}

func (m *mockRecipeRepository) SearchByIngredients(ctx context.Context, terms []string) ([]models.Recipe, error) {
	m.searchTerms = terms
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes, nil
}

func (m *mockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	m.created = recipe
	if m.createErr != nil {
		return m.createErr
	}
	recipe.ID = m.createdID
	return nil
}

func (m *mockRecipeRepository) Update(ctx context.Context, id int, req *models.RecipeRequest) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rows, nil
}

func (m *mockRecipeRepository) Delete(ctx context.Context, id int) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rows, nil
}

// mockImageStorage is a mock implementation of ImageStorage
type mockImageStorage struct {
	saveErr   error
	saved     map[string]string
	deleted   []string
	deleteErr error
}

func (m *mockImageStorage) Save(name string, reader io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[name] = string(content)
	return nil
}

func (m *mockImageStorage) Delete(name string) error {
	m.deleted = append(m.deleted, name)
	return m.deleteErr
}

// mockCommentRepository is a mock implementation of CommentRepository
type mockCommentRepository struct {
	comments []models.Comment
	created  *models.Comment
	err      error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.err != nil {
		return m.err
	}
	comment.ID = 11
	m.created = comment
	return nil
}

func (m *mockCommentRepository) GetByRecipeID(ctx context.Context, recipeID int) ([]models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.comments, nil
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user                *models.User
	users               []models.User
	err                 error
	createErr           error
	created             *models.User
	existsByEmailResult bool
	existsByEmailError  error
	getByEmailError     error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailError != nil {
		return nil, m.getByEmailError
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailError != nil {
		return false, m.existsByEmailError
	}
	return m.existsByEmailResult, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer
type mockTokenIssuer struct {
	token  string
	err    error
	userID int
}

func (m *mockTokenIssuer) GenerateToken(userID int) (string, error) {
	m.userID = userID
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

var errDatabase = errors.New("database error")
