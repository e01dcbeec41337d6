package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/services"
	"go.uber.org/zap"
)

// maxMultipartMemory is the part of a multipart body kept in memory; the rest spills to temp files
const maxMultipartMemory = 10 << 20

// imageField is the multipart file field carrying the recipe image
const imageField = "image_path"

// RecipeService is the interface that wraps methods for Recipes business logic.
type RecipeService interface {
	// Method GetAll retrieves all recipes.
	GetAll(ctx context.Context) ([]models.Recipe, error)
	// Method GetByID retrieves a recipe by its ID.
	//
	// If recipe does not exist, a NotFound error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Recipe, error)
	// Method GetByCategory retrieves recipes of the exact "category".
	GetByCategory(ctx context.Context, category string) ([]models.Recipe, error)
	// Method Create validates and stores a new recipe with an optional image and returns its ID.
	//
	// "image" parameter is nil when no file was uploaded.
	// If the title is missing, a Validation error will be returned together with zero ID.
	Create(ctx context.Context, req *models.RecipeRequest, image *services.ImageUpload) (int, error)
	// Method Update applies the provided fields of "req" to the recipe with "id".
	//
	// If recipe does not exist, a NotFound error will be returned.
	Update(ctx context.Context, id int, req *models.RecipeRequest) error
	// Method Delete removes the recipe with "id" together with its comments.
	//
	// If recipe does not exist, a NotFound error will be returned.
	Delete(ctx context.Context, id int) error
	// Method Search retrieves recipes whose ingredients contain any of "ingredients".
	//
	// An empty list produces a Validation error, no match produces a NotFound error.
	Search(ctx context.Context, ingredients []string) ([]models.Recipe, error)
}

// RecipeHandler handles HTTP requests for recipes
type RecipeHandler struct {
	BaseHandler
	service RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(svc RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all recipe handler routes.
// Mutating routes are wrapped with "authMiddleware".
func (h *RecipeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/recipes", h.GetAll)
	r.Get("/recipes/{id}", h.GetByID)
	r.Get("/recipes/category/{category}", h.GetByCategory)
	r.With(authMiddleware).Post("/recipes", h.Create)
	r.With(authMiddleware).Put("/recipes/{id}", h.Update)
	r.With(authMiddleware).Delete("/recipes/{id}", h.Delete)
	r.Post("/search", h.Search)
}

// GetAll handles GET /recipes
// @Summary List recipes
// @Description Get all recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} models.Recipe
// @Failure 500 {object} models.MessageResponse
// @Router /recipes [get]
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to get recipes")
		return
	}

	h.RespondJSON(w, http.StatusOK, recipes)
}

// GetByID handles GET /recipes/{id}
// @Summary Get recipe by ID
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get recipe")
		return
	}

	h.RespondJSON(w, http.StatusOK, recipe)
}

// GetByCategory handles GET /recipes/category/{category}
// @Summary List recipes by category
// @Description Get recipes whose category matches exactly
// @Tags recipes
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} models.Recipe
// @Failure 500 {object} models.MessageResponse
// @Router /recipes/category/{category} [get]
func (h *RecipeHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	recipes, err := h.service.GetByCategory(r.Context(), category)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get recipes by category")
		return
	}

	h.RespondJSON(w, http.StatusOK, recipes)
}

// Create handles POST /recipes
// @Summary Create a recipe
// @Description Create a recipe from a JSON body or a multipart form with an optional image file
// @Tags recipes
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body models.RecipeRequest false "Recipe (JSON)"
// @Param image_path formData file false "Recipe image (multipart)"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		req   *models.RecipeRequest
		image *services.ImageUpload
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.Logger.Warn("failed to parse multipart form", zap.Error(err))
			h.RespondError(w, http.StatusBadRequest, "failed to parse request")
			return
		}

		var err error
		req, err = recipeRequestFromForm(r)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		file, header, err := r.FormFile(imageField)
		switch {
		case err == nil:
			defer file.Close()
			image = &services.ImageUpload{Filename: header.Filename, Content: file}
		case !errors.Is(err, http.ErrMissingFile):
			h.Logger.Warn("failed to read image file", zap.Error(err))
			h.RespondError(w, http.StatusBadRequest, "failed to process image file")
			return
		}
	} else {
		req = &models.RecipeRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id, err := h.service.Create(r.Context(), req, image)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create recipe")
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// Update handles PUT /recipes/{id}
// @Summary Update a recipe
// @Description Partially update a recipe; only provided fields change.
// @Description The body is validated before the recipe is looked up, so an empty body is a 400 even for an unknown id.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body models.RecipeRequest true "Fields to update"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.MessageResponse "Invalid id, malformed body, no fields to update or blank title"
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "Recipe not found (valid body only)"
// @Failure 500 {object} models.MessageResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req models.RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		h.RespondServiceError(w, err, "failed to update recipe")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.MessageResponse{Message: "Recipe updated"})
}

// Delete handles DELETE /recipes/{id}
// @Summary Delete a recipe
// @Description Delete a recipe and all of its comments
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err, "failed to delete recipe")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.MessageResponse{Message: "Recipe deleted"})
}

// Search handles POST /search
// @Summary Search recipes by ingredients
// @Description Get recipes whose ingredients contain any of the given values
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Ingredients"
// @Success 200 {array} models.Recipe
// @Failure 400 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /search [post]
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipes, err := h.service.Search(r.Context(), req.Ingredients)
	if err != nil {
		h.RespondServiceError(w, err, "failed to search recipes")
		return
	}

	h.RespondJSON(w, http.StatusOK, recipes)
}

// recipeRequestFromForm builds a recipe request from parsed multipart values.
// Repeated "ingredients" or "method" values are stored as a JSON list.
func recipeRequestFromForm(r *http.Request) (*models.RecipeRequest, error) {
	values := r.MultipartForm.Value
	text := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		return &v[0]
	}
	list := func(key string) (*models.TextList, error) {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil, nil
		}
		if len(v) == 1 {
			t := models.TextList(v[0])
			return &t, nil
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		t := models.TextList(encoded)
		return &t, nil
	}

	req := &models.RecipeRequest{
		Title:       text("title"),
		Description: text("description"),
		Serves:      text("serves"),
		PrepTime:    text("prep_time"),
		CookTime:    text("cook_time"),
		Category:    text("category"),
	}

	var err error
	if req.Ingredients, err = list("ingredients"); err != nil {
		return nil, errors.New("invalid ingredients")
	}
	if req.Method, err = list("method"); err != nil {
		return nil, errors.New("invalid method")
	}

	if rating := text("rating"); rating != nil && *rating != "" {
		value, err := strconv.ParseFloat(*rating, 64)
		if err != nil {
			return nil, errors.New("rating must be a number")
		}
		req.Rating = &value
	}

	return req, nil
}
