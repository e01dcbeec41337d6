package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/apperrors"
	"github.com/recipebook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRecipeRouter(svc *mockRecipeService) http.Handler {
	r := chi.NewRouter()
	NewRecipeHandler(svc, zap.NewNop()).RegisterRoutes(r, requireTestToken)
	return r
}

func TestRecipeHandler_GetAll(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockRecipeService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			svc:            &mockRecipeService{recipes: []models.Recipe{{ID: 1, Title: "Tea"}}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"title":"Tea","description":null,"serves":null,"prep_time":null,"cook_time":null,"ingredients":null,"method":null,"category":null,"rating":null,"image_path":null}]`,
		},
		{
			name:           "storage error hides cause",
			svc:            &mockRecipeService{err: apperrors.Storage("failed to get recipes", errors.New("dial tcp: connection refused"))},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodGet, "/recipes", "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRecipeHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		svc            *mockRecipeService
		expectedStatus int
		expectedID     int
	}{
		{
			name:           "success",
			path:           "/recipes/7",
			svc:            &mockRecipeService{recipe: &models.Recipe{ID: 7, Title: "Cake"}},
			expectedStatus: http.StatusOK,
			expectedID:     7,
		},
		{
			name:           "not found",
			path:           "/recipes/99",
			svc:            &mockRecipeService{err: apperrors.NotFound("recipe not found")},
			expectedStatus: http.StatusNotFound,
			expectedID:     99,
		},
		{
			name:           "non numeric id",
			path:           "/recipes/abc",
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodGet, tt.path, "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedID, tt.svc.lastID)
		})
	}
}

func TestRecipeHandler_GetByCategory(t *testing.T) {
	svc := &mockRecipeService{recipes: []models.Recipe{{ID: 1, Title: "Tea", Category: strPtr("Drink")}}}

	w := performRequest(newRecipeRouter(svc), http.MethodGet, "/recipes/category/Drink", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Drink", svc.lastCategory)
	var recipes []models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 1)
}

func TestRecipeHandler_Create_JSON(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		headers        map[string]string
		svc            *mockRecipeService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"title":"Tea","ingredients":["water","tea leaves"],"method":"Boil","rating":4.5}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{createdID: 12},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":12}`,
		},
		{
			name:           "missing title",
			body:           `{"category":"Drink"}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{err: apperrors.Validation("title is required")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"title is required"}`,
		},
		{
			name:           "invalid body",
			body:           `{"title":`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
		{
			name:           "ingredients of wrong type",
			body:           `{"title":"Tea","ingredients":42}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
		{
			name:           "no token",
			body:           `{"title":"Tea"}`,
			headers:        map[string]string{"Content-Type": "application/json"},
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodPost, "/recipes", tt.body, tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("list fields are stored as JSON text", func(t *testing.T) {
		svc := &mockRecipeService{createdID: 1}
		body := `{"title":"Tea","ingredients":["water","tea leaves"],"method":"Boil"}`

		w := performRequest(newRecipeRouter(svc), http.MethodPost, "/recipes", body, authHeaders())

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.lastReq.Ingredients)
		assert.Equal(t, `["water","tea leaves"]`, string(*svc.lastReq.Ingredients))
		assert.Equal(t, "Boil", string(*svc.lastReq.Method))
		assert.Nil(t, svc.lastImage)
	})
}

func TestRecipeHandler_Create_Multipart(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Cake"))
	require.NoError(t, writer.WriteField("category", "Dessert"))
	require.NoError(t, writer.WriteField("rating", "4.8"))
	require.NoError(t, writer.WriteField("ingredients", "flour"))
	require.NoError(t, writer.WriteField("ingredients", "sugar"))
	part, err := writer.CreateFormFile("image_path", "cake.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	svc := &mockRecipeService{createdID: 3}
	headers := map[string]string{
		"Authorization": "Bearer " + testToken,
		"Content-Type":  writer.FormDataContentType(),
	}

	w := performRequest(newRecipeRouter(svc), http.MethodPost, "/recipes", body.String(), headers)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "Cake", *svc.lastReq.Title)
	assert.Equal(t, "Dessert", *svc.lastReq.Category)
	assert.InDelta(t, 4.8, *svc.lastReq.Rating, 0.0001)
	assert.Equal(t, `["flour","sugar"]`, string(*svc.lastReq.Ingredients))
	require.NotNil(t, svc.lastImage)
	assert.Equal(t, "cake.jpg", svc.lastImage.Filename)
	assert.Equal(t, "jpeg-bytes", svc.imageBody)
}

func TestRecipeHandler_Create_MultipartImagePathTextIgnored(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Cake"))
	require.NoError(t, writer.WriteField("image_path", "/uploads/someone-else.jpg"))
	require.NoError(t, writer.Close())

	svc := &mockRecipeService{createdID: 4}
	headers := map[string]string{
		"Authorization": "Bearer " + testToken,
		"Content-Type":  writer.FormDataContentType(),
	}

	w := performRequest(newRecipeRouter(svc), http.MethodPost, "/recipes", body.String(), headers)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastReq)
	assert.Nil(t, svc.lastReq.ImagePath)
	assert.Nil(t, svc.lastImage)
}

func TestRecipeHandler_Create_MultipartInvalidRating(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Cake"))
	require.NoError(t, writer.WriteField("rating", "five"))
	require.NoError(t, writer.Close())

	svc := &mockRecipeService{}
	headers := map[string]string{
		"Authorization": "Bearer " + testToken,
		"Content-Type":  writer.FormDataContentType(),
	}

	w := performRequest(newRecipeRouter(svc), http.MethodPost, "/recipes", body.String(), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"rating must be a number"}`, w.Body.String())
	assert.Nil(t, svc.lastReq)
}

func TestRecipeHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		headers        map[string]string
		svc            *mockRecipeService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			path:           "/recipes/4",
			body:           `{"title":"Chai"}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Recipe updated"}`,
		},
		{
			name:           "not found",
			path:           "/recipes/404",
			body:           `{"title":"Chai"}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{err: apperrors.NotFound("recipe not found")},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"recipe not found"}`,
		},
		{
			name:           "invalid id",
			path:           "/recipes/0",
			body:           `{"title":"Chai"}`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid recipe id"}`,
		},
		{
			name:           "invalid body",
			path:           "/recipes/4",
			body:           `not json`,
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
		{
			name:           "no token",
			path:           "/recipes/4",
			body:           `{"title":"Chai"}`,
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodPut, tt.path, tt.body, tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRecipeHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		headers        map[string]string
		svc            *mockRecipeService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			path:           "/recipes/4",
			headers:        authHeaders(),
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Recipe deleted"}`,
		},
		{
			name:           "not found",
			path:           "/recipes/4",
			headers:        authHeaders(),
			svc:            &mockRecipeService{err: apperrors.NotFound("recipe not found")},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"recipe not found"}`,
		},
		{
			name:           "no token",
			path:           "/recipes/4",
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodDelete, tt.path, "", tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRecipeHandler_Search(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockRecipeService
		expectedStatus int
		expectedTerms  []string
	}{
		{
			name:           "success",
			body:           `{"ingredients":["vanilla","cream"]}`,
			svc:            &mockRecipeService{recipes: []models.Recipe{{ID: 1, Title: "Ice Cream"}}},
			expectedStatus: http.StatusOK,
			expectedTerms:  []string{"vanilla", "cream"},
		},
		{
			name:           "no matches",
			body:           `{"ingredients":["saffron"]}`,
			svc:            &mockRecipeService{err: apperrors.NotFound("no recipes found with the provided ingredients")},
			expectedStatus: http.StatusNotFound,
			expectedTerms:  []string{"saffron"},
		},
		{
			name:           "empty list",
			body:           `{"ingredients":[]}`,
			svc:            &mockRecipeService{err: apperrors.Validation("ingredients must contain at least one non-empty value")},
			expectedStatus: http.StatusBadRequest,
			expectedTerms:  []string{},
		},
		{
			name:           "invalid body",
			body:           `{"ingredients":"vanilla"}`,
			svc:            &mockRecipeService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newRecipeRouter(tt.svc), http.MethodPost, "/search", tt.body, map[string]string{"Content-Type": "application/json"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedTerms, tt.svc.lastTerms)
		})
	}
}
