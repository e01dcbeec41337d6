package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAuthRouter(svc *mockAuthService) http.Handler {
	r := chi.NewRouter()
	NewAuthHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockAuthService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"name":"Carol","email":"carol@example.com","password":"secret"}`,
			svc:            &mockAuthService{userID: 3},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"User created successfully","userId":3}`,
		},
		{
			name:           "email already in use",
			body:           `{"name":"Carol","email":"alice@example.com","password":"secret"}`,
			svc:            &mockAuthService{err: apperrors.Conflict("email already in use")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"email already in use"}`,
		},
		{
			name:           "missing fields",
			body:           `{"name":"Carol"}`,
			svc:            &mockAuthService{err: apperrors.Validation("name, email, and password are required")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"name, email, and password are required"}`,
		},
		{
			name:           "invalid body",
			body:           `[]`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
		{
			name:           "unexpected error",
			body:           `{"name":"Carol","email":"carol@example.com","password":"secret"}`,
			svc:            &mockAuthService{err: errors.New("connection reset")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newAuthRouter(tt.svc), http.MethodPost, "/signup", tt.body, map[string]string{"Content-Type": "application/json"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockAuthService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"email":"alice@example.com","password":"secret"}`,
			svc:            &mockAuthService{token: "jwt-token"},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Login successful","token":"jwt-token"}`,
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"alice@example.com","password":"wrong"}`,
			svc:            &mockAuthService{err: apperrors.Auth("invalid email or password")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid email or password"}`,
		},
		{
			name:           "invalid body",
			body:           `nope`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(newAuthRouter(tt.svc), http.MethodPost, "/login", tt.body, map[string]string{"Content-Type": "application/json"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
