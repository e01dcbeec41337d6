package handlers

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// endpoint describes one public route on the index page
type endpoint struct {
	Route       string
	Description string
}

var endpoints = []endpoint{
	{"GET /recipes", "List all recipes"},
	{"GET /recipes/{id}", "Get a recipe by ID"},
	{"GET /recipes/category/{category}", "List recipes of a category"},
	{"POST /recipes", "Add a recipe (bearer token)"},
	{"PUT /recipes/{id}", "Update a recipe (bearer token)"},
	{"DELETE /recipes/{id}", "Delete a recipe (bearer token)"},
	{"POST /signup", "Create a user account"},
	{"POST /login", "Get a bearer token"},
	{"GET /users", "List users (bearer token)"},
	{"POST /search", "Search recipes by ingredients"},
	{"POST /comments", "Add a comment to a recipe"},
	{"GET /recipes/{id}/comments", "List comments of a recipe"},
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Recipes API</title></head>
<body>
<h1>Recipes API</h1>
<p>Available endpoints:</p>
<ul>
{{- range .}}
<li>{{.Route}} - {{.Description}}</li>
{{- end}}
</ul>
<p><a href="/swagger/index.html">API documentation</a></p>
</body>
</html>
`))

// IndexHandler serves the HTML endpoint index
type IndexHandler struct {
	BaseHandler
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(logger *zap.Logger) *IndexHandler {
	return &IndexHandler{BaseHandler: BaseHandler{Logger: logger}}
}

// RegisterRoutes registers the index route
func (h *IndexHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
}

// Index handles GET /
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, endpoints); err != nil {
		h.Logger.Error("failed to render index", zap.Error(err))
	}
}
