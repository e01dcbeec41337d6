package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/backend/internal/apperrors"
	"go.uber.org/zap"
)

// internalErrorMessage is the only message a client sees for storage failures
const internalErrorMessage = "internal server error"

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"message": message})
}

// RespondServiceError maps a classified service error to its status code.
// Storage failures are logged with their cause and answered with a generic message.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error, logMessage string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindConflict, apperrors.KindAuth:
		h.RespondError(w, http.StatusBadRequest, apperrors.MessageOf(err, "bad request"))
	case apperrors.KindNotFound:
		h.RespondError(w, http.StatusNotFound, apperrors.MessageOf(err, "not found"))
	default:
		h.Logger.Error(logMessage, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
