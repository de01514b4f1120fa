package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError maps the error taxonomy onto HTTP statuses so
// clients can tell "malformed" from "not yours" from "stale state".
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())
	case domain.IsConflict(err):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Unhandled error in handler", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
