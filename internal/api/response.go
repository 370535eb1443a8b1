package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorResponse{Error: message})
}

// statusFromError maps timeline errors onto HTTP status codes.
func statusFromError(err error) int {
	var conflict *timeline.ErrDateConflict
	if errors.As(err, &conflict) {
		return http.StatusConflict
	}
	var notFound *timeline.ErrNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
