package handler

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
