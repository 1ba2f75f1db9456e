package handlers

import (
	"net/http"

	"github.com/navassist/nav-reconciler/internal/api/response"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondErrorMap sends the structured error shape used across the API for
// failures. An empty detail is omitted from the body.
func respondErrorMap(w http.ResponseWriter, status int, message, detail string) {
	if detail == "" {
		response.RespondError(w, status, message, nil)
		return
	}
	response.RespondError(w, status, message, detail)
}
