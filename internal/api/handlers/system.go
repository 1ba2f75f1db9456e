package handlers

import (
	"net/http"

	"github.com/navassist/nav-reconciler/internal/service"
)

// SystemHandler handles HTTP requests for system status endpoints.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependency.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Health handles GET requests for the service health check.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when the database is reachable, 503 otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		respondErrorMap(w, http.StatusServiceUnavailable, "service unhealthy", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Version handles GET requests for the running service version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with {"version": "<version>"}
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"version": h.systemService.CheckVersion()})
}
