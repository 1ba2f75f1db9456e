package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/navassist/nav-reconciler/internal/api/request"
	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/service"
	"github.com/navassist/nav-reconciler/internal/validation"
)

// TemplateHandler handles HTTP requests for template endpoints.
type TemplateHandler struct {
	configService *service.ConfigurationService
}

// NewTemplateHandler creates a new TemplateHandler with the provided service dependency.
func NewTemplateHandler(configService *service.ConfigurationService) *TemplateHandler {
	return &TemplateHandler{configService: configService}
}

// Save handles POST requests to upsert a template by name.
//
// Endpoint: POST /api/template
// Response: 200 OK with {"status": "success"}
// Error: 400 validation failure
func (h *TemplateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveTemplate(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tmpl := model.Template{
		Name:               req.Name,
		Tolerance:          req.Tolerance,
		NavPageURL:         req.NavPageURL,
		ExpertPricePageURL: req.ExpertPricePageURL,
		Selectors:          selectorsFromRequest(req.SelectorFields),
	}

	if err := h.configService.SaveTemplate(r.Context(), tmpl); err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to save template", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Templates handles GET requests for all templates.
//
// Endpoint: GET /api/template
// Response: 200 OK with array of Template
func (h *TemplateHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.configService.GetAllTemplates(r.Context())
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve templates", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

// Template handles GET requests for a single template by name.
//
// Endpoint: GET /api/template/{name}
// Response: 200 OK with Template
// Error: 404 if the template does not exist
func (h *TemplateHandler) Template(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tmpl, err := h.configService.GetTemplate(r.Context(), name)
	if errors.Is(err, apperrors.ErrTemplateNotFound) {
		respondErrorMap(w, http.StatusNotFound, "template not found", name)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve template", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tmpl)
}

// Apply handles POST requests to copy a template into a fund's configuration.
// The copy is an idempotent upsert keyed by fund.
//
// Endpoint: POST /api/template/{name}/apply/{fundName}
// Response: 200 OK with {"status": "success"}
// Error: 404 if either the template or the fund does not exist
func (h *TemplateHandler) Apply(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	fundName := chi.URLParam(r, "fundName")

	err := h.configService.ApplyTemplate(r.Context(), name, fundName)
	switch {
	case errors.Is(err, apperrors.ErrFundNotFound):
		respondErrorMap(w, http.StatusNotFound, "fund not found", fundName)
		return
	case errors.Is(err, apperrors.ErrTemplateNotFound):
		respondErrorMap(w, http.StatusNotFound, "template not found", name)
		return
	case err != nil:
		respondErrorMap(w, http.StatusInternalServerError, "failed to apply template", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
