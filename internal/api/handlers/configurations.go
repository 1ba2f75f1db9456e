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

// ConfigurationHandler handles HTTP requests for configuration and template
// endpoints.
type ConfigurationHandler struct {
	configService *service.ConfigurationService
}

// NewConfigurationHandler creates a new ConfigurationHandler with the
// provided service dependency.
func NewConfigurationHandler(configService *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

// Save handles POST requests to upsert a fund's configuration row.
//
// Endpoint: POST /api/configuration
// Response: 200 OK with {"status": "success"}
// Errors: 400 validation failure, 404 unknown fund
func (h *ConfigurationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveConfigurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveConfiguration(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	row := model.Configuration{
		Tolerance:          req.Tolerance,
		NavPageURL:         req.NavPageURL,
		ExpertPricePageURL: req.ExpertPricePageURL,
		Selectors:          selectorsFromRequest(req.SelectorFields),
	}

	err := h.configService.SaveConfiguration(r.Context(), req.FundName, row)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondErrorMap(w, http.StatusNotFound, "fund not found", req.FundName)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to save configuration", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Resolve handles GET requests for a fund's effective configuration.
// The response is fully materialized: tolerance always set, selectors
// possibly empty strings when nothing in the override chain provides them.
//
// Endpoint: GET /api/configuration/{fundName}
// Response: 200 OK with EffectiveConfig
// Error: 404 if the fund does not exist
func (h *ConfigurationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	fundName := chi.URLParam(r, "fundName")

	cfg, err := h.configService.Resolve(r.Context(), fundName)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondErrorMap(w, http.StatusNotFound, "fund not found", fundName)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to resolve configuration", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

func selectorsFromRequest(f request.SelectorFields) model.Selectors {
	return model.Selectors{
		DateSelector:             f.DateSelector,
		TimeSelector:             f.TimeSelector,
		NavPriceSelector:         f.NavPriceSelector,
		TotalUnitsSelector:       f.TotalUnitsSelector,
		NavSearchButtonSelector:  f.NavSearchButtonSelector,
		SecuritiesListSelector:   f.SecuritiesListSelector,
		SellableQuantitySelector: f.SellableQuantitySelector,
		ExpertPriceSelector:      f.ExpertPriceSelector,
		IncreaseRowsSelector:     f.IncreaseRowsSelector,
		ExpertSearchButtonSelect: f.ExpertSearchButtonSelect,
	}
}
