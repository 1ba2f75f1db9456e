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

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// Create handles POST requests to register a fund.
//
// Endpoint: POST /api/fund
// Response: 201 Created with the stored Fund
// Errors: 400 validation failure, 409 duplicate name
func (h *FundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), model.Fund{
		Name:               req.Name,
		APISymbol:          req.APISymbol,
		Type:               req.Type,
		NavPageURL:         req.NavPageURL,
		ExpertPricePageURL: req.ExpertPricePageURL,
	})
	if errors.Is(err, apperrors.ErrDuplicateEntry) {
		respondErrorMap(w, http.StatusConflict, "fund already exists", req.Name)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to create fund", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, fund)
}

// Funds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetAllFunds(r.Context())
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve funds", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, funds)
}

// Fund handles GET requests for a single fund by name.
//
// Endpoint: GET /api/fund/{name}
// Response: 200 OK with Fund
// Error: 404 if the fund does not exist
func (h *FundHandler) Fund(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	fund, err := h.fundService.GetFund(r.Context(), name)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondErrorMap(w, http.StatusNotFound, "fund not found", name)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve fund", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// Update handles PUT requests to change fund metadata.
//
// Endpoint: PUT /api/fund/{name}
// Response: 200 OK with the updated Fund
// Errors: 400 validation failure, 404 unknown fund
func (h *FundHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req request.UpdateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFund(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.GetFund(r.Context(), name)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondErrorMap(w, http.StatusNotFound, "fund not found", name)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve fund", err.Error())
		return
	}

	if req.APISymbol != nil {
		fund.APISymbol = *req.APISymbol
	}
	if req.Type != nil {
		fund.Type = *req.Type
	}
	if req.NavPageURL != nil {
		fund.NavPageURL = *req.NavPageURL
	}
	if req.ExpertPricePageURL != nil {
		fund.ExpertPricePageURL = *req.ExpertPricePageURL
	}

	if err := h.fundService.UpdateFund(r.Context(), fund); err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to update fund", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// Delete handles DELETE requests to remove a fund and its dependents.
//
// Endpoint: DELETE /api/fund/{name}
// Response: 204 No Content
// Error: 404 if the fund does not exist
func (h *FundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := h.fundService.DeleteFund(r.Context(), name)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		respondErrorMap(w, http.StatusNotFound, "fund not found", name)
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to delete fund", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
