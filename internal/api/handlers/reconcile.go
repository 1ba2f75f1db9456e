package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/navassist/nav-reconciler/internal/api/request"
	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/service"
	"github.com/navassist/nav-reconciler/internal/validation"
)

// ReconcileHandler handles HTTP requests for NAV checks and the audit log.
type ReconcileHandler struct {
	reconcileService *service.ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler with the provided service dependency.
func NewReconcileHandler(reconcileService *service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

// ReconcileResponse is the JSON shape of one check result. SuggestedNav is
// present only for the adjustment outcome.
type ReconcileResponse struct {
	Status       string   `json:"status"`
	SuggestedNav *float64 `json:"suggested_nav,omitempty"`
	Diff         float64  `json:"diff"`
	Tolerance    float64  `json:"tolerance"`
	BoardPrice   float64  `json:"board_price"`
}

// Reconcile handles POST requests to check one NAV reading.
//
// Endpoint: POST /api/reconcile
// Response: 200 OK with ReconcileResponse
// Errors: 400 invalid payload, 404 unknown fund, 503 board price unavailable
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req request.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReconcile(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	input := model.ReconcileInput{
		FundName:         req.FundName,
		NavOnPage:        *req.NavOnPage,
		TotalUnits:       *req.TotalUnits,
		SellableQuantity: req.SellableQuantity,
		ExpertPrice:      req.ExpertPrice,
	}

	decision, err := h.reconcileService.Reconcile(r.Context(), input)
	switch {
	case errors.Is(err, apperrors.ErrFundNotFound):
		respondErrorMap(w, http.StatusNotFound, "fund not found", req.FundName)
		return
	case errors.Is(err, apperrors.ErrBoardPriceUnavailable):
		respondErrorMap(w, http.StatusServiceUnavailable, "board price unavailable", "")
		return
	case err != nil:
		respondErrorMap(w, http.StatusInternalServerError, "failed to reconcile", err.Error())
		return
	}

	resp := ReconcileResponse{
		Status:     string(decision.Outcome),
		Diff:       decision.Diff,
		Tolerance:  decision.Tolerance,
		BoardPrice: decision.BoardPrice,
	}
	if decision.Outcome == model.OutcomeAdjustmentNeeded {
		suggested := decision.SuggestedDisplay
		resp.SuggestedNav = &suggested
	}

	respondJSON(w, http.StatusOK, resp)
}

// Logs handles GET requests for the audit log, newest first.
//
// Endpoint: GET /api/log?fund=<name>
// Response: 200 OK with array of ReconciliationLog
// Error: 500 Internal Server Error if retrieval fails
func (h *ReconcileHandler) Logs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reconcileService.GetLogs(r.Context(), r.URL.Query().Get("fund"))
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve logs", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
