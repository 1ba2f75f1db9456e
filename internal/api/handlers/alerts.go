package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/navassist/nav-reconciler/internal/api/request"
	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/service"
)

// AlertHandler handles HTTP requests for alert channel settings.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler with the provided service dependency.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Update handles PUT requests to replace the alert channel credentials.
// The token is encrypted before it is stored.
//
// Endpoint: PUT /api/alert-settings
// Response: 200 OK with {"status": "success"}
// Error: 400 validation failure, 409 when no encryption key is configured
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAlertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.BotToken) == "" {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", "bot_token is required")
		return
	}
	if req.ChatID == 0 {
		respondErrorMap(w, http.StatusBadRequest, "validation failed", "chat_id is required")
		return
	}

	setting := model.AlertSetting{
		ID:       uuid.New().String(),
		BotToken: req.BotToken,
		ChatID:   req.ChatID,
		Enabled:  req.Enabled,
	}

	err := h.alertService.UpdateSetting(r.Context(), setting)
	if errors.Is(err, apperrors.ErrSecretKeyMissing) {
		respondErrorMap(w, http.StatusConflict, "cannot store credentials", err.Error())
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to save alert setting", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Setting handles GET requests for the stored alert channel setting.
// The bot token is never included in the response.
//
// Endpoint: GET /api/alert-settings
// Response: 200 OK with AlertSetting (token redacted)
// Error: 404 when no setting is stored
func (h *AlertHandler) Setting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.alertService.GetSetting(r.Context())
	if errors.Is(err, apperrors.ErrAlertSettingNotFound) {
		respondErrorMap(w, http.StatusNotFound, "alert setting not found", "no alert channel configured")
		return
	}
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "failed to retrieve alert setting", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, setting)
}
