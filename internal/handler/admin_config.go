package handler

import (
	"net/http"

	"github.com/osse101/ProvablyFair_Go/internal/gameconfig"
)

// ConfigHandler serves the configuration key/value table
type ConfigHandler struct {
	service gameconfig.Service
}

// NewConfigHandler creates a ConfigHandler
func NewConfigHandler(service gameconfig.Service) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// SetConfigRequest is the body of POST /admin/config
type SetConfigRequest struct {
	Key   string `json:"key" validate:"required,max=128,excludesall= "`
	Value string `json:"value" validate:"required,max=1024"`
}

// ConfigEntry is one key/value pair
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// HandleGetConfig returns one key, or every key when none is given
// @Summary Read configuration
// @Tags admin
// @Produce json
// @Param key query string false "Configuration key"
// @Success 200 {object} ConfigEntry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/config [get]
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	key := GetOptionalQueryParam(r, "key", "")
	if key == "" {
		all, err := h.service.List(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetConfigFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, all)
		return
	}

	value, err := h.service.Get(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetConfigFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, ConfigEntry{Key: key, Value: value})
}

// HandleSetConfig writes one key
// @Summary Write configuration
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetConfigRequest true "Key and value"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/config [post]
func (h *ConfigHandler) HandleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req SetConfigRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set config"); err != nil {
		return
	}

	if err := h.service.Set(r.Context(), req.Key, req.Value); err != nil {
		respondServiceError(w, r, ErrMsgSetConfigFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgConfigUpdatedSuccess})
}
