package handler

import (
	"net/http"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/rtp"
)

// Maximum look-back window for RTP queries
const MaxRTPTimeRangeDays = 3650

// RTPHandler serves house reporting
type RTPHandler struct {
	service rtp.Service
}

// NewRTPHandler creates an RTPHandler
func NewRTPHandler(service rtp.Service) *RTPHandler {
	return &RTPHandler{service: service}
}

// HandleRTP computes return-to-player over settled wagers
// @Summary Return to player
// @Description Aggregates settled wagers; all filters are optional
// @Tags stats
// @Produce json
// @Param game_id query string false "Round or game ID"
// @Param game_name query string false "Game type"
// @Param time_range_days query int false "Look-back window in days"
// @Success 200 {object} domain.RTPStats
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rtp [get]
func (h *RTPHandler) HandleRTP(w http.ResponseWriter, r *http.Request) {
	days, ok := GetIntQueryParam(r, w, "time_range_days", 0, 0, MaxRTPTimeRangeDays, ErrMsgInvalidTimeRange)
	if !ok {
		return
	}
	filter := domain.RTPFilter{
		GameID:        GetOptionalQueryParam(r, "game_id", ""),
		GameName:      domain.GameType(GetOptionalQueryParam(r, "game_name", "")),
		TimeRangeDays: days,
	}
	if filter.GameName != "" && !filter.GameName.Valid() {
		respondServiceError(w, r, ErrMsgRTPFailed, domain.ErrUnknownGameType)
		return
	}

	stats, err := h.service.ComputeRTP(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgRTPFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleGameStats summarizes each game type
// @Summary Per-game statistics
// @Tags stats
// @Produce json
// @Success 200 {array} domain.GameStats
// @Router /api/v1/stats/games [get]
func (h *RTPHandler) HandleGameStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetGameStats(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGameStatsFailed, err)
		return
	}
	if stats == nil {
		stats = []domain.GameStats{}
	}
	respondJSON(w, http.StatusOK, stats)
}
