package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/fairness"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// FairnessHandler exposes the public verification endpoints
type FairnessHandler struct {
	service fairness.Service
}

// NewFairnessHandler creates a FairnessHandler
func NewFairnessHandler(service fairness.Service) *FairnessHandler {
	return &FairnessHandler{service: service}
}

// VerifyChainRequest is the body of POST /fairness/verify-chain
type VerifyChainRequest struct {
	Links []string `json:"links" validate:"required,min=1,max=100000,dive,required,hexadecimal,len=64"`
}

// HandleVerifyRound replays a round from revealed seeds
// @Summary Verify a round
// @Description Recomputes the outcome from the seed triple and reports any field that differs from what the caller recorded
// @Tags fairness
// @Accept json
// @Produce json
// @Param request body fairness.VerifyRoundRequest true "Revealed seeds and recorded result"
// @Success 200 {object} fairness.RoundReport
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/fairness/verify-round [post]
func (h *FairnessHandler) HandleVerifyRound(w http.ResponseWriter, r *http.Request) {
	var req fairness.VerifyRoundRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Verify round"); err != nil {
		return
	}

	report, err := h.service.VerifyRound(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, ErrMsgVerifyFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleVerifyChain checks consecutive links supplied by the caller
// @Summary Verify chain links
// @Tags fairness
// @Accept json
// @Produce json
// @Param request body VerifyChainRequest true "Links in commitment order"
// @Success 200 {object} fairness.ChainReport
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/fairness/verify-chain [post]
func (h *FairnessHandler) HandleVerifyChain(w http.ResponseWriter, r *http.Request) {
	var req VerifyChainRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Verify chain"); err != nil {
		return
	}

	report, err := h.service.VerifyChain(r.Context(), req.Links)
	if err != nil {
		respondServiceError(w, r, ErrMsgVerifyFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleVerifyWager replays a stored wager
// @Summary Verify a stored wager
// @Description Replays a settled wager from its stored seeds. A tampered record returns 409 with the report.
// @Tags fairness
// @Produce json
// @Param id query string true "Wager ID"
// @Success 200 {object} fairness.WagerReport
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} fairness.WagerReport
// @Router /api/v1/fairness/wager [get]
func (h *FairnessHandler) HandleVerifyWager(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, ErrMsgInvalidWagerID, http.StatusBadRequest)
		return
	}

	report, err := h.service.VerifyWager(r.Context(), id)
	if err != nil {
		if report != nil && errors.Is(err, domain.ErrFairnessVerification) {
			logger.FromContext(r.Context()).Error("Stored wager failed verification", "wager_id", id, "error", err)
			respondJSON(w, http.StatusConflict, report)
			return
		}
		respondServiceError(w, r, ErrMsgVerifyFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleVerifyStoredChain re-checks every issued link against its segment commitment
// @Summary Audit the stored chain
// @Tags fairness
// @Produce json
// @Success 200 {object} fairness.ChainReport
// @Failure 409 {object} fairness.ChainReport
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/fairness/chain/verify [get]
func (h *FairnessHandler) HandleVerifyStoredChain(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.VerifyStoredChain(r.Context())
	if err != nil {
		if report != nil && errors.Is(err, domain.ErrFairnessVerification) {
			respondJSON(w, http.StatusConflict, report)
			return
		}
		respondServiceError(w, r, ErrMsgVerifyFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleCommitment returns the published chain commitment
// @Summary Chain commitment
// @Tags fairness
// @Produce json
// @Success 200 {object} domain.Commitment
// @Router /api/v1/fairness/commitment [get]
func (h *FairnessHandler) HandleCommitment(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Commitment(r.Context()))
}

// HandleTables returns the outcome tables used by the engine
// @Summary Outcome tables
// @Tags fairness
// @Produce json
// @Success 200 {object} outcome.Tables
// @Router /api/v1/fairness/tables [get]
func (h *FairnessHandler) HandleTables(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Tables())
}
