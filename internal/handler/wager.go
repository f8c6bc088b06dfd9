package handler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/wager"
)

// Wager history paging
const (
	DefaultWagerListLimit = 20
	MaxWagerListLimit     = 200
)

// WagerHandler serves wager placement and group round queries
type WagerHandler struct {
	service wager.Service
}

// NewWagerHandler creates a WagerHandler
func NewWagerHandler(service wager.Service) *WagerHandler {
	return &WagerHandler{service: service}
}

// PlaceWagerRequest is the body of POST /wagers
type PlaceWagerRequest struct {
	UserID     string `json:"userId" validate:"required,max=128,excludesall=\x00\n\r\t"`
	BetAmount  string `json:"betAmount" validate:"required,amount"`
	Currency   string `json:"currency" validate:"required,currency"`
	GameType   string `json:"gameType" validate:"required,gametype"`
	GameID     string `json:"gameId,omitempty" validate:"max=128"`
	ClientSeed string `json:"clientSeed,omitempty" validate:"max=256"`
}

// PlaceSoloWagerRequest is the body of POST /wagers/solo
type PlaceSoloWagerRequest struct {
	UserID     string `json:"userId" validate:"required,max=128,excludesall=\x00\n\r\t"`
	BetAmount  string `json:"betAmount" validate:"required,amount"`
	Currency   string `json:"currency" validate:"required,currency"`
	GameID     string `json:"gameId,omitempty" validate:"max=128"`
	ClientSeed string `json:"clientSeed,omitempty" validate:"max=256"`
}

// PlaceGroupWagerRequest is the body of POST /wagers/group
type PlaceGroupWagerRequest struct {
	UserID    string `json:"userId" validate:"required,max=128,excludesall=\x00\n\r\t"`
	BetAmount string `json:"betAmount" validate:"required,amount"`
	Currency  string `json:"currency,omitempty" validate:"currency"`
}

// toWagerRequest builds the service request; the validator has already
// accepted amount and currency
func toWagerRequest(userID, amount, currency string, game domain.GameType, gameID, clientSeed string) (domain.WagerRequest, error) {
	bet, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return domain.WagerRequest{}, domain.ErrInvalidBetAmount
	}
	if currency == "" {
		currency = string(domain.CurrencyUSD)
	}
	c, err := domain.ParseCurrency(currency)
	if err != nil {
		return domain.WagerRequest{}, err
	}
	return domain.WagerRequest{
		UserID:     userID,
		BetAmount:  bet,
		Currency:   c,
		GameType:   game,
		GameID:     gameID,
		ClientSeed: clientSeed,
	}, nil
}

// HandlePlaceWager places a wager of either game type
// @Summary Place a wager
// @Description Dispatches to the solo or group settlement strategy by gameType
// @Tags wagers
// @Accept json
// @Produce json
// @Param request body PlaceWagerRequest true "Wager"
// @Success 201 {object} domain.WagerOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Router /api/v1/wagers [post]
func (h *WagerHandler) HandlePlaceWager(w http.ResponseWriter, r *http.Request) {
	var req PlaceWagerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place wager"); err != nil {
		return
	}
	wr, err := toWagerRequest(req.UserID, req.BetAmount, req.Currency, domain.GameType(req.GameType), req.GameID, req.ClientSeed)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}

	out, err := h.service.PlaceWager(r.Context(), wr)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

// HandlePlaceSoloWager settles a single-player round immediately
// @Summary Place a solo wager
// @Description Debits the bet, plays one round and returns the revealed seeds with the result
// @Tags wagers
// @Accept json
// @Produce json
// @Param request body PlaceSoloWagerRequest true "Wager"
// @Success 201 {object} domain.WagerOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wagers/solo [post]
func (h *WagerHandler) HandlePlaceSoloWager(w http.ResponseWriter, r *http.Request) {
	var req PlaceSoloWagerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place solo wager"); err != nil {
		return
	}
	logger.FromContext(r.Context()).Debug("Solo wager requested", "user_id", req.UserID, "bet", req.BetAmount, "currency", req.Currency)

	wr, err := toWagerRequest(req.UserID, req.BetAmount, req.Currency, domain.GameTypeSolo, req.GameID, req.ClientSeed)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}

	out, err := h.service.PlaceSoloWager(r.Context(), wr)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

// HandlePlaceGroupWager joins the open group round, creating one if needed
// @Summary Join a group round
// @Description Debits the bet and attaches the wager to the open round; seeds stay hidden until settlement
// @Tags wagers
// @Accept json
// @Produce json
// @Param request body PlaceGroupWagerRequest true "Wager"
// @Success 201 {object} domain.WagerOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Router /api/v1/wagers/group [post]
func (h *WagerHandler) HandlePlaceGroupWager(w http.ResponseWriter, r *http.Request) {
	var req PlaceGroupWagerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place group wager"); err != nil {
		return
	}

	wr, err := toWagerRequest(req.UserID, req.BetAmount, req.Currency, domain.GameTypeGroup, "", "")
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}

	out, err := h.service.PlaceGroupWager(r.Context(), wr)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceWagerFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

// HandleGetWagers lists a user's recent wagers
// @Summary List wagers
// @Tags wagers
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {array} domain.Wager
// @Router /api/v1/wagers [get]
func (h *WagerHandler) HandleGetWagers(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, ok := GetIntQueryParam(r, w, "limit", DefaultWagerListLimit, 1, MaxWagerListLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}

	wagers, err := h.service.GetUserWagers(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetWagersFailed, err)
		return
	}
	if wagers == nil {
		wagers = []domain.Wager{}
	}
	respondJSON(w, http.StatusOK, wagers)
}

// HandleGroupStatus reports whether a group round is open
// @Summary Group round status
// @Tags group
// @Produce json
// @Success 200 {object} domain.GroupRoundStatusView
// @Router /api/v1/group/status [get]
func (h *WagerHandler) HandleGroupStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetGroupRoundStatus(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGroupStatusFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// HandleGroupResult returns one player's view of a group round
// @Summary Group round result
// @Description Seeds and the chain link are only included once the round is settled
// @Tags group
// @Produce json
// @Param game_id query string true "Round ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.GroupRoundResultView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/group/result [get]
func (h *WagerHandler) HandleGroupResult(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetQueryParam(r, w, "game_id")
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	view, err := h.service.GetGroupRoundResult(r.Context(), gameID, userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGroupResultFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleSettleGroupRound force-settles an expired round
// @Summary Settle a group round
// @Tags admin
// @Produce json
// @Param game_id query string true "Round ID"
// @Success 200 {object} domain.GroupRound
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/group/settle [post]
func (h *WagerHandler) HandleSettleGroupRound(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetQueryParam(r, w, "game_id")
	if !ok {
		return
	}

	round, err := h.service.SettleGroupRound(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSettleRoundFailed, err)
		return
	}
	if round == nil {
		respondJSON(w, http.StatusOK, SuccessResponse{Message: ErrMsgRoundAlreadySettled})
		return
	}
	respondJSON(w, http.StatusOK, round)
}

// HandlePlayerStats returns a player's counters and recent history
// @Summary Player statistics
// @Tags stats
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.PlayerStats
// @Router /api/v1/stats/player [get]
func (h *WagerHandler) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	stats, err := h.service.GetPlayerStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlayerStatsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
