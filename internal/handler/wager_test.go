package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/mocks"
)

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	var raw []byte
	if s, ok := body.(string); ok {
		raw = []byte(s)
	} else {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
}

func TestHandlePlaceSoloWager(t *testing.T) {
	wagerID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	nonce := uint64(42)

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*mocks.MockWagerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing User",
			reqBody:        PlaceSoloWagerRequest{BetAmount: "10", Currency: "USD"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"userId":"This field is required"`,
		},
		{
			name:           "Zero Bet",
			reqBody:        PlaceSoloWagerRequest{UserID: "u1", BetAmount: "0", Currency: "USD"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"betAmount"`,
		},
		{
			name:           "Unknown Currency",
			reqBody:        PlaceSoloWagerRequest{UserID: "u1", BetAmount: "10", Currency: "EUR"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"currency":"Unknown currency"`,
		},
		{
			name:    "Insufficient Balance",
			reqBody: PlaceSoloWagerRequest{UserID: "u1", BetAmount: "10", Currency: "USD"},
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("PlaceSoloWager", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("debit: %w", domain.ErrInsufficientBalance))
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   ErrMsgNotEnoughBalanceError,
		},
		{
			name:    "Conflict After Retries",
			reqBody: PlaceSoloWagerRequest{UserID: "u1", BetAmount: "10", Currency: "USD"},
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("PlaceSoloWager", mock.Anything, mock.Anything).Return(nil, domain.ErrConcurrencyConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgBusyError,
		},
		{
			name:    "Unknown Error Is Not Echoed",
			reqBody: PlaceSoloWagerRequest{UserID: "u1", BetAmount: "10", Currency: "USD"},
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("PlaceSoloWager", mock.Anything, mock.Anything).Return(nil, errors.New("server seed abc leaked"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
		{
			name:    "Success",
			reqBody: PlaceSoloWagerRequest{UserID: "u1", BetAmount: "12.5", Currency: "btc", ClientSeed: "mine"},
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("PlaceSoloWager", mock.Anything, mock.MatchedBy(func(r domain.WagerRequest) bool {
					return r.UserID == "u1" &&
						r.BetAmount.Equal(decimal.RequireFromString("12.5")) &&
						r.Currency == domain.CurrencyBTC &&
						r.GameType == domain.GameTypeSolo &&
						r.ClientSeed == "mine"
				})).Return(&domain.WagerOutcome{
					WagerID:    wagerID,
					Status:     domain.WagerStatusWon,
					WonAmount:  decimal.NewFromInt(25),
					ServerSeed: "server",
					ClientSeed: "mine",
					Nonce:      &nonce,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"wagerId":"00000000-0000-0000-0000-000000000001"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockWagerService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			h := NewWagerHandler(svc)

			rec := httptest.NewRecorder()
			h.HandlePlaceSoloWager(rec, postJSON(t, "/wagers/solo", tt.reqBody))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.NotContains(t, rec.Body.String(), "leaked")
		})
	}
}

func TestHandlePlaceGroupWager(t *testing.T) {
	end := time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)

	t.Run("defaults currency to USD", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("PlaceGroupWager", mock.Anything, mock.MatchedBy(func(r domain.WagerRequest) bool {
			return r.Currency == domain.CurrencyUSD && r.GameType == domain.GameTypeGroup
		})).Return(&domain.WagerOutcome{GameID: "g1", EndTime: &end, ServerSeedHash: "abc", Status: domain.WagerStatusPending}, nil)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandlePlaceGroupWager(rec, postJSON(t, "/wagers/group", PlaceGroupWagerRequest{UserID: "u1", BetAmount: "5"}))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"gameId":"g1"`)
		assert.Contains(t, rec.Body.String(), `"serverSeedHash":"abc"`)
		assert.NotContains(t, rec.Body.String(), `"serverSeed":`)
	})

	t.Run("missing balance row", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("PlaceGroupWager", mock.Anything, mock.Anything).Return(nil, domain.ErrBalanceNotFound)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandlePlaceGroupWager(rec, postJSON(t, "/wagers/group", PlaceGroupWagerRequest{UserID: "u1", BetAmount: "5", Currency: "ETH"}))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})
}

func TestHandlePlaceWager(t *testing.T) {
	t.Run("unknown game type rejected by validator", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandlePlaceWager(rec, postJSON(t, "/wagers", PlaceWagerRequest{
			UserID: "u1", BetAmount: "1", Currency: "USD", GameType: "Dice",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unknown game type")
	})

	t.Run("dispatches with game type", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("PlaceWager", mock.Anything, mock.MatchedBy(func(r domain.WagerRequest) bool {
			return r.GameType == domain.GameTypeGroup
		})).Return(&domain.WagerOutcome{GameID: "g1"}, nil)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandlePlaceWager(rec, postJSON(t, "/wagers", PlaceWagerRequest{
			UserID: "u1", BetAmount: "1", Currency: "USD", GameType: string(domain.GameTypeGroup),
		}))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestHandleGetWagers(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockWagerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing User",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing user_id query parameter",
		},
		{
			name:           "Limit Too Large",
			query:          "?user_id=u1&limit=5000",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidLimit,
		},
		{
			name:  "Default Limit And Empty List",
			query: "?user_id=u1",
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("GetUserWagers", mock.Anything, "u1", DefaultWagerListLimit).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[]",
		},
		{
			name:  "Custom Limit",
			query: "?user_id=u1&limit=2",
			setupMocks: func(m *mocks.MockWagerService) {
				m.On("GetUserWagers", mock.Anything, "u1", 2).Return([]domain.Wager{{UserID: "u1", Status: domain.WagerStatusLost}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"lost"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockWagerService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			rec := httptest.NewRecorder()
			NewWagerHandler(svc).HandleGetWagers(rec, httptest.NewRequest(http.MethodGet, "/wagers"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGroupEndpoints(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("GetGroupRoundStatus", mock.Anything).Return(&domain.GroupRoundStatusView{Active: true, GameID: "g1", TimeRemaining: 30}, nil)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleGroupStatus(rec, httptest.NewRequest(http.MethodGet, "/group/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"active":true`)
	})

	t.Run("result before settlement", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("GetGroupRoundResult", mock.Anything, "g1", "u1").Return(nil, domain.ErrRoundNotSettled)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleGroupResult(rec, httptest.NewRequest(http.MethodGet, "/group/result?game_id=g1&user_id=u1", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgRoundNotSettledError)
	})

	t.Run("result requires user", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleGroupResult(rec, httptest.NewRequest(http.MethodGet, "/group/result?game_id=g1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("settle still open", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("SettleGroupRound", mock.Anything, "g1").Return(nil, domain.ErrRoundStillOpen)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleSettleGroupRound(rec, httptest.NewRequest(http.MethodPost, "/group/settle?game_id=g1", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgRoundStillOpenError)
	})

	t.Run("settle already completed", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("SettleGroupRound", mock.Anything, "g1").Return(nil, nil)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleSettleGroupRound(rec, httptest.NewRequest(http.MethodPost, "/group/settle?game_id=g1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgRoundAlreadySettled)
	})

	t.Run("settle success", func(t *testing.T) {
		svc := mocks.NewMockWagerService(t)
		svc.On("SettleGroupRound", mock.Anything, "g1").Return(&domain.GroupRound{GameID: "g1", Status: domain.GroupRoundCompleted}, nil)

		rec := httptest.NewRecorder()
		NewWagerHandler(svc).HandleSettleGroupRound(rec, httptest.NewRequest(http.MethodPost, "/group/settle?game_id=g1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"g1"`)
	})
}

func TestHandlePlayerStats(t *testing.T) {
	svc := mocks.NewMockWagerService(t)
	svc.On("GetPlayerStats", mock.Anything, "u1").Return(&domain.PlayerStats{UserID: "u1", RoundsPlayed: 3}, nil)

	rec := httptest.NewRecorder()
	NewWagerHandler(svc).HandlePlayerStats(rec, httptest.NewRequest(http.MethodGet, "/stats/player?user_id=u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roundsPlayed":3`)
}
