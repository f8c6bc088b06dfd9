package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/mocks"
)

func TestHandleRTP(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockRTPService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "No Filters",
			query: "",
			setupMocks: func(m *mocks.MockRTPService) {
				m.On("ComputeRTP", mock.Anything, domain.RTPFilter{}).Return(&domain.RTPStats{
					RTP:          decimal.NewFromInt(97),
					TotalWagered: decimal.NewFromInt(100),
					TotalWon:     decimal.NewFromInt(97),
					ProfitMargin: decimal.NewFromInt(3),
					WagerCount:   4,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"wagerCount":4`,
		},
		{
			name:  "All Filters",
			query: "?game_id=g1&game_name=RR%20(Group)&time_range_days=7",
			setupMocks: func(m *mocks.MockRTPService) {
				m.On("ComputeRTP", mock.Anything, domain.RTPFilter{GameID: "g1", GameName: domain.GameTypeGroup, TimeRangeDays: 7}).
					Return(&domain.RTPStats{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Negative Range",
			query:          "?time_range_days=-1",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidTimeRange,
		},
		{
			name:           "Non Numeric Range",
			query:          "?time_range_days=week",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidTimeRange,
		},
		{
			name:           "Unknown Game",
			query:          "?game_name=Poker",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgUnknownGameTypeError,
		},
		{
			name:  "Store Down",
			query: "",
			setupMocks: func(m *mocks.MockRTPService) {
				m.On("ComputeRTP", mock.Anything, mock.Anything).Return(nil, domain.ErrPersistence)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRTPService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			rec := httptest.NewRecorder()
			NewRTPHandler(svc).HandleRTP(rec, httptest.NewRequest(http.MethodGet, "/rtp"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGameStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc := mocks.NewMockRTPService(t)
		svc.On("GetGameStats", mock.Anything).Return(nil, nil)

		rec := httptest.NewRecorder()
		NewRTPHandler(svc).HandleGameStats(rec, httptest.NewRequest(http.MethodGet, "/stats/games", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("rows", func(t *testing.T) {
		svc := mocks.NewMockRTPService(t)
		svc.On("GetGameStats", mock.Anything).Return([]domain.GameStats{{GameName: domain.GameTypeSolo, WagerCount: 2}}, nil)

		rec := httptest.NewRecorder()
		NewRTPHandler(svc).HandleGameStats(rec, httptest.NewRequest(http.MethodGet, "/stats/games", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"gameName":"RR (Solo)"`)
	})
}
