package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/mocks"
)

func TestHandleGetConfig(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockGameConfigService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Single Key",
			query: "?key=default_target",
			setupMocks: func(m *mocks.MockGameConfigService) {
				m.On("Get", mock.Anything, "default_target").Return("2", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"key":"default_target","value":"2"}`,
		},
		{
			name:  "Missing Key",
			query: "?key=nope",
			setupMocks: func(m *mocks.MockGameConfigService) {
				m.On("Get", mock.Anything, "nope").Return("", fmt.Errorf("get: %w", domain.ErrConfigNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgConfigNotFoundError,
		},
		{
			name:  "All Keys",
			query: "",
			setupMocks: func(m *mocks.MockGameConfigService) {
				m.On("List", mock.Anything).Return(map[string]string{"default_target": "1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"default_target":"1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockGameConfigService(t)
			tt.setupMocks(svc)
			rec := httptest.NewRecorder()
			NewConfigHandler(svc).HandleGetConfig(rec, httptest.NewRequest(http.MethodGet, "/admin/config"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleSetConfig(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*mocks.MockGameConfigService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Value",
			reqBody:        SetConfigRequest{Key: "default_target"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"value"`,
		},
		{
			name:           "Key With Space",
			reqBody:        SetConfigRequest{Key: "default target", Value: "2"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"key":"Contains invalid characters"`,
		},
		{
			name:    "Invalid Target",
			reqBody: SetConfigRequest{Key: "default_target", Value: "-1"},
			setupMocks: func(m *mocks.MockGameConfigService) {
				m.On("Set", mock.Anything, "default_target", "-1").Return(domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestError,
		},
		{
			name:    "Success",
			reqBody: SetConfigRequest{Key: "default_target", Value: "2"},
			setupMocks: func(m *mocks.MockGameConfigService) {
				m.On("Set", mock.Anything, "default_target", "2").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgConfigUpdatedSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockGameConfigService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			rec := httptest.NewRecorder()
			NewConfigHandler(svc).HandleSetConfig(rec, postJSON(t, "/admin/config", tt.reqBody))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
