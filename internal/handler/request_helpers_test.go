package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configBody struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

func TestDecodeAndValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantStatus int
		wantBody   string
	}{
		{"valid", `{"key":"k","value":"v"}`, false, http.StatusOK, ""},
		{"trailing whitespace", "{\"key\":\"k\"}\n  ", false, http.StatusOK, ""},
		{"malformed", `{"key":`, true, http.StatusBadRequest, ErrMsgInvalidRequest},
		{"two documents", `{"key":"a"}{"key":"b"}`, true, http.StatusBadRequest, ErrMsgInvalidRequest},
		{"failed validation", `{"value":"v"}`, true, http.StatusBadRequest, `"key":"This field is required"`},
		{"too large", `{"key":"` + strings.Repeat("x", maxRequestBody) + `"}`, true, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/config", strings.NewReader(tt.body))

			var dst configBody
			err := DecodeAndValidateRequest(req, rec, &dst, "Set config")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "k", dst.Key)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestDecodeAndValidateRequest_ValidationBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

	require.Error(t, DecodeAndValidateRequest(req, rec, &configBody{}, "Set config"))

	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrMsgInvalidRequestSummary, body.Error)
	assert.Contains(t, body.Fields, "key")
}

func TestGetQueryParam(t *testing.T) {
	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{"?user_id=u1", "u1", true},
		{"?user_id=%20u1%20", "u1", true},
		{"?user_id=%20", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got, ok := GetQueryParam(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil), rec, "user_id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "Missing user_id query parameter")
			}
		})
	}
}
