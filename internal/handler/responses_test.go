package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"bet", domain.ErrInvalidBetAmount, http.StatusBadRequest, ErrMsgInvalidBetError},
		{"wrapped currency", fmt.Errorf("parse: %w", domain.ErrUnknownCurrency), http.StatusBadRequest, ErrMsgUnknownCurrencyError},
		{"generic validation", domain.ErrInvalidSeed, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"balance", domain.ErrInsufficientBalance, http.StatusPaymentRequired, ErrMsgNotEnoughBalanceError},
		{"missing balance row", domain.ErrBalanceNotFound, http.StatusPaymentRequired, ErrMsgNotEnoughBalanceError},
		{"conflict", domain.ErrConcurrencyConflict, http.StatusConflict, ErrMsgBusyError},
		{"round open", domain.ErrRoundStillOpen, http.StatusConflict, ErrMsgRoundStillOpenError},
		{"round missing", domain.ErrRoundNotFound, http.StatusNotFound, ErrMsgRoundNotFoundError},
		{"seed hash", domain.ErrSeedHashMismatch, http.StatusConflict, ErrMsgFairnessFailedError},
		{"chain exhausted", domain.ErrChainExhausted, http.StatusServiceUnavailable, ErrMsgChainUnavailable},
		{"persistence", fmt.Errorf("insert: %w", domain.ErrPersistence), http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"config", domain.ErrConfigNotFound, http.StatusNotFound, ErrMsgConfigNotFoundError},
		{"unknown", errors.New("pq: relation wagers does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestPutBuffer_DropsOversized(t *testing.T) {
	buf := getBuffer()
	buf.Grow(maxPooledBufferSize * 2)
	putBuffer(buf)

	// sync.Pool gives no guarantees, so only check that a pooled buffer is clean
	next := getBuffer()
	assert.Zero(t, next.Len())
	putBuffer(next)
}
