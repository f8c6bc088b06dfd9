package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFoundErr = "Resource not found."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Wager messages
	ErrMsgInvalidBetError       = "Bet amount must be positive with at most 8 decimal places"
	ErrMsgUnknownCurrencyError  = "Unknown currency"
	ErrMsgUnknownGameTypeError  = "Unknown game type"
	ErrMsgInvalidUserIDError    = "A user id is required"
	ErrMsgNotEnoughBalanceError = "Not enough balance"
	ErrMsgBusyError             = "The wager could not be settled because of concurrent activity. Please try again."
	ErrMsgWagerNotFoundError    = "Wager not found"
	ErrMsgWagerPendingError     = "Wager is not settled yet"

	// Group round messages
	ErrMsgRoundNotFoundError   = "Group round not found"
	ErrMsgRoundStillOpenError  = "Group round is still accepting wagers"
	ErrMsgRoundNotSettledError = "Group round is not settled yet"

	// Fairness messages
	ErrMsgFairnessFailedError = "Fairness verification failed"
	ErrMsgChainUnavailable    = "Hash chain is not available"

	// Configuration messages
	ErrMsgConfigNotFoundError = "Configuration key not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Specific errors are checked before their category so the message stays precise.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidBetAmount):
		return http.StatusBadRequest, ErrMsgInvalidBetError
	case errors.Is(err, domain.ErrUnknownCurrency):
		return http.StatusBadRequest, ErrMsgUnknownCurrencyError
	case errors.Is(err, domain.ErrUnknownGameType):
		return http.StatusBadRequest, ErrMsgUnknownGameTypeError
	case errors.Is(err, domain.ErrInvalidUserID):
		return http.StatusBadRequest, ErrMsgInvalidUserIDError
	case errors.Is(err, domain.ErrWagerNotFound):
		return http.StatusNotFound, ErrMsgWagerNotFoundError
	case errors.Is(err, domain.ErrWagerNotTerminal):
		return http.StatusConflict, ErrMsgWagerPendingError
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrRoundStillOpen):
		return http.StatusConflict, ErrMsgRoundStillOpenError
	case errors.Is(err, domain.ErrRoundNotSettled):
		return http.StatusConflict, ErrMsgRoundNotSettledError
	case errors.Is(err, domain.ErrConfigNotFound):
		return http.StatusNotFound, ErrMsgConfigNotFoundError
	case errors.Is(err, domain.ErrChainEmpty), errors.Is(err, domain.ErrChainExhausted):
		return http.StatusServiceUnavailable, ErrMsgChainUnavailable

	// Categories
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, ErrMsgNotEnoughBalanceError
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict, ErrMsgBusyError
	case errors.Is(err, domain.ErrFairnessVerification):
		return http.StatusConflict, ErrMsgFairnessFailedError
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	// Never echo unknown errors; they may carry seed material or SQL
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
