package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// maxRequestBody caps decoded request bodies
const maxRequestBody = 1 << 20

// ValidationErrorResponse is the 400 body for requests that decode but fail
// their validate tags
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest reads exactly one JSON value from the body into
// req and checks its validate tags. On error the response has already been
// written and the handler should return.
//
//	var req PlaceSoloWagerRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Place solo wager"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context()).With("action", actionName)

	if err := decodeSingleJSON(http.MaxBytesReader(w, r.Body, maxRequestBody), req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("Request body too large", "limit", tooLarge.Limit)
			http.Error(w, ErrMsgRequestTooLarge, http.StatusRequestEntityTooLarge)
			return err
		}
		log.Warn("Request body rejected", "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		fields := FormatValidationError(err)
		log.Debug("Request failed validation", "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return err
	}

	log.Debug("Request decoded")
	return nil
}

var errTrailingData = errors.New("unexpected data after JSON body")

func decodeSingleJSON(body io.Reader, dst interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// GetQueryParam returns a required, non-blank query parameter. When it is
// missing a 400 has been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (value string, ok bool) {
	value = strings.TrimSpace(r.URL.Query().Get(paramName))
	if value == "" {
		logger.FromContext(r.Context()).Warn("Missing query parameter", "param", paramName)
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam returns the parameter or defaultValue when unset
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	if value := r.URL.Query().Get(paramName); value != "" {
		return value
	}
	return defaultValue
}

// GetIntQueryParam parses an optional integer query parameter within [min, max].
// On a bad value it writes a 400 with errMsg and returns false.
func GetIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue, min, max int, errMsg string) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		http.Error(w, errMsg, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// respondServiceError logs err and writes the mapped user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", statusCode)
	}
	respondError(w, statusCode, userMsg)
}
