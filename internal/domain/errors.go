package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Category errors
	ErrMsgValidation           = "validation failed"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgConcurrencyConflict  = "concurrency conflict"
	ErrMsgFairnessVerification = "fairness verification failed"
	ErrMsgPersistence          = "persistence failure"

	// Validation errors
	ErrMsgInvalidBetAmount   = "bet amount must be greater than zero with at most 8 decimal places"
	ErrMsgUnknownCurrency    = "unknown currency"
	ErrMsgUnknownGameType    = "unknown game type"
	ErrMsgInvalidSeed        = "invalid seed"
	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidChainLength = "chain length must be greater than zero"
	ErrMsgInvalidInput       = "invalid input"

	// Balance errors
	ErrMsgBalanceNotFound = "balance not found"

	// Round errors
	ErrMsgRoundNotFound         = "group round not found"
	ErrMsgRoundAlreadyCompleted = "group round already completed"
	ErrMsgRoundStillOpen        = "group round is still open"
	ErrMsgRoundNotSettled       = "round not settled yet"

	// Wager errors
	ErrMsgWagerNotFound    = "wager not found"
	ErrMsgWagerNotTerminal = "wager is not settled"

	// Hash chain errors
	ErrMsgChainMismatch    = "hash chain link mismatch"
	ErrMsgChainExhausted   = "hash chain exhausted"
	ErrMsgChainEmpty       = "hash chain is empty"
	ErrMsgSeedHashMismatch = "server seed does not match published hash"

	// Configuration errors
	ErrMsgConfigNotFound = "configuration key not found"

	// Database/System errors
	ErrMsgTxClosed         = "tx is closed"
	ErrMsgDeadlockDetected = "deadlock detected"
	ErrMsgSerialization    = "could not serialize access"
)

// Category sentinels. Every specific error below wraps exactly one of these so
// callers can branch on the category with errors.Is.
var (
	ErrValidation           = errors.New(ErrMsgValidation)
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrConcurrencyConflict  = errors.New(ErrMsgConcurrencyConflict)
	ErrFairnessVerification = errors.New(ErrMsgFairnessVerification)
	ErrPersistence          = errors.New(ErrMsgPersistence)
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors
	ErrInvalidBetAmount   = wrap(ErrValidation, ErrMsgInvalidBetAmount)
	ErrUnknownCurrency    = wrap(ErrValidation, ErrMsgUnknownCurrency)
	ErrUnknownGameType    = wrap(ErrValidation, ErrMsgUnknownGameType)
	ErrInvalidSeed        = wrap(ErrValidation, ErrMsgInvalidSeed)
	ErrInvalidUserID      = wrap(ErrValidation, ErrMsgInvalidUserID)
	ErrInvalidChainLength = wrap(ErrValidation, ErrMsgInvalidChainLength)
	ErrInvalidInput       = wrap(ErrValidation, ErrMsgInvalidInput)

	// Balance errors
	ErrBalanceNotFound = wrap(ErrInsufficientBalance, ErrMsgBalanceNotFound)

	// Round errors
	ErrRoundNotFound         = wrap(ErrValidation, ErrMsgRoundNotFound)
	ErrRoundAlreadyCompleted = wrap(ErrValidation, ErrMsgRoundAlreadyCompleted)
	ErrRoundStillOpen        = wrap(ErrValidation, ErrMsgRoundStillOpen)
	ErrRoundNotSettled       = wrap(ErrValidation, ErrMsgRoundNotSettled)

	// Wager errors
	ErrWagerNotFound    = wrap(ErrValidation, ErrMsgWagerNotFound)
	ErrWagerNotTerminal = wrap(ErrValidation, ErrMsgWagerNotTerminal)

	// Hash chain errors
	ErrChainMismatch    = wrap(ErrFairnessVerification, ErrMsgChainMismatch)
	ErrSeedHashMismatch = wrap(ErrFairnessVerification, ErrMsgSeedHashMismatch)
	ErrChainExhausted   = wrap(ErrPersistence, ErrMsgChainExhausted)
	ErrChainEmpty       = wrap(ErrPersistence, ErrMsgChainEmpty)

	// Configuration errors
	ErrConfigNotFound = errors.New(ErrMsgConfigNotFound)

	// ErrTxClosed is returned when a transaction that already committed or
	// rolled back is used again. It carries no category.
	ErrTxClosed = errors.New(ErrMsgTxClosed)
)

type categoryError struct {
	category error
	msg      string
}

func (e *categoryError) Error() string { return e.msg }

func (e *categoryError) Unwrap() error { return e.category }

func wrap(category error, msg string) error {
	return &categoryError{category: category, msg: msg}
}
