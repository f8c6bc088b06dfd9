package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// Validator checks request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var sharedValidator = sync.OnceValue(newValidator)

// GetValidator returns the process-wide validator
func GetValidator() *Validator {
	return sharedValidator()
}

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients see the keys they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"currency": validateCurrency,
		"amount":   validateAmount,
		"gametype": validateGameType,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return &Validator{validate: v}
}

// ValidateStruct validates s using its tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// fieldMessages maps a failed tag to the message shown to clients. Tags not
// listed get "Invalid value".
var fieldMessages = map[string]func(validator.FieldError) string{
	"required":    func(validator.FieldError) string { return "This field is required" },
	"currency":    func(validator.FieldError) string { return "Unknown currency" },
	"amount":      func(validator.FieldError) string { return "Must be a positive amount with at most 8 decimal places" },
	"gametype":    func(validator.FieldError) string { return "Unknown game type" },
	"excludesall": func(validator.FieldError) string { return "Contains invalid characters" },
	"hexadecimal": func(validator.FieldError) string { return "Must be hexadecimal" },
	"len":         func(e validator.FieldError) string { return fmt.Sprintf("Must be exactly %s characters", e.Param()) },
	"max":         func(e validator.FieldError) string { return lengthMessage(e, "at most") },
	"min":         func(e validator.FieldError) string { return lengthMessage(e, "at least") },
}

func lengthMessage(e validator.FieldError, bound string) string {
	unit := "characters"
	if k := e.Kind(); k == reflect.Slice || k == reflect.Array {
		unit = "items"
	}
	return fmt.Sprintf("Must be %s %s %s", bound, e.Param(), unit)
}

// FormatValidationError turns validator errors into field -> message pairs
// keyed by JSON field name, without exposing Go type names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		msg := "Invalid value"
		if format, ok := fieldMessages[e.Tag()]; ok {
			msg = format(e)
		}
		errs[e.Field()] = msg
	}
	return errs
}

// Custom tags accept the empty string; pair them with required when needed.

func validateCurrency(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	if c == "" {
		return true
	}
	_, err := domain.ParseCurrency(c)
	return err == nil
}

func validateAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	return err == nil && domain.ValidBetAmount(d)
}

func validateGameType(fl validator.FieldLevel) bool {
	g := fl.Field().String()
	return g == "" || domain.GameType(g).Valid()
}
