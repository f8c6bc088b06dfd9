package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// Test boundaries
const (
	MaxUserIDLength = 128
)

type TestStruct struct {
	UserID    string   `json:"userId" validate:"required,max=128,excludesall=\x00\n\r\t"`
	BetAmount string   `json:"betAmount" validate:"required,amount"`
	Currency  string   `json:"currency,omitempty" validate:"currency"`
	GameType  string   `validate:"gametype"`
	Links     []string `json:"links,omitempty" validate:"max=2,dive,hexadecimal,len=4"`
}

func validInput() TestStruct {
	return TestStruct{UserID: "user-1", BetAmount: "10", Currency: "USD", GameType: string(domain.GameTypeSolo)}
}

func TestValidator_CurrencyValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		currency string
		wantErr  bool
	}{
		{"usd", "USD", false},
		{"btc", "BTC", false},
		{"eth", "ETH", false},

		{"empty currency allowed", "", false},

		{"lowercase", "btc", false},
		{"padded", " eth ", false},

		{"unsupported", "EUR", true},
		{"typo", "USDD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Currency = tt.currency

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_AmountValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"whole", "10", false},
		{"fractional", "0.00000001", false},
		{"trailing zeros past scale", "1.5000000000", false},

		{"below smallest unit", "0.000000005", true},
		{"nine places", "12.123456789", true},

		{"zero", "0", true},
		{"negative", "-1", true},

		{"empty", "", true},
		{"not a number", "ten", true},
		{"two points", "1.2.3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.BetAmount = tt.amount

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_UserIDValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid id", "user-123", false},
		{"exactly max length", strings.Repeat("a", MaxUserIDLength), false},
		{"over max length", strings.Repeat("a", MaxUserIDLength+1), true},
		{"empty", "", true},
		{"with newline", "user\nname", true},
		{"with null byte", "user\x00name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.UserID = tt.userID

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_GameTypeValidation(t *testing.T) {
	v := GetValidator()

	for _, g := range []string{string(domain.GameTypeSolo), string(domain.GameTypeGroup), ""} {
		input := validInput()
		input.GameType = g
		assert.NoError(t, v.ValidateStruct(input), g)
	}

	input := validInput()
	input.GameType = "Blackjack"
	assert.Error(t, v.ValidateStruct(input))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(TestStruct{UserID: "", BetAmount: "-5", Currency: "EUR", GameType: "x"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["userId"])
	assert.Equal(t, "Must be a positive amount with at most 8 decimal places", fields["betAmount"])
	assert.Equal(t, "Unknown currency", fields["currency"])
	assert.Equal(t, "Unknown game type", fields["GameType"], "untagged fields keep their Go name")

	input := validInput()
	input.Links = []string{"abcd", "zz"}
	fields = FormatValidationError(v.ValidateStruct(input))
	assert.Equal(t, "Must be hexadecimal", fields["links[1]"])

	input.Links = []string{"abcd", "abcd", "abcd"}
	fields = FormatValidationError(v.ValidateStruct(input))
	assert.Equal(t, "Must be at most 2 items", fields["links"])

	input.UserID = strings.Repeat("a", MaxUserIDLength+1)
	input.Links = nil
	fields = FormatValidationError(v.ValidateStruct(input))
	assert.Equal(t, "Must be at most 128 characters", fields["userId"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
