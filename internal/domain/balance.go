package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Currency is the unit a wager is denominated in
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBTC Currency = "BTC"
	CurrencyETH Currency = "ETH"
)

// SubBalance names one column of a user's balance record
type SubBalance string

const (
	SubBalanceCash          SubBalance = "cash"
	SubBalanceCrypto        SubBalance = "crypto"
	SubBalanceBonus         SubBalance = "bonus"
	SubBalanceStakePool     SubBalance = "stake_pool"
	SubBalanceWagerPool     SubBalance = "wager_pool"
	SubBalanceAffiliatePool SubBalance = "affiliate_pool"
)

var currencySubBalances = map[Currency]SubBalance{
	CurrencyUSD: SubBalanceCash,
	CurrencyBTC: SubBalanceCrypto,
	CurrencyETH: SubBalanceCrypto,
}

var upper = cases.Upper(language.Und)

// ParseCurrency normalizes user input such as " usd " into a known currency
func ParseCurrency(s string) (Currency, error) {
	c := Currency(upper.String(strings.TrimSpace(s)))
	if _, ok := currencySubBalances[c]; !ok {
		return "", ErrUnknownCurrency
	}
	return c, nil
}

// SubBalance returns the balance column a currency is debited from
func (c Currency) SubBalance() (SubBalance, error) {
	sb, ok := currencySubBalances[c]
	if !ok {
		return "", ErrUnknownCurrency
	}
	return sb, nil
}

// AmountScale is the number of decimal places balance and wager columns hold
const AmountScale = 8

// ValidBetAmount reports whether d is positive and representable at
// AmountScale without rounding
func ValidBetAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(AmountScale))
}

// Balance is a user's set of named sub-balances
type Balance struct {
	UserID        string          `json:"user_id"`
	Cash          decimal.Decimal `json:"cash"`
	Crypto        decimal.Decimal `json:"crypto"`
	Bonus         decimal.Decimal `json:"bonus"`
	StakePool     decimal.Decimal `json:"stake_pool"`
	WagerPool     decimal.Decimal `json:"wager_pool"`
	AffiliatePool decimal.Decimal `json:"affiliate_pool"`
}

// Get returns the named sub-balance
func (b Balance) Get(sb SubBalance) decimal.Decimal {
	switch sb {
	case SubBalanceCash:
		return b.Cash
	case SubBalanceCrypto:
		return b.Crypto
	case SubBalanceBonus:
		return b.Bonus
	case SubBalanceStakePool:
		return b.StakePool
	case SubBalanceWagerPool:
		return b.WagerPool
	case SubBalanceAffiliatePool:
		return b.AffiliatePool
	}
	return decimal.Zero
}
