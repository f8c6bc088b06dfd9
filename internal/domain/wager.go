package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameType selects the settlement strategy for a wager
type GameType string

const (
	GameTypeSolo  GameType = "RR (Solo)"
	GameTypeGroup GameType = "RR (Group)"
)

// Valid reports whether the game type has a settlement strategy
func (g GameType) Valid() bool {
	return g == GameTypeSolo || g == GameTypeGroup
}

// WagerStatus is the lifecycle state of a wager
type WagerStatus string

const (
	WagerStatusPending WagerStatus = "pending"
	WagerStatusWon     WagerStatus = "won"
	WagerStatusLost    WagerStatus = "lost"
)

// Terminal reports whether no further mutation is permitted
func (s WagerStatus) Terminal() bool {
	return s == WagerStatusWon || s == WagerStatusLost
}

// Wager is a single bet. RTP and SiteProfit are derived on read and never stored.
type Wager struct {
	ID               uuid.UUID       `json:"id"`
	UserID           string          `json:"user_id"`
	GameName         GameType        `json:"game_name"`
	GameID           string          `json:"game_id"`
	BetAmount        decimal.Decimal `json:"bet_amount"`
	BalanceBefore    decimal.Decimal `json:"balance_before"`
	TargetMultiplier decimal.Decimal `json:"target_multiplier"`
	Currency         Currency        `json:"currency"`
	Status           WagerStatus     `json:"status"`
	WonAmount        decimal.Decimal `json:"won_amount"`
	Seeds            *SeedTriple     `json:"seeds,omitempty"`
	ChainLink        *ChainLink      `json:"chain_link,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	SettledAt        *time.Time      `json:"settled_at,omitempty"`
}

// RTP returns wonAmount/betAmount*100, or zero for a zero bet
func (w Wager) RTP() decimal.Decimal {
	if w.BetAmount.IsZero() {
		return decimal.Zero
	}
	return w.WonAmount.Div(w.BetAmount).Mul(decimal.NewFromInt(100))
}

// SiteProfit returns betAmount-wonAmount
func (w Wager) SiteProfit() decimal.Decimal {
	return w.BetAmount.Sub(w.WonAmount)
}

// WagerRequest is the input for placing a wager of either game type
type WagerRequest struct {
	UserID     string
	BetAmount  decimal.Decimal
	Currency   Currency
	GameType   GameType
	GameID     string
	ClientSeed string
}

// WagerOutcome is returned to the caller after a wager is placed. Seeds are only
// populated once the wager is terminal.
type WagerOutcome struct {
	WagerID        uuid.UUID       `json:"wagerId"`
	Status         WagerStatus     `json:"status"`
	WonAmount      decimal.Decimal `json:"wonAmount"`
	RTP            decimal.Decimal `json:"rtp"`
	RoundResult    *RoundResult    `json:"roundResult,omitempty"`
	ServerSeed     string          `json:"serverSeed,omitempty"`
	ServerSeedHash string          `json:"serverSeedHash,omitempty"`
	ClientSeed     string          `json:"clientSeed,omitempty"`
	Nonce          *uint64         `json:"nonce,omitempty"`
	GameID         string          `json:"gameId,omitempty"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	ChainLink      *ChainLink      `json:"chainLink,omitempty"`
}
