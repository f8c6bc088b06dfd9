package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerStats accumulates a player's results across every settled round
type PlayerStats struct {
	UserID              string          `json:"userId"`
	TotalBaseWins       int64           `json:"totalBaseWins"`
	TotalBonusWins      int64           `json:"totalBonusWins"`
	TotalBaseWinAmount  decimal.Decimal `json:"totalBaseWinAmount"`
	TotalBonusWinAmount decimal.Decimal `json:"totalBonusWinAmount"`
	TotalBetAmount      decimal.Decimal `json:"totalBetAmount"`
	BonusesTriggered    int64           `json:"bonusesTriggered"`
	BonusRetriggers     int64           `json:"bonusRetriggers"`
	RoundsPlayed        int64           `json:"roundsPlayed"`
	GameHistory         []GameHistory   `json:"gameHistory,omitempty"`
}

// RTP returns the player's lifetime return-to-player
func (p PlayerStats) RTP() decimal.Decimal {
	if p.TotalBetAmount.IsZero() {
		return decimal.Zero
	}
	won := p.TotalBaseWinAmount.Add(p.TotalBonusWinAmount)
	return won.Div(p.TotalBetAmount).Mul(decimal.NewFromInt(100))
}

// GameHistory is one revealed round in a player's history
type GameHistory struct {
	ServerSeed string          `json:"serverSeed"`
	ClientSeed string          `json:"clientSeed"`
	Nonce      uint64          `json:"nonce"`
	BetAmount  decimal.Decimal `json:"betAmount"`
	WinAmount  decimal.Decimal `json:"winAmount"`
	Timestamp  time.Time       `json:"timestamp"`
}

// StatsDelta is what a single settled wager adds to PlayerStats
type StatsDelta struct {
	UserID  string
	Result  RoundResult
	Bet     decimal.Decimal
	Won     decimal.Decimal
	History GameHistory
}

// GameStats summarizes one game type across all players
type GameStats struct {
	GameName     GameType        `json:"gameName"`
	WagerCount   int64           `json:"wagerCount"`
	TotalWagered decimal.Decimal `json:"totalWagered"`
	TotalWon     decimal.Decimal `json:"totalWon"`
	WinCount     int64           `json:"winCount"`
}
