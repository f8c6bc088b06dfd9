package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedTriple seeds one round's randomness. ServerSeed must not leave the
// service before the round it seeds is settled.
type SeedTriple struct {
	ServerSeed string `json:"serverSeed"`
	ClientSeed string `json:"clientSeed"`
	Nonce      uint64 `json:"nonce"`
}

// RoundResult is the immutable output of one run of the outcome engine
type RoundResult struct {
	BaseWinAmount       decimal.Decimal `json:"totalBaseWinAmount"`
	BonusWinAmount      decimal.Decimal `json:"totalBonusWinAmount"`
	BaseWinCount        int             `json:"totalBaseWins"`
	BonusWinCount       int             `json:"totalBonusWins"`
	BonusesTriggered    int             `json:"bonusesTriggered"`
	BonusRetriggerCount int             `json:"bonusRetriggersCount"`
	BonusRoundsPlayed   int             `json:"bonusRoundsPlayed"`
	BaseMultiplier      decimal.Decimal `json:"baseMultiplier"`
	BetAmount           decimal.Decimal `json:"totalBetAmount"`
	TotalPayout         decimal.Decimal `json:"totalPayout"`
	PayoutMultiplier    decimal.Decimal `json:"payoutMultiplier"`
	RTP                 decimal.Decimal `json:"rtp"`
	FinalCursor         uint64          `json:"finalCursor"`
}

// Won reports whether the round paid anything
func (r RoundResult) Won() bool {
	return r.TotalPayout.IsPositive()
}

// GroupRoundStatus is the lifecycle state of a shared round
type GroupRoundStatus string

const (
	GroupRoundPending   GroupRoundStatus = "pending"
	GroupRoundCompleted GroupRoundStatus = "completed"
)

// GroupRound is one outcome shared by every wager that references it
type GroupRound struct {
	GameID         string           `json:"gameId"`
	StartTime      time.Time        `json:"startTime"`
	EndTime        time.Time        `json:"endTime"`
	Status         GroupRoundStatus `json:"status"`
	Seeds          SeedTriple       `json:"-"`
	ServerSeedHash string           `json:"serverSeedHash"`
	Result         *RoundResult     `json:"result,omitempty"`
	ChainLink      *ChainLink       `json:"chainLink,omitempty"`
}

// GroupRoundStatusView answers "is there a round open right now"
type GroupRoundStatusView struct {
	Active        bool       `json:"active"`
	GameID        string     `json:"gameId,omitempty"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	TimeRemaining int64      `json:"timeRemaining"`
}

// GroupRoundResultView is a single player's view of a settled group round
type GroupRoundResultView struct {
	GameID      string          `json:"gameId"`
	Status      WagerStatus     `json:"status"`
	BetAmount   decimal.Decimal `json:"betAmount"`
	WonAmount   decimal.Decimal `json:"wonAmount"`
	RTP         decimal.Decimal `json:"rtp"`
	RoundResult *RoundResult    `json:"roundResult,omitempty"`
	Seeds       *SeedTriple     `json:"seeds,omitempty"`
	ChainLink   *ChainLink      `json:"chainLink,omitempty"`
}
