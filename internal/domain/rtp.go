package domain

import "github.com/shopspring/decimal"

// RTPFilter narrows the set of settled wagers an RTP figure is computed over
type RTPFilter struct {
	GameID        string   `json:"gameId,omitempty"`
	GameName      GameType `json:"gameName,omitempty"`
	TimeRangeDays int      `json:"timeRangeDays,omitempty"`
}

// RTPStats is an aggregate return-to-player figure
type RTPStats struct {
	RTP          decimal.Decimal `json:"rtp"`
	TotalWagered decimal.Decimal `json:"totalWagered"`
	TotalWon     decimal.Decimal `json:"totalWon"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	WagerCount   int64           `json:"wagerCount"`
}
