// Package rtp computes return-to-player figures over settled wagers
package rtp

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Compute aggregates settled wagers. Pending wagers are skipped. Every ratio
// is zero when nothing was wagered.
func Compute(wagers []domain.Wager) domain.RTPStats {
	stats := domain.RTPStats{
		TotalWagered: decimal.Zero,
		TotalWon:     decimal.Zero,
	}
	for _, w := range wagers {
		if !w.Status.Terminal() {
			continue
		}
		stats.TotalWagered = stats.TotalWagered.Add(w.BetAmount)
		stats.TotalWon = stats.TotalWon.Add(w.WonAmount)
		stats.WagerCount++
	}
	return Finalize(stats)
}

// Finalize derives RTP and profit margin from the totals
func Finalize(stats domain.RTPStats) domain.RTPStats {
	if !stats.TotalWagered.IsPositive() {
		stats.RTP = decimal.Zero
		stats.ProfitMargin = decimal.Zero
		return stats
	}
	stats.RTP = stats.TotalWon.Div(stats.TotalWagered).Mul(hundred)
	stats.ProfitMargin = stats.TotalWagered.Sub(stats.TotalWon).Div(stats.TotalWagered).Mul(hundred)
	return stats
}
