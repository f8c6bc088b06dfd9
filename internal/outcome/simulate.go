package outcome

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// BaseWinProbability is the exact chance a base round pays: the mean of
// baseAmmoCounts over six chambers, 125/378.
const BaseWinProbability = 125.0 / 378.0

// SimulationReport aggregates many consecutive rounds
type SimulationReport struct {
	Rounds              int             `json:"rounds"`
	TotalBet            decimal.Decimal `json:"totalBet"`
	TotalBaseWinAmount  decimal.Decimal `json:"totalBaseWinAmount"`
	TotalBonusWinAmount decimal.Decimal `json:"totalBonusWinAmount"`
	BaseWins            int             `json:"baseWins"`
	BonusWins           int             `json:"bonusWins"`
	BonusesTriggered    int             `json:"bonusesTriggered"`
	BonusRetriggers     int             `json:"bonusRetriggers"`
	BonusRoundsPlayed   int             `json:"bonusRoundsPlayed"`
	BaseWinRate         float64         `json:"baseWinRate"`
	BonusWinRate        float64         `json:"bonusWinRate"`
	BonusTriggerRate    float64         `json:"bonusTriggerRate"`
	RTP                 decimal.Decimal `json:"rtp"`
	FinalCursor         uint64          `json:"finalCursor"`
}

// Simulate plays rounds back to back on one stream. Each round continues at
// the cursor where the previous one stopped.
func (e *Engine) Simulate(seeds domain.SeedTriple, bet decimal.Decimal, rounds int) SimulationReport {
	d := rng.NewDrawer(seeds, 0)
	rep := SimulationReport{
		Rounds:              rounds,
		TotalBet:            decimal.Zero,
		TotalBaseWinAmount:  decimal.Zero,
		TotalBonusWinAmount: decimal.Zero,
		RTP:                 decimal.Zero,
	}

	for i := 0; i < rounds; i++ {
		res, _ := e.Run(d, bet)
		rep.TotalBet = rep.TotalBet.Add(bet)
		rep.TotalBaseWinAmount = rep.TotalBaseWinAmount.Add(res.BaseWinAmount)
		rep.TotalBonusWinAmount = rep.TotalBonusWinAmount.Add(res.BonusWinAmount)
		rep.BaseWins += res.BaseWinCount
		rep.BonusWins += res.BonusWinCount
		rep.BonusesTriggered += res.BonusesTriggered
		rep.BonusRetriggers += res.BonusRetriggerCount
		rep.BonusRoundsPlayed += res.BonusRoundsPlayed
	}

	if rounds > 0 {
		rep.BaseWinRate = float64(rep.BaseWins) / float64(rounds)
		rep.BonusTriggerRate = float64(rep.BonusesTriggered) / float64(rounds)
	}
	if rep.BonusRoundsPlayed > 0 {
		rep.BonusWinRate = float64(rep.BonusWins) / float64(rep.BonusRoundsPlayed)
	}
	if rep.TotalBet.IsPositive() {
		won := rep.TotalBaseWinAmount.Add(rep.TotalBonusWinAmount)
		rep.RTP = won.Div(rep.TotalBet).Mul(decimal.NewFromInt(100))
	}
	rep.FinalCursor = d.Cursor()
	return rep
}
