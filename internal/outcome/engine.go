// Package outcome implements the round state machine: a base roll followed by
// an optional bonus sub-game with retriggers. It is pure; the same seed triple
// always produces the same RoundResult.
package outcome

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// Source supplies floats in [0,1). rng.Drawer is the production source.
type Source interface {
	Float() float64
	Cursor() uint64
}

// Draw is one recorded float in a round's trace
type Draw struct {
	Cursor uint64   `json:"cursor"`
	Kind   DrawKind `json:"kind"`
	Value  float64  `json:"value"`
	Roll   int      `json:"roll"`
}

// Trace is the ordered list of draws a round consumed
type Trace []Draw

// Engine runs rounds against a fixed Config
type Engine struct {
	cfg         Config
	baseTarget  decimal.Decimal
	bonusTarget decimal.Decimal
}

// NewEngine creates an engine. The config is assumed valid.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:         cfg,
		baseTarget:  decimal.NewFromFloat(cfg.BaseWinMultiplierTarget),
		bonusTarget: decimal.NewFromFloat(cfg.BonusMultiplierTarget),
	}
}

// Config returns the engine's tunables
func (e *Engine) Config() Config {
	return e.cfg
}

// Play runs one round from cursor 0 of the seed triple's stream
func (e *Engine) Play(seeds domain.SeedTriple, bet decimal.Decimal) (domain.RoundResult, Trace) {
	return e.Run(rng.NewDrawer(seeds, 0), bet)
}

// round carries the mutable state of one run
type round struct {
	src   Source
	trace Trace
}

func (r *round) float(kind DrawKind) float64 {
	cursor := r.src.Cursor()
	v := r.src.Float()
	r.trace = append(r.trace, Draw{Cursor: cursor, Kind: kind, Value: v, Roll: -1})
	return v
}

func (r *round) roll(kind DrawKind, n int) int {
	v := r.float(kind)
	roll := rng.Roll(v, n)
	r.trace[len(r.trace)-1].Roll = roll
	return roll
}

// multiplier draws floor(max(1, 0xFFFFFFFF/(f*0xFFFFFFFF+1))*100)/100
func (r *round) multiplier(kind DrawKind) float64 {
	f := r.float(kind)
	return crashMultiplier(f)
}

func crashMultiplier(f float64) float64 {
	m := math.Max(1, multiplierScale/(f*multiplierScale+1))
	return math.Floor(m*100) / 100
}

// Run drives the state machine from src. Every draw advances src by one float.
func (e *Engine) Run(src Source, bet decimal.Decimal) (domain.RoundResult, Trace) {
	r := &round{src: src}
	res := domain.RoundResult{
		BaseWinAmount:  decimal.Zero,
		BonusWinAmount: decimal.Zero,
		BetAmount:      bet,
	}

	// Base roll
	baseMultiplier := r.multiplier(DrawBaseMultiplier)
	res.BaseMultiplier = decimal.NewFromFloat(baseMultiplier)
	baseAmmo := BaseAmmoCount(r.roll(DrawFirstRoll, BaseAmmoRange))
	winRoll := r.roll(DrawWinRoll, e.cfg.Chambers)

	if baseMultiplier >= e.cfg.BaseWinMultiplierTarget && winRoll < baseAmmo {
		res.BaseWinAmount = res.BaseWinAmount.Add(bet.Mul(e.baseTarget))
		res.BaseWinCount++
	}

	// Bonus trigger
	bonusRounds := 0
	if r.roll(DrawBonusTrigger, e.cfg.BonusTriggerRange) == 0 {
		res.BonusesTriggered++
		bonusRounds = e.cfg.InitialBonusRounds
	}

	for bonusRounds > 0 {
		bonusMultiplier := r.multiplier(DrawBonusMultiplier)
		bonusWinRoll := r.roll(DrawBonusWinRoll, e.cfg.Chambers)
		bonusAmmo := BonusAmmoCount(r.roll(DrawBonusAmmo, BonusAmmoRange))

		if bonusMultiplier >= e.cfg.BonusMultiplierTarget && bonusWinRoll < baseAmmo+bonusAmmo {
			res.BonusWinAmount = res.BonusWinAmount.Add(bet.Mul(e.bonusTarget))
			res.BonusWinCount++
		}

		if r.roll(DrawBonusRetrigger, e.cfg.BonusTriggerRange) == 0 {
			bonusRounds += e.cfg.BonusRetriggerRounds
			res.BonusRetriggerCount++
		}

		bonusRounds--
		res.BonusRoundsPlayed++
	}

	res.TotalPayout = res.BaseWinAmount.Add(res.BonusWinAmount)
	if bet.IsPositive() {
		res.PayoutMultiplier = res.TotalPayout.Div(bet)
		res.RTP = res.TotalPayout.Div(bet).Mul(decimal.NewFromInt(100))
	} else {
		res.PayoutMultiplier = decimal.Zero
		res.RTP = decimal.Zero
	}
	res.FinalCursor = src.Cursor()

	return res, r.trace
}
