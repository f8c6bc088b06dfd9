package outcome

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

func TestSimulate_RatesConverge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation in short mode")
	}

	e := NewEngine(DefaultConfig())
	seeds := domain.SeedTriple{ServerSeed: "simulation-server", ClientSeed: "simulation-client", Nonce: 0}

	rep := e.Simulate(seeds, decimal.NewFromInt(1), 100000)

	assert.Equal(t, 100000, rep.Rounds)
	assert.InDelta(t, BaseWinProbability, rep.BaseWinRate, 0.01)
	assert.InDelta(t, 0.005, rep.BonusTriggerRate, 0.0015)
	assert.True(t, decimal.NewFromInt(100000).Equal(rep.TotalBet))
	assert.True(t, rep.RTP.IsPositive())
}

func TestSimulate_ContinuesCursor(t *testing.T) {
	e := NewEngine(DefaultConfig())
	seeds := domain.SeedTriple{ServerSeed: "s", ClientSeed: "c", Nonce: 3}

	one := e.Simulate(seeds, decimal.NewFromInt(1), 1)
	first, _ := e.Play(seeds, decimal.NewFromInt(1))
	assert.Equal(t, first.FinalCursor, one.FinalCursor)

	two := e.Simulate(seeds, decimal.NewFromInt(1), 2)
	assert.Greater(t, two.FinalCursor, one.FinalCursor)
}

func TestSimulate_ZeroRounds(t *testing.T) {
	rep := NewEngine(DefaultConfig()).Simulate(domain.SeedTriple{ServerSeed: "s", ClientSeed: "c"}, decimal.NewFromInt(1), 0)
	assert.Zero(t, rep.BaseWinRate)
	assert.True(t, rep.RTP.IsZero())
}
