package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseAmmoCount(t *testing.T) {
	tests := []struct {
		roll int
		want int
	}{
		{0, 6}, {1, 6}, {2, 5}, {3, 5}, {4, 4}, {7, 4}, {8, 3}, {15, 3},
		{16, 2}, {31, 2}, {32, 1}, {62, 1}, {63, 0}, {-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseAmmoCount(tt.roll), "roll %d", tt.roll)
	}
}

func TestBonusAmmoCount(t *testing.T) {
	tests := []struct {
		roll int
		want int
	}{
		{0, 5}, {1, 5}, {2, 4}, {3, 4}, {4, 3}, {7, 3}, {8, 2}, {15, 2},
		{16, 1}, {31, 1}, {32, 0}, {185, 0}, {186, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BonusAmmoCount(tt.roll), "roll %d", tt.roll)
	}
}

func TestBonusMultiplier(t *testing.T) {
	tests := []struct {
		roll int
		want int
	}{
		{0, 100}, {2, 75}, {4, 50}, {8, 20}, {16, 10}, {32, 5}, {62, 5}, {63, 1}, {64, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BonusMultiplier(tt.roll), "roll %d", tt.roll)
	}
}

func TestBaseWinProbability_MatchesTable(t *testing.T) {
	sum := 0
	for i := 0; i < BaseAmmoRange; i++ {
		sum += BaseAmmoCount(i)
	}
	assert.Equal(t, 125, sum)
	assert.InDelta(t, float64(sum)/float64(BaseAmmoRange*DefaultChambers), BaseWinProbability, 1e-12)
}

func TestAllTables_ReturnsCopies(t *testing.T) {
	tables := AllTables()
	assert.Len(t, tables.BaseAmmoCounts, BaseAmmoRange)
	assert.Len(t, tables.BonusAmmoCounts, BonusAmmoRange)
	assert.Len(t, tables.BonusMultipliers, BonusMultiplierRange)

	tables.BaseAmmoCounts[0] = 99
	assert.Equal(t, 6, BaseAmmoCount(0))
}
