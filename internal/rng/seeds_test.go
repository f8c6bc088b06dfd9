package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

func TestGenerateSeed(t *testing.T) {
	a, err := GenerateSeed()
	require.NoError(t, err)
	b, err := GenerateSeed()
	require.NoError(t, err)

	assert.Len(t, a, SeedBytes*2)
	assert.NotEqual(t, a, b)
}

func TestHashSeed(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashSeed("abc"))
}

func TestNewSeedTriple(t *testing.T) {
	seeds, err := NewSeedTriple("", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, seeds.ServerSeed)
	assert.NotEmpty(t, seeds.ClientSeed)
	assert.Equal(t, uint64(7), seeds.Nonce)

	seeds, err = NewSeedTriple("mine", 1)
	require.NoError(t, err)
	assert.Equal(t, "mine", seeds.ClientSeed)
}

func TestValidateSeeds(t *testing.T) {
	assert.NoError(t, ValidateSeeds(testSeeds))
	assert.ErrorIs(t, ValidateSeeds(domain.SeedTriple{ClientSeed: "c"}), domain.ErrValidation)
	assert.ErrorIs(t, ValidateSeeds(domain.SeedTriple{ServerSeed: "s"}), domain.ErrInvalidSeed)
}
