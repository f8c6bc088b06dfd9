package rng

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// SeedBytes is the entropy behind every generated seed
const SeedBytes = 32

// GenerateSeed returns SeedBytes of crypto/rand entropy as hex
func GenerateSeed() (string, error) {
	buf := make([]byte, SeedBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSeed returns the SHA-256 commitment published before a server seed is revealed
func HashSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// NewSeedTriple creates a triple with a fresh server seed. An empty clientSeed
// is replaced by a generated one.
func NewSeedTriple(clientSeed string, nonce uint64) (domain.SeedTriple, error) {
	serverSeed, err := GenerateSeed()
	if err != nil {
		return domain.SeedTriple{}, err
	}
	if clientSeed == "" {
		if clientSeed, err = GenerateSeed(); err != nil {
			return domain.SeedTriple{}, err
		}
	}
	return domain.SeedTriple{ServerSeed: serverSeed, ClientSeed: clientSeed, Nonce: nonce}, nil
}

// ValidateSeeds rejects a triple that cannot be replayed
func ValidateSeeds(seeds domain.SeedTriple) error {
	if seeds.ServerSeed == "" {
		return fmt.Errorf("%w: server seed is empty", domain.ErrInvalidSeed)
	}
	if seeds.ClientSeed == "" {
		return fmt.Errorf("%w: client seed is empty", domain.ErrInvalidSeed)
	}
	return nil
}
