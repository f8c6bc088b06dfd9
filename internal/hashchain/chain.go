// Package hashchain implements the commit-reveal chain. A chain is produced by
// hashing a secret seed forward and storing the results back to front, so
// chain[0] can be published up front and every later link proves itself
// against the one before it: SHA256(chain[i+1]) == chain[i].
package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// SaveFunc receives checkpoints while a chain is generated. partial is in
// commitment order; final is true on the last call.
type SaveFunc func(partial []string, final bool) error

// HashLink returns hex(SHA256(link)), hashing the hex text itself
func HashLink(link string) string {
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:])
}

// Generate builds a chain of length links from seed. An empty seed is
// replaced with fresh random bytes. save may be nil.
func Generate(seed string, length, saveInterval int, save SaveFunc) ([]string, error) {
	if length <= 0 {
		return nil, domain.ErrInvalidChainLength
	}
	if seed == "" {
		var err error
		if seed, err = rng.GenerateSeed(); err != nil {
			return nil, err
		}
	}

	// forward[k] is the seed hashed k times; the chain is forward reversed
	forward := make([]string, length)
	current := seed
	for i := 0; i < length; i++ {
		forward[i] = current
		last := i == length-1
		if save != nil && (last || (saveInterval > 0 && (i+1)%saveInterval == 0)) {
			if err := save(reversed(forward[:i+1]), last); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveCheckpoint, err)
			}
		}
		current = HashLink(current)
	}

	return reversed(forward), nil
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// Verify checks every adjacent pair of the chain
func Verify(chain []string) error {
	if len(chain) == 0 {
		return fmt.Errorf("%w: empty chain", domain.ErrInvalidInput)
	}
	for i := 0; i+1 < len(chain); i++ {
		if !VerifyPair(chain[i], chain[i+1]) {
			return fmt.Errorf("%w: index %d", domain.ErrChainMismatch, i)
		}
	}
	return nil
}

// VerifyPair reports whether next was revealed after prev
func VerifyPair(prev, next string) bool {
	return HashLink(next) == prev
}
