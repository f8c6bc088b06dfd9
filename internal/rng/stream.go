// Package rng derives a deterministic byte stream from a seed triple.
//
// Bytes are produced in 32-byte blocks, each block being
// HMAC_SHA256(key=serverSeed, msg=clientSeed:nonce:roundIndex) with
// roundIndex = cursor/32. Every value is a pure function of the triple and the
// cursor, so any draw can be replayed by anyone holding the revealed seeds.
package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// BlockSize is the number of bytes produced by one HMAC evaluation
const BlockSize = sha256.Size

// Stream is a restartable reader over the byte sequence of one seed triple.
// It is not safe for concurrent use; create one per goroutine.
type Stream struct {
	seeds  domain.SeedTriple
	cursor uint64
	block  [BlockSize]byte
	loaded bool
	round  uint64
}

// NewStream returns a stream positioned at cursor
func NewStream(seeds domain.SeedTriple, cursor uint64) *Stream {
	return &Stream{seeds: seeds, cursor: cursor}
}

// Cursor returns the byte offset of the next byte to be read
func (s *Stream) Cursor() uint64 {
	return s.cursor
}

// Read fills p with the next len(p) bytes. It never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = s.next()
	}
	return len(p), nil
}

func (s *Stream) next() byte {
	round := s.cursor / BlockSize
	if !s.loaded || round != s.round {
		s.block = Block(s.seeds, round)
		s.round = round
		s.loaded = true
	}
	b := s.block[s.cursor%BlockSize]
	s.cursor++
	return b
}

// Block computes the 32 bytes for one round index
func Block(seeds domain.SeedTriple, roundIndex uint64) [BlockSize]byte {
	mac := hmac.New(sha256.New, []byte(seeds.ServerSeed))
	mac.Write([]byte(message(seeds, roundIndex)))
	var out [BlockSize]byte
	copy(out[:], mac.Sum(nil))
	return out
}

func message(seeds domain.SeedTriple, roundIndex uint64) string {
	buf := make([]byte, 0, len(seeds.ClientSeed)+42)
	buf = append(buf, seeds.ClientSeed...)
	buf = append(buf, ':')
	buf = strconv.AppendUint(buf, seeds.Nonce, 10)
	buf = append(buf, ':')
	buf = strconv.AppendUint(buf, roundIndex, 10)
	return string(buf)
}

// Bytes returns n bytes starting at cursor
func Bytes(seeds domain.SeedTriple, cursor uint64, n int) []byte {
	out := make([]byte, n)
	_, _ = NewStream(seeds, cursor).Read(out)
	return out
}
