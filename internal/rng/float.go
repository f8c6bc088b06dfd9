package rng

import (
	"math"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// FloatWidth is the number of stream bytes consumed per float
const FloatWidth = 4

// FloatFromBytes maps four bytes to [0,1) as sum(b_i / 256^(i+1))
func FloatFromBytes(b [FloatWidth]byte) float64 {
	var v float64
	div := 256.0
	for _, x := range b {
		v += float64(x) / div
		div *= 256
	}
	return v
}

// DrawFloat reads one float at cursor and returns it with the next cursor
func DrawFloat(seeds domain.SeedTriple, cursor uint64) (float64, uint64) {
	var b [FloatWidth]byte
	_, _ = NewStream(seeds, cursor).Read(b[:])
	return FloatFromBytes(b), cursor + FloatWidth
}

// Floats draws count consecutive floats starting at cursor
func Floats(seeds domain.SeedTriple, cursor uint64, count int) ([]float64, uint64) {
	d := NewDrawer(seeds, cursor)
	out := make([]float64, count)
	for i := range out {
		out[i] = d.Float()
	}
	return out, d.Cursor()
}

// Roll maps a float in [0,1) onto [0,n) with floor
func Roll(value float64, n int) int {
	return int(math.Floor(value * float64(n)))
}

// Drawer hands out consecutive floats from one stream. The cursor is explicit
// state on the value; nothing is shared between drawers.
type Drawer struct {
	stream *Stream
}

// NewDrawer returns a drawer positioned at cursor
func NewDrawer(seeds domain.SeedTriple, cursor uint64) *Drawer {
	return &Drawer{stream: NewStream(seeds, cursor)}
}

// Float draws the next float and advances the cursor by FloatWidth
func (d *Drawer) Float() float64 {
	var b [FloatWidth]byte
	_, _ = d.stream.Read(b[:])
	return FloatFromBytes(b)
}

// Roll draws the next float and maps it onto [0,n)
func (d *Drawer) Roll(n int) int {
	return Roll(d.Float(), n)
}

// Cursor returns the position of the next draw
func (d *Drawer) Cursor() uint64 {
	return d.stream.Cursor()
}
