package domain

import "time"

// ChainLink is one revealed link of the commitment chain. Prev is the link
// issued immediately before it, so SHA256(Hash) == Prev holds for every
// issued pair inside a segment.
type ChainLink struct {
	OrderIndex int64  `json:"orderIndex"`
	Hash       string `json:"hash"`
	Prev       string `json:"prev,omitempty"`
	Segment    int    `json:"segment"`
}

// ChainSegment is one independently generated chain. Its first link is the
// commitment published before any of its links are issued.
type ChainSegment struct {
	Index     int       `json:"index"`
	Start     int64     `json:"start"`
	Length    int       `json:"length"`
	FinalHash string    `json:"finalHash"`
	CreatedAt time.Time `json:"createdAt"`
}

// End returns the order index one past the segment's last link
func (s ChainSegment) End() int64 {
	return s.Start + int64(s.Length)
}

// ChainState is everything persisted about the commitment chain. Links holds
// every segment back to back in order-index order. Next is the order index of
// the next link to issue; a segment's first link is its published commitment
// and is never issued.
type ChainState struct {
	Links    []string       `json:"-"`
	Segments []ChainSegment `json:"segments"`
	Next     int64          `json:"next"`
}

// Remaining returns the count of issuable links not yet issued
func (s ChainState) Remaining() int64 {
	var n int64
	for _, seg := range s.Segments {
		first := seg.Start + 1
		if s.Next > first {
			first = s.Next
		}
		if end := seg.End(); end > first {
			n += end - first
		}
	}
	return n
}

// SegmentFor returns the segment containing order index i
func (s ChainState) SegmentFor(i int64) (ChainSegment, bool) {
	for _, seg := range s.Segments {
		if i >= seg.Start && i < seg.End() {
			return seg, true
		}
	}
	return ChainSegment{}, false
}

// Commitment is the public view of the chain
type Commitment struct {
	FinalHash string         `json:"finalHash"`
	Segments  []ChainSegment `json:"segments"`
	Next      int64          `json:"next"`
	Remaining int64          `json:"remaining"`
}
