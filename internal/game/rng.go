package game

import "fmt"

// Stream is a replayable pseudo-random stream: a 32-bit polynomial hash of
// the seed string feeding a linear-congruential recurrence. Not suitable
// for anything security sensitive; its only job is making a game seed
// reproduce the exact same sequence of draws.
type Stream struct {
	state int64
}

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = int64(1) << 32
)

func NewStream(seed string) *Stream {
	var h int32
	for _, c := range seed {
		h = h<<5 - h + int32(c)
	}
	// Fold into [0, 2^32) so the recurrence stays in the non-negative
	// residue class and Next is uniform over the whole unit interval.
	return &Stream{state: int64(h) & (lcgModulus - 1)}
}

// turnStream derives the stream for one turn of one game. Every draw made
// while processing that turn comes from this stream, in a fixed order, so
// replaying a turn from the same prior state reproduces it exactly.
func turnStream(seed string, turn int) *Stream {
	return NewStream(fmt.Sprintf("%s#%d", seed, turn))
}

// Next returns the next draw in [0,1).
func (s *Stream) Next() float64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) & (lcgModulus - 1)
	return float64(s.state) / float64(lcgModulus)
}

// between scales the next draw onto [lo,hi).
func (s *Stream) between(lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}
