package miner

import "go.uber.org/atomic"

// SearchState is the coordination state of a single round. The stop flag
// only ever goes from false to true and the attempt counter only grows.
// Both are read and written without locks; a worker may check a few extra
// candidates after another worker has stopped the round.
type SearchState struct {
	stopped  atomic.Bool
	attempts atomic.Uint64
}

// NewSearchState returns a fresh, running state
func NewSearchState() *SearchState {
	return &SearchState{}
}

// Stopped reports whether the round has been stopped
func (s *SearchState) Stopped() bool {
	return s.stopped.Load()
}

// Stop ends the round
func (s *SearchState) Stop() {
	s.stopped.Store(true)
}

// Add adds n attempts to the counter
func (s *SearchState) Add(n uint64) {
	s.attempts.Add(n)
}

// Attempts returns the number of candidates generated so far
func (s *SearchState) Attempts() uint64 {
	return s.attempts.Load()
}
