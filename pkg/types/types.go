package types

import "time"

const (
	// PrivateKeyLen is the length of a raw secp256k1 private key
	PrivateKeyLen = 32
	// AddressLen is the number of hex digits in an Ethereum address (20 bytes)
	AddressLen = 40
	// AddressPrefix is prepended to addresses for display and persistence
	AddressPrefix = "0x"
)

// KeyPair is one generated candidate. Both fields are fixed-size arrays so a
// batch of candidates can live in a single reusable slice.
type KeyPair struct {
	PrivateKey [PrivateKeyLen]byte
	Address    [AddressLen]byte // lowercase hex, no prefix
}

// MatchResult represents a key pair whose address ends in a long enough run
type MatchResult struct {
	PrivateKey string // hex-encoded, only set once the candidate matched
	Address    string // lowercase hex, no prefix
	Digit      byte
	RunLength  int
}

// PrefixedAddress returns the address with the 0x prefix
func (m MatchResult) PrefixedAddress() string {
	return AddressPrefix + m.Address
}

// RoundStats holds the throughput accounting of a single search round
type RoundStats struct {
	Attempts uint64
	Elapsed  time.Duration
}

// Rate returns attempts per second, or 0 if no time has elapsed
func (s RoundStats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Attempts) / s.Elapsed.Seconds()
}

// Progress is a periodic snapshot emitted while a round is running
type Progress struct {
	Attempts uint64
	Elapsed  time.Duration
	Rate     float64
}

// Record is a persisted match
type Record struct {
	Time  time.Time
	Match MatchResult
	Stats RoundStats
}

// SessionTotals aggregates all rounds of one process invocation
type SessionTotals struct {
	Found    int
	Attempts uint64
	Start    time.Time
	Elapsed  time.Duration
}

// WorkerConfig contains configuration for individual workers
type WorkerConfig struct {
	MinRun    int
	BatchSize int
}
