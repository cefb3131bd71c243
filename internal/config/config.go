package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/screa/eth-vanity/pkg/types"
)

const (
	// MinRunFloor is the smallest accepted minimum run length
	MinRunFloor = 3
	// MinRunWarn is the run length above which searches get very slow
	MinRunWarn  = 15

	DefaultMinRun        = 8
	DefaultBatchSize     = 1000
	DefaultStatsInterval = 3
	DefaultOutput        = "eth_address.txt"
)

// Errors
var (
	ErrMinRunTooShort       = fmt.Errorf("minimum run length must be at least %d", MinRunFloor)
	ErrInvalidBatchSize     = errors.New("batch size must be positive")
	ErrInvalidStatsInterval = errors.New("stats interval must be positive")
	ErrInvalidCount         = errors.New("count must not be negative")
	ErrNoOutputSpecified    = errors.New("output file must not be empty")
)

// Config holds the application configuration
type Config struct {
	MinRun        int
	Workers       int
	BatchSize     int
	StatsInterval int // seconds
	Output        string
	Count         int // 0 means unbounded
	Verbose       bool
	LogFile       string
	NoColor       bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		MinRun:        DefaultMinRun,
		Workers:       runtime.NumCPU(),
		BatchSize:     DefaultBatchSize,
		StatsInterval: DefaultStatsInterval,
		Output:        DefaultOutput,
	}
}

// Validate validates the configuration. A worker count below one is not an
// error, it falls back to the number of CPUs.
func (c *Config) Validate() error {
	if c.MinRun < MinRunFloor {
		return fmt.Errorf("%w, got %d", ErrMinRunTooShort, c.MinRun)
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.StatsInterval <= 0 {
		return ErrInvalidStatsInterval
	}
	if c.Count < 0 {
		return ErrInvalidCount
	}
	if c.Output == "" {
		return ErrNoOutputSpecified
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// Warnings returns advisory messages about settings that are valid but
// unlikely to finish in reasonable time.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.MinRun > MinRunWarn {
		warnings = append(warnings, fmt.Sprintf("%d repeated characters are extremely rare, the search may take a very long time", c.MinRun))
	}
	if c.MinRun > types.AddressLen {
		warnings = append(warnings, fmt.Sprintf("%d exceeds the address length of %d, no address can match", c.MinRun, types.AddressLen))
	}
	return warnings
}

// Unbounded reports whether the search runs until interrupted
func (c *Config) Unbounded() bool {
	return c.Count == 0
}

// StatsEvery returns the stats interval as a duration
func (c *Config) StatsEvery() time.Duration {
	return time.Duration(c.StatsInterval) * time.Second
}

// GetTargetDescription returns a human-readable description of the target
func (c *Config) GetTargetDescription() string {
	return fmt.Sprintf("address suffix of at least %d repeated characters", c.MinRun)
}

// WorkerConfig returns the per-worker settings
func (c *Config) WorkerConfig() *types.WorkerConfig {
	return &types.WorkerConfig{
		MinRun:    c.MinRun,
		BatchSize: c.BatchSize,
	}
}
