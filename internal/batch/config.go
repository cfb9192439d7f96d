package batch

import (
	"fmt"
	"time"
)

// OverflowPolicy decides what happens to cells longer than MaxChars
type OverflowPolicy string

const (
	// OverflowTruncate sends the first MaxChars characters for translation
	// and keeps the full original text in the output.
	OverflowTruncate OverflowPolicy = "truncate"
	// OverflowReject fails the row without calling the translator.
	OverflowReject OverflowPolicy = "reject"
)

// Config holds the limits applied to a batch
type Config struct {
	MaxRows      int            // rows beyond this are dropped and reported
	MaxChars     int            // per-cell limit, counted in characters
	Overflow     OverflowPolicy // handling of cells longer than MaxChars
	Concurrency  int            // translator calls in flight; 1 is sequential
	RowTimeout   time.Duration  // deadline per row
	BatchTimeout time.Duration  // deadline for the whole batch
	Delay        time.Duration  // pause between launching rows
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxRows:      50,
		MaxChars:     500,
		Overflow:     OverflowTruncate,
		Concurrency:  1,
		RowTimeout:   30 * time.Second,
		BatchTimeout: 5 * time.Minute,
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.MaxRows <= 0 {
		return fmt.Errorf("max rows must be positive, got %d", c.MaxRows)
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("max chars must be positive, got %d", c.MaxChars)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	switch c.Overflow {
	case OverflowTruncate, OverflowReject:
	default:
		return fmt.Errorf("unknown overflow policy: %s (must be truncate or reject)", c.Overflow)
	}
	return nil
}

func (c *Config) effectiveRowTimeout() time.Duration {
	if c.RowTimeout > 0 {
		return c.RowTimeout
	}
	return 30 * time.Second
}

func (c *Config) effectiveBatchTimeout() time.Duration {
	if c.BatchTimeout > 0 {
		return c.BatchTimeout
	}
	return 5 * time.Minute
}
