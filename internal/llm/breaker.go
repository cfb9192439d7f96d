package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls after repeated upstream failures
var ErrCircuitOpen = errors.New("completion API temporarily unavailable (circuit open)")

// Breaker wraps a Provider in a circuit breaker. After the configured number
// of consecutive failures calls fail fast until the open timeout elapses.
// Calls are never retried. The breaker is shared by every caller of the
// wrapped provider, so it is only installed when explicitly configured.
type Breaker struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreaker wraps provider with a circuit breaker. A non-positive failure
// count never opens the circuit.
func NewBreaker(provider Provider, failures int, openTimeout time.Duration) *Breaker {
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return failures > 0 && counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations and local misconfiguration say nothing about upstream health
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrMissingAPIKey)
		},
	}

	return &Breaker{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Complete forwards to the wrapped provider unless the circuit is open
func (b *Breaker) Complete(ctx context.Context, messages []Message) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Complete(ctx, messages)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrCircuitOpen
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.provider.Name()
}

// IsAvailable delegates to the wrapped provider
func (b *Breaker) IsAvailable() error {
	return b.provider.IsAvailable()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
