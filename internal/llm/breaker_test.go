package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

type scriptedProvider struct {
	errs  []error
	calls int
}

func (s *scriptedProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	return "ok", nil
}

func (s *scriptedProvider) Name() string       { return "scripted" }
func (s *scriptedProvider) IsAvailable() error { return nil }

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	boom := &UpstreamError{Provider: "scripted", StatusCode: 500, Body: "boom"}
	inner := &scriptedProvider{errs: []error{boom, boom, boom}}
	breaker := NewBreaker(inner, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := breaker.Complete(context.Background(), nil); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	if breaker.State() != gobreaker.StateOpen {
		t.Fatalf("Expected breaker to be open, got %s", breaker.State())
	}

	_, err := breaker.Complete(context.Background(), nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Expected open breaker to skip the upstream call, got %d calls", inner.calls)
	}
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedProvider{errs: []error{boom, boom, nil, boom, boom}}
	breaker := NewBreaker(inner, 3, time.Minute)

	for i := 0; i < 5; i++ {
		_, _ = breaker.Complete(context.Background(), nil)
	}

	if breaker.State() != gobreaker.StateClosed {
		t.Errorf("Expected breaker to stay closed, got %s", breaker.State())
	}
}

func TestBreaker_IgnoresCancellationAndMissingKey(t *testing.T) {
	inner := &scriptedProvider{errs: []error{context.Canceled, ErrMissingAPIKey, context.Canceled}}
	breaker := NewBreaker(inner, 2, time.Minute)

	for i := 0; i < 3; i++ {
		_, _ = breaker.Complete(context.Background(), nil)
	}

	if breaker.State() != gobreaker.StateClosed {
		t.Errorf("Expected breaker to stay closed, got %s", breaker.State())
	}
}

func TestBreaker_Delegates(t *testing.T) {
	breaker := NewBreaker(&scriptedProvider{}, 0, 0)

	if breaker.Name() != "scripted" {
		t.Errorf("Name() = %s, want scripted", breaker.Name())
	}
	text, err := breaker.Complete(context.Background(), nil)
	if err != nil || text != "ok" {
		t.Errorf("Complete() = %q, %v; want ok, nil", text, err)
	}
}

func TestBreaker_ZeroFailuresNeverOpens(t *testing.T) {
	boom := errors.New("upstream down")
	inner := &scriptedProvider{errs: make([]error, 10)}
	for i := range inner.errs {
		inner.errs[i] = boom
	}
	breaker := NewBreaker(inner, 0, time.Minute)

	for i := 0; i < 10; i++ {
		if _, err := breaker.Complete(context.Background(), nil); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}
	if breaker.State() != gobreaker.StateClosed {
		t.Errorf("Expected breaker to stay closed, got %s", breaker.State())
	}
	if inner.calls != 10 {
		t.Errorf("Expected every call to reach the provider, got %d calls", inner.calls)
	}
}
