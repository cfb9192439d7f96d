package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/snonux/lingosheet/internal/llm"
)

// MockProvider mocks a completion provider. Responses and Errors are keyed
// by the content of the last user message.
type MockProvider struct {
	Responses map[string]string
	Errors    map[string]error
	// Delay is applied to every call before answering
	Delay time.Duration
	// AvailableErr is returned by IsAvailable
	AvailableErr error

	mu       sync.Mutex
	calls    []string
	messages [][]llm.Message

	inFlight    int32
	maxInFlight int32
}

// Complete mocks a chat completion call
func (m *MockProvider) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	text := lastUserContent(messages)

	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.messages = append(m.messages, append([]llm.Message(nil), messages...))
	m.mu.Unlock()

	current := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&m.maxInFlight)
		if current <= peak || atomic.CompareAndSwapInt32(&m.maxInFlight, peak, current) {
			break
		}
	}

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if resp, ok := m.Responses[text]; ok {
		return resp, nil
	}

	// Default mock translation
	return fmt.Sprintf("translated: %s", text), nil
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable returns AvailableErr
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// Calls returns the user texts received so far, in call order
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Messages returns the full message lists received so far
func (m *MockProvider) Messages() [][]llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]llm.Message(nil), m.messages...)
}

// MaxInFlight returns the highest number of concurrent calls observed
func (m *MockProvider) MaxInFlight() int {
	return int(atomic.LoadInt32(&m.maxInFlight))
}

func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// SystemPrompt returns the system message content of a recorded call
func SystemPrompt(messages []llm.Message) string {
	var parts []string
	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n")
}
