package chat

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ErrorReply is shown to the user in place of a reply that failed
const ErrorReply = "Sorry, something went wrong. Please try again."

// Message is one entry of a conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Localizer produces a localized reply for a message
type Localizer interface {
	Localize(ctx context.Context, message, targetLanguage string) (string, error)
}

// Exchange sends a single message to the localizer and returns the
// user message followed by the assistant reply. Earlier turns are never
// sent upstream.
func Exchange(ctx context.Context, localizer Localizer, message, targetLanguage string) ([]Message, error) {
	reply, err := localizer.Localize(ctx, message, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	return []Message{
		{Role: RoleUser, Content: message},
		{Role: RoleAssistant, Content: reply},
	}, nil
}

// Log is an append-only transcript of a chat session
type Log struct {
	mu       sync.Mutex
	messages []Message
	started  time.Time
}

// NewLog creates an empty session log
func NewLog() *Log {
	return &Log{started: time.Now()}
}

// Append adds messages to the end of the log
func (l *Log) Append(messages ...Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, messages...)
}

// Messages returns a copy of the transcript
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Message(nil), l.messages...)
}

// Len returns the number of logged messages
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Started returns when the session began
func (l *Log) Started() time.Time {
	return l.started
}
