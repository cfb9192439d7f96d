package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/testutil"
	"codeberg.org/snonux/lingosheet/internal/translation"
)

func TestExchange(t *testing.T) {
	mock := &testutil.MockProvider{
		Responses: map[string]string{"Good morning": "Guten Morgen"},
	}
	translator := translation.NewTranslator(mock, nil, time.Second)

	got, err := Exchange(context.Background(), translator, "Good morning", "de")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	want := []Message{
		{Role: RoleUser, Content: "Good morning"},
		{Role: RoleAssistant, Content: "Guten Morgen"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExchange_NoHistorySent(t *testing.T) {
	mock := &testutil.MockProvider{}
	translator := translation.NewTranslator(mock, nil, time.Second)

	for _, text := range []string{"first", "second"} {
		if _, err := Exchange(context.Background(), translator, text, "fr"); err != nil {
			t.Fatalf("Exchange(%q) error = %v", text, err)
		}
	}

	for i, msgs := range mock.Messages() {
		if len(msgs) != 2 {
			t.Errorf("call %d sent %d messages, want 2", i, len(msgs))
			continue
		}
		if msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
			t.Errorf("call %d roles = %s,%s", i, msgs[0].Role, msgs[1].Role)
		}
	}
}

func TestExchange_Error(t *testing.T) {
	upstream := &llm.UpstreamError{Provider: "mock", StatusCode: 429, Err: errors.New("rate limited")}
	mock := &testutil.MockProvider{
		Errors: map[string]error{"hello": upstream},
	}
	translator := translation.NewTranslator(mock, nil, time.Second)

	msgs, err := Exchange(context.Background(), translator, "hello", "es")
	if err == nil {
		t.Fatal("Expected error")
	}
	if msgs != nil {
		t.Errorf("Expected no messages on error, got %v", msgs)
	}

	var ue *llm.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != 429 {
		t.Errorf("Expected wrapped upstream error with status 429, got %v", err)
	}
}

func TestLog(t *testing.T) {
	log := NewLog()
	if log.Len() != 0 {
		t.Fatalf("new log has %d messages", log.Len())
	}
	if log.Started().IsZero() {
		t.Error("Started() is zero")
	}

	log.Append(Message{Role: RoleUser, Content: "a"}, Message{Role: RoleAssistant, Content: "b"})
	log.Append(Message{Role: RoleUser, Content: "c"})

	msgs := log.Messages()
	if len(msgs) != 3 || msgs[2].Content != "c" {
		t.Fatalf("Messages() = %v", msgs)
	}

	// Mutating the copy must not affect the log
	msgs[0].Content = "changed"
	if log.Messages()[0].Content != "a" {
		t.Error("Messages() returned shared storage")
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(Message{Role: RoleUser, Content: "x"})
		}()
	}
	wg.Wait()

	if log.Len() != 20 {
		t.Errorf("Len() = %d, want 20", log.Len())
	}
}
