package history

import (
	"fmt"
	"testing"
)

func TestHistoryAppendGetReset(t *testing.T) {
	h := NewManager()

	h.AppendUser("hello")
	h.AppendAssistant("hi")

	msgs := h.Get()
	if len(msgs) != 2 {
		t.Fatalf("unexpected length: %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "hello" {
		t.Fatalf("unexpected [0]: %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != "hi" {
		t.Fatalf("unexpected [1]: %+v", msgs[1])
	}

	// Ensure copy semantics (modifying returned slice does not affect internal state)
	msgs[0].Content = "mutated"
	if h.Get()[0].Content != "hello" {
		t.Fatalf("internal state mutated via returned slice")
	}

	h.Reset()
	if len(h.Get()) != 0 {
		t.Fatalf("reset did not clear history")
	}
}

func TestHistoryKeepsLastTwentyEntries(t *testing.T) {
	h := NewManager()
	for i := 0; i < 30; i++ {
		h.AppendUser(fmt.Sprintf("msg-%d", i))
	}

	msgs := h.Get()
	if len(msgs) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(msgs))
	}
	if msgs[0].Content != "msg-10" {
		t.Fatalf("expected oldest retained entry msg-10, got %q", msgs[0].Content)
	}
	if msgs[19].Content != "msg-29" {
		t.Fatalf("expected newest entry msg-29, got %q", msgs[19].Content)
	}
}
