package personality

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"accountabot/internal/history"
	"accountabot/internal/llm"
)

type fakeLLM struct {
	reply string
	usage llm.Response // optional model/token metadata echoed back
	err   error
	seen  [][]llm.Message
}

func (f *fakeLLM) Generate(_ context.Context, msgs []llm.Message) (llm.Response, error) {
	f.seen = append(f.seen, msgs)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	resp := f.usage
	resp.Content = f.reply
	return resp, nil
}

func TestGenerateKeepsHistory(t *testing.T) {
	client := &fakeLLM{reply: "sure thing bestie"}
	hist := history.NewManager()
	e := NewEngine(client, hist, "")

	out := e.Generate(context.Background(), "how's my day looking")
	if out != "sure thing bestie" {
		t.Fatalf("unexpected reply %q", out)
	}

	msgs := hist.Get()
	if len(msgs) != 2 || msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Fatalf("history not updated: %+v", msgs)
	}

	// Second call must carry the prior exchange as context.
	e.Generate(context.Background(), "and tomorrow?")
	last := client.seen[len(client.seen)-1]
	if len(last) != 4 { // system + 2 history + new prompt
		t.Fatalf("expected 4 context messages, got %d", len(last))
	}
	if last[0].Role != "system" {
		t.Fatalf("system prompt missing: %+v", last[0])
	}
}

func TestGenerateLogsTokenUsage(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	client := &fakeLLM{
		reply: "ok",
		usage: llm.Response{Model: "gemini-1.5-flash", PromptTokens: 12, CompletionTokens: 7, TotalTokens: 19},
	}
	e := NewEngine(client, history.NewManager(), "")

	e.Generate(context.Background(), "hello")
	if !strings.Contains(buf.String(), "model=gemini-1.5-flash, tokens: prompt=12, completion=7, total=19") {
		t.Fatalf("token usage not logged: %q", buf.String())
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	client := &fakeLLM{err: errors.New("api down")}
	e := NewEngine(client, history.NewManager(), "")

	out := e.Generate(context.Background(), "hello")
	found := false
	for _, f := range fallbacks {
		if out == f {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected canned fallback, got %q", out)
	}
}

func TestLearnStylePersistsAcrossEngines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	client := &fakeLLM{reply: "short lowercase texts, lots of emoji"}
	e := NewEngine(client, history.NewManager(), path)

	if e.HasStyle() {
		t.Fatalf("fresh engine should have no style")
	}
	if err := e.LearnStyle(context.Background(), []string{"yo", "wyd", "lol ok"}); err != nil {
		t.Fatalf("learn failed: %v", err)
	}
	if !e.HasStyle() {
		t.Fatalf("style not set after learning")
	}
	if !strings.Contains(e.fullSystemPrompt(), "lots of emoji") {
		t.Fatalf("style not appended to system prompt")
	}

	e2 := NewEngine(client, history.NewManager(), path)
	if !e2.HasStyle() {
		t.Fatalf("style did not survive restart")
	}
}

func TestResetContext(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	hist := history.NewManager()
	e := NewEngine(client, hist, "")

	e.Generate(context.Background(), "remember this")
	e.ResetContext()
	if len(hist.Get()) != 0 {
		t.Fatalf("history survived reset")
	}
}
