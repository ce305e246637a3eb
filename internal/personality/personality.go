package personality

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"accountabot/internal/budget"
	"accountabot/internal/finance"
	"accountabot/internal/history"
	"accountabot/internal/llm"
)

// systemPrompt defines the assistant's voice: a sassy accountability
// partner, not a polite corporate helper.
const systemPrompt = `You are a sassy, no-nonsense personal assistant with a sharp tongue and a big heart. Think of yourself as a tough-love best friend who won't let your user settle for mediocrity.

Your personality traits:
- VERY sassy and witty - you roast them when they mess up, but it's always because you care
- Brutally honest but never cruel - you'll call out BS immediately
- Passionate and fired up about helping them succeed
- Hype them up BIG TIME when they do well - you're their biggest cheerleader
- Use casual, texting-style language with slang, abbreviations, and occasional mild language
- Love using emojis to emphasize your mood (😤 when annoyed, 🔥 when they're killing it, 💀 when they're being ridiculous)
- Get dramatic and emotionally invested - you take this PERSONALLY

Your communication style:
- Keep it SHORT - 1-3 sentences max, like a real text conversation
- Be conversational and natural - no corporate speak
- Use "bro", "bestie", "dude" or similar casual terms
- Use humor, sarcasm, and wit liberally

Your job is to:
- Monitor their spending and ROAST unnecessary purchases
- Track social media usage and drag them for wasting time
- Keep them productive and accountable (you're not playing games)
- Celebrate their wins like their life depends on it

Remember: You care deeply, so your sass comes from a place of love.`

var fallbacks = []string{
	"Yo, my brain's lagging rn. Can you repeat that?",
	"Hold up, I'm having a moment. Try again?",
	"Ugh, technical difficulties. What were you saying?",
}

// Style is the learned texting style, persisted so it survives
// restarts.
type Style struct {
	LearnedAt    time.Time `json:"learned_at"`
	SampleSize   int       `json:"sample_size"`
	Instructions string    `json:"style_instructions"`
}

// Engine generates all user-facing LLM text: chat replies, alerts and
// scheduled pings, with conversation history as context.
type Engine struct {
	llm       llm.Client
	history   *history.Manager
	stylePath string

	mu    sync.Mutex
	style *Style
}

func NewEngine(client llm.Client, hist *history.Manager, stylePath string) *Engine {
	e := &Engine{llm: client, history: hist, stylePath: stylePath}
	e.loadStyle()
	return e
}

// Generate produces a reply to the prompt with history as context. On
// LLM failure a canned fallback line is returned; callers never see an
// error.
func (e *Engine) Generate(ctx context.Context, prompt string) string {
	msgs := []llm.Message{{Role: "system", Content: e.fullSystemPrompt()}}
	msgs = append(msgs, e.history.Get()...)
	msgs = append(msgs, llm.Message{Role: "user", Content: prompt})

	resp, err := e.llm.Generate(ctx, msgs)
	if err != nil {
		log.Printf("❌ Failed to generate response: %v", err)
		return fallbacks[rand.Intn(len(fallbacks))]
	}
	log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	e.history.AppendUser(prompt)
	e.history.AppendAssistant(resp.Content)
	return resp.Content
}

// ResetContext clears the conversation history.
func (e *Engine) ResetContext() {
	e.history.Reset()
	log.Printf("💭 Conversation context reset")
}

// LearnStyle analyzes the user's recent messages and persists
// instructions for mimicking their texting style.
func (e *Engine) LearnStyle(ctx context.Context, samples []string) error {
	if len(samples) > 50 {
		samples = samples[len(samples)-50:]
	}
	prompt := fmt.Sprintf(`Analyze this user's texting style and create detailed instructions for mimicking it:

%s

Based on these messages, describe their texting style in detail:
- Sentence structure and length
- Use of punctuation
- Capitalization patterns
- Common phrases and expressions
- Emoji usage patterns
- Slang or abbreviations
- Overall tone and personality

Provide clear instructions on how to match this style exactly.`, strings.Join(samples, "\n"))

	resp, err := e.llm.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return fmt.Errorf("style analysis: %w", err)
	}

	style := &Style{
		LearnedAt:    time.Now(),
		SampleSize:   len(samples),
		Instructions: resp.Content,
	}
	e.mu.Lock()
	e.style = style
	e.mu.Unlock()
	e.saveStyle(style)
	return nil
}

// HasStyle reports whether a learned style is loaded.
func (e *Engine) HasStyle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style != nil
}

func (e *Engine) fullSystemPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.style == nil {
		return systemPrompt
	}
	return systemPrompt + "\n\n" + e.style.Instructions
}

func (e *Engine) loadStyle() {
	if e.stylePath == "" {
		return
	}
	data, err := os.ReadFile(e.stylePath)
	if err != nil {
		return
	}
	var style Style
	if err := json.Unmarshal(data, &style); err != nil {
		log.Printf("⚠️ Failed to parse learned style: %v", err)
		return
	}
	e.style = &style
	log.Printf("✅ Loaded learned texting style")
}

func (e *Engine) saveStyle(style *Style) {
	if e.stylePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(e.stylePath), 0o755); err != nil {
		log.Printf("❌ Failed to ensure style dir: %v", err)
		return
	}
	data, err := json.MarshalIndent(style, "", "  ")
	if err != nil {
		log.Printf("❌ Failed to encode style: %v", err)
		return
	}
	if err := os.WriteFile(e.stylePath, data, 0o644); err != nil {
		log.Printf("❌ Failed to save style: %v", err)
		return
	}
	log.Printf("✅ Saved learned texting style")
}

// SpendingAlert produces a roast for an unnecessary purchase.
func (e *Engine) SpendingAlert(ctx context.Context, t finance.Transaction) string {
	prompt := fmt.Sprintf(`The user just spent $%.2f on %s at %s.

This seems unnecessary/frivolous. Roast them a bit, but also be constructive. Remind them of their goals.`,
		t.Amount, t.Category, t.Merchant)
	return e.Generate(ctx, prompt)
}

// SocialMediaAlert calls the user out for blowing their screen-time
// limit.
func (e *Engine) SocialMediaAlert(ctx context.Context, platform string, hours, limit float64) string {
	prompt := fmt.Sprintf(`The user has spent %.1f hours on %s today. Their limit is %.1f hours.

Call them out for wasting time. Be sassy but motivational. Remind them what they could be doing instead.`,
		hours, platform, limit)
	return e.Generate(ctx, prompt)
}

// BudgetAlert produces the over-budget or near-limit warning text.
func (e *Engine) BudgetAlert(ctx context.Context, st budget.Status) string {
	var prompt string
	switch st.State {
	case budget.StateOver:
		if st.Category != "" {
			prompt = fmt.Sprintf(`The user has spent $%.2f on %s this month, which is over their $%.2f budget for that category. Call them out on it.`,
				st.Spent, st.Category, st.Budget)
		} else {
			prompt = fmt.Sprintf(`The user has spent $%.2f today, which is over their $%.2f %s budget. Roast them for going over budget.`,
				st.Spent, st.Budget, st.Period)
		}
	default:
		prompt = fmt.Sprintf(`The user has spent $%.2f today (%.1f%% of their $%.2f %s budget). Warn them they're getting close to their limit.`,
			st.Spent, st.PercentUsed, st.Budget, st.Period)
	}
	return e.Generate(ctx, prompt)
}

// Daily check-in prompts fired by the monitoring schedule.
const (
	MorningPrompt  = "Send a short, sassy morning motivation message to start the day strong. Keep it under 2 sentences."
	MiddayPrompt   = "Send a quick midday check-in. Ask how their morning went and remind them to stay focused. Keep it brief and sassy."
	WindDownPrompt = "Remind them to start winding down, prep for tomorrow, and get good sleep. Be supportive but firm about self-care."
)

// DailySummaryPrompt builds the LLM input for the evening summary.
func DailySummaryPrompt(activitySummary, spendingSummary string) string {
	return fmt.Sprintf(`Generate a sassy, passionate daily summary based on this data:

Activity Today: %s
Spending: %s

Be honest and direct. Call out any lazy or wasteful behavior. If they did well, show pride. Keep it real and conversational.`,
		activitySummary, spendingSummary)
}
