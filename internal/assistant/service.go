package assistant

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"accountabot/internal/activity"
	"accountabot/internal/budget"
	"accountabot/internal/finance"
	"accountabot/internal/gmail"
	"accountabot/internal/loopguard"
	"accountabot/internal/notify"
	"accountabot/internal/personality"
	"accountabot/internal/reminder"
	"accountabot/internal/router"
	"accountabot/internal/social"
	"accountabot/internal/spending"
)

// styleSampleCapacity bounds the raw user messages kept for style
// analysis.
const styleSampleCapacity = 100

// minStyleSamples is how many messages the style learner needs.
const minStyleSamples = 10

const technicalIssuesReply = "Ugh, I'm having technical issues. Give me a sec..."

// Message is one inbound transport event, already reduced to the fields
// the assistant cares about.
type Message struct {
	ID     string
	Chat   string
	Sender string
	Body   string
	FromMe bool
}

// EmailChecker is the narrow email collaborator interface.
type EmailChecker interface {
	ImportantMessages(ctx context.Context) ([]gmail.Email, error)
}

// Deps wires the assistant's collaborators and owned state. All state
// objects are constructed at startup and passed in explicitly; there
// are no package-level registries.
type Deps struct {
	Dispatcher   *notify.Dispatcher
	Guard        *loopguard.Guard
	Engine       *personality.Engine
	Finance      finance.Service
	Email        EmailChecker // nil when Gmail is not configured
	Reminders    *reminder.Store
	Budgets      *budget.Manager
	Social       *social.Tracker
	Activities   *activity.Log
	SpendMonitor *spending.Monitor
}

// Service is the top-level message-processing boundary: loop guard →
// router → handler → dispatcher. No handler failure may terminate the
// process; anything unexpected becomes an apologetic reply.
type Service struct {
	deps  Deps
	sched *cron.Cron

	mu           sync.Mutex
	userMessages []string
}

func New(deps Deps) *Service {
	return &Service{
		deps:  deps,
		sched: cron.New(),
	}
}

// HandleMessage processes one inbound event end to end.
func (s *Service) HandleMessage(ctx context.Context, m Message) {
	if !s.deps.Guard.ShouldProcess(m.Chat, m.ID, m.Body, m.FromMe) {
		return
	}
	body := strings.TrimSpace(m.Body)
	if body == "" {
		return
	}
	log.Printf("📨 Received: %q", body)

	s.rememberUserMessage(body)

	reply := s.process(ctx, body)
	if reply == "" {
		return
	}
	if err := s.deps.Dispatcher.Send(ctx, reply); err == nil {
		log.Printf("✅ Sent reply (%d chars)", len(reply))
	}
}

// process classifies and handles a single command. Panics are converted
// to a generic apologetic reply so the transport loop stays alive.
func (s *Service) process(ctx context.Context, body string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Handler panicked for %q: %v", body, r)
			reply = technicalIssuesReply
		}
	}()

	switch router.Route(body) {
	case router.IntentHelp:
		return helpMessage
	case router.IntentSpendingQuery:
		return s.handleSpendingQuery(ctx, body)
	case router.IntentBalanceQuery:
		return s.handleBalanceQuery(ctx)
	case router.IntentSocialMediaQuery:
		return "📱 " + s.deps.Social.Summary()
	case router.IntentUsageLog:
		return s.handleLogUsage(body)
	case router.IntentBudgetSet:
		return s.handleBudgetSet(body)
	case router.IntentBudgetCheck:
		return s.handleBudgetCheck(ctx, body)
	case router.IntentBudgetSummary:
		return s.handleBudgetSummary(ctx)
	case router.IntentReminderCreate:
		return s.handleReminderCreate(body)
	case router.IntentReminderList:
		return s.handleReminderList()
	case router.IntentReminderDelete:
		return s.handleReminderDelete(body)
	case router.IntentActivityLog:
		return s.handleActivityLog(body)
	case router.IntentSummaryDaily:
		return s.handleDailySummary(ctx)
	case router.IntentSummaryWeekly:
		return s.deps.Activities.WeeklySummary()
	case router.IntentEmailCheck:
		return s.handleEmailCheck(ctx)
	case router.IntentStyleLearn:
		return s.handleStyleLearn(ctx)
	case router.IntentContextReset:
		s.deps.Engine.ResetContext()
		return "Alright, clean slate. What's up?"
	default:
		return s.deps.Engine.Generate(ctx, body)
	}
}

func (s *Service) rememberUserMessage(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userMessages = append(s.userMessages, body)
	if len(s.userMessages) > styleSampleCapacity {
		s.userMessages = s.userMessages[1:]
	}
}

func (s *Service) recentUserMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.userMessages))
	copy(out, s.userMessages)
	return out
}

const helpMessage = `Hey! Here's what I can do:

💰 Finance:
- "spending" - See spending summary
- "balance" - Check account balances
- "set budget daily 50" - Set a budget
- "budget" - Budget summary

⏰ Reminders:
- "remind me to [task] at [time]" - One-shot reminder
- "remind me to [task] at [time] daily" - Recurring
- "remind me to [task] every 2 hours from 09:00 to 17:00"
- "reminders" - List them, "delete reminder [id]" - Remove one

📱 Social Media:
- "social media" - Usage summary
- "log [platform] [minutes]" - Log usage
  Example: "log instagram 45"

📋 Tracking:
- "worked on [thing] for 2 hours" - Log an activity
- "summary" / "weekly summary" - Activity recaps
- "check email" - Important unread mail

🤖 Bot Commands:
- "learn my style" - Analyze your texting
- "reset" - Clear conversation history
- "help" - This message

Just chat with me normally and I'll keep you accountable!`
