package assistant

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"accountabot/internal/budget"
	"accountabot/internal/gmail"
	"accountabot/internal/personality"
	"accountabot/internal/reminder"
	"accountabot/internal/social"
	"accountabot/internal/spending"
)

func (s *Service) handleSpendingQuery(ctx context.Context, body string) string {
	period := spending.PeriodFromQuery(body)
	summary, err := spending.GetSummary(ctx, s.deps.Finance, period)
	if err != nil {
		log.Printf("⚠️ Spending query failed: %v", err)
		return "Couldn't fetch your spending data. Check if Plaid is set up correctly."
	}
	// Trends are best effort; the summary stands on its own.
	trends, err := spending.AnalyzeTrends(ctx, s.deps.Finance)
	if err != nil {
		trends = nil
	}
	return spending.FormatSummary(summary, trends)
}

func (s *Service) handleBalanceQuery(ctx context.Context) string {
	accounts, err := s.deps.Finance.AccountBalances(ctx)
	if err != nil {
		log.Printf("⚠️ Balance query failed: %v", err)
		return "Couldn't get your balances. Check your Plaid setup."
	}
	if len(accounts) == 0 {
		return "No accounts linked. Make sure Plaid is configured!"
	}
	var b strings.Builder
	b.WriteString("💳 Account Balances:\n\n")
	for _, a := range accounts {
		fmt.Fprintf(&b, "%s: $%.2f\n", a.Name, a.CurrentBalance)
	}
	return b.String()
}

const logUsageUsage = "Usage: log [platform] [minutes]\nExample: log instagram 45"

func (s *Service) handleLogUsage(body string) string {
	platform, minutes, ok := parseLogUsage(body)
	if !ok {
		return logUsageUsage
	}
	total, err := s.deps.Social.LogUsage(platform, minutes)
	if err != nil {
		return fmt.Sprintf("Unknown platform %q. I track: %s.", platform, strings.Join(social.Platforms(), ", "))
	}
	return fmt.Sprintf("✅ Logged %d min on %s. Total today: %.1fh", minutes, strings.ToLower(platform), total)
}

// parseLogUsage splits "log instagram 45" into platform and minutes.
func parseLogUsage(body string) (platform string, minutes int, ok bool) {
	fields := strings.Fields(body)
	if len(fields) < 3 {
		return "", 0, false
	}
	minutes, err := strconv.Atoi(fields[2])
	if err != nil || minutes < 0 {
		return "", 0, false
	}
	return fields[1], minutes, true
}

var setBudgetRe = regexp.MustCompile(`(?i)set\s+budget\s+(\w+)\s+\$?(\d+(?:\.\d+)?)`)

const setBudgetUsage = "Usage: set budget [daily|weekly|monthly|category] [amount]\nExample: set budget daily 50"

// parseSetBudget extracts the period (or category) and amount from a
// "set budget ..." command.
func parseSetBudget(body string) (period string, amount float64, ok bool) {
	m := setBudgetRe.FindStringSubmatch(body)
	if m == nil {
		return "", 0, false
	}
	amount, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return strings.ToLower(m[1]), amount, true
}

func (s *Service) handleBudgetSet(body string) string {
	period, amount, ok := parseSetBudget(body)
	if !ok {
		return setBudgetUsage
	}
	s.deps.Budgets.Set(period, amount)
	return fmt.Sprintf("💵 Got it! %s budget set to $%.2f.", titled(period), amount)
}

func (s *Service) handleBudgetCheck(ctx context.Context, body string) string {
	period := "daily"
	q := strings.ToLower(body)
	switch {
	case strings.Contains(q, "week"):
		period = "weekly"
	case strings.Contains(q, "month"):
		period = "monthly"
	}

	st, err := s.deps.Budgets.Check(ctx, period)
	if err != nil {
		log.Printf("⚠️ Budget check failed: %v", err)
		return "Couldn't check your budget right now. Is Plaid set up?"
	}
	if st.State == budget.StateNoBudget {
		return fmt.Sprintf(`No %s budget set. Use "set budget %s [amount]" to create one.`, period, period)
	}
	return fmt.Sprintf("%s %s budget: $%.2f / $%.2f (%.1f%% used, $%.2f left)",
		stateEmoji(st.State), titled(period), st.Spent, st.Budget, st.PercentUsed, st.Remaining)
}

func (s *Service) handleBudgetSummary(ctx context.Context) string {
	summary, err := s.deps.Budgets.Summary(ctx)
	if err != nil {
		log.Printf("⚠️ Budget summary failed: %v", err)
		return "Couldn't build your budget summary. Check your Plaid setup."
	}
	return summary
}

// Reminder creation grammar. The interval form is a superset of the
// at-time forms, so it must be matched first.
var (
	intervalReminderRe = regexp.MustCompile(`(?i)remind me to (.+?)\s+every\s+(\d+)\s+hours?\s+from\s+(\d{1,2}:\d{2})\s+to\s+(\d{1,2}:\d{2})`)
	weeklyReminderRe   = regexp.MustCompile(`(?i)remind me to (.+?)\s+at\s+(\d{1,2}:\d{2})\s+(?:every|on)\s+(\w+)`)
	dailyReminderRe    = regexp.MustCompile(`(?i)remind me to (.+?)\s+at\s+(\d{1,2}:\d{2})\s+daily\s*$`)
	onceReminderRe     = regexp.MustCompile(`(?i)remind me to (.+?)\s+at\s+(\d{1,2}:\d{2})\s*$`)
)

const reminderUsage = `I couldn't parse that reminder. Try:
- "remind me to [task] at 15:30"
- "remind me to [task] at 09:00 daily"
- "remind me to [task] at 18:00 every friday"
- "remind me to [task] every 2 hours from 09:00 to 17:00"`

// parseReminder turns a natural-language reminder request into a
// message and recurrence rule.
func parseReminder(body string) (message string, rule reminder.Rule, err error) {
	if m := intervalReminderRe.FindStringSubmatch(body); m != nil {
		every, _ := strconv.Atoi(m[2])
		rule, err = reminder.IntervalBetween(m[3], m[4], every)
		return m[1], rule, err
	}
	if m := weeklyReminderRe.FindStringSubmatch(body); m != nil {
		if strings.EqualFold(m[3], "day") {
			rule, err = reminder.DailyAt(m[2])
			return m[1], rule, err
		}
		rule, err = reminder.WeeklyAt(m[3], m[2])
		return m[1], rule, err
	}
	if m := dailyReminderRe.FindStringSubmatch(body); m != nil {
		rule, err = reminder.DailyAt(m[2])
		return m[1], rule, err
	}
	if m := onceReminderRe.FindStringSubmatch(body); m != nil {
		rule, err = reminder.OnceAt(m[2])
		return m[1], rule, err
	}
	return "", reminder.Rule{}, reminder.ErrInvalidSchedule
}

func (s *Service) handleReminderCreate(body string) string {
	message, rule, err := parseReminder(body)
	if err != nil {
		return reminderUsage
	}
	r, err := s.deps.Reminders.Create(message, rule)
	if err != nil {
		return reminderUsage
	}
	return fmt.Sprintf("✅ Reminder #%d set: %s %s", r.ID, r.Message, r.Rule.Describe())
}

func (s *Service) handleReminderList() string {
	var active []reminder.Reminder
	for _, r := range s.deps.Reminders.List() {
		if r.Active {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return `No reminders set. Use "remind me to [task] at [time]" to create one.`
	}
	var b strings.Builder
	b.WriteString("⏰ Your Reminders:\n\n")
	for _, r := range active {
		fmt.Fprintf(&b, "#%d: %s\n   ⏱️ %s\n\n", r.ID, r.Message, r.Rule.Describe())
	}
	b.WriteString(`Use "delete reminder [id]" to remove one.`)
	return b.String()
}

var reminderIDRe = regexp.MustCompile(`(\d+)`)

func (s *Service) handleReminderDelete(body string) string {
	m := reminderIDRe.FindStringSubmatch(body)
	if m == nil {
		return "Usage: delete reminder [id]"
	}
	id, _ := strconv.Atoi(m[1])
	if !s.deps.Reminders.Delete(id) {
		return fmt.Sprintf("No reminder #%d found.", id)
	}
	return fmt.Sprintf("🗑️ Reminder #%d deleted.", id)
}

var activityDurationRe = regexp.MustCompile(`(?i)for\s+(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)

// parseActivityDuration extracts a "for N hours/minutes" clause,
// returning the duration in minutes and the text with the clause
// removed.
func parseActivityDuration(body string) (minutes int, rest string) {
	m := activityDurationRe.FindStringSubmatch(body)
	if m == nil {
		return 0, body
	}
	value, _ := strconv.ParseFloat(m[1], 64)
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		minutes = int(value * 60)
	} else {
		minutes = int(value)
	}
	rest = strings.TrimSpace(strings.Replace(body, m[0], "", 1))
	return minutes, rest
}

func activityCategory(body string) string {
	q := strings.ToLower(body)
	switch {
	case strings.Contains(q, "meeting"):
		return "Meeting"
	case strings.Contains(q, "worked on") || strings.Contains(q, "working on") || strings.Contains(q, "finished"):
		return "Work"
	default:
		return "Personal"
	}
}

func (s *Service) handleActivityLog(body string) string {
	minutes, description := parseActivityDuration(body)
	a, err := s.deps.Activities.Add(description, minutes, activityCategory(body))
	if err != nil {
		log.Printf("❌ Failed to log activity: %v", err)
		return "Couldn't save that activity. Try again?"
	}
	if a.Duration > 0 {
		return fmt.Sprintf("✅ Noted: %s (%dm tracked)", a.Description, a.Duration)
	}
	return fmt.Sprintf("✅ Noted: %s", a.Description)
}

func (s *Service) handleDailySummary(ctx context.Context) string {
	activitySummary := s.deps.Activities.DailySummary()
	spendingSummary := spending.Analyze(ctx, s.deps.Finance)
	return s.deps.Engine.Generate(ctx, personality.DailySummaryPrompt(activitySummary, spendingSummary))
}

func (s *Service) handleEmailCheck(ctx context.Context) string {
	if s.deps.Email == nil {
		return "Gmail isn't set up yet. Drop your credentials in and run the auth helper."
	}
	emails, err := s.deps.Email.ImportantMessages(ctx)
	if err != nil {
		log.Printf("⚠️ Email check failed: %v", err)
		return "Couldn't check your email right now."
	}
	if len(emails) == 0 {
		return "📧 Nothing important in your inbox. You're all caught up!"
	}
	return gmail.FormatAlert(emails)
}

func (s *Service) handleStyleLearn(ctx context.Context) string {
	samples := s.recentUserMessages()
	if len(samples) < minStyleSamples {
		return fmt.Sprintf("I need at least %d messages from you to learn your style. Keep texting!", minStyleSamples)
	}
	if err := s.deps.Engine.LearnStyle(ctx, samples); err != nil {
		log.Printf("❌ Style learning failed: %v", err)
		return "Error analyzing your texting style. Try again?"
	}
	return "Got it! I've analyzed your texting style and I'll match it from now on. 📝"
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func stateEmoji(state string) string {
	switch state {
	case budget.StateOver:
		return "🔴"
	case budget.StateWarning:
		return "🟡"
	default:
		return "🟢"
	}
}
