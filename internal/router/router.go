package router

import "strings"

// Intent is the classified category of a single inbound command.
type Intent string

const (
	IntentHelp             Intent = "help"
	IntentSpendingQuery    Intent = "spending-query"
	IntentBalanceQuery     Intent = "balance-query"
	IntentSocialMediaQuery Intent = "social-media-query"
	IntentUsageLog         Intent = "usage-log"
	IntentBudgetSet        Intent = "budget-set"
	IntentBudgetCheck      Intent = "budget-check"
	IntentBudgetSummary    Intent = "budget-summary"
	IntentReminderCreate   Intent = "reminder-create"
	IntentReminderList     Intent = "reminder-list"
	IntentReminderDelete   Intent = "reminder-delete"
	IntentActivityLog      Intent = "activity-log"
	IntentSummaryDaily     Intent = "summary-daily"
	IntentSummaryWeekly    Intent = "summary-weekly"
	IntentEmailCheck       Intent = "email-check"
	IntentStyleLearn       Intent = "style-learn"
	IntentContextReset     Intent = "context-reset"
	IntentFreeformChat     Intent = "freeform-chat"
)

// rule pairs a predicate with the intent (or sub-classifier) it selects.
// Rules are evaluated strictly in order; the first match wins, so more
// specific commands must come before generic keyword overlaps (a message
// containing both "budget" and "remind" is a budget command).
type rule struct {
	match  func(s string) bool
	intent func(s string) Intent
}

func static(i Intent) func(string) Intent {
	return func(string) Intent { return i }
}

func anyOf(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func exactly(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if s == w {
				return true
			}
		}
		return false
	}
}

var rules = []rule{
	{exactly("help", "/help"), static(IntentHelp)},
	{anyOf("spending", "spent"), static(IntentSpendingQuery)},
	{anyOf("balance", "money"), static(IntentBalanceQuery)},
	{anyOf("social media", "screen time"), static(IntentSocialMediaQuery)},
	{anyOf("worked on", "meeting with", "did "), static(IntentActivityLog)},
	{func(s string) bool { return strings.Contains(s, "daily summary") || s == "summary" }, static(IntentSummaryDaily)},
	{func(s string) bool { return strings.Contains(s, "weekly summary") || s == "week summary" }, static(IntentSummaryWeekly)},
	{anyOf("check email", "important email"), static(IntentEmailCheck)},
	{anyOf("budget"), classifyBudget},
	{anyOf("remind"), classifyReminder},
	{func(s string) bool { return strings.HasPrefix(s, "log ") }, static(IntentUsageLog)},
	{exactly("reset", "forget"), static(IntentContextReset)},
	{exactly("learn my style", "analyze style"), static(IntentStyleLearn)},
}

// Route classifies a message into exactly one intent. It is a pure
// function: no side effects, deterministic, first-match-wins over the
// ordered rule list above. Unmatched input falls through to freeform
// chat; there is no "unknown command" state.
func Route(text string) Intent {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if r.match(s) {
			return r.intent(s)
		}
	}
	return IntentFreeformChat
}

// classifyBudget applies the second-level ordered sub-match for budget
// commands: the "set budget" prefix must be tried before the generic
// keyword checks.
func classifyBudget(s string) Intent {
	switch {
	case strings.HasPrefix(s, "set budget"):
		return IntentBudgetSet
	case strings.Contains(s, "budget summary") || s == "budget" || s == "budgets":
		return IntentBudgetSummary
	default:
		return IntentBudgetCheck
	}
}

// classifyReminder sub-matches reminder commands. Delete and list forms
// are tried before create, since creation is the catch-all.
func classifyReminder(s string) Intent {
	switch {
	case strings.Contains(s, "delete reminder") || strings.Contains(s, "remove reminder"):
		return IntentReminderDelete
	case s == "reminders" || strings.Contains(s, "list reminder") || strings.Contains(s, "show reminder") || strings.Contains(s, "my reminders"):
		return IntentReminderList
	default:
		return IntentReminderCreate
	}
}
