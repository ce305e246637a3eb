package budget

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"accountabot/internal/finance"
)

// Budget states reported by Check.
const (
	StateNoBudget = "no_budget_set"
	StateGood     = "good"
	StateWarning  = "warning" // at or above 80% of budget
	StateOver     = "over_budget"
)

var periodDays = map[string]int{
	"daily":   1,
	"weekly":  7,
	"monthly": 30,
}

// Status is the result of checking one period or category budget.
type Status struct {
	Period      string
	Category    string
	Budget      float64
	Spent       float64
	Remaining   float64
	PercentUsed float64
	State       string
}

// Manager holds the budget settings. State is in-memory only: budgets
// reset on restart.
type Manager struct {
	mu         sync.Mutex
	periods    map[string]float64
	categories map[string]float64
	svc        finance.Service
}

func NewManager(svc finance.Service) *Manager {
	return &Manager{
		periods:    make(map[string]float64),
		categories: make(map[string]float64),
		svc:        svc,
	}
}

// Set stores a budget amount for a period (daily/weekly/monthly) or,
// for any other name, a category budget.
func (m *Manager) Set(period string, amount float64) {
	period = strings.ToLower(strings.TrimSpace(period))
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := periodDays[period]; ok {
		m.periods[period] = amount
		return
	}
	m.categories[period] = amount
}

// Check compares spending against the period budget.
func (m *Manager) Check(ctx context.Context, period string) (Status, error) {
	days, ok := periodDays[period]
	if !ok {
		days = 1
		period = "daily"
	}

	m.mu.Lock()
	budget, set := m.periods[period]
	m.mu.Unlock()
	if !set {
		return Status{Period: period, State: StateNoBudget}, nil
	}

	txns, err := m.svc.RecentTransactions(ctx, days)
	if err != nil {
		return Status{}, err
	}
	_, spent := finance.Categorize(txns)

	percent := spent / budget * 100
	return Status{
		Period:      period,
		Budget:      budget,
		Spent:       spent,
		Remaining:   budget - spent,
		PercentUsed: percent,
		State:       stateFor(percent),
	}, nil
}

// CheckCategories compares the last 30 days of spending against each
// category budget. Category names match transaction categories by
// case-insensitive substring.
func (m *Manager) CheckCategories(ctx context.Context) ([]Status, error) {
	m.mu.Lock()
	if len(m.categories) == 0 {
		m.mu.Unlock()
		return nil, nil
	}
	names := make([]string, 0, len(m.categories))
	for name := range m.categories {
		names = append(names, name)
	}
	budgets := make(map[string]float64, len(m.categories))
	for name, amount := range m.categories {
		budgets[name] = amount
	}
	m.mu.Unlock()
	sort.Strings(names)

	txns, err := m.svc.RecentTransactions(ctx, 30)
	if err != nil {
		return nil, err
	}
	categories, _ := finance.Categorize(txns)

	var out []Status
	for _, name := range names {
		amount := budgets[name]
		var spent float64
		for txnCategory, data := range categories {
			if strings.Contains(strings.ToLower(txnCategory), name) {
				spent = data.Total
				break
			}
		}
		percent := spent / amount * 100
		out = append(out, Status{
			Category:    name,
			Budget:      amount,
			Spent:       spent,
			Remaining:   amount - spent,
			PercentUsed: percent,
			State:       stateFor(percent),
		})
	}
	return out, nil
}

// HasPeriod reports whether a budget is set for the period.
func (m *Manager) HasPeriod(period string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.periods[period]
	return ok
}

// Summary renders the status of every configured budget.
func (m *Manager) Summary(ctx context.Context) (string, error) {
	m.mu.Lock()
	empty := len(m.periods) == 0 && len(m.categories) == 0
	m.mu.Unlock()
	if empty {
		return `No budgets set yet. Use "set budget [period] [amount]" to create one.`, nil
	}

	var b strings.Builder
	b.WriteString("💰 Budget Summary:\n\n")
	for _, period := range []string{"daily", "weekly", "monthly"} {
		if !m.HasPeriod(period) {
			continue
		}
		st, err := m.Check(ctx, period)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s %s: $%.2f / $%.2f (%.1f%%)\n",
			stateEmoji(st.State), titled(period), st.Spent, st.Budget, st.PercentUsed)
	}

	catStatuses, err := m.CheckCategories(ctx)
	if err != nil {
		return "", err
	}
	if len(catStatuses) > 0 {
		b.WriteString("\nCategory Budgets:\n")
		for _, st := range catStatuses {
			fmt.Fprintf(&b, "%s %s: $%.2f / $%.2f\n", stateEmoji(st.State), st.Category, st.Spent, st.Budget)
		}
	}
	return b.String(), nil
}

func stateFor(percentUsed float64) string {
	switch {
	case percentUsed >= 100:
		return StateOver
	case percentUsed >= 80:
		return StateWarning
	default:
		return StateGood
	}
}

func stateEmoji(state string) string {
	switch state {
	case StateOver:
		return "🔴"
	case StateWarning:
		return "🟡"
	default:
		return "🟢"
	}
}

func titled(period string) string {
	switch period {
	case "daily":
		return "Daily"
	case "weekly":
		return "Weekly"
	case "monthly":
		return "Monthly"
	}
	return period
}
