package budget

import (
	"context"
	"strings"
	"testing"

	"accountabot/internal/finance"
)

type fakeFinance struct {
	txns []finance.Transaction
}

func (f *fakeFinance) RecentTransactions(context.Context, int) ([]finance.Transaction, error) {
	return f.txns, nil
}

func (f *fakeFinance) AccountBalances(context.Context) ([]finance.Account, error) {
	return nil, nil
}

func spendOf(amount float64) *fakeFinance {
	return &fakeFinance{txns: []finance.Transaction{{ID: "t", Amount: amount, Category: "Food"}}}
}

func TestCheckWithoutBudget(t *testing.T) {
	m := NewManager(spendOf(50))
	st, err := m.Check(context.Background(), "daily")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.State != StateNoBudget {
		t.Fatalf("state = %q, want %q", st.State, StateNoBudget)
	}
}

func TestCheckThresholds(t *testing.T) {
	cases := []struct {
		spent float64
		want  string
	}{
		{50, StateGood},
		{79.99, StateGood},
		{80, StateWarning}, // exactly 80% is already a warning
		{99.99, StateWarning},
		{100, StateOver}, // exactly 100% is over budget
		{140, StateOver},
	}
	for _, c := range cases {
		m := NewManager(spendOf(c.spent))
		m.Set("daily", 100)
		st, err := m.Check(context.Background(), "daily")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.State != c.want {
			t.Fatalf("spent %.2f of 100: state = %q, want %q", c.spent, st.State, c.want)
		}
	}
}

func TestCheckComputesRemaining(t *testing.T) {
	m := NewManager(spendOf(30))
	m.Set("weekly", 120)
	st, err := m.Check(context.Background(), "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Budget != 120 || st.Spent != 30 || st.Remaining != 90 || st.PercentUsed != 25 {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestCategoryBudgetSubstringMatch(t *testing.T) {
	svc := &fakeFinance{txns: []finance.Transaction{
		{ID: "1", Amount: 90, Category: "Food and Drink"},
	}}
	m := NewManager(svc)
	m.Set("food", 100)

	statuses, err := m.CheckCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Spent != 90 || statuses[0].State != StateWarning {
		t.Fatalf("unexpected category status: %+v", statuses[0])
	}
}

func TestSummaryWithoutBudgets(t *testing.T) {
	m := NewManager(&fakeFinance{})
	s, err := m.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s, "No budgets set yet") {
		t.Fatalf("unexpected summary %q", s)
	}
}

func TestSummaryListsConfiguredBudgets(t *testing.T) {
	m := NewManager(spendOf(10))
	m.Set("daily", 100)
	m.Set("coffee", 50)

	s, err := m.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s, "Daily: $10.00 / $100.00") {
		t.Fatalf("daily line missing: %q", s)
	}
	if !strings.Contains(s, "coffee") {
		t.Fatalf("category line missing: %q", s)
	}
}
