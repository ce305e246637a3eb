package assistant

import (
	"context"
	"strings"
	"testing"

	"accountabot/internal/finance"
)

func TestCheckBudgetsSendsOverBudgetAlert(t *testing.T) {
	fin := &fakeFinance{txns: []finance.Transaction{{ID: "t1", Amount: 45, Category: "Food", Date: "2026-08-30"}}}
	svc, sender := newTestService(t, fin)
	svc.deps.Budgets.Set("daily", 10)

	svc.checkBudgets(context.Background())
	if sender.count() != 1 {
		t.Fatalf("expected 1 alert, got %d", sender.count())
	}
	if !strings.HasPrefix(sender.last(), "🤖 💸 ") {
		t.Fatalf("over-budget prefix missing: %q", sender.last())
	}
}

func TestCheckBudgetsStaysSilentWhenGood(t *testing.T) {
	fin := &fakeFinance{txns: []finance.Transaction{{ID: "t1", Amount: 5, Category: "Food", Date: "2026-08-30"}}}
	svc, sender := newTestService(t, fin)
	svc.deps.Budgets.Set("daily", 100)

	svc.checkBudgets(context.Background())
	if sender.count() != 0 {
		t.Fatalf("good budget state should not alert, got %d sends", sender.count())
	}
}

func TestCheckSocialMediaAlertsOverLimit(t *testing.T) {
	svc, sender := newTestService(t, &fakeFinance{})
	if _, err := svc.deps.Social.LogUsage("tiktok", 150); err != nil {
		t.Fatalf("log usage: %v", err)
	}

	svc.checkSocialMedia(context.Background())
	if sender.count() != 1 {
		t.Fatalf("expected 1 alert, got %d", sender.count())
	}
	if !strings.HasPrefix(sender.last(), "🤖 📱 ") {
		t.Fatalf("social media prefix missing: %q", sender.last())
	}
}

func TestCheckEmailSkipsWhenUnconfigured(t *testing.T) {
	svc, sender := newTestService(t, &fakeFinance{})
	svc.checkEmail(context.Background())
	if sender.count() != 0 {
		t.Fatalf("unconfigured email check should be silent")
	}
}

func TestStartMonitoringRegistersAllJobs(t *testing.T) {
	svc, _ := newTestService(t, &fakeFinance{})
	if err := svc.StartMonitoring(); err != nil {
		t.Fatalf("start monitoring: %v", err)
	}
	defer svc.StopMonitoring()

	if got := len(svc.sched.Entries()); got != len(schedules) {
		t.Fatalf("expected %d scheduled jobs, got %d", len(schedules), got)
	}
}
