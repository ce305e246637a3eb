package activity

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := NewLog(filepath.Join(t.TempDir(), "activities.json"))
	if err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	return l
}

func TestAddAndToday(t *testing.T) {
	l := newTestLog(t)

	a, err := l.Add("worked on the report", 120, "work")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if a.ID == "" || a.Date == "" {
		t.Fatalf("incomplete record: %+v", a)
	}

	today := l.Today()
	if len(today) != 1 || today[0].Description != "worked on the report" {
		t.Fatalf("unexpected today set: %+v", today)
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	l1, _ := NewLog(path)
	if _, err := l1.Add("meeting with team", 30, "meeting"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	l2, _ := NewLog(path)
	if got := l2.Today(); len(got) != 1 {
		t.Fatalf("record did not survive reopen: %+v", got)
	}
}

func TestWeekFiltersOldRecords(t *testing.T) {
	l := newTestLog(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	l.now = func() time.Time { return base.AddDate(0, 0, -10) }
	if _, err := l.Add("ancient", 0, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	l.now = func() time.Time { return base.AddDate(0, 0, -2) }
	if _, err := l.Add("recent", 0, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	l.now = func() time.Time { return base }
	week := l.Week()
	if len(week) != 1 || week[0].Description != "recent" {
		t.Fatalf("unexpected week set: %+v", week)
	}
}

func TestCleanOldKeepsRetentionWindow(t *testing.T) {
	l := newTestLog(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	l.now = func() time.Time { return base.AddDate(0, 0, -40) }
	l.Add("stale", 0, "")
	l.now = func() time.Time { return base.AddDate(0, 0, -5) }
	l.Add("fresh", 0, "")

	l.now = func() time.Time { return base }
	l.CleanOld()

	week := l.Week()
	if len(week) != 1 || week[0].Description != "fresh" {
		t.Fatalf("cleanup kept wrong records: %+v", week)
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != "No activities logged" {
		t.Fatalf("empty summary = %q", got)
	}

	activities := []Activity{
		{Description: "wrote spec", Duration: 90, Category: "work"},
		{Description: "standup", Duration: 15, Category: "meeting"},
		{Description: "walked dog"},
	}
	s := Summarize(activities)
	if !strings.Contains(s, "Total activities: 3") {
		t.Fatalf("missing total: %q", s)
	}
	if !strings.Contains(s, "Total time tracked: 1h 45m") {
		t.Fatalf("missing tracked time: %q", s)
	}
	if !strings.Contains(s, "*work*") || !strings.Contains(s, "*Other*") {
		t.Fatalf("missing category sections: %q", s)
	}
}

func TestWeeklySummaryBreakdown(t *testing.T) {
	l := newTestLog(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	l.now = func() time.Time { return base.AddDate(0, 0, -1) }
	l.Add("yesterday thing", 0, "")
	l.now = func() time.Time { return base }
	l.Add("today thing", 0, "")

	s := l.WeeklySummary()
	if !strings.Contains(s, "Total activities this week: 2") {
		t.Fatalf("missing weekly total: %q", s)
	}
	if !strings.Contains(s, "Sat, Aug 29") || !strings.Contains(s, "Sun, Aug 30") {
		t.Fatalf("missing per-day breakdown: %q", s)
	}
}
