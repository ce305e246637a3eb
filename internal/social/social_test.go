package social

import (
	"math"
	"strings"
	"testing"
)

func TestLogUsage(t *testing.T) {
	tr := NewTracker(2)

	total, err := tr.LogUsage("instagram", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(total-0.75) > 1e-9 {
		t.Fatalf("total = %v, want 0.75", total)
	}

	total, err = tr.LogUsage("Instagram", 15)
	if err != nil {
		t.Fatalf("case-insensitive platform rejected: %v", err)
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Fatalf("total = %v, want 1.0", total)
	}

	if _, err := tr.LogUsage("myspace", 30); err == nil {
		t.Fatalf("unknown platform accepted")
	}
}

func TestOverLimitAndReset(t *testing.T) {
	tr := NewTracker(2)
	tr.LogUsage("tiktok", 150) // 2.5h

	over := tr.OverLimit()
	if len(over) != 1 {
		t.Fatalf("over = %v", over)
	}
	if _, ok := over["tiktok"]; !ok {
		t.Fatalf("tiktok not flagged: %v", over)
	}

	tr.ResetDaily()
	if len(tr.OverLimit()) != 0 {
		t.Fatalf("reset did not clear counters")
	}
}

func TestSummary(t *testing.T) {
	tr := NewTracker(2)
	tr.LogUsage("youtube", 90)

	s := tr.Summary()
	if !strings.Contains(s, "Youtube: 1.5h") {
		t.Fatalf("missing platform line: %q", s)
	}
	if !strings.Contains(s, "Total: 1.5h / 2.0h limit") {
		t.Fatalf("missing total line: %q", s)
	}
}
