package assistant

import (
	"errors"
	"testing"
	"time"

	"accountabot/internal/reminder"
)

func TestParseReminderForms(t *testing.T) {
	cases := []struct {
		in      string
		message string
		kind    reminder.Kind
	}{
		{"remind me to stretch at 15:30", "stretch", reminder.Once},
		{"remind me to take vitamins at 09:00 daily", "take vitamins", reminder.Daily},
		{"remind me to take vitamins at 09:00 every day", "take vitamins", reminder.Daily},
		{"remind me to call mom at 18:00 every friday", "call mom", reminder.Weekly},
		{"remind me to call mom at 18:00 on sunday", "call mom", reminder.Weekly},
		{"remind me to drink water every 2 hours from 09:00 to 17:00", "drink water", reminder.Interval},
	}
	for _, tc := range cases {
		message, rule, err := parseReminder(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if message != tc.message {
			t.Fatalf("%q: message %q", tc.in, message)
		}
		if rule.Kind != tc.kind {
			t.Fatalf("%q: kind %v, want %v", tc.in, rule.Kind, tc.kind)
		}
	}
}

func TestParseReminderIntervalBeforeAtTime(t *testing.T) {
	// The interval form also contains time tokens; it must not be
	// swallowed by the simpler at-time patterns.
	_, rule, err := parseReminder("remind me to hydrate every 3 hours from 08:00 to 20:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rule.Kind != reminder.Interval || rule.EveryHours != 3 {
		t.Fatalf("interval form misparsed: %+v", rule)
	}
	if got := rule.FiringHours(); len(got) != 5 || got[0] != 8 || got[4] != 20 {
		t.Fatalf("firing hours wrong: %v", got)
	}
}

func TestParseReminderWeekday(t *testing.T) {
	_, rule, err := parseReminder("remind me to review goals at 10:00 every mon")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rule.Day != time.Monday {
		t.Fatalf("weekday wrong: %v", rule.Day)
	}
}

func TestParseReminderRejectsGarbage(t *testing.T) {
	for _, in := range []string{
		"remind me to do stuff",
		"remind me to do stuff at noon",
		"remind me to do stuff at 18:00 every blursday",
	} {
		if _, _, err := parseReminder(in); !errors.Is(err, reminder.ErrInvalidSchedule) {
			t.Fatalf("%q: expected ErrInvalidSchedule, got %v", in, err)
		}
	}
}

func TestParseSetBudget(t *testing.T) {
	period, amount, ok := parseSetBudget("set budget daily 50")
	if !ok || period != "daily" || amount != 50 {
		t.Fatalf("got %q %v %v", period, amount, ok)
	}

	period, amount, ok = parseSetBudget("set budget coffee $12.50")
	if !ok || period != "coffee" || amount != 12.5 {
		t.Fatalf("got %q %v %v", period, amount, ok)
	}

	if _, _, ok := parseSetBudget("set budget fifty bucks"); ok {
		t.Fatalf("non-numeric amount should not parse")
	}
}

func TestParseActivityDuration(t *testing.T) {
	minutes, rest := parseActivityDuration("worked on the deck for 2 hours")
	if minutes != 120 || rest != "worked on the deck" {
		t.Fatalf("got %d %q", minutes, rest)
	}

	minutes, rest = parseActivityDuration("did laundry for 30 mins")
	if minutes != 30 || rest != "did laundry" {
		t.Fatalf("got %d %q", minutes, rest)
	}

	minutes, rest = parseActivityDuration("meeting with design team")
	if minutes != 0 || rest != "meeting with design team" {
		t.Fatalf("got %d %q", minutes, rest)
	}
}

func TestActivityCategory(t *testing.T) {
	if got := activityCategory("meeting with the design team"); got != "Meeting" {
		t.Fatalf("got %q", got)
	}
	if got := activityCategory("worked on the migration"); got != "Work" {
		t.Fatalf("got %q", got)
	}
	if got := activityCategory("did a long run"); got != "Personal" {
		t.Fatalf("got %q", got)
	}
}
