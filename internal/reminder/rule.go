package reminder

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSchedule is returned for any malformed schedule input. It is
// reported to the user as a usage hint, never propagated as a failure.
var ErrInvalidSchedule = errors.New("invalid schedule")

type Kind int

const (
	Once Kind = iota
	Daily
	Weekly
	Interval
)

// Rule is the recurrence rule a reminder is created with. The rule is
// the source of truth; the cron expression is derived from it, so the
// scheduling library stays swappable. Rules are immutable once set:
// changing a schedule means deleting and recreating the reminder.
type Rule struct {
	Kind   Kind
	Hour   int
	Minute int
	Day    time.Weekday

	// Interval rules fire every EveryHours step between StartHour and
	// EndHour inclusive. Minute precision of the original start/end
	// times is intentionally dropped (see FiringHours).
	StartHour  int
	EndHour    int
	EveryHours int
}

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseTimeOfDay parses a wall-clock "HH:MM" string (24-hour).
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidSchedule, s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time %q out of range", ErrInvalidSchedule, s)
	}
	return hour, minute, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts full day names or the standard three-letter
// abbreviations, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day of week %q", ErrInvalidSchedule, s)
	}
	return d, nil
}

// OnceAt builds a one-shot rule firing at the next occurrence of the
// given wall-clock time.
func OnceAt(timeOfDay string) (Rule, error) {
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: Once, Hour: h, Minute: m}, nil
}

func DailyAt(timeOfDay string) (Rule, error) {
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: Daily, Hour: h, Minute: m}, nil
}

func WeeklyAt(day, timeOfDay string) (Rule, error) {
	d, err := ParseWeekday(day)
	if err != nil {
		return Rule{}, err
	}
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: Weekly, Day: d, Hour: h, Minute: m}, nil
}

// IntervalBetween builds a rule firing every everyHours between start
// and end times inclusive. Only the hour component of start/end takes
// part in scheduling.
func IntervalBetween(start, end string, everyHours int) (Rule, error) {
	sh, _, err := ParseTimeOfDay(start)
	if err != nil {
		return Rule{}, err
	}
	eh, _, err := ParseTimeOfDay(end)
	if err != nil {
		return Rule{}, err
	}
	if everyHours < 1 {
		return Rule{}, fmt.Errorf("%w: interval must be at least 1 hour", ErrInvalidSchedule)
	}
	if sh > eh {
		return Rule{}, fmt.Errorf("%w: start %02d:00 is after end %02d:00", ErrInvalidSchedule, sh, eh)
	}
	return Rule{Kind: Interval, StartHour: sh, EndHour: eh, EveryHours: everyHours}, nil
}

// FiringHours returns the discrete hours an interval rule fires at,
// stepping from start to end inclusive. Nil for other kinds.
func (r Rule) FiringHours() []int {
	if r.Kind != Interval {
		return nil
	}
	var hours []int
	for h := r.StartHour; h <= r.EndHour; h += r.EveryHours {
		hours = append(hours, h)
	}
	return hours
}

// CronSpec derives the standard 5-field cron expression for the rule.
func (r Rule) CronSpec() string {
	switch r.Kind {
	case Once, Daily:
		return fmt.Sprintf("%d %d * * *", r.Minute, r.Hour)
	case Weekly:
		return fmt.Sprintf("%d %d * * %d", r.Minute, r.Hour, int(r.Day))
	case Interval:
		hours := r.FiringHours()
		parts := make([]string, len(hours))
		for i, h := range hours {
			parts[i] = strconv.Itoa(h)
		}
		return fmt.Sprintf("0 %s * * *", strings.Join(parts, ","))
	}
	return ""
}

// Describe renders the rule for reminder listings.
func (r Rule) Describe() string {
	switch r.Kind {
	case Once:
		return fmt.Sprintf("%02d:%02d (once)", r.Hour, r.Minute)
	case Daily:
		return fmt.Sprintf("%02d:%02d (daily)", r.Hour, r.Minute)
	case Weekly:
		return fmt.Sprintf("%02d:%02d (weekly on %s)", r.Hour, r.Minute, strings.ToLower(r.Day.String()))
	case Interval:
		return fmt.Sprintf("every %dh from %02d:00 to %02d:00", r.EveryHours, r.StartHour, r.EndHour)
	}
	return "unknown"
}

// Validate re-checks rule invariants before binding.
func (r Rule) Validate() error {
	switch r.Kind {
	case Once, Daily, Weekly:
		if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
			return fmt.Errorf("%w: time out of range", ErrInvalidSchedule)
		}
	case Interval:
		if r.EveryHours < 1 || r.StartHour < 0 || r.EndHour > 23 || r.StartHour > r.EndHour {
			return fmt.Errorf("%w: bad interval window", ErrInvalidSchedule)
		}
	default:
		return fmt.Errorf("%w: unknown rule kind", ErrInvalidSchedule)
	}
	return nil
}
