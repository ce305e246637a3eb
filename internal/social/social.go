package social

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Platforms the tracker knows about. There is no reliable screen-time
// API for any of them, so usage is logged manually via the "log"
// command.
var platforms = []string{"instagram", "tiktok", "twitter", "youtube"}

// Tracker keeps per-platform daily usage in memory; reset once a day by
// the monitoring schedule.
type Tracker struct {
	mu    sync.Mutex
	hours map[string]float64
	limit float64 // max hours per day across alerting
}

func NewTracker(maxHoursPerDay float64) *Tracker {
	t := &Tracker{hours: make(map[string]float64), limit: maxHoursPerDay}
	for _, p := range platforms {
		t.hours[p] = 0
	}
	return t
}

// Platforms returns the known platform names.
func Platforms() []string {
	out := make([]string, len(platforms))
	copy(out, platforms)
	return out
}

// LogUsage adds minutes to a platform's daily total and returns the new
// total in hours. Unknown platforms are rejected.
func (t *Tracker) LogUsage(platform string, minutes int) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(platform))
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.hours[key]; !ok {
		return 0, fmt.Errorf("unknown platform %q", platform)
	}
	t.hours[key] += float64(minutes) / 60
	log.Printf("📱 Logged %d minutes on %s", minutes, key)
	return t.hours[key], nil
}

// ResetDaily zeroes all counters (called at midnight).
func (t *Tracker) ResetDaily() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for p := range t.hours {
		t.hours[p] = 0
	}
	log.Printf("🔄 Daily social media usage reset")
}

// OverLimit returns the platforms whose usage exceeds the daily limit.
func (t *Tracker) OverLimit() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64)
	for p, h := range t.hours {
		if h > t.limit {
			out[p] = h
		}
	}
	return out
}

// Limit returns the configured daily cap in hours.
func (t *Tracker) Limit() float64 {
	return t.limit
}

// Summary renders today's usage per platform.
func (t *Tracker) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.hours))
	for p := range t.hours {
		names = append(names, p)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Social Media Usage Today:\n\n")
	var total float64
	for _, p := range names {
		h := t.hours[p]
		total += h
		fmt.Fprintf(&b, "%s: %.1fh\n", titled(p), h)
	}
	fmt.Fprintf(&b, "\nTotal: %.1fh / %.1fh limit", total, t.limit)
	return b.String()
}

func titled(platform string) string {
	if platform == "" {
		return platform
	}
	return strings.ToUpper(platform[:1]) + platform[1:]
}
