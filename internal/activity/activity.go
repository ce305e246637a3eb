package activity

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// retentionDays is how long activity records are kept before cleanup.
const retentionDays = 30

// Activity is one logged item of what the user worked on.
type Activity struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Duration    int       `json:"duration,omitempty"` // minutes
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD
}

// Log persists activities to a flat JSON file, rewritten wholesale on
// every write.
type Log struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewLog(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure activity dir: %w", err)
	}
	return &Log{path: path, now: time.Now}, nil
}

// Add records an activity. Duration is in minutes; zero means untracked.
func (l *Log) Add(description string, duration int, category string) (Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	a := Activity{
		ID:          uuid.NewString(),
		Timestamp:   now,
		Description: description,
		Duration:    duration,
		Category:    category,
		Date:        now.Format("2006-01-02"),
	}

	activities := l.load()
	activities = append(activities, a)
	if err := l.save(activities); err != nil {
		return Activity{}, err
	}
	log.Printf("✅ Activity logged: %s", description)
	return a, nil
}

// Today returns activities logged on the current date.
func (l *Log) Today() []Activity {
	l.mu.Lock()
	defer l.mu.Unlock()
	today := l.now().Format("2006-01-02")
	var out []Activity
	for _, a := range l.load() {
		if a.Date == today {
			out = append(out, a)
		}
	}
	return out
}

// Week returns activities from the last 7 days.
func (l *Log) Week() []Activity {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	weekAgo := now.AddDate(0, 0, -7)
	var out []Activity
	for _, a := range l.load() {
		if !a.Timestamp.Before(weekAgo) && !a.Timestamp.After(now) {
			out = append(out, a)
		}
	}
	return out
}

// CleanOld drops records older than the retention window.
func (l *Log) CleanOld() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().AddDate(0, 0, -retentionDays)
	activities := l.load()
	kept := activities[:0]
	for _, a := range activities {
		if !a.Timestamp.Before(cutoff) {
			kept = append(kept, a)
		}
	}
	if len(kept) < len(activities) {
		if err := l.save(kept); err != nil {
			log.Printf("❌ Failed to clean activities: %v", err)
			return
		}
		log.Printf("🧹 Cleaned %d old activities", len(activities)-len(kept))
	}
}

// load reads the whole file; a missing or corrupt file is an empty log.
// Caller holds l.mu.
func (l *Log) load() []Activity {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var activities []Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		log.Printf("⚠️ Failed to parse activity file: %v", err)
		return nil
	}
	return activities
}

func (l *Log) save(activities []Activity) error {
	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write activities: %w", err)
	}
	return nil
}

// Summarize renders the activity summary for a set of records.
func Summarize(activities []Activity) string {
	if len(activities) == 0 {
		return "No activities logged"
	}

	type categoryData struct {
		count        int
		totalMinutes int
		descriptions []string
	}
	byCategory := make(map[string]*categoryData)
	totalMinutes := 0
	for _, a := range activities {
		cat := a.Category
		if cat == "" {
			cat = "Other"
		}
		d, ok := byCategory[cat]
		if !ok {
			d = &categoryData{}
			byCategory[cat] = d
		}
		d.count++
		d.descriptions = append(d.descriptions, a.Description)
		d.totalMinutes += a.Duration
		totalMinutes += a.Duration
	}

	var b strings.Builder
	b.WriteString("📊 *Activity Summary*\n\n")
	fmt.Fprintf(&b, "Total activities: %d\n", len(activities))
	if totalMinutes > 0 {
		fmt.Fprintf(&b, "Total time tracked: %dh %dm\n", totalMinutes/60, totalMinutes%60)
	}
	b.WriteString("\n")

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := byCategory[name]
		fmt.Fprintf(&b, "*%s* (%d activities", name, d.count)
		if d.totalMinutes > 0 {
			fmt.Fprintf(&b, ", %dh %dm", d.totalMinutes/60, d.totalMinutes%60)
		}
		b.WriteString(")\n")

		recent := d.descriptions
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for _, desc := range recent {
			fmt.Fprintf(&b, "  • %s\n", desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DailySummary summarizes today's activities.
func (l *Log) DailySummary() string {
	return Summarize(l.Today())
}

// WeeklySummary summarizes the last 7 days with a per-day breakdown.
func (l *Log) WeeklySummary() string {
	week := l.Week()
	if len(week) == 0 {
		return "No activities logged this week"
	}

	byDay := make(map[string]int)
	for _, a := range week {
		byDay[a.Date]++
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	b.WriteString("📅 *Weekly Summary*\n\n")
	fmt.Fprintf(&b, "Total activities this week: %d\n\n", len(week))
	for _, day := range days {
		name := day
		if t, err := time.Parse("2006-01-02", day); err == nil {
			name = t.Format("Mon, Jan 2")
		}
		fmt.Fprintf(&b, "*%s*: %d activities\n", name, byDay[day])
	}
	b.WriteString("\n")
	b.WriteString(Summarize(week))
	return b.String()
}
