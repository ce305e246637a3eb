package spending

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"accountabot/internal/finance"
)

// Summary describes spending over a period.
type Summary struct {
	Period           string
	Days             int
	Total            float64
	Categories       map[string]finance.CategoryTotal
	TransactionCount int
}

// Trends compares this week's spending against the trailing 4-week
// average.
type Trends struct {
	ThisWeek      float64
	WeeklyAverage float64
	Trend         string // "up" or "down"
	PercentChange float64
}

var periodDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
}

// PeriodFromQuery picks the summary period mentioned in a free-text
// spending query, defaulting to a week.
func PeriodFromQuery(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "today") || strings.Contains(q, "day"):
		return "day"
	case strings.Contains(q, "month"):
		return "month"
	default:
		return "week"
	}
}

func GetSummary(ctx context.Context, svc finance.Service, period string) (Summary, error) {
	days, ok := periodDays[period]
	if !ok {
		days = 7
	}
	txns, err := svc.RecentTransactions(ctx, days)
	if err != nil {
		return Summary{}, err
	}
	categories, total := finance.Categorize(txns)
	return Summary{
		Period:           period,
		Days:             days,
		Total:            total,
		Categories:       categories,
		TransactionCount: len(txns),
	}, nil
}

func AnalyzeTrends(ctx context.Context, svc finance.Service) (*Trends, error) {
	week, err := GetSummary(ctx, svc, "week")
	if err != nil {
		return nil, err
	}
	month, err := GetSummary(ctx, svc, "month")
	if err != nil {
		return nil, err
	}
	avg := month.Total / 4
	if avg == 0 {
		return nil, nil
	}
	trend := "down"
	if week.Total > avg {
		trend = "up"
	}
	diff := week.Total - avg
	if diff < 0 {
		diff = -diff
	}
	return &Trends{
		ThisWeek:      week.Total,
		WeeklyAverage: avg,
		Trend:         trend,
		PercentChange: diff / avg * 100,
	}, nil
}

// TopCategories returns up to n category names sorted by spend, highest
// first.
func TopCategories(categories map[string]finance.CategoryTotal, n int) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if categories[names[i]].Total != categories[names[j]].Total {
			return categories[names[i]].Total > categories[names[j]].Total
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// FormatSummary renders the spending-query reply.
func FormatSummary(s Summary, tr *Trends) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Spending Summary (%s):\n\n", s.Period)
	fmt.Fprintf(&b, "Total: $%.2f\n", s.Total)
	fmt.Fprintf(&b, "Transactions: %d\n\n", s.TransactionCount)

	top := TopCategories(s.Categories, 3)
	if len(top) > 0 {
		b.WriteString("Top Categories:\n")
		for _, name := range top {
			fmt.Fprintf(&b, "- %s: $%.2f\n", name, s.Categories[name].Total)
		}
	}

	if tr != nil {
		arrow := "📉"
		if tr.Trend == "up" {
			arrow = "📈"
		}
		fmt.Fprintf(&b, "\n📊 Trend: %s %.1f%% vs avg", arrow, tr.PercentChange)
	}
	return b.String()
}

// Analyze produces the plain 7-day summary line used as LLM input for
// the daily summary.
func Analyze(ctx context.Context, svc finance.Service) string {
	txns, err := svc.RecentTransactions(ctx, 7)
	if err != nil {
		return "No transaction data available."
	}
	if len(txns) == 0 {
		return "No transactions found in the last 7 days."
	}
	categories, total := finance.Categorize(txns)

	var b strings.Builder
	fmt.Fprintf(&b, "Total spent in last 7 days: $%.2f\n\n", total)
	for _, name := range TopCategories(categories, 5) {
		c := categories[name]
		fmt.Fprintf(&b, "%s: $%.2f (%d transactions)\n", name, c.Total, c.Count)
	}
	return b.String()
}
