package finance

import (
	"context"
	"errors"
	"strings"
)

// ErrNotLinked is reported when no bank account is linked. Handlers turn
// it into a friendly degraded-service message, never a raw error.
var ErrNotLinked = errors.New("no bank account linked")

type Transaction struct {
	ID       string
	Amount   float64
	Category string
	Merchant string
	Date     string
}

type Account struct {
	Name           string
	CurrentBalance float64
}

// Service is the narrow finance collaborator interface.
type Service interface {
	RecentTransactions(ctx context.Context, days int) ([]Transaction, error)
	AccountBalances(ctx context.Context) ([]Account, error)
}

// CategoryTotal aggregates outgoing spending for one category.
type CategoryTotal struct {
	Total float64
	Count int
}

// Categorize groups outgoing transactions (positive amount = money out)
// by category and returns the overall total.
func Categorize(transactions []Transaction) (map[string]CategoryTotal, float64) {
	categories := make(map[string]CategoryTotal)
	var total float64
	for _, t := range transactions {
		if t.Amount <= 0 {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		c := categories[cat]
		c.Total += t.Amount
		c.Count++
		categories[cat] = c
		total += t.Amount
	}
	return categories, total
}

// IsUnnecessary flags a transaction whose category matches one of the
// configured unnecessary-spending categories (comma-separated,
// case-insensitive substring match).
func IsUnnecessary(t Transaction, unnecessaryCategories string) bool {
	category := strings.ToLower(t.Category)
	for _, raw := range strings.Split(unnecessaryCategories, ",") {
		cat := strings.TrimSpace(strings.ToLower(raw))
		if cat == "" {
			continue
		}
		if strings.Contains(category, cat) {
			return true
		}
	}
	return false
}
