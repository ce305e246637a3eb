package spending

import (
	"context"
	"log"
	"sort"
	"sync"

	"accountabot/internal/finance"
)

// alertedCapacity bounds the set of transaction ids already alerted on.
const alertedCapacity = 100

// Notifier delivers an alert to the user.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// AlertFunc turns an unnecessary transaction into alert text.
type AlertFunc func(ctx context.Context, t finance.Transaction) string

// Monitor runs the hourly unnecessary-spending check. Each transaction
// is alerted on at most once; the seen-set is bounded to the most
// recent entries.
type Monitor struct {
	svc        finance.Service
	notifier   Notifier
	alertText  AlertFunc
	threshold  float64
	categories string

	mu           sync.Mutex
	alerted      map[string]bool
	alertedOrder []string
}

func NewMonitor(svc finance.Service, notifier Notifier, alertText AlertFunc, threshold float64, unnecessaryCategories string) *Monitor {
	return &Monitor{
		svc:        svc,
		notifier:   notifier,
		alertText:  alertText,
		threshold:  threshold,
		categories: unnecessaryCategories,
		alerted:    make(map[string]bool),
	}
}

// CheckRecent inspects the last 24 hours of transactions and alerts on
// unnecessary spending above the threshold. Errors are logged and
// swallowed: a failed check must not break the monitoring schedule.
func (m *Monitor) CheckRecent(ctx context.Context) {
	txns, err := m.svc.RecentTransactions(ctx, 1)
	if err != nil {
		log.Printf("⚠️ Spending check skipped: %v", err)
		return
	}
	// Newest first.
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date > txns[j].Date })

	for _, t := range txns {
		if m.hasAlerted(t.ID) {
			continue
		}
		if !finance.IsUnnecessary(t, m.categories) || t.Amount < m.threshold {
			continue
		}
		text := m.alertText(ctx, t)
		if err := m.notifier.Send(ctx, text); err != nil {
			continue
		}
		log.Printf("💸 Spending alert sent for $%.2f at %s", t.Amount, t.Merchant)
		m.markAlerted(t.ID)
	}
}

func (m *Monitor) hasAlerted(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alerted[id]
}

func (m *Monitor) markAlerted(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerted[id] = true
	m.alertedOrder = append(m.alertedOrder, id)
	for len(m.alertedOrder) > alertedCapacity {
		delete(m.alerted, m.alertedOrder[0])
		m.alertedOrder = m.alertedOrder[1:]
	}
}
