package finance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/plaid/plaid-go/v27/plaid"
)

// PlaidService implements Service against the Plaid API. Without an
// access token (no account linked yet) every call reports ErrNotLinked
// instead of failing hard.
type PlaidService struct {
	client      *plaid.APIClient
	accessToken string
}

func NewPlaidService(clientID, secret, environment, accessToken string) *PlaidService {
	cfg := plaid.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	cfg.AddDefaultHeader("PLAID-SECRET", secret)
	switch environment {
	case "production":
		cfg.UseEnvironment(plaid.Production)
	default:
		cfg.UseEnvironment(plaid.Sandbox)
	}

	if accessToken == "" {
		log.Printf("⚠️ No Plaid access token configured, finance features degraded")
	} else {
		log.Printf("✅ Plaid client initialized (%s)", environment)
	}

	return &PlaidService{
		client:      plaid.NewAPIClient(cfg),
		accessToken: accessToken,
	}
}

func (s *PlaidService) RecentTransactions(ctx context.Context, days int) ([]Transaction, error) {
	if s.accessToken == "" {
		return nil, ErrNotLinked
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	req := plaid.NewTransactionsGetRequest(s.accessToken, start.Format("2006-01-02"), end.Format("2006-01-02"))

	resp, _, err := s.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*req).Execute()
	if err != nil {
		return nil, fmt.Errorf("plaid transactions: %w", err)
	}

	var out []Transaction
	for _, t := range resp.GetTransactions() {
		category := ""
		if cats := t.GetCategory(); len(cats) > 0 {
			category = cats[0]
		}
		merchant := t.GetMerchantName()
		if merchant == "" {
			merchant = t.GetName()
		}
		out = append(out, Transaction{
			ID:       t.GetTransactionId(),
			Amount:   t.GetAmount(),
			Category: category,
			Merchant: merchant,
			Date:     t.GetDate(),
		})
	}
	return out, nil
}

func (s *PlaidService) AccountBalances(ctx context.Context) ([]Account, error) {
	if s.accessToken == "" {
		return nil, ErrNotLinked
	}

	req := plaid.NewAccountsBalanceGetRequest(s.accessToken)
	resp, _, err := s.client.PlaidApi.AccountsBalanceGet(ctx).AccountsBalanceGetRequest(*req).Execute()
	if err != nil {
		return nil, fmt.Errorf("plaid balances: %w", err)
	}

	var out []Account
	for _, a := range resp.GetAccounts() {
		name := a.GetName()
		if name == "" {
			name = "Unknown Account"
		}
		balances := a.GetBalances()
		out = append(out, Account{
			Name:           name,
			CurrentBalance: balances.GetCurrent(),
		})
	}
	return out, nil
}
