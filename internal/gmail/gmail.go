package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"accountabot/internal/llm"
)

// ErrNotConfigured is reported when Gmail credentials or token are
// missing; email features degrade gracefully.
var ErrNotConfigured = errors.New("gmail not configured")

// Email is one message surfaced to the user.
type Email struct {
	From    string
	Subject string
	Snippet string
}

// oauthCredentials mirrors the Google Cloud Console credentials.json
// shape ("installed" or "web" key).
type oauthCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type credentialsFile struct {
	Installed *oauthCredentials `json:"installed,omitempty"`
	Web       *oauthCredentials `json:"web,omitempty"`
}

// Service reads unread mail and filters it down to what actually needs
// attention. Importance classification is delegated to the LLM.
type Service struct {
	srv *gmailapi.Service
	llm llm.Client
}

// NewService wires the Gmail API from a credentials file and a stored
// OAuth token (see cmd/gmail-auth-helper). Returns ErrNotConfigured if
// either file is missing.
func NewService(ctx context.Context, credentialsPath, tokenPath string, llmClient llm.Client) (*Service, error) {
	credsData, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	var creds credentialsFile
	if err := json.Unmarshal(credsData, &creds); err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	oc := creds.Installed
	if oc == nil {
		oc = creds.Web
	}
	if oc == nil {
		return nil, fmt.Errorf("parse gmail credentials: no installed or web section")
	}

	tokenData, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("parse gmail token: %w", err)
	}

	config := &oauth2.Config{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		Scopes:       []string{gmailapi.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	srv, err := gmailapi.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("init gmail service: %w", err)
	}

	log.Printf("✅ Gmail connected successfully")
	return &Service{srv: srv, llm: llmClient}, nil
}

// ImportantMessages fetches unread mail from the last 24 hours and
// keeps only what the LLM classifies as important.
func (s *Service) ImportantMessages(ctx context.Context) ([]Email, error) {
	list, err := s.srv.Users.Messages.List("me").
		Q("is:unread newer_than:1d").
		MaxResults(50).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list unread emails: %w", err)
	}
	if len(list.Messages) == 0 {
		return nil, nil
	}

	log.Printf("📧 Analyzing %d unread emails...", len(list.Messages))

	var important []Email
	for _, m := range list.Messages {
		msg, err := s.srv.Users.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject").
			Context(ctx).
			Do()
		if err != nil {
			log.Printf("⚠️ Failed to fetch email %s: %v", m.Id, err)
			continue
		}
		email := Email{Snippet: msg.Snippet}
		if msg.Payload != nil {
			for _, h := range msg.Payload.Headers {
				switch h.Name {
				case "From":
					email.From = h.Value
				case "Subject":
					email.Subject = h.Value
				}
			}
		}
		if email.Subject == "" {
			email.Subject = "(No Subject)"
		}

		if s.isImportant(ctx, email) {
			important = append(important, email)
		}
	}

	log.Printf("   ✅ Found %d important emails", len(important))
	return important, nil
}

func (s *Service) isImportant(ctx context.Context, e Email) bool {
	prompt := fmt.Sprintf(`Analyze this email and determine if it's TRULY IMPORTANT and needs immediate attention.

From: %s
Subject: %s
Preview: %s

Criteria for IMPORTANT emails:
- From a real person (not automated/marketing)
- Requires a response or action
- Time-sensitive or urgent
- Work-related deadlines or meetings
- Personal messages from people you know
- Bills, payments, or financial matters

NOT important:
- Newsletters, promotions, marketing
- Social media notifications
- Automated confirmations (order shipped, etc.)
- Spam or promotional content
- Generic updates or announcements

Respond with ONLY "YES" if it's important, or "NO" if it's not. Be strict - only say YES for emails that truly need attention.`,
		e.From, e.Subject, e.Snippet)

	resp, err := s.llm.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		log.Printf("⚠️ Email classification failed: %v", err)
		return false
	}
	return strings.Contains(strings.ToUpper(resp.Content), "YES")
}

// FormatAlert renders the important-email notification. At most five
// emails are shown in full.
func FormatAlert(emails []Email) string {
	if len(emails) == 0 {
		return ""
	}
	plural := ""
	if len(emails) > 1 {
		plural = "s"
	}
	var b strings.Builder
	b.WriteString("📧 *Important Emails Alert*\n\n")
	fmt.Fprintf(&b, "You have %d important email%s that need attention:\n\n", len(emails), plural)
	shown := emails
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, e := range shown {
		fmt.Fprintf(&b, "*From:* %s\n*Subject:* %s\n_%s_\n\n", e.From, e.Subject, e.Snippet)
	}
	if len(emails) > 5 {
		fmt.Fprintf(&b, "_...and %d more_\n", len(emails)-5)
	}
	return b.String()
}
