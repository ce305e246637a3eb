package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// oauthCredentials is the client section of a Google Cloud Console
// credentials.json.
type oauthCredentials struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
}

type credentialsFile struct {
	Installed *oauthCredentials `json:"installed,omitempty"`
	Web       *oauthCredentials `json:"web,omitempty"`
}

// Walks the one-time OAuth consent flow and writes the resulting token
// where the bot expects it (GMAIL_TOKEN_PATH, default
// data/gmail-token.json).
func main() {
	credentialsPath := "data/gmail-credentials.json"
	if len(os.Args) > 1 {
		credentialsPath = os.Args[1]
	}
	tokenPath := os.Getenv("GMAIL_TOKEN_PATH")
	if tokenPath == "" {
		tokenPath = "data/gmail-token.json"
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		log.Fatalf("Failed to read credentials file %s: %v", credentialsPath, err)
	}
	creds, err := parseCredentials(data)
	if err != nil {
		log.Fatalf("Failed to parse credentials: %v", err)
	}

	config := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{gmail.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("🔗 Gmail OAuth2 Authorization Helper\n")
	fmt.Printf("=====================================\n")
	fmt.Printf("1. Open this URL in your browser:\n")
	fmt.Printf("   %s\n\n", authURL)
	fmt.Printf("2. Authorize the application\n")
	fmt.Printf("3. Copy the authorization code and enter it below\n\n")
	fmt.Printf("📝 Enter the authorization code: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	token, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Failed to exchange code for token: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(tokenPath), 0o755); err != nil {
		log.Fatalf("Failed to create token dir: %v", err)
	}
	tokenData, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode token: %v", err)
	}
	if err := os.WriteFile(tokenPath, tokenData, 0o600); err != nil {
		log.Fatalf("Failed to write token: %v", err)
	}

	fmt.Printf("\n✅ Token saved to %s\n", tokenPath)
	fmt.Printf("The bot will pick it up on next start.\n")
	if token.RefreshToken == "" {
		fmt.Printf("⚠️ No refresh token returned; revoke the app's access and run this helper again.\n")
	}
}

func parseCredentials(data []byte) (*oauthCredentials, error) {
	var direct oauthCredentials
	if err := json.Unmarshal(data, &direct); err == nil && direct.ClientID != "" && direct.ClientSecret != "" {
		return &direct, nil
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if file.Installed != nil {
		return file.Installed, nil
	}
	if file.Web != nil {
		return file.Web, nil
	}
	return nil, fmt.Errorf("no valid credentials found - expected 'installed' or 'web' section")
}
