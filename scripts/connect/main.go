// scripts/connect/main.go
//
// Run this locally to authorize a calendar provider for a user without going
// through the HTTP connect flow. Useful for development and for seeding a
// fresh database.
//
// Usage:
//   go run scripts/connect/main.go <user-id> <google|outlook>
//
// It prints an authorization URL, you log in with the provider account,
// paste the authorization code, and the credential is written to the
// configured database.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	oauthGoogle "golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	calendarAPI "google.golang.org/api/calendar/v3"

	"sales-scheduler/config"
	"sales-scheduler/internal/credential"
	credSqlite "sales-scheduler/internal/credential/repository/sqlite"
	"sales-scheduler/internal/model"
	pkgLog "sales-scheduler/pkg/log"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("usage: go run scripts/connect/main.go <user-id> <google|outlook>")
		os.Exit(1)
	}
	userID := os.Args[1]
	providerID := model.ProviderID(os.Args[2])

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var oauthCfg *oauth2.Config
	switch providerID {
	case model.ProviderGoogle:
		if !cfg.Google.Configured() {
			log.Fatal("Google OAuth credentials are not configured")
		}
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Endpoint:     oauthGoogle.Endpoint,
			Scopes:       []string{calendarAPI.CalendarScope},
		}
	case model.ProviderOutlook:
		if !cfg.Outlook.Configured() {
			log.Fatal("Outlook OAuth credentials are not configured")
		}
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.Outlook.ClientID,
			ClientSecret: cfg.Outlook.ClientSecret,
			RedirectURL:  cfg.Outlook.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint(cfg.Outlook.Tenant),
			Scopes: []string{
				"offline_access",
				"https://graph.microsoft.com/Calendars.ReadWrite",
			},
		}
	default:
		log.Fatalf("Unknown provider %q", providerID)
	}

	authURL := oauthCfg.AuthCodeURL("local-connect",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	fmt.Println("=================================================================")
	fmt.Println("STEP 1: Open this URL in a browser and log in:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	ctx := context.Background()
	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}

	logger := pkgLog.Init(pkgLog.ZapConfig{Level: "info", Mode: "debug", Encoding: "console"})
	repo, err := credSqlite.New(logger, cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open credential database: %v", err)
	}
	defer repo.Close()

	store := credential.New(logger, repo, map[model.ProviderID]*oauth2.Config{providerID: oauthCfg})
	sc := model.Scope{UserID: userID}
	if err := store.Save(ctx, sc, model.CalendarCredential{
		Provider:     providerID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}); err != nil {
		log.Fatalf("Failed to save credential: %v", err)
	}

	fmt.Println()
	fmt.Printf("Credential for user %q, provider %q saved to %s\n", userID, providerID, cfg.Database.Path)
}
