package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	googlecal "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/calendar/google"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/oauth"
)

// authTimeout bounds how long the browser sign-in may take.
const authTimeout = 5 * time.Minute

var (
	calendarPort         int
	calendarClientID     string
	calendarClientSecret string
	calendarNoBrowser    bool
)

// openBrowser launches the consent page. Tests replace it.
var openBrowser = oauth.OpenBrowser

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Google Calendar integration",
}

var calendarAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorise marketforge to create calendar events",
	Long: `Signs in to Google with a desktop OAuth client and stores the refresh
token in config.toml.

Create a "Desktop app" OAuth client in the Google Cloud console, then run:
  marketforge calendar auth --client-id ID --client-secret SECRET

The client ID and secret are remembered, so later runs need no flags.`,
	Args: cobra.NoArgs,
	RunE: runCalendarAuth,
}

func init() {
	calendarAuthCmd.Flags().IntVar(&calendarPort, "port", 0, "loopback port for the redirect (0 = random)")
	calendarAuthCmd.Flags().StringVar(&calendarClientID, "client-id", "", "OAuth client ID")
	calendarAuthCmd.Flags().StringVar(&calendarClientSecret, "client-secret", "", "OAuth client secret")
	calendarAuthCmd.Flags().BoolVar(&calendarNoBrowser, "no-browser", false, "print the sign-in URL instead of opening it")
	calendarCmd.AddCommand(calendarAuthCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarAuth(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if calendarClientID != "" || calendarClientSecret != "" {
		if calendarClientID != "" {
			settings.Calendar.ClientID = calendarClientID
		}
		if calendarClientSecret != "" {
			settings.Calendar.ClientSecret = calendarClientSecret
		}
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to save client credentials: %w", err)
		}
	}
	if settings.Calendar.ClientID == "" || settings.Calendar.ClientSecret == "" {
		return errors.New("client ID and secret are required: pass --client-id and --client-secret")
	}

	state, err := oauth.RandomState()
	if err != nil {
		return err
	}

	server, err := oauth.Listen(calendarPort, state)
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	defer server.Stop() //nolint:errcheck // best-effort shutdown

	flow, err := googlecal.NewAuthFlow(settings.Calendar.ClientID, settings.Calendar.ClientSecret, server.RedirectURI(), state)
	if err != nil {
		return err
	}

	url := flow.AuthCodeURL()
	if calendarNoBrowser {
		cmd.Printf("Open this URL to sign in:\n\n  %s\n\n", url)
	} else if err := openBrowser(url); err != nil {
		cmd.Printf("Could not open a browser (%v). Open this URL to sign in:\n\n  %s\n\n", err, url)
	} else {
		cmd.Println("Opened your browser to sign in with Google...")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
	defer cancel()

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return fmt.Errorf("authorisation failed: %w", err)
	}

	token, err := flow.Exchange(ctx, code)
	if err != nil {
		return describeError(err)
	}
	if err := settingsService.SetCalendarToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	cmd.Println("Google Calendar connected. Publish a kit with 'marketforge publish <kit-id>'.")
	return nil
}
