package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ssabab/internal/session"
)

var (
	loginToken        string
	loginRefreshToken string
)

// loginCmd starts the browser login flow
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your Google account",
	Long: `Log in to ssabab via Google OAuth.

This command:
1. Opens the browser on the backend's Google login page
2. Waits for the backend to redirect to a local callback with the token pair
3. Persists the tokens to ~/.ssabab/credentials.json

For headless environments, pass --token (and optionally --refresh-token)
to skip the browser flow.`,
	RunE: runLogin,
}

// logoutCmd clears the persisted session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored credentials",
	RunE:  runLogout,
}

// statusCmd shows the current session state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login status",
	RunE:  runStatus,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	// Headless path: tokens supplied directly.
	if loginToken != "" {
		if err := a.session.Login(loginToken, loginRefreshToken); err != nil {
			return fmt.Errorf("failed to store credentials: %w", err)
		}
		fmt.Println("✓ Logged in (token supplied)")
		printExpiry(loginToken)
		return nil
	}

	loginURL, err := session.LoginURL(a.baseURL)
	if err != nil {
		return err
	}

	fmt.Println("Opening browser for Google login...")
	fmt.Printf("If the browser doesn't open, visit:\n%s\n\n", loginURL)
	if err := openBrowser(loginURL); err != nil {
		fmt.Printf("Could not open browser: %v\n", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	fmt.Println("Waiting for login callback...")
	pair, err := session.WaitForCallback(ctx)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := a.session.Login(pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	fmt.Println("\n✓ Logged in")
	printExpiry(pair.AccessToken)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.session.IsAuthenticated() {
		// An expired access token with a surviving refresh token can still
		// be recovered silently.
		if a.session.RefreshToken() != "" {
			if err := a.client.TryRefresh(cmd.Context()); err == nil {
				fmt.Println("Session refreshed.")
			}
		}
	}

	if !a.session.IsAuthenticated() {
		fmt.Println("Not logged in. Run 'ssabab login' to sign in.")
		return nil
	}

	fmt.Println("Logged in.")
	printExpiry(a.session.AccessToken())
	fmt.Printf("Backend: %s\n", a.baseURL)
	return nil
}

func printExpiry(token string) {
	if exp, err := session.TokenExpiry(token); err == nil {
		fmt.Printf("Session valid until %s\n", exp.Local().Format(time.RFC1123))
	}
}
