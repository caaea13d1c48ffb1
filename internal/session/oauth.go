package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// The backend drives the Google OAuth hop; the client never touches Google
// credentials. We only open the login page and collect the resulting token
// pair on a localhost callback.
const (
	loginPath    = "/account/login/google"
	CallbackPort = ":48117"
	callbackPath = "/callback"
)

// TokenPair is the result delivered by the backend on the OAuth callback.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginURL builds the backend login URL that redirects back to the local
// callback server after the Google consent hop.
func LoginURL(apiBaseURL string) (string, error) {
	u, err := url.Parse(apiBaseURL + loginPath)
	if err != nil {
		return "", fmt.Errorf("parse login url: %w", err)
	}
	q := u.Query()
	q.Set("redirect_uri", "http://localhost"+CallbackPort+callbackPath)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WaitForCallback starts a local HTTP server and blocks until the backend
// redirects the browser to the callback with a token pair, or ctx expires.
func WaitForCallback(ctx context.Context) (TokenPair, error) {
	pairChan := make(chan TokenPair, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if errStr := q.Get("error"); errStr != "" {
			http.Error(w, "Login failed: "+errStr, http.StatusBadRequest)
			errChan <- fmt.Errorf("login failed: %s", errStr)
			return
		}

		pair := TokenPair{
			AccessToken:  q.Get("accessToken"),
			RefreshToken: q.Get("refreshToken"),
		}
		if pair.AccessToken == "" {
			http.Error(w, "No token received", http.StatusBadRequest)
			errChan <- fmt.Errorf("no token received")
			return
		}

		w.Write([]byte("Login successful! You can close this window and return to the terminal."))
		pairChan <- pair
	})

	server := &http.Server{Addr: CallbackPort, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer server.Close()

	select {
	case pair := <-pairChan:
		return pair, nil
	case err := <-errChan:
		return TokenPair{}, err
	case <-ctx.Done():
		return TokenPair{}, ctx.Err()
	}
}
