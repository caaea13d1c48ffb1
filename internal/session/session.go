// Package session is the single source of truth for whether the client is
// authenticated. It bridges in-memory token state and the persisted
// credentials file (~/.ssabab/credentials.json), the terminal analogue of the
// browser session cookie.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ssabab/internal/logging"
)

const credentialsFileName = "credentials.json"

// credentials is the persisted token pair.
type credentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Store holds access/refresh token state and persists it to disk.
// All state lives behind the mutex; there are no package-level singletons.
type Store struct {
	mu            sync.Mutex
	credsFile     string
	accessToken   string
	refreshToken  string
	authenticated bool

	now func() time.Time // injectable clock for expiry checks
}

// NewStore creates a session store persisting to dir/credentials.json.
// No disk access happens until Initialize or a mutation.
func NewStore(dir string) *Store {
	return &Store{
		credsFile: filepath.Join(dir, credentialsFileName),
		now:       time.Now,
	}
}

// NewStoreWithClock is NewStore with an injected clock, for tests.
func NewStoreWithClock(dir string, now func() time.Time) *Store {
	s := NewStore(dir)
	s.now = now
	return s
}

// SetToken updates the in-memory access token and authenticated flag, and
// writes (or, for an empty token, deletes) the persisted access token.
// The refresh token is left untouched.
func (s *Store) SetToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = access
	s.authenticated = access != ""
	return s.persistLocked()
}

// Login sets authenticated state unconditionally and persists both tokens.
// The token signature is not validated; expiry decoding is advisory only.
func (s *Store) Login(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = access
	s.refreshToken = refresh
	s.authenticated = true
	logging.Session("login: session established")
	return s.persistLocked()
}

// Logout clears the persisted credentials and the in-memory tokens
// atomically.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = ""
	s.refreshToken = ""
	s.authenticated = false
	logging.Session("logout: session cleared")

	if err := os.Remove(s.credsFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Initialize hydrates the store from the persisted credentials and derives
// authenticated state from the token's embedded expiry: the session counts as
// authenticated only while now < exp. Malformed or expired tokens clear the
// in-memory state but keep the refresh token for a silent refresh attempt.
// Must run once per process before any authenticated command.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.readCredentials()
	if err != nil {
		logging.SessionDebug("initialize: no persisted credentials: %v", err)
		s.accessToken = ""
		s.refreshToken = ""
		s.authenticated = false
		return
	}

	s.refreshToken = creds.RefreshToken

	exp, err := TokenExpiry(creds.AccessToken)
	if err != nil {
		// A token we cannot decode is treated as absent, never an error.
		logging.SessionDebug("initialize: undecodable token: %v", err)
		s.accessToken = ""
		s.authenticated = false
		return
	}

	if s.now().Before(exp) {
		s.accessToken = creds.AccessToken
		s.authenticated = true
		logging.SessionDebug("initialize: token valid until %s", exp.Format(time.RFC3339))
		return
	}

	logging.Session("initialize: token expired at %s", exp.Format(time.RFC3339))
	s.accessToken = ""
	s.authenticated = false
}

// CheckAuthStatus is a lightweight point-in-time re-derivation of
// authenticated state from the persisted credentials. It is not expiry-aware;
// use Initialize for that.
func (s *Store) CheckAuthStatus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.readCredentials()
	if err != nil {
		return false
	}
	return creds.AccessToken != ""
}

// IsAuthenticated returns the in-memory authenticated flag.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// AccessToken returns the current in-memory access token ("" if absent).
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token ("" if absent).
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// persistLocked writes the current token pair to disk, or removes the file
// when both tokens are empty. Caller must hold the mutex.
func (s *Store) persistLocked() error {
	if s.accessToken == "" && s.refreshToken == "" {
		if err := os.Remove(s.credsFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove credentials: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.credsFile), 0700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(credentials{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.credsFile, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// readCredentials loads the persisted token pair. Caller must hold the mutex.
func (s *Store) readCredentials() (credentials, error) {
	var creds credentials
	data, err := os.ReadFile(s.credsFile)
	if err != nil {
		return creds, err
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return credentials{}, err
	}
	return creds, nil
}

// TokenExpiry decodes the exp claim from a JWT without verifying its
// signature. The backend remains the authority on token validity; this is
// only used for local expiry gating.
func TokenExpiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, fmt.Errorf("empty token")
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}
