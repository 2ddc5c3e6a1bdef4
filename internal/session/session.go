// ABOUTME: Persistent session state for the admin CLI (token + current user)
// ABOUTME: Sole owner of session lifecycle: login, restore, logout, hard clear

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvToken overrides the persisted token when set, for scripting.
const EnvToken = "RFRP_TOKEN"

// ErrNoSession is returned when no usable session is available.
var ErrNoSession = errors.New("no active session (run 'rfrp-admin login')")

// User is the identity stored alongside the token.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Session is the persisted authentication state.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store owns the session file. All mutation goes through Save and Clear;
// nothing else in the process may write session state.
type Store struct {
	path    string
	logger  *slog.Logger
	current *Session
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: slog.Default().With("component", "session"),
	}
}

// DefaultPath returns the session file location under the XDG config dir.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "rfrp", "session.json")
}

// Load restores the session without a network round-trip. The RFRP_TOKEN
// env var takes precedence over the persisted file. A persisted token whose
// JWT expiry has already passed is treated as absent.
func (s *Store) Load() (*Session, error) {
	if token := os.Getenv(EnvToken); token != "" {
		s.current = &Session{Token: token}
		return s.current, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	if tokenExpired(sess.Token) {
		s.logger.Info("persisted token expired, discarding session")
		_ = s.Clear()
		return nil, ErrNoSession
	}

	s.current = &sess
	return s.current, nil
}

// Save persists the session with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	s.current = sess
	return nil
}

// Clear removes the persisted session. It is a purely local operation and
// always succeeds when no session exists.
func (s *Store) Clear() error {
	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Current returns the in-memory session, if any.
func (s *Store) Current() *Session {
	return s.current
}

// Token implements the API client's TokenSource. It returns an empty string
// when no session is active.
func (s *Store) Token() string {
	if token := os.Getenv(EnvToken); token != "" {
		return token
	}
	if s.current != nil {
		return s.current.Token
	}
	return ""
}

// tokenExpired inspects the JWT's exp claim without verifying the signature
// (the controller holds the secret; this is only a local pre-check to avoid
// a guaranteed 401). Tokens that do not parse or carry no expiry are left
// for the server to judge.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
