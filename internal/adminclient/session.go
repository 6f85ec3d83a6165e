package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// sessionAppName is the config directory name for the admin console.
	sessionAppName = "pawsome-admin"

	// sessionFile is the stored session filename.
	sessionFile = "session.json"
)

// DefaultSessionPath returns the session file under the XDG config dir:
// XDG_CONFIG_HOME/pawsome-admin/session.json, or $HOME/.config/pawsome-admin.
func DefaultSessionPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, sessionAppName, sessionFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(sessionAppName, sessionFile)
	}
	return filepath.Join(home, ".config", sessionAppName, sessionFile)
}

// loginClient is the slice of the API client the session store needs.
type loginClient interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type persistedSession struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SessionStore is the single source of truth for the admin's
// authenticated identity. The token and username are held in memory and
// mirrored to a JSON file so the session survives restarts.
type SessionStore struct {
	client loginClient
	path   string

	mu       sync.Mutex
	token    string
	username string
}

// NewSessionStore creates a session store persisting to path. An empty
// path uses DefaultSessionPath.
func NewSessionStore(client loginClient, path string) *SessionStore {
	if path == "" {
		path = DefaultSessionPath()
	}
	return &SessionStore{client: client, path: path}
}

// Initialize loads a previously persisted session. A missing file leaves
// the store anonymous; a corrupt file is treated the same and removed.
func (s *SessionStore) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var stored persistedSession
	if err := json.Unmarshal(raw, &stored); err != nil || stored.Token == "" {
		_ = os.Remove(s.path)
		return nil
	}

	s.token = stored.Token
	s.username = stored.Username
	return nil
}

// Login exchanges credentials for a token and persists the session. On
// any failure the stored session is cleared so a stale token cannot
// outlive a failed re-authentication attempt.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	if blank(username) || blank(password) {
		return validationError("Username and password are required.")
	}

	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.clear()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = result.Token
	s.username = result.User.Username
	return s.persistLocked()
}

// Logout clears the session in memory and on disk. It never fails for a
// session that is already gone.
func (s *SessionStore) Logout() error {
	s.clear()
	return nil
}

// IsAuthenticated reports whether a token is present. Token validity is
// determined lazily by the API rejecting requests.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the current bearer token, or empty when anonymous.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Username returns the logged-in admin's username, or empty.
func (s *SessionStore) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *SessionStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		// Nothing actionable for the caller, the in-memory state is gone.
		return
	}
}

func (s *SessionStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	raw, err := json.Marshal(persistedSession{Token: s.token, Username: s.username})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
