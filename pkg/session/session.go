// Package session manages the persisted login session.
//
// The session lives in two stores: a session file holding the token
// together with the user and organization blobs returned by login, which
// backs every in-process read, and a bare token file kept for shell
// tooling (scripts can feed it straight into curl). Both stores are only
// ever written through Save and Clear, so they cannot fall out of sync.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// TokenTTL bounds how long a stored token is trusted. Matches the expiry
// window the platform applies to issued tokens.
const TokenTTL = 3600 * time.Second

const (
	tokenFile   = "token"
	sessionFile = "session.json"
)

// ErrNoSession is returned when no usable session is stored.
var ErrNoSession = errors.New("no session")

// Session is the persisted login state.
type Session struct {
	Token        string               `json:"token"`
	User         *models.User         `json:"user,omitempty"`
	Organization *models.Organization `json:"organization,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func (s *Session) expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > TokenTTL
}

// Store reads and writes the session under a home directory.
type Store struct {
	home string
	now  func() time.Time
}

func NewStore(home string) *Store {
	return &Store{home: home, now: time.Now}
}

// Save persists the session to both stores. The session file is written
// first and the token file last, both via rename, so a crash mid-save
// leaves the externally visible token absent rather than dangling.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("save session: empty token")
	}

	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}

	if err := os.MkdirAll(s.home, 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := s.writeAtomic(sessionFile, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := s.writeAtomic(tokenFile, []byte(sess.Token)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Clear removes both stores. Missing files are not an error, so Clear is
// safe to call on an already logged-out client.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, sessionFile} {
		err := os.Remove(filepath.Join(s.home, name))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	return nil
}

// Load returns the stored session, or ErrNoSession when none exists or the
// token aged out.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(filepath.Join(s.home, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}

		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if sess.Token == "" || sess.expired(s.now()) {
		return nil, ErrNoSession
	}

	return &sess, nil
}

// Token is the single read path for the bearer token. It returns the empty
// string when no live session exists.
func (s *Store) Token() string {
	sess, err := s.Load()
	if err != nil {
		return ""
	}

	return sess.Token
}

// Authenticated reports whether a live token is present, the way the route
// guard sees it: presence only, no remote validation.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) writeAtomic(name string, data []byte) error {
	path := filepath.Join(s.home, name)

	tmp, err := os.CreateTemp(s.home, name+".*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	return os.Rename(tmp.Name(), path)
}
