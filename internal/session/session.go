// Package session persists the logged-in identity between CLI invocations.
// Authentication is mock-auth: plaintext password comparison against the
// local user table, suitable for local single-operator use only.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/perryhq/roofline/internal/common"
	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
)

// ErrNotLoggedIn reports that no session file exists.
var ErrNotLoggedIn = common.ErrNotLoggedIn

// ErrInvalidCredentials reports a failed login. The message never says
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Manager reads and writes the session file.
type Manager struct {
	store   service.Storage
	path    string
	latency time.Duration
}

// NewManager creates a session manager backed by the given storage and
// session file path. A non-zero latency is slept on login to mirror a real
// authentication round trip.
func NewManager(store service.Storage, path string, latency time.Duration) *Manager {
	return &Manager{store: store, path: path, latency: latency}
}

// Login verifies the credentials and writes the session file. The persisted
// record is the password-free session view of the user.
func (m *Manager) Login(ctx context.Context, email, password string) (model.SessionUser, error) {
	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return model.SessionUser{}, ctx.Err()
		}
	}

	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		slog.Debug("login lookup failed", "error", err)
		return model.SessionUser{}, ErrInvalidCredentials
	}
	if user.Password != password {
		return model.SessionUser{}, ErrInvalidCredentials
	}

	sess := user.Session()
	if err := m.write(sess); err != nil {
		return model.SessionUser{}, fmt.Errorf("writing session: %w", err)
	}
	slog.Info("Logged in", "user", sess.Name, "role", sess.Role)
	return sess, nil
}

// Logout removes the session file. Logging out while not logged in is not
// an error.
func (m *Manager) Logout() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Current returns the logged-in identity, or ErrNotLoggedIn.
func (m *Manager) Current() (model.SessionUser, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SessionUser{}, ErrNotLoggedIn
		}
		return model.SessionUser{}, fmt.Errorf("reading session file: %w", err)
	}

	var sess model.SessionUser
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.SessionUser{}, fmt.Errorf("parsing session file: %w", err)
	}
	return sess, nil
}

func (m *Manager) write(sess model.SessionUser) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
