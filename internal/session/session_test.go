package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	u := &model.User{ID: "u1", Name: "Perry", Email: "perry@perryhq.com", Role: model.RoleAdmin, Password: "perry123"}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	path := filepath.Join(dir, "session.json")
	return NewManager(store, path, 0), path
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	m, path := newTestManager(t)

	sess, err := m.Login(ctx, "perry@perryhq.com", "perry123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if sess.Name != "Perry" || sess.Role != model.RoleAdmin {
		t.Errorf("session = %+v", sess)
	}

	current, err := m.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if current.Email != "perry@perryhq.com" {
		t.Errorf("Current() = %+v", current)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Current() after logout error = %v, want ErrNotLoggedIn", err)
	}

	// Logging out twice is fine.
	if err := m.Logout(); err != nil {
		t.Errorf("second Logout() error: %v", err)
	}
	_ = path
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "perry@perryhq.com", password: "nope"},
		{name: "unknown email", email: "ghost@perryhq.com", password: "perry123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
			if _, err := m.Current(); !errors.Is(err, ErrNotLoggedIn) {
				t.Error("failed login left a session behind")
			}
		})
	}
}

func TestSessionFileOmitsPassword(t *testing.T) {
	ctx := context.Background()
	m, path := newTestManager(t)

	if _, err := m.Login(ctx, "perry@perryhq.com", "perry123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading session file: %v", err)
	}
	lower := strings.ToLower(string(data))
	if strings.Contains(lower, "perry123") || strings.Contains(lower, "password") {
		t.Errorf("session file leaks credentials: %s", data)
	}
}
