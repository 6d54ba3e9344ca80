package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/perryhq/roofline/internal/common"
	"github.com/perryhq/roofline/internal/model"
)

// ErrDuplicateEmail reports an attempt to create a user with an email that
// is already registered.
var ErrDuplicateEmail = fmt.Errorf("%w: email already registered", common.ErrDuplicateEntry)

// CreateUser inserts a new team member record.
func (s *SQLiteStorage) CreateUser(ctx context.Context, u *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(u); err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, role, password) VALUES (?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, string(u.Role), u.Password); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("created user", "id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

// GetUserByEmail returns the user registered under the email, or a
// not-found error.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	query := `SELECT id, name, email, role, password FROM users WHERE email = ?`

	var u model.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all team members ordered by name.
func (s *SQLiteStorage) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, role, password FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
