package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/perryhq/roofline/internal/model"
)

// SaveClient inserts or replaces a client directory entry.
func (s *SQLiteStorage) SaveClient(ctx context.Context, c *model.Client) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClient(c); err != nil {
		return err
	}

	query := `
		INSERT INTO clients (id, name, spouse_name, email, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			spouse_name = excluded.spouse_name,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address`

	if _, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.SpouseName, c.Email, c.Phone, c.Address, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}

	slog.Debug("saved client", "id", c.ID, "name", c.Name)
	return nil
}

// GetClient returns the client with the given id.
func (s *SQLiteStorage) GetClient(ctx context.Context, id string) (*model.Client, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, spouse_name, email, phone, address, created_at
		FROM clients
		WHERE id = ?`

	var c model.Client
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.SpouseName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	return &c, nil
}

// ListClients returns clients ordered by name, optionally filtered by a
// case-insensitive substring of name, email, or address.
func (s *SQLiteStorage) ListClients(ctx context.Context, search string) ([]model.Client, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, spouse_name, email, phone, address, created_at
		FROM clients`
	var args []any
	if search != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE OR address LIKE ? COLLATE NOCASE`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.SpouseName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}
	return clients, nil
}
