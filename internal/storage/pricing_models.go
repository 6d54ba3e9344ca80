package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/perryhq/roofline/internal/model"
)

// SavePricingModel inserts or replaces a pricing model document. The nested
// rate tables are stored as a JSON column; nil rate tables (stub templates)
// persist as NULL.
func (s *SQLiteStorage) SavePricingModel(ctx context.Context, m *model.PricingModel) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePricingModel(m); err != nil {
		return err
	}

	var rates sql.NullString
	if m.Rates != nil {
		data, err := json.Marshal(m.Rates)
		if err != nil {
			return fmt.Errorf("failed to marshal rate tables: %w", err)
		}
		rates = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO pricing_models (id, name, description, icon, rate_tables, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			icon = excluded.icon,
			rate_tables = excluded.rate_tables,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.Icon, rates, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save pricing model: %w", err)
	}

	slog.Debug("saved pricing model", "id", m.ID, "name", m.Name)
	return nil
}

// GetPricingModel returns the pricing model with the given id.
func (s *SQLiteStorage) GetPricingModel(ctx context.Context, id string) (*model.PricingModel, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, icon, rate_tables, created_at, updated_at
		FROM pricing_models
		WHERE id = ?`

	m, err := scanPricingModel(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pricing model %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing model: %w", err)
	}
	return m, nil
}

// ListPricingModels returns all pricing models ordered by creation time.
func (s *SQLiteStorage) ListPricingModels(ctx context.Context) ([]model.PricingModel, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, icon, rate_tables, created_at, updated_at
		FROM pricing_models
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing models: %w", err)
	}
	defer rows.Close()

	var models []model.PricingModel
	for rows.Next() {
		m, scanErr := scanPricingModel(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan pricing model: %w", scanErr)
		}
		models = append(models, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing models: %w", err)
	}

	slog.Debug("retrieved pricing models", "count", len(models))
	return models, nil
}

// DeletePricingModel removes a pricing model.
func (s *SQLiteStorage) DeletePricingModel(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM pricing_models WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pricing model: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pricing model %s: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPricingModel(row rowScanner) (*model.PricingModel, error) {
	var m model.PricingModel
	var rates sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Icon, &rates, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if rates.Valid {
		m.Rates = &model.RateTables{}
		if err := json.Unmarshal([]byte(rates.String), m.Rates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rate tables: %w", err)
		}
	}
	return &m, nil
}
