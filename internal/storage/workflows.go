package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/perryhq/roofline/internal/model"
)

// SaveWorkflow inserts or replaces a workflow template. Stages are stored
// as a JSON column since they are only ever read as a whole document.
func (s *SQLiteStorage) SaveWorkflow(ctx context.Context, w *model.Workflow) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWorkflow(w); err != nil {
		return err
	}

	stages, err := json.Marshal(w.Stages)
	if err != nil {
		return fmt.Errorf("failed to marshal stages: %w", err)
	}

	query := `
		INSERT INTO workflows (id, name, description, stages)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			stages = excluded.stages`

	if _, err := s.db.ExecContext(ctx, query, w.ID, w.Name, w.Description, string(stages)); err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	slog.Debug("saved workflow", "id", w.ID, "name", w.Name, "stages", len(w.Stages))
	return nil
}

// GetWorkflow returns the workflow with the given id.
func (s *SQLiteStorage) GetWorkflow(ctx context.Context, id string) (*model.Workflow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT id, name, description, stages FROM workflows WHERE id = ?`

	w, err := scanWorkflow(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workflow %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow: %w", err)
	}
	return w, nil
}

// ListWorkflows returns all workflow templates ordered by name.
func (s *SQLiteStorage) ListWorkflows(ctx context.Context) ([]model.Workflow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, stages FROM workflows ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}
	defer rows.Close()

	var workflows []model.Workflow
	for rows.Next() {
		w, scanErr := scanWorkflow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", scanErr)
		}
		workflows = append(workflows, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}
	return workflows, nil
}

// DeleteWorkflow removes a workflow template. Jobs already seeded from it
// keep their frozen checklists; deletion is never blocked by usage.
func (s *SQLiteStorage) DeleteWorkflow(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM workflows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("workflow %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanWorkflow(row rowScanner) (*model.Workflow, error) {
	var w model.Workflow
	var stages string
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &stages); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(stages), &w.Stages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stages: %w", err)
	}
	return &w, nil
}
