package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/perryhq/roofline/internal/model"
)

// SaveNotificationTrigger inserts or replaces a trigger.
func (s *SQLiteStorage) SaveNotificationTrigger(ctx context.Context, t *model.NotificationTrigger) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrigger(t); err != nil {
		return err
	}

	query := `
		INSERT INTO notification_triggers (id, title, stage, template, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			stage = excluded.stage,
			template = excluded.template,
			enabled = excluded.enabled`

	if _, err := s.db.ExecContext(ctx, query,
		t.ID, t.Title, string(t.Stage), t.Template, t.Enabled); err != nil {
		return fmt.Errorf("failed to save notification trigger: %w", err)
	}

	slog.Debug("saved notification trigger", "id", t.ID, "stage", t.Stage, "enabled", t.Enabled)
	return nil
}

// GetNotificationTrigger returns the trigger with the given id.
func (s *SQLiteStorage) GetNotificationTrigger(ctx context.Context, id string) (*model.NotificationTrigger, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT id, title, stage, template, enabled FROM notification_triggers WHERE id = ?`

	var t model.NotificationTrigger
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.Stage, &t.Template, &t.Enabled)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification trigger %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification trigger: %w", err)
	}
	return &t, nil
}

// ListNotificationTriggers returns all triggers in pipeline-stage order.
func (s *SQLiteStorage) ListNotificationTriggers(ctx context.Context) ([]model.NotificationTrigger, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, stage, template, enabled FROM notification_triggers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification triggers: %w", err)
	}
	defer rows.Close()

	var triggers []model.NotificationTrigger
	for rows.Next() {
		var t model.NotificationTrigger
		if err := rows.Scan(&t.ID, &t.Title, &t.Stage, &t.Template, &t.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan notification trigger: %w", err)
		}
		triggers = append(triggers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification triggers: %w", err)
	}

	// Stage strings don't sort in pipeline order, so SQL can't do this.
	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].Stage.Index() < triggers[j].Stage.Index()
	})
	return triggers, nil
}
