package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
)

// SaveJob inserts or replaces a job aggregate. The checklist,
// communication log, and questionnaire travel as JSON columns; queryable
// scalars get their own columns.
func (s *SQLiteStorage) SaveJob(ctx context.Context, j *model.Job) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateJob(j); err != nil {
		return err
	}

	checklist, err := json.Marshal(j.Checklist)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist: %w", err)
	}

	communications, err := json.Marshal(j.Communications)
	if err != nil {
		return fmt.Errorf("failed to marshal communications: %w", err)
	}

	var questionnaire sql.NullString
	if j.Questionnaire != nil {
		data, qErr := json.Marshal(j.Questionnaire)
		if qErr != nil {
			return fmt.Errorf("failed to marshal questionnaire: %w", qErr)
		}
		questionnaire = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO jobs (id, client_id, client_name, spouse_name, address, phone, email,
			trade, status, job_size, priority, notes, total, paid, balance,
			checklist, communications, questionnaire, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			client_name = excluded.client_name,
			spouse_name = excluded.spouse_name,
			address = excluded.address,
			phone = excluded.phone,
			email = excluded.email,
			trade = excluded.trade,
			status = excluded.status,
			job_size = excluded.job_size,
			priority = excluded.priority,
			notes = excluded.notes,
			total = excluded.total,
			paid = excluded.paid,
			balance = excluded.balance,
			checklist = excluded.checklist,
			communications = excluded.communications,
			questionnaire = excluded.questionnaire`

	if _, err := s.db.ExecContext(ctx, query,
		j.ID, j.ClientID, j.ClientName, j.SpouseName, j.Address, j.Phone, j.Email,
		j.Trade, string(j.Status), string(j.JobSize), j.Priority, j.Notes,
		j.Pricing.Total, j.Pricing.Paid, j.Pricing.Balance,
		string(checklist), string(communications), questionnaire, j.CreatedAt); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	slog.Debug("saved job", "id", j.ID, "client", j.ClientName, "status", j.Status)
	return nil
}

// GetJob returns the job with the given id.
func (s *SQLiteStorage) GetJob(ctx context.Context, id string) (*model.Job, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	j, err := scanJob(s.db.QueryRowContext(ctx, jobSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}
	return j, nil
}

// ListJobs returns jobs matching the filter, ordered by pipeline entry
// time. Search is a case-insensitive substring match over client name,
// address, and trade.
func (s *SQLiteStorage) ListJobs(ctx context.Context, filter service.JobFilter) ([]model.Job, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := jobSelect
	var where []string
	var args []any

	if filter.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where = append(where, `(client_name LIKE ? COLLATE NOCASE OR address LIKE ? COLLATE NOCASE OR trade LIKE ? COLLATE NOCASE)`)
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan job: %w", scanErr)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	slog.Debug("retrieved jobs", "count", len(jobs), "status", filter.Status, "search", filter.Search)
	return jobs, nil
}

// DeleteJob removes a job.
func (s *SQLiteStorage) DeleteJob(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

const jobSelect = `
	SELECT id, client_id, client_name, spouse_name, address, phone, email,
		trade, status, job_size, priority, notes, total, paid, balance,
		checklist, communications, questionnaire, created_at
	FROM jobs`

func scanJob(row rowScanner) (*model.Job, error) {
	var j model.Job
	var checklist, communications string
	var questionnaire sql.NullString
	if err := row.Scan(
		&j.ID, &j.ClientID, &j.ClientName, &j.SpouseName, &j.Address, &j.Phone, &j.Email,
		&j.Trade, &j.Status, &j.JobSize, &j.Priority, &j.Notes,
		&j.Pricing.Total, &j.Pricing.Paid, &j.Pricing.Balance,
		&checklist, &communications, &questionnaire, &j.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(checklist), &j.Checklist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist: %w", err)
	}
	if err := json.Unmarshal([]byte(communications), &j.Communications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal communications: %w", err)
	}
	if questionnaire.Valid {
		j.Questionnaire = &model.Questionnaire{}
		if err := json.Unmarshal([]byte(questionnaire.String), j.Questionnaire); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questionnaire: %w", err)
		}
	}
	return &j, nil
}
