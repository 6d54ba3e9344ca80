// Package notify records automated client communications against jobs.
// Email delivery is mocked: a fired trigger appends a delivered entry to
// the job's communication log instead of sending anything.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
)

// Recorder fires notification triggers for pipeline events.
type Recorder struct {
	store service.Storage
}

// NewRecorder returns a recorder backed by the given storage.
func NewRecorder(store service.Storage) *Recorder {
	return &Recorder{store: store}
}

// StageEntered fires the trigger declared for the job's current stage, if
// one exists and is enabled, appending the resulting entry to the job's
// communication log. It returns the recorded entry, or nil when nothing
// fired. The job is mutated in memory; the caller saves it.
func (r *Recorder) StageEntered(ctx context.Context, job *model.Job) (*model.Communication, error) {
	triggers, err := r.store.ListNotificationTriggers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification triggers: %w", err)
	}

	for i := range triggers {
		t := &triggers[i]
		if t.Stage != job.Status {
			continue
		}
		if !t.Enabled {
			return nil, nil
		}
		comm := model.Communication{
			ID:       uuid.NewString(),
			Trigger:  t.ID,
			Subject:  t.Title,
			Template: t.Template,
			Status:   model.CommDelivered,
			SentAt:   time.Now().UTC(),
		}
		job.Communications = append(job.Communications, comm)
		return &comm, nil
	}
	return nil, nil
}
