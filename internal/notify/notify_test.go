package notify

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/storage"
)

func newTestRecorder(t *testing.T) (*Recorder, *storage.SQLiteStorage) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	triggers := []model.NotificationTrigger{
		{ID: "new-lead", Title: "New Lead Auto-Response", Stage: model.StatusLead, Template: "lead-welcome", Enabled: true},
		{ID: "job-started", Title: "Job Commenced Notification", Stage: model.StatusJobProgress, Template: "production-start", Enabled: false},
	}
	for i := range triggers {
		if err := store.SaveNotificationTrigger(ctx, &triggers[i]); err != nil {
			t.Fatalf("failed to save trigger %s: %v", triggers[i].ID, err)
		}
	}

	return NewRecorder(store), store
}

func sampleJob(status model.JobStatus) *model.Job {
	return &model.Job{
		ID:         "j1",
		ClientName: "Tom Hendricks",
		Status:     status,
		JobSize:    model.SizeLarge,
	}
}

func TestStageEnteredFiresEnabledTrigger(t *testing.T) {
	ctx := context.Background()
	rec, _ := newTestRecorder(t)

	job := sampleJob(model.StatusLead)
	comm, err := rec.StageEntered(ctx, job)
	if err != nil {
		t.Fatalf("StageEntered() error: %v", err)
	}
	if comm == nil {
		t.Fatal("enabled trigger did not fire")
	}
	if comm.Trigger != "new-lead" || comm.Subject != "New Lead Auto-Response" {
		t.Errorf("recorded entry = %+v", comm)
	}
	if comm.Status != model.CommDelivered || comm.SentAt.IsZero() {
		t.Errorf("delivery fields = %q at %v", comm.Status, comm.SentAt)
	}
	if len(job.Communications) != 1 || job.Communications[0].ID != comm.ID {
		t.Errorf("job log = %+v", job.Communications)
	}
}

func TestStageEnteredSkipsDisabledTrigger(t *testing.T) {
	ctx := context.Background()
	rec, _ := newTestRecorder(t)

	job := sampleJob(model.StatusJobProgress)
	comm, err := rec.StageEntered(ctx, job)
	if err != nil {
		t.Fatalf("StageEntered() error: %v", err)
	}
	if comm != nil || len(job.Communications) != 0 {
		t.Errorf("disabled trigger fired: %+v", comm)
	}
}

func TestStageEnteredNoTriggerForStage(t *testing.T) {
	ctx := context.Background()
	rec, _ := newTestRecorder(t)

	job := sampleJob(model.StatusEstimateProgress)
	comm, err := rec.StageEntered(ctx, job)
	if err != nil {
		t.Fatalf("StageEntered() error: %v", err)
	}
	if comm != nil {
		t.Errorf("stage without a trigger fired: %+v", comm)
	}
}

func TestStageEnteredAppendsToLog(t *testing.T) {
	ctx := context.Background()
	rec, store := newTestRecorder(t)

	job := sampleJob(model.StatusLead)
	job.Communications = []model.Communication{
		{ID: "existing", Subject: "Estimate Confirmation", Status: model.CommDelivered},
	}
	if _, err := rec.StageEntered(ctx, job); err != nil {
		t.Fatalf("StageEntered() error: %v", err)
	}
	if len(job.Communications) != 2 || job.Communications[0].ID != "existing" {
		t.Fatalf("log = %+v", job.Communications)
	}

	// The appended entry survives a save/load round trip.
	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error: %v", err)
	}
	got, err := store.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error: %v", err)
	}
	if len(got.Communications) != 2 {
		t.Errorf("persisted log has %d entries, want 2", len(got.Communications))
	}
}
