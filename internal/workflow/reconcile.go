package workflow

import (
	"fmt"
	"log/slog"

	"github.com/perryhq/roofline/internal/model"
)

// SeedChecklist derives a fresh checklist for the job's current size and
// status from the workflow template. Item ids are the seeding task ids, so
// re-deriving the same size/status pair yields the same ids and completion
// state can be carried by the caller when it applies. Templates carry no
// completion state: every item starts not completed.
func SeedChecklist(job *model.Job, w *model.Workflow) []model.ChecklistItem {
	tasks := ResolveTasks(w, job.JobSize, string(job.Status))
	items := make([]model.ChecklistItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, model.ChecklistItem{
			ID:       t.ID,
			Task:     t.Label,
			Assignee: t.Assignee,
		})
	}
	if len(items) == 0 {
		slog.Debug("no standardized tasks for stage",
			"job", job.ID, "size", job.JobSize, "stage", job.Status)
	}
	return items
}

// ChangeJobSize sets the job's size and replaces the checklist wholesale
// from the template slice for the new size. Completion flags are not
// preserved: a size change implies a structurally different task set.
func ChangeJobSize(job *model.Job, w *model.Workflow, size model.JobSize) error {
	if _, err := model.ParseJobSize(string(size)); err != nil {
		return err
	}
	job.JobSize = size
	job.Checklist = SeedChecklist(job, w)
	return nil
}

// ChangeStatus moves the job to a new pipeline stage and replaces the
// checklist with the new stage's task list. No fuzzy matching of task
// identity across stages is attempted.
func ChangeStatus(job *model.Job, w *model.Workflow, status model.JobStatus) error {
	if _, err := model.ParseJobStatus(string(status)); err != nil {
		return err
	}
	job.Status = status
	job.Checklist = SeedChecklist(job, w)
	return nil
}

// ToggleItem flips the completed flag of exactly one checklist item,
// leaving every other item untouched.
func ToggleItem(job *model.Job, itemID string) error {
	for i := range job.Checklist {
		if job.Checklist[i].ID == itemID {
			job.Checklist[i].Completed = !job.Checklist[i].Completed
			return nil
		}
	}
	return fmt.Errorf("checklist item not found: %s", itemID)
}
