package workflow

import (
	"testing"

	"github.com/perryhq/roofline/internal/model"
)

func leadJob(size model.JobSize) *model.Job {
	return &model.Job{
		ID:         "j1",
		ClientName: "Tom Hendricks",
		Status:     model.StatusLead,
		JobSize:    size,
	}
}

func TestSeedChecklist(t *testing.T) {
	w := sizedWorkflow()

	job := leadJob(model.SizeLarge)
	items := SeedChecklist(job, w)

	if len(items) != 3 {
		t.Fatalf("seeded %d items, want 3", len(items))
	}
	if items[0].ID != "t-large-1" || items[0].Task != "Initial Referral Check" {
		t.Errorf("first item = %+v", items[0])
	}
	for _, item := range items {
		if item.Completed {
			t.Errorf("item %s seeded as completed; templates carry no completion state", item.ID)
		}
	}
}

func TestSeedChecklist_EmptyStage(t *testing.T) {
	w := sizedWorkflow()
	job := leadJob(model.SizeLarge)
	job.Status = model.StatusCompleted

	items := SeedChecklist(job, w)
	if len(items) != 0 {
		t.Errorf("seeded %d items for an empty stage, want 0", len(items))
	}
}

func TestChangeJobSize_ReplacesChecklistWholesale(t *testing.T) {
	w := sizedWorkflow()
	job := leadJob(model.SizeMedium)
	job.Checklist = SeedChecklist(job, w)
	job.Checklist[0].Completed = true // medium task, will not survive

	if err := ChangeJobSize(job, w, model.SizeLarge); err != nil {
		t.Fatalf("ChangeJobSize() error: %v", err)
	}

	if job.JobSize != model.SizeLarge {
		t.Errorf("JobSize = %s, want Large", job.JobSize)
	}
	if len(job.Checklist) != 3 {
		t.Fatalf("checklist has %d items after resize, want 3", len(job.Checklist))
	}
	for _, item := range job.Checklist {
		if item.Completed {
			t.Errorf("item %s kept completion across a size change", item.ID)
		}
	}
}

func TestChangeJobSize_InvalidSize(t *testing.T) {
	w := sizedWorkflow()
	job := leadJob(model.SizeMedium)
	job.Checklist = SeedChecklist(job, w)

	if err := ChangeJobSize(job, w, "XL"); err == nil {
		t.Fatal("ChangeJobSize() accepted an invalid size")
	}
	if job.JobSize != model.SizeMedium {
		t.Error("failed size change mutated the job")
	}
	if len(job.Checklist) != 2 {
		t.Error("failed size change replaced the checklist")
	}
}

func TestChangeStatus_ReplacesChecklist(t *testing.T) {
	w := sizedWorkflow()
	job := leadJob(model.SizeLarge)
	job.Checklist = SeedChecklist(job, w)
	job.Checklist[0].Completed = true

	if err := ChangeStatus(job, w, model.StatusCompleted); err != nil {
		t.Fatalf("ChangeStatus() error: %v", err)
	}
	if job.Status != model.StatusCompleted {
		t.Errorf("Status = %s, want completed", job.Status)
	}
	if len(job.Checklist) != 0 {
		t.Errorf("checklist has %d items at an empty stage, want 0", len(job.Checklist))
	}

	if err := ChangeStatus(job, w, "archived"); err == nil {
		t.Error("ChangeStatus() accepted a status outside the pipeline")
	}
}

func TestToggleItem(t *testing.T) {
	w := sizedWorkflow()
	job := leadJob(model.SizeLarge)
	job.Checklist = SeedChecklist(job, w)

	if err := ToggleItem(job, "t-large-2"); err != nil {
		t.Fatalf("ToggleItem() error: %v", err)
	}

	for _, item := range job.Checklist {
		want := item.ID == "t-large-2"
		if item.Completed != want {
			t.Errorf("item %s completed = %v, want %v", item.ID, item.Completed, want)
		}
	}

	// Toggling again flips it back off.
	if err := ToggleItem(job, "t-large-2"); err != nil {
		t.Fatalf("ToggleItem() error: %v", err)
	}
	for _, item := range job.Checklist {
		if item.Completed {
			t.Errorf("item %s still completed after second toggle", item.ID)
		}
	}

	if err := ToggleItem(job, "missing"); err == nil {
		t.Error("ToggleItem() accepted an unknown item id")
	}
}
