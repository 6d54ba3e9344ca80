package workflow

import (
	"errors"
	"testing"

	"github.com/perryhq/roofline/internal/model"
)

func TestNewWorkflow(t *testing.T) {
	w := NewWorkflow("Standard", "default flow")
	if w.ID == "" {
		t.Error("NewWorkflow() left ID empty")
	}
	if w.Name != "Standard" || w.Description != "default flow" {
		t.Errorf("NewWorkflow() = %q/%q", w.Name, w.Description)
	}
	if len(w.Stages) != 0 {
		t.Errorf("new workflow has %d stages, want 0", len(w.Stages))
	}
}

func TestAddStage(t *testing.T) {
	w := NewWorkflow("Standard", "")
	first := AddStage(w)
	second := AddStage(w)

	if first.ID == second.ID {
		t.Error("AddStage() generated duplicate stage ids")
	}
	if second.Name != "New Stage" {
		t.Errorf("default stage name = %q", second.Name)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("workflow invalid after AddStage: %v", err)
	}
}

func TestAddTask_Defaults(t *testing.T) {
	w := NewWorkflow("Standard", "")
	stage := AddStage(w)

	task, err := AddTask(w, stage.ID, model.TaskDropdown)
	if err != nil {
		t.Fatalf("AddTask() error: %v", err)
	}
	if len(task.Options) == 0 {
		t.Error("dropdown task created without a default option")
	}
	if task.Required {
		t.Error("new task defaulted to required")
	}

	if _, err := AddTask(w, stage.ID, "slider"); err == nil {
		t.Error("AddTask() accepted an invalid task type")
	}
	if _, err := AddTask(w, "missing", model.TaskCheckbox); !errors.Is(err, ErrStageNotFound) {
		t.Errorf("AddTask() on missing stage error = %v, want ErrStageNotFound", err)
	}
}

func TestUpdateTask_ValidatesResult(t *testing.T) {
	w := NewWorkflow("Standard", "")
	stage := AddStage(w)
	task, err := AddTask(w, stage.ID, model.TaskDropdown)
	if err != nil {
		t.Fatalf("AddTask() error: %v", err)
	}

	// Stripping all options from a dropdown must fail validation.
	err = UpdateTask(w, stage.ID, task.ID, func(t *model.Task) { t.Options = nil })
	if err == nil {
		t.Error("UpdateTask() accepted a dropdown with no options")
	}

	err = UpdateTask(w, stage.ID, task.ID, func(t *model.Task) {
		t.Options = []string{"Crew A", "Crew B"}
		t.Label = "Assign Crew"
	})
	if err != nil {
		t.Errorf("UpdateTask() error: %v", err)
	}
	if got := w.Stages[0].Tasks[0].Label; got != "Assign Crew" {
		t.Errorf("task label = %q after update", got)
	}
}

func TestDeleteStageAndTask(t *testing.T) {
	w := NewWorkflow("Standard", "")
	s1 := AddStage(w)
	s2 := AddStage(w)
	task, err := AddTask(w, s1.ID, model.TaskCheckbox)
	if err != nil {
		t.Fatalf("AddTask() error: %v", err)
	}
	s1ID, s2ID := s1.ID, s2.ID

	if err := DeleteTask(w, s1ID, task.ID); err != nil {
		t.Fatalf("DeleteTask() error: %v", err)
	}
	if err := DeleteTask(w, s1ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second DeleteTask() error = %v, want ErrTaskNotFound", err)
	}

	if err := DeleteStage(w, s1ID); err != nil {
		t.Fatalf("DeleteStage() error: %v", err)
	}
	if len(w.Stages) != 1 || w.Stages[0].ID != s2ID {
		t.Errorf("stages after delete = %v", w.Stages)
	}
	if err := DeleteStage(w, s1ID); !errors.Is(err, ErrStageNotFound) {
		t.Errorf("second DeleteStage() error = %v, want ErrStageNotFound", err)
	}
}

func sizedWorkflow() *model.Workflow {
	return &model.Workflow{
		ID:   "w1",
		Name: "Standard",
		Stages: []model.Stage{
			{ID: "lead", Name: "New Lead", Tasks: []model.Task{
				{ID: "t-large-1", Type: model.TaskCheckbox, Label: "Initial Referral Check", Sizes: []model.JobSize{model.SizeLarge}},
				{ID: "t-large-2", Type: model.TaskCheckbox, Label: "Schedule Perry for Site Visit", Sizes: []model.JobSize{model.SizeLarge}},
				{ID: "t-medium", Type: model.TaskCheckbox, Label: "Phone Screening Call", Sizes: []model.JobSize{model.SizeMedium}},
				{ID: "t-all", Type: model.TaskText, Label: "Lead Notes"},
			}},
			{ID: "completed", Name: "Completed"},
		},
	}
}

func TestResolveTasks(t *testing.T) {
	w := sizedWorkflow()

	tests := []struct {
		name    string
		size    model.JobSize
		stageID string
		wantIDs []string
	}{
		{name: "large lead", size: model.SizeLarge, stageID: "lead", wantIDs: []string{"t-large-1", "t-large-2", "t-all"}},
		{name: "medium lead", size: model.SizeMedium, stageID: "lead", wantIDs: []string{"t-medium", "t-all"}},
		{name: "small lead only shared", size: model.SizeSmall, stageID: "lead", wantIDs: []string{"t-all"}},
		{name: "stage with no tasks", size: model.SizeLarge, stageID: "completed", wantIDs: nil},
		{name: "missing stage", size: model.SizeLarge, stageID: "archived", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := ResolveTasks(w, tt.size, tt.stageID)
			if len(tasks) != len(tt.wantIDs) {
				t.Fatalf("ResolveTasks() returned %d tasks, want %d", len(tasks), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if tasks[i].ID != id {
					t.Errorf("task[%d] = %s, want %s (order must be declared order)", i, tasks[i].ID, id)
				}
			}
		})
	}
}

func TestResolveTasks_ReturnsClones(t *testing.T) {
	w := sizedWorkflow()
	tasks := ResolveTasks(w, model.SizeLarge, "lead")
	tasks[0].Label = "mutated"

	if w.Stages[0].Tasks[0].Label != "Initial Referral Check" {
		t.Error("ResolveTasks() returned aliases into the template")
	}
}
