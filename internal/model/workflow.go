package model

import (
	"fmt"
)

// JobSize classifies the scale of a job and selects which template tasks
// apply to it.
type JobSize string

// Job sizes.
const (
	SizeSmall  JobSize = "Small"
	SizeMedium JobSize = "Medium"
	SizeLarge  JobSize = "Large"
)

// ParseJobSize validates a job size string.
func ParseJobSize(s string) (JobSize, error) {
	switch JobSize(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return JobSize(s), nil
	default:
		return "", fmt.Errorf("invalid job size %q (want Small, Medium, or Large)", s)
	}
}

// TaskType is the input widget a template task renders as.
type TaskType string

// Task types.
const (
	TaskCheckbox TaskType = "checkbox"
	TaskText     TaskType = "text"
	TaskDropdown TaskType = "dropdown"
	TaskImage    TaskType = "image"
)

// ParseTaskType validates a task type string.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TaskCheckbox, TaskText, TaskDropdown, TaskImage:
		return TaskType(s), nil
	default:
		return "", fmt.Errorf("invalid task type %q (want checkbox, text, dropdown, or image)", s)
	}
}

// Task is a single template field within a workflow stage. Options is only
// meaningful for dropdown tasks. Sizes restricts the task to particular job
// sizes; an empty slice means the task applies to every size.
type Task struct {
	ID          string    `json:"id"`
	Type        TaskType  `json:"type"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee,omitempty"`
	Options     []string  `json:"options"`
	Sizes       []JobSize `json:"sizes,omitempty"`
	Required    bool      `json:"required"`
}

// AppliesTo reports whether the task is declared for the given job size.
func (t *Task) AppliesTo(size JobSize) bool {
	if len(t.Sizes) == 0 {
		return true
	}
	for _, s := range t.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() Task {
	out := *t
	out.Options = append([]string(nil), t.Options...)
	out.Sizes = append([]JobSize(nil), t.Sizes...)
	return out
}

// Validate checks task invariants.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task missing id")
	}
	if _, err := ParseTaskType(string(t.Type)); err != nil {
		return err
	}
	if t.Type == TaskDropdown && len(t.Options) == 0 {
		return fmt.Errorf("dropdown task %q must declare at least one option", t.Label)
	}
	return nil
}

// Stage is an ordered group of tasks within a workflow. Ordering is implied
// by slice position.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Clone returns an independent copy of the stage.
func (s *Stage) Clone() Stage {
	out := *s
	out.Tasks = make([]Task, len(s.Tasks))
	for i := range s.Tasks {
		out.Tasks[i] = s.Tasks[i].Clone()
	}
	return out
}

// Workflow is a reusable checklist template: an ordered list of stages,
// each an ordered list of typed tasks. A workflow is not tied to any job
// until applied; jobs keep a frozen copy of whatever was seeded from it.
type Workflow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stages      []Stage `json:"stages"`
}

// Clone returns an independent copy of the workflow.
func (w *Workflow) Clone() *Workflow {
	out := *w
	out.Stages = make([]Stage, len(w.Stages))
	for i := range w.Stages {
		out.Stages[i] = w.Stages[i].Clone()
	}
	return &out
}

// Stage returns the stage with the given id, or nil.
func (w *Workflow) Stage(id string) *Stage {
	for i := range w.Stages {
		if w.Stages[i].ID == id {
			return &w.Stages[i]
		}
	}
	return nil
}

// Validate checks workflow invariants: non-empty name, unique ids, valid
// tasks.
func (w *Workflow) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("workflow missing id")
	}
	if w.Name == "" {
		return fmt.Errorf("workflow missing name")
	}
	seen := make(map[string]bool)
	for _, st := range w.Stages {
		if st.ID == "" {
			return fmt.Errorf("stage %q missing id", st.Name)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate id %q in workflow %q", st.ID, w.Name)
		}
		seen[st.ID] = true
		for i := range st.Tasks {
			t := &st.Tasks[i]
			if err := t.Validate(); err != nil {
				return fmt.Errorf("stage %q: %w", st.Name, err)
			}
			if seen[t.ID] {
				return fmt.Errorf("duplicate id %q in workflow %q", t.ID, w.Name)
			}
			seen[t.ID] = true
		}
	}
	return nil
}
