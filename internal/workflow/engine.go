// Package workflow implements the checklist template engine and the job
// checklist reconciler.
package workflow

import (
	"fmt"

	"github.com/perryhq/roofline/internal/model"

	"github.com/google/uuid"
)

// Not-found errors for stage and task addressing.
var (
	ErrStageNotFound = fmt.Errorf("stage not found")
	ErrTaskNotFound  = fmt.Errorf("task not found")
)

// NewWorkflow creates an empty named workflow template.
func NewWorkflow(name, description string) *model.Workflow {
	return &model.Workflow{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Stages:      []model.Stage{},
	}
}

// AddStage appends a stage with a generated unique id and a default name,
// returning the new stage.
func AddStage(w *model.Workflow) *model.Stage {
	w.Stages = append(w.Stages, model.Stage{
		ID:    uuid.NewString(),
		Name:  "New Stage",
		Tasks: []model.Task{},
	})
	return &w.Stages[len(w.Stages)-1]
}

// UpdateStage renames the stage with the given id.
func UpdateStage(w *model.Workflow, stageID, name string) error {
	st := w.Stage(stageID)
	if st == nil {
		return fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
	}
	st.Name = name
	return nil
}

// DeleteStage removes the stage with the given id, preserving the order of
// the remaining stages.
func DeleteStage(w *model.Workflow, stageID string) error {
	for i := range w.Stages {
		if w.Stages[i].ID == stageID {
			w.Stages = append(w.Stages[:i], w.Stages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
}

// AddTask appends a task with sane per-type defaults to the given stage and
// returns it.
func AddTask(w *model.Workflow, stageID string, taskType model.TaskType) (*model.Task, error) {
	if _, err := model.ParseTaskType(string(taskType)); err != nil {
		return nil, err
	}
	st := w.Stage(stageID)
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
	}
	task := model.Task{
		ID:       uuid.NewString(),
		Type:     taskType,
		Label:    "New Task",
		Required: false,
		Options:  []string{},
	}
	if taskType == model.TaskDropdown {
		task.Options = []string{"Option 1"}
	}
	st.Tasks = append(st.Tasks, task)
	return &st.Tasks[len(st.Tasks)-1], nil
}

// UpdateTask applies mutate to the task with the given id.
func UpdateTask(w *model.Workflow, stageID, taskID string, mutate func(*model.Task)) error {
	st := w.Stage(stageID)
	if st == nil {
		return fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
	}
	for i := range st.Tasks {
		if st.Tasks[i].ID == taskID {
			mutate(&st.Tasks[i])
			return st.Tasks[i].Validate()
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// DeleteTask removes the task with the given id from the stage.
func DeleteTask(w *model.Workflow, stageID, taskID string) error {
	st := w.Stage(stageID)
	if st == nil {
		return fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
	}
	for i := range st.Tasks {
		if st.Tasks[i].ID == taskID {
			st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// ResolveTasks returns the declared task list for the size/stage
// combination, in declared order. A missing stage or a stage with no tasks
// for that size yields an empty slice: that is expected steady state ("no
// standardized tasks for this stage"), not an error.
func ResolveTasks(w *model.Workflow, size model.JobSize, stageID string) []model.Task {
	st := w.Stage(stageID)
	if st == nil {
		return nil
	}
	var tasks []model.Task
	for i := range st.Tasks {
		if st.Tasks[i].AppliesTo(size) {
			tasks = append(tasks, st.Tasks[i].Clone())
		}
	}
	return tasks
}
