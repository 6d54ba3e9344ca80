package model

import (
	"testing"
)

func TestTask_AppliesTo(t *testing.T) {
	tests := []struct {
		name  string
		sizes []JobSize
		size  JobSize
		want  bool
	}{
		{name: "no sizes applies to all", sizes: nil, size: SizeSmall, want: true},
		{name: "listed size applies", sizes: []JobSize{SizeLarge}, size: SizeLarge, want: true},
		{name: "unlisted size excluded", sizes: []JobSize{SizeLarge}, size: SizeMedium, want: false},
		{name: "multi-size list", sizes: []JobSize{SizeMedium, SizeLarge}, size: SizeMedium, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{ID: "t1", Type: TaskCheckbox, Sizes: tt.sizes}
			if got := task.AppliesTo(tt.size); got != tt.want {
				t.Errorf("AppliesTo(%s) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestWorkflow_Validate(t *testing.T) {
	valid := func() *Workflow {
		return &Workflow{
			ID:   "w1",
			Name: "Standard",
			Stages: []Stage{
				{ID: "s1", Name: "Lead", Tasks: []Task{
					{ID: "t1", Type: TaskCheckbox, Label: "Call back"},
					{ID: "t2", Type: TaskDropdown, Label: "Source", Options: []string{"Referral"}},
				}},
				{ID: "s2", Name: "Estimate"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Workflow)
		wantErr bool
	}{
		{name: "valid workflow", mutate: func(*Workflow) {}},
		{name: "missing name", mutate: func(w *Workflow) { w.Name = "" }, wantErr: true},
		{name: "duplicate stage id", mutate: func(w *Workflow) { w.Stages[1].ID = "s1" }, wantErr: true},
		{name: "task id colliding with stage id", mutate: func(w *Workflow) { w.Stages[0].Tasks[0].ID = "s2" }, wantErr: true},
		{name: "dropdown without options", mutate: func(w *Workflow) { w.Stages[0].Tasks[1].Options = nil }, wantErr: true},
		{name: "invalid task type", mutate: func(w *Workflow) { w.Stages[0].Tasks[0].Type = "slider" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid()
			tt.mutate(w)
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkflow_CloneIsDeep(t *testing.T) {
	w := &Workflow{
		ID:   "w1",
		Name: "Standard",
		Stages: []Stage{
			{ID: "s1", Name: "Lead", Tasks: []Task{
				{ID: "t1", Type: TaskDropdown, Label: "Source", Options: []string{"Referral"}},
			}},
		},
	}

	clone := w.Clone()
	clone.Stages[0].Tasks[0].Options[0] = "Website"
	clone.Stages[0].Name = "Renamed"

	if w.Stages[0].Tasks[0].Options[0] != "Referral" {
		t.Error("clone shares task options with original")
	}
	if w.Stages[0].Name != "Lead" {
		t.Error("clone shares stages with original")
	}
}
