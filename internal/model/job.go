package model

import (
	"fmt"
	"time"
)

// JobStatus is a member of the canonical ordered pipeline-stage sequence.
type JobStatus string

// Pipeline stages, in order.
const (
	StatusLead             JobStatus = "lead"
	StatusEstimateSched    JobStatus = "estimate-scheduled"
	StatusEstimateProgress JobStatus = "estimate-progress"
	StatusJobPrep          JobStatus = "job-prep"
	StatusJobScheduled     JobStatus = "job-scheduled"
	StatusJobProgress      JobStatus = "job-progress"
	StatusJobPost          JobStatus = "job-post"
	StatusCompleted        JobStatus = "completed"
)

// PipelineStages is the canonical ordered pipeline-stage sequence. Stage
// ids of seeded workflows and job statuses are members of this sequence.
var PipelineStages = []JobStatus{
	StatusLead,
	StatusEstimateSched,
	StatusEstimateProgress,
	StatusJobPrep,
	StatusJobScheduled,
	StatusJobProgress,
	StatusJobPost,
	StatusCompleted,
}

// pipelineTitles maps stage ids to display titles.
var pipelineTitles = map[JobStatus]string{
	StatusLead:             "Lead",
	StatusEstimateSched:    "Estimate Scheduled",
	StatusEstimateProgress: "Estimate In Progress",
	StatusJobPrep:          "Job Prep",
	StatusJobScheduled:     "Job Scheduled",
	StatusJobProgress:      "Job In Progress",
	StatusJobPost:          "Post Job",
	StatusCompleted:        "Completed",
}

// Title returns the display title of the stage.
func (s JobStatus) Title() string {
	if t, ok := pipelineTitles[s]; ok {
		return t
	}
	return string(s)
}

// Index returns the position of the stage in the pipeline, or -1.
func (s JobStatus) Index() int {
	for i, st := range PipelineStages {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseJobStatus validates a pipeline stage id.
func ParseJobStatus(s string) (JobStatus, error) {
	if JobStatus(s).Index() < 0 {
		return "", fmt.Errorf("invalid job status %q (not a pipeline stage)", s)
	}
	return JobStatus(s), nil
}

// ChecklistItem is live per-job checklist state, distinct from the template
// Task it was seeded from. Its ID equals the seeding task's id so completion
// state survives re-derivations of the same size/status pair.
type ChecklistItem struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	Assignee  string `json:"assignee,omitempty"`
	Completed bool   `json:"completed"`
}

// JobPricing is a job's money snapshot. Balance is derived; mutate only
// through SetPayment so the balance invariant holds at the point of change.
type JobPricing struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// SetPayment records the contract total and amount paid, maintaining
// balance = total - paid.
func (p *JobPricing) SetPayment(total, paid float64) error {
	if total < 0 || paid < 0 {
		return fmt.Errorf("pricing amounts must be >= 0 (total %v, paid %v)", total, paid)
	}
	p.Total = total
	p.Paid = paid
	p.Balance = total - paid
	return nil
}

// Questionnaire is the intake record captured when a job is created.
type Questionnaire struct {
	HearAboutUs             string `json:"hearAboutUs"`
	CurrentIssue            string `json:"currentIssue"`
	IssueDuration           string `json:"issueDuration"`
	InsuranceClaim          string `json:"insuranceClaim" validate:"omitempty,oneof=Yes No"`
	Urgency                 string `json:"urgency"`
	HomeAge                 string `json:"homeAge"`
	ComponentAge            string `json:"componentAge"`
	RoofType                string `json:"roofType"`
	PreviousAttempts        string `json:"previousAttempts" validate:"omitempty,oneof=Yes No"`
	PreviousAttemptsDetails string `json:"previousAttemptsDetails"`
	CallbackTime            string `json:"callbackTime"`
}

// Job is the aggregate pipeline entity. It exclusively owns its checklist,
// pricing snapshot, and questionnaire.
type Job struct {
	CreatedAt      time.Time       `json:"createdAt"`
	Questionnaire  *Questionnaire  `json:"questionnaire,omitempty"`
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	ClientName     string          `json:"clientName"`
	SpouseName     string          `json:"spouseName,omitempty"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Trade          string          `json:"trade"`
	Status         JobStatus       `json:"status"`
	JobSize        JobSize         `json:"jobSize"`
	Priority       string          `json:"priority"`
	Notes          string          `json:"notes,omitempty"`
	Checklist      []ChecklistItem `json:"checklist"`
	Communications []Communication `json:"communications"`
	Pricing        JobPricing      `json:"pricing"`
}

// Validate checks job invariants.
func (j *Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job missing id")
	}
	if j.ClientName == "" {
		return fmt.Errorf("job missing client name")
	}
	if _, err := ParseJobStatus(string(j.Status)); err != nil {
		return err
	}
	if _, err := ParseJobSize(string(j.JobSize)); err != nil {
		return err
	}
	if j.Pricing.Balance != j.Pricing.Total-j.Pricing.Paid {
		return fmt.Errorf("job %s pricing balance %v does not equal total - paid", j.ID, j.Pricing.Balance)
	}
	return nil
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	out := *j
	out.Checklist = append([]ChecklistItem(nil), j.Checklist...)
	if j.Questionnaire != nil {
		q := *j.Questionnaire
		out.Questionnaire = &q
	}
	return &out
}
