package model

import (
	"fmt"
	"time"
)

// CommDelivered is the status recorded for mock email sends. Nothing
// leaves the machine; delivery is assumed.
const CommDelivered = "delivered"

// NotificationTrigger is an automated client-email event. A trigger fires
// when a job enters its stage; disabled triggers record nothing. At most
// one trigger is declared per stage.
type NotificationTrigger struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Stage    JobStatus `json:"stage"`
	Template string    `json:"template"`
	Enabled  bool      `json:"enabled"`
}

// Validate checks trigger invariants.
func (t *NotificationTrigger) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trigger missing id")
	}
	if t.Title == "" {
		return fmt.Errorf("trigger %s missing title", t.ID)
	}
	if _, err := ParseJobStatus(string(t.Stage)); err != nil {
		return fmt.Errorf("trigger %s: %w", t.ID, err)
	}
	return nil
}

// Communication is one entry in a job's client-communication log. Trigger
// names the automated event that produced the entry; it's empty for
// manual sends.
type Communication struct {
	ID       string    `json:"id"`
	Trigger  string    `json:"trigger,omitempty"`
	Subject  string    `json:"subject"`
	Template string    `json:"template,omitempty"`
	Status   string    `json:"status"`
	SentAt   time.Time `json:"sentAt"`
}
