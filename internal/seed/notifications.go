package seed

import "github.com/perryhq/roofline/internal/model"

// Triggers returns the automated client-email events. Each fires when a
// job enters its stage; the production-start notice ships disabled until
// crews confirm scheduling emails are wanted.
func Triggers() []model.NotificationTrigger {
	return []model.NotificationTrigger{
		{
			ID:       "new-lead",
			Title:    "New Lead Auto-Response",
			Stage:    model.StatusLead,
			Template: "lead-welcome",
			Enabled:  true,
		},
		{
			ID:       "estimate-booked",
			Title:    "Estimate Confirmation",
			Stage:    model.StatusEstimateSched,
			Template: "estimate-details",
			Enabled:  true,
		},
		{
			ID:       "job-started",
			Title:    "Job Commenced Notification",
			Stage:    model.StatusJobProgress,
			Template: "production-start",
			Enabled:  false,
		},
		{
			ID:       "payment-due",
			Title:    "Payment Reminder",
			Stage:    model.StatusJobPost,
			Template: "invoice-reminder",
			Enabled:  true,
		},
		{
			ID:       "completion-survey",
			Title:    "Job Completion Survey",
			Stage:    model.StatusCompleted,
			Template: "feedback-request",
			Enabled:  true,
		},
	}
}
