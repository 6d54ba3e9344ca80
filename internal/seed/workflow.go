package seed

import "github.com/perryhq/roofline/internal/model"

// StandardWorkflow returns the standard job-flow template. Its stage IDs
// match the pipeline stage IDs so job checklists can be resolved directly
// from the job's status. Task size lists realize per-size checklist
// variants; a task with no sizes applies to every job size.
func StandardWorkflow() *model.Workflow {
	large := []model.JobSize{model.SizeLarge}
	medium := []model.JobSize{model.SizeMedium}
	small := []model.JobSize{model.SizeSmall}
	mediumLarge := []model.JobSize{model.SizeMedium, model.SizeLarge}
	smallMedium := []model.JobSize{model.SizeSmall, model.SizeMedium}

	return &model.Workflow{
		ID:          "workflow-standard",
		Name:        "Standard Job Flow",
		Description: "Default checklist flow for every pipeline stage, with per-size task variants.",
		Stages: []model.Stage{
			{
				ID:   string(model.StatusLead),
				Name: "New Lead",
				Tasks: []model.Task{
					{
						ID:       "lead-referral-check",
						Type:     model.TaskCheckbox,
						Label:    "Initial Referral Check",
						Assignee: "Perry",
						Sizes:    large,
					},
					{
						ID:       "lead-site-visit",
						Type:     model.TaskCheckbox,
						Label:    "Schedule Perry for Site Visit",
						Assignee: "Perry",
						Sizes:    large,
					},
					{
						ID:       "lead-phone-screen",
						Type:     model.TaskCheckbox,
						Label:    "Phone Screening Call",
						Assignee: "Office",
						Sizes:    medium,
					},
					{
						ID:    "lead-log-source",
						Type:  model.TaskDropdown,
						Label: "Lead Source",
						Options: []string{
							"Referral", "Website", "Yard Sign", "Repeat Customer",
						},
						// Large leads arrive through the referral tasks above
						// and skip the generic source dropdown.
						Sizes: smallMedium,
					},
				},
			},
			{
				ID:   string(model.StatusEstimateSched),
				Name: "Estimate Scheduled",
				Tasks: []model.Task{
					{
						ID:       "est-confirm-appt",
						Type:     model.TaskCheckbox,
						Label:    "Confirm Appointment with Client",
						Assignee: "Office",
					},
					{
						ID:          "est-measure-prep",
						Type:        model.TaskCheckbox,
						Label:       "Pull Aerial Measurements",
						Description: "Order the measurement report before the visit.",
						Assignee:    "Office",
						Sizes:       mediumLarge,
					},
				},
			},
			{
				ID:   string(model.StatusEstimateProgress),
				Name: "Estimate in Progress",
				Tasks: []model.Task{
					{
						ID:       "est-site-photos",
						Type:     model.TaskImage,
						Label:    "Upload Site Photos",
						Assignee: "Estimator",
					},
					{
						ID:       "est-build-quote",
						Type:     model.TaskCheckbox,
						Label:    "Build and Send Quote",
						Assignee: "Estimator",
						Required: true,
					},
					{
						ID:    "est-notes",
						Type:  model.TaskText,
						Label: "Estimate Notes",
					},
				},
			},
			{
				ID:   string(model.StatusJobPrep),
				Name: "Job Preparation",
				Tasks: []model.Task{
					{
						ID:       "prep-contract-signed",
						Type:     model.TaskCheckbox,
						Label:    "Signed Contract on File",
						Assignee: "Office",
						Required: true,
					},
					{
						ID:       "prep-deposit",
						Type:     model.TaskCheckbox,
						Label:    "Collect Deposit",
						Assignee: "Office",
						Sizes:    mediumLarge,
					},
					{
						ID:       "prep-order-materials",
						Type:     model.TaskCheckbox,
						Label:    "Order Materials",
						Assignee: "Production",
					},
					{
						ID:       "prep-permit",
						Type:     model.TaskCheckbox,
						Label:    "Pull Permit",
						Assignee: "Production",
						Sizes:    large,
					},
				},
			},
			{
				ID:   string(model.StatusJobScheduled),
				Name: "Job Scheduled",
				Tasks: []model.Task{
					{
						ID:       "sched-crew-assigned",
						Type:     model.TaskDropdown,
						Label:    "Assign Crew",
						Assignee: "Production",
						Options:  []string{"Crew A", "Crew B", "Crew C", "Subcontractor"},
					},
					{
						ID:       "sched-client-notified",
						Type:     model.TaskCheckbox,
						Label:    "Notify Client of Start Date",
						Assignee: "Office",
					},
				},
			},
			{
				ID:   string(model.StatusJobProgress),
				Name: "Job in Progress",
				Tasks: []model.Task{
					{
						ID:       "work-progress-photos",
						Type:     model.TaskImage,
						Label:    "Progress Photos",
						Assignee: "Crew Lead",
					},
					{
						ID:       "work-dumpster",
						Type:     model.TaskCheckbox,
						Label:    "Dumpster Delivered",
						Assignee: "Production",
						Sizes:    mediumLarge,
					},
					{
						ID:       "work-quick-walkthrough",
						Type:     model.TaskCheckbox,
						Label:    "Same-Day Walkthrough",
						Assignee: "Crew Lead",
						Sizes:    small,
					},
				},
			},
			{
				ID:   string(model.StatusJobPost),
				Name: "Post-Job",
				Tasks: []model.Task{
					{
						ID:       "post-final-inspection",
						Type:     model.TaskCheckbox,
						Label:    "Final Inspection",
						Assignee: "Perry",
						Required: true,
					},
					{
						ID:       "post-final-invoice",
						Type:     model.TaskCheckbox,
						Label:    "Send Final Invoice",
						Assignee: "Office",
					},
					{
						ID:       "post-cleanup-photos",
						Type:     model.TaskImage,
						Label:    "Cleanup Photos",
						Assignee: "Crew Lead",
						Sizes:    mediumLarge,
					},
				},
			},
			{
				ID:    string(model.StatusCompleted),
				Name:  "Completed",
				Tasks: nil,
			},
		},
	}
}
