package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/notify"
	"github.com/perryhq/roofline/internal/service"
	"github.com/perryhq/roofline/internal/workflow"
)

// defaultWorkflowID is the template job checklists are seeded from unless a
// job command is told otherwise.
const defaultWorkflowID = "workflow-standard"

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage the job pipeline",
		Long:  `Create jobs, move them through the pipeline, and work their per-stage checklists.`,
	}

	cmd.AddCommand(listJobsCmd())
	cmd.AddCommand(boardCmd())
	cmd.AddCommand(showJobCmd())
	cmd.AddCommand(createJobCmd())
	cmd.AddCommand(moveJobCmd())
	cmd.AddCommand(resizeJobCmd())
	cmd.AddCommand(checkJobCmd())
	cmd.AddCommand(logJobCmd())
	cmd.AddCommand(payJobCmd())
	cmd.AddCommand(deleteJobCmd())

	return cmd
}

func listJobsCmd() *cobra.Command {
	var (
		status string
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by stage or search text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.ListJobs(ctx, service.JobFilter{
				Status: status,
				Search: search,
				Limit:  limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No jobs match."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Client"),
				cli.BoldStyle.Render("Trade"),
				cli.BoldStyle.Render("Stage"),
				cli.BoldStyle.Render("Size"),
				cli.BoldStyle.Render("Balance"))
			for i := range jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
					jobs[i].ID, jobs[i].ClientName, jobs[i].Trade,
					jobs[i].Status.Title(), jobs[i].JobSize, jobs[i].Pricing.Balance)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by pipeline stage id")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive search over client, address, and trade")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows (0 = no limit)")

	return cmd
}

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Render the pipeline as a stage board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.ListJobs(ctx, service.JobFilter{})
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			fmt.Print(cli.RenderBoard(jobs))
			return nil
		},
	}
}

func showJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a job's details and checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			fmt.Println(cli.RenderJob(job))
			return nil
		},
	}
}

func createJobCmd() *cobra.Command {
	var (
		clientID   string
		trade      string
		size       string
		priority   string
		notes      string
		workflowID string
		hearAbout  string
		issue      string
		urgency    string
		insurance  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job for a client and seed its first checklist",
		Long: `Create a job in the lead stage. Contact details are copied from the
client record; the checklist is seeded from the workflow template for
the job's size. The intake questionnaire fields are optional.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := store.GetClient(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to get client %s: %w", clientID, err)
			}

			jobSize, err := model.ParseJobSize(size)
			if err != nil {
				return err
			}

			job := &model.Job{
				ID:         uuid.NewString(),
				ClientID:   client.ID,
				ClientName: client.Name,
				SpouseName: client.SpouseName,
				Address:    client.Address,
				Phone:      client.Phone,
				Email:      client.Email,
				Trade:      trade,
				Status:     model.StatusLead,
				JobSize:    jobSize,
				Priority:   priority,
				Notes:      notes,
				CreatedAt:  time.Now().UTC(),
			}
			if hearAbout != "" || issue != "" || urgency != "" || insurance != "" {
				job.Questionnaire = &model.Questionnaire{
					HearAboutUs:    hearAbout,
					CurrentIssue:   issue,
					Urgency:        urgency,
					InsuranceClaim: insurance,
				}
			}

			if err := seedJobChecklist(ctx, store, job, workflowID); err != nil {
				return err
			}

			comm, err := notify.NewRecorder(store).StageEntered(ctx, job)
			if err != nil {
				return err
			}

			if err := store.SaveJob(ctx, job); err != nil {
				return fmt.Errorf("failed to save job: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created job %s for %s", job.ID, job.ClientName)))
			if comm != nil {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Sent %q to %s", comm.Subject, job.Email)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client id (required)")
	cmd.Flags().StringVar(&trade, "trade", "Roofing", "Trade (Roofing, Siding, Gutters, Windows)")
	cmd.Flags().StringVar(&size, "size", "Medium", "Job size (Small, Medium, Large)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&workflowID, "workflow", defaultWorkflowID, "Workflow template to seed checklists from")
	cmd.Flags().StringVar(&hearAbout, "hear-about", "", "Questionnaire: how did they hear about us")
	cmd.Flags().StringVar(&issue, "issue", "", "Questionnaire: current issue")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Questionnaire: urgency")
	cmd.Flags().StringVar(&insurance, "insurance", "", "Questionnaire: insurance claim (Yes/No)")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func moveJobCmd() *cobra.Command {
	var workflowID string

	cmd := &cobra.Command{
		Use:   "move <job-id> <stage-id>",
		Short: "Move a job to another pipeline stage",
		Long: `Move a job to a new pipeline stage. The checklist is replaced wholesale
with the new stage's tasks for the job's size; completion state does not
carry across stages.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			wf, err := store.GetWorkflow(ctx, workflowID)
			if err != nil {
				return fmt.Errorf("failed to get workflow %s: %w", workflowID, err)
			}

			status, err := model.ParseJobStatus(args[1])
			if err != nil {
				return err
			}
			if err := workflow.ChangeStatus(job, wf, status); err != nil {
				return err
			}

			comm, err := notify.NewRecorder(store).StageEntered(ctx, job)
			if err != nil {
				return err
			}

			if err := store.SaveJob(ctx, job); err != nil {
				return fmt.Errorf("failed to save job: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Moved %s to %s", job.ClientName, status.Title())))
			if comm != nil {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Sent %q to %s", comm.Subject, job.Email)))
			}
			fmt.Print(cli.RenderChecklist(job.Checklist))
			return nil
		},
	}

	cmd.Flags().StringVar(&workflowID, "workflow", defaultWorkflowID, "Workflow template to seed the new checklist from")
	return cmd
}

func resizeJobCmd() *cobra.Command {
	var workflowID string

	cmd := &cobra.Command{
		Use:   "resize <job-id> <size>",
		Short: "Change a job's size and re-seed its checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			wf, err := store.GetWorkflow(ctx, workflowID)
			if err != nil {
				return fmt.Errorf("failed to get workflow %s: %w", workflowID, err)
			}

			size, err := model.ParseJobSize(args[1])
			if err != nil {
				return err
			}
			if err := workflow.ChangeJobSize(job, wf, size); err != nil {
				return err
			}

			if err := store.SaveJob(ctx, job); err != nil {
				return fmt.Errorf("failed to save job: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Resized %s to %s", job.ClientName, size)))
			fmt.Print(cli.RenderChecklist(job.Checklist))
			return nil
		},
	}

	cmd.Flags().StringVar(&workflowID, "workflow", defaultWorkflowID, "Workflow template to seed the new checklist from")
	return cmd
}

func checkJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <job-id> <item-id>",
		Short: "Toggle one checklist item's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			if err := workflow.ToggleItem(job, args[1]); err != nil {
				return err
			}
			if err := store.SaveJob(ctx, job); err != nil {
				return fmt.Errorf("failed to save job: %w", err)
			}

			fmt.Print(cli.RenderChecklist(job.Checklist))
			return nil
		},
	}
}

func logJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <job-id>",
		Short: "Show a job's client-communication log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			if len(job.Communications) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No communications recorded for " + job.ClientName + "."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Sent"),
				cli.BoldStyle.Render("Subject"),
				cli.BoldStyle.Render("Trigger"),
				cli.BoldStyle.Render("Status"))
			for i := range job.Communications {
				c := &job.Communications[i]
				trigger := c.Trigger
				if trigger == "" {
					trigger = "manual"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					c.SentAt.Format("2006-01-02 15:04"), c.Subject, trigger, c.Status)
			}
			return nil
		},
	}
}

func payJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <job-id> <total> <paid>",
		Short: "Record a job's contract total and amount paid",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			var total, paid float64
			if _, err := fmt.Sscanf(args[1], "%f", &total); err != nil {
				return fmt.Errorf("invalid total %q: %w", args[1], err)
			}
			if _, err := fmt.Sscanf(args[2], "%f", &paid); err != nil {
				return fmt.Errorf("invalid paid amount %q: %w", args[2], err)
			}

			if err := job.Pricing.SetPayment(total, paid); err != nil {
				return err
			}
			if err := store.SaveJob(ctx, job); err != nil {
				return fmt.Errorf("failed to save job: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded payment: total %.2f, paid %.2f, balance %.2f",
				job.Pricing.Total, job.Pricing.Paid, job.Pricing.Balance)))
			return nil
		},
	}
}

func deleteJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteJob(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete job: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Deleted job " + args[0]))
			return nil
		},
	}
}

// seedJobChecklist seeds a new job's checklist from the named workflow. A
// missing workflow leaves the checklist empty rather than failing creation.
func seedJobChecklist(ctx context.Context, store service.Storage, job *model.Job, workflowID string) error {
	wf, err := store.GetWorkflow(ctx, workflowID)
	if err != nil {
		slog.Warn("Workflow not found, seeding empty checklist", "workflow", workflowID, "error", err)
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Workflow %s not found; created with an empty checklist", workflowID)))
		job.Checklist = []model.ChecklistItem{}
		return nil
	}
	job.Checklist = workflow.SeedChecklist(job, wf)
	return nil
}
