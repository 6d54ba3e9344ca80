package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/workflow"
)

func workflowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflows",
		Short: "Manage workflow templates",
		Long:  `Build and edit the stage/task templates that seed job checklists.`,
	}

	cmd.AddCommand(listWorkflowsCmd())
	cmd.AddCommand(showWorkflowCmd())
	cmd.AddCommand(createWorkflowCmd())
	cmd.AddCommand(deleteWorkflowCmd())
	cmd.AddCommand(addStageCmd())
	cmd.AddCommand(deleteStageCmd())
	cmd.AddCommand(addTaskCmd())
	cmd.AddCommand(deleteTaskCmd())
	cmd.AddCommand(resolveTasksCmd())

	return cmd
}

func listWorkflowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all workflow templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			workflows, err := store.ListWorkflows(ctx)
			if err != nil {
				return fmt.Errorf("failed to list workflows: %w", err)
			}

			if len(workflows) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No workflows. Run 'roofline seed' or 'roofline workflows create'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Stages"),
				cli.BoldStyle.Render("Tasks"))
			for i := range workflows {
				tasks := 0
				for _, s := range workflows[i].Stages {
					tasks += len(s.Tasks)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
					workflows[i].ID, workflows[i].Name, len(workflows[i].Stages), tasks)
			}
			return nil
		},
	}
}

func showWorkflowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a workflow's stages and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			var b strings.Builder
			for _, stage := range wf.Stages {
				b.WriteString(cli.BoldStyle.Render(fmt.Sprintf("%s (%s)", stage.Name, stage.ID)))
				b.WriteString("\n")
				if len(stage.Tasks) == 0 {
					b.WriteString(cli.SubtleStyle.Render("  no tasks"))
					b.WriteString("\n")
				}
				for _, t := range stage.Tasks {
					sizes := "all sizes"
					if len(t.Sizes) > 0 {
						parts := make([]string, len(t.Sizes))
						for i, s := range t.Sizes {
							parts[i] = string(s)
						}
						sizes = strings.Join(parts, ", ")
					}
					b.WriteString(fmt.Sprintf("  [%s] %s (%s; %s)\n", t.Type, t.Label, t.ID, sizes))
				}
			}

			fmt.Println(cli.RenderBox(wf.Name, b.String()))
			return nil
		},
	}
}

func createWorkflowCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty workflow template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf := workflow.NewWorkflow(args[0], description)
			if err := store.SaveWorkflow(ctx, wf); err != nil {
				return fmt.Errorf("failed to save workflow: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created workflow %s (%s)", wf.Name, wf.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Workflow description")
	return cmd
}

func deleteWorkflowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workflow template",
		Long: `Delete a workflow template. Deletion is never blocked by jobs that were
seeded from it; their checklists are already materialized copies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteWorkflow(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete workflow: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Deleted workflow " + args[0]))
			return nil
		},
	}
}

func addStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-stage <workflow-id> [name]",
		Short: "Append a stage to a workflow",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			stage := workflow.AddStage(wf)
			if len(args) == 2 {
				if err := workflow.UpdateStage(wf, stage.ID, args[1]); err != nil {
					return err
				}
			}

			if err := store.SaveWorkflow(ctx, wf); err != nil {
				return fmt.Errorf("failed to save workflow: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added stage %s to %s", stage.ID, wf.Name)))
			return nil
		},
	}
}

func deleteStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-stage <workflow-id> <stage-id>",
		Short: "Remove a stage and its tasks from a workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			if err := workflow.DeleteStage(wf, args[1]); err != nil {
				return err
			}
			if err := store.SaveWorkflow(ctx, wf); err != nil {
				return fmt.Errorf("failed to save workflow: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted stage %s from %s", args[1], wf.Name)))
			return nil
		},
	}
}

func addTaskCmd() *cobra.Command {
	var (
		taskType string
		label    string
		assignee string
		sizes    []string
		options  []string
		required bool
	)

	cmd := &cobra.Command{
		Use:   "add-task <workflow-id> <stage-id>",
		Short: "Add a task to a workflow stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			tt, err := model.ParseTaskType(taskType)
			if err != nil {
				return err
			}

			task, err := workflow.AddTask(wf, args[1], tt)
			if err != nil {
				return err
			}

			err = workflow.UpdateTask(wf, args[1], task.ID, func(t *model.Task) {
				if label != "" {
					t.Label = label
				}
				t.Assignee = assignee
				t.Required = required
				if len(options) > 0 {
					t.Options = options
				}
				for _, s := range sizes {
					if size, sizeErr := model.ParseJobSize(s); sizeErr == nil {
						t.Sizes = append(t.Sizes, size)
					}
				}
			})
			if err != nil {
				return err
			}

			if err := store.SaveWorkflow(ctx, wf); err != nil {
				return fmt.Errorf("failed to save workflow: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added task %s to stage %s", task.ID, args[1])))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskType, "type", "checkbox", "Task type (checkbox, text, dropdown, image)")
	cmd.Flags().StringVar(&label, "label", "", "Task label")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Default assignee")
	cmd.Flags().StringSliceVar(&sizes, "sizes", nil, "Job sizes the task applies to (default: all)")
	cmd.Flags().StringSliceVar(&options, "options", nil, "Dropdown options")
	cmd.Flags().BoolVar(&required, "required", false, "Mark the task required")

	return cmd
}

func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-task <workflow-id> <stage-id> <task-id>",
		Short: "Remove a task from a workflow stage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			if err := workflow.DeleteTask(wf, args[1], args[2]); err != nil {
				return err
			}
			if err := store.SaveWorkflow(ctx, wf); err != nil {
				return fmt.Errorf("failed to save workflow: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted task %s from stage %s", args[2], args[1])))
			return nil
		},
	}
}

func resolveTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <workflow-id> <size> <stage-id>",
		Short: "Show the tasks a job of the given size would get at a stage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wf, err := store.GetWorkflow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get workflow: %w", err)
			}

			size, err := model.ParseJobSize(args[1])
			if err != nil {
				return err
			}

			tasks := workflow.ResolveTasks(wf, size, args[2])
			if len(tasks) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No tasks for this size and stage."))
				return nil
			}
			for _, t := range tasks {
				fmt.Printf("[%s] %s", t.Type, t.Label)
				if t.Assignee != "" {
					fmt.Printf("  (%s)", t.Assignee)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
