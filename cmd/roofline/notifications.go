package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/service"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage automated client-email triggers",
		Long: `List the automated email triggers and turn them on or off. Triggers
fire when a job enters their pipeline stage; sends are recorded on the
job's communication log.`,
	}

	cmd.AddCommand(listNotificationsCmd())
	cmd.AddCommand(setNotificationCmd("enable", true))
	cmd.AddCommand(setNotificationCmd("disable", false))

	return cmd
}

func listNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List email triggers and their state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			triggers, err := store.ListNotificationTriggers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list notification triggers: %w", err)
			}

			if len(triggers) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No triggers configured. Run `roofline seed` to load the defaults."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("On"),
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Title"),
				cli.BoldStyle.Render("Stage"),
				cli.BoldStyle.Render("Template"))
			for i := range triggers {
				box := cli.UncheckedBox
				if triggers[i].Enabled {
					box = cli.CheckedBox
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					box, triggers[i].ID, triggers[i].Title,
					triggers[i].Stage.Title(), triggers[i].Template)
			}
			return nil
		},
	}
}

func setNotificationCmd(verb string, enabled bool) *cobra.Command {
	short := "Turn an email trigger on"
	if !enabled {
		short = "Turn an email trigger off"
	}

	return &cobra.Command{
		Use:   verb + " <trigger-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := setTriggerEnabled(ctx, store, args[0], enabled); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Trigger %s %sd", args[0], verb)))
			return nil
		},
	}
}

func setTriggerEnabled(ctx context.Context, store service.Storage, id string, enabled bool) error {
	trigger, err := store.GetNotificationTrigger(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get notification trigger %s: %w", id, err)
	}
	trigger.Enabled = enabled
	if err := store.SaveNotificationTrigger(ctx, trigger); err != nil {
		return fmt.Errorf("failed to save notification trigger %s: %w", id, err)
	}
	return nil
}
