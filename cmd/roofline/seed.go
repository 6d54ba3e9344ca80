package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/seed"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference data set",
		Long: `Load the reference data set: the pricing model templates (including the
full roofing model), the standard job-flow workflow, and a starter set of
clients, jobs, and team members. Records with matching ids are
overwritten; existing team member emails are left alone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seed.Seed(ctx, store, os.Stderr); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Reference data loaded"))
			return nil
		},
	}
}
