package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/pricing"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage pricing models",
		Long:  `List, create, duplicate, edit, and delete the pricing models quotes are computed from.`,
	}

	cmd.AddCommand(listModelsCmd())
	cmd.AddCommand(showModelCmd())
	cmd.AddCommand(addModelCmd())
	cmd.AddCommand(duplicateModelCmd())
	cmd.AddCommand(deleteModelCmd())
	cmd.AddCommand(setRateCmd())
	cmd.AddCommand(getRateCmd())

	return cmd
}

func listModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pricing models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			models, err := store.ListPricingModels(ctx)
			if err != nil {
				return fmt.Errorf("failed to list pricing models: %w", err)
			}

			if len(models) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No pricing models. Run 'roofline seed' or 'roofline models add'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Rates"),
				cli.BoldStyle.Render("Description"))
			for i := range models {
				rates := "empty"
				if models[i].Rates != nil {
					rates = "populated"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					models[i].ID, models[i].Name, rates, models[i].Description)
			}
			return nil
		},
	}
}

func showModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one pricing model's global rules and categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := store.GetPricingModel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get pricing model: %w", err)
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("Name:        %s\n", m.Name))
			b.WriteString(fmt.Sprintf("Description: %s\n", m.Description))
			b.WriteString(fmt.Sprintf("Updated:     %s\n", m.UpdatedAt.Format(time.RFC3339)))
			if m.Rates == nil {
				b.WriteString(cli.SubtleStyle.Render("No rate tables defined yet."))
				fmt.Println(cli.RenderBox(m.ID, b.String()))
				return nil
			}

			b.WriteString("\n")
			b.WriteString(cli.BoldStyle.Render("Global rules"))
			b.WriteString("\n")
			for i, tier := range m.Rates.GlobalRules.Tiers {
				b.WriteString(fmt.Sprintf("  tier %d: below %.2f adds %.2f\n", i+1, tier.Threshold, tier.Amount))
			}
			b.WriteString(fmt.Sprintf("  discount: %.2f%%\n", m.Rates.GlobalRules.DiscountPercent))
			b.WriteString(fmt.Sprintf("\nSkylight models: %d, flat components: %d\n",
				len(m.Rates.Skylights.Models), len(m.Rates.FlatRoofing.Components)))

			fmt.Println(cli.RenderBox(m.ID, b.String()))
			return nil
		},
	}
}

func addModelCmd() *cobra.Command {
	var (
		description string
		icon        string
		fromID      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a pricing model, optionally from an existing template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			now := time.Now().UTC()
			m := &model.PricingModel{
				ID:          uuid.NewString(),
				Name:        args[0],
				Description: description,
				Icon:        icon,
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			if fromID != "" {
				src, err := store.GetPricingModel(ctx, fromID)
				if err != nil {
					return fmt.Errorf("failed to load source model %s: %w", fromID, err)
				}
				m.Rates = src.Clone().Rates
				if icon == "" {
					m.Icon = src.Icon
				}
			}

			if err := store.SavePricingModel(ctx, m); err != nil {
				return fmt.Errorf("failed to save pricing model: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created pricing model %s (%s)", m.Name, m.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Model description")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon name")
	cmd.Flags().StringVar(&fromID, "from", "", "Copy rate tables from this existing model or template")

	return cmd
}

func duplicateModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Duplicate a pricing model under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			src, err := store.GetPricingModel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get pricing model: %w", err)
			}

			dup := src.Duplicate(uuid.NewString(), time.Now().UTC())
			if err := store.SavePricingModel(ctx, dup); err != nil {
				return fmt.Errorf("failed to save duplicate: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Duplicated %s as %s (%s)", src.Name, dup.Name, dup.ID)))
			return nil
		},
	}
}

func deleteModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pricing model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeletePricingModel(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete pricing model: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Deleted pricing model " + args[0]))
			return nil
		},
	}
}

func setRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <path>=<value> [<path>=<value>...]",
		Short: "Edit rate values on a working copy, then save",
		Long: `Apply one or more rate edits to a pricing model. Edits are staged on a
working copy and written back in a single save; an invalid path or value
rejects the whole batch and leaves the stored model untouched.

Paths address rates through the model's table schema, for example:
  shingleMetalBase.gaf.7-8_1layer=410
  skylights.models.C06.laborCost=320
  globalRules.upcharge_tier_2_amount=1100`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := store.GetPricingModel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get pricing model: %w", err)
			}

			editor, err := pricing.NewEditor(m)
			if err != nil {
				return err
			}

			for _, arg := range args[1:] {
				path, raw, found := strings.Cut(arg, "=")
				if !found {
					return fmt.Errorf("expected <path>=<value>, got %q", arg)
				}
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q for %s: %w", raw, path, err)
				}
				if err := editor.Set(path, value); err != nil {
					return err
				}
			}

			saved, err := editor.Save(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to save pricing model: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %d rate(s) on %s", len(args)-1, saved.Name)))
			return nil
		},
	}
}

func getRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <path>",
		Short: "Read a single rate value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := store.GetPricingModel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get pricing model: %w", err)
			}
			if m.Rates == nil {
				return fmt.Errorf("pricing model %s has no rate tables", m.ID)
			}

			value, _, err := m.Rates.ResolveRate(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s = %v\n", args[1], value)
			return nil
		},
	}
}
