package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/pricing"
)

func quoteCmd() *cobra.Command {
	var (
		modelID   string
		items     []string
		skylights []string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute an itemized quote against a pricing model",
		Long: `Compute a quote from measured line items. Each --item addresses a rate
by its path and carries a quantity (squares, linear feet, or a count):

  roofline quote --model model-roofing \
    --item shingleMetalBase.gaf.7-8_1layer=24 \
    --item trimEdges.standard.ridge=42 \
    --skylight C06:vented:2:9-10

Skylight items price as unit price plus labor, scaled by the pitch band
multiplier when one is given. An unknown rate key aborts the whole quote.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if len(items) == 0 && len(skylights) == 0 {
				return fmt.Errorf("at least one --item or --skylight is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := store.GetPricingModel(ctx, modelID)
			if err != nil {
				return fmt.Errorf("failed to get pricing model: %w", err)
			}

			lineItems := make([]pricing.LineItem, 0, len(items)+len(skylights))
			for _, raw := range items {
				li, err := parseItem(raw)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, li)
			}
			for _, raw := range skylights {
				li, err := parseSkylight(raw)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, li)
			}

			quote, err := pricing.ComputeQuote(m, lineItems)
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderQuote(quote))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "model-roofing", "Pricing model id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Line item as <category.table.key>=<quantity> (repeatable)")
	cmd.Flags().StringArrayVar(&skylights, "skylight", nil, "Skylight as <code>:<fixed|vented>:<quantity>[:<pitch band>] (repeatable)")

	return cmd
}

// parseItem parses "<category.table.key>=<quantity>" into a line item.
func parseItem(raw string) (pricing.LineItem, error) {
	path, qtyStr, found := strings.Cut(raw, "=")
	if !found {
		return pricing.LineItem{}, fmt.Errorf("expected <path>=<quantity>, got %q", raw)
	}

	qty, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil {
		return pricing.LineItem{}, fmt.Errorf("invalid quantity %q in item %q: %w", qtyStr, raw, err)
	}

	segments := strings.Split(path, ".")
	if len(segments) < 3 {
		return pricing.LineItem{}, fmt.Errorf("item path %q needs <category>.<table>.<key>", path)
	}

	return pricing.LineItem{
		Category: segments[0],
		Table:    segments[1],
		Key:      strings.Join(segments[2:], "."),
		Quantity: qty,
	}, nil
}

// parseSkylight parses "<code>:<fixed|vented>:<quantity>[:<pitch band>]".
func parseSkylight(raw string) (pricing.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return pricing.LineItem{}, fmt.Errorf("expected <code>:<fixed|vented>:<quantity>[:<pitch band>], got %q", raw)
	}

	qty, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return pricing.LineItem{}, fmt.Errorf("invalid skylight quantity %q: %w", parts[2], err)
	}

	li := pricing.LineItem{
		Category:    "skylights",
		Table:       "models",
		Key:         parts[0] + "_" + parts[1],
		Quantity:    qty,
		Description: fmt.Sprintf("Skylight %s (%s)", parts[0], parts[1]),
	}
	if len(parts) == 4 {
		li.PitchBand = parts[3]
	}
	return li, nil
}
