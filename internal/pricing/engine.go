// Package pricing implements the quote calculation engine and the
// working-copy editor for pricing models.
package pricing

import (
	"fmt"
	"strings"

	"github.com/perryhq/roofline/internal/model"

	"github.com/shopspring/decimal"
)

// UnknownRateKeyError reports a line item whose category/table/key compound
// does not resolve to a rate in the model. Quote computation aborts rather
// than pricing the item at zero, which would understate a customer quote.
type UnknownRateKeyError struct {
	ModelID string
	Path    string
	Reason  string
}

func (e *UnknownRateKeyError) Error() string {
	return fmt.Sprintf("unknown rate key %q in pricing model %s: %s", e.Path, e.ModelID, e.Reason)
}

// Skylight option suffixes accepted in LineItem.Key ("C01_fixed").
const (
	skylightFixed  = "fixed"
	skylightVented = "vented"
)

// LineItem is a single measured request against a pricing model. Category,
// Table and Key address a rate through the model's path schema; Quantity is
// squares, linear feet, or an item count depending on the category.
//
// Skylight items are compound: Table is "models", Key is "<code>_fixed" or
// "<code>_vented", and PitchBand (when set) selects a pitch multiplier
// applied on top of unit price plus labor.
type LineItem struct {
	Category    string
	Table       string
	Key         string
	PitchBand   string
	Description string
	Quantity    float64
}

func (li *LineItem) path() string {
	return strings.Join([]string{li.Category, li.Table, li.Key}, ".")
}

// QuoteLine is one itemized row of a computed quote.
type QuoteLine struct {
	Description string
	Path        string
	UnitRate    decimal.Decimal
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
}

// Quote is the fully itemized output of ComputeQuote. Monetary fields are
// full precision; Final is rounded to two places at this output boundary.
type Quote struct {
	ModelID         string
	ModelName       string
	Lines           []QuoteLine
	RawSubtotal     decimal.Decimal
	AppliedTier     int // 1-based tier index, 0 when no tier matched
	Upcharge        decimal.Decimal
	GrossJobCost    decimal.Decimal
	DiscountPercent decimal.Decimal
	Discount        decimal.Decimal
	Final           decimal.Decimal
}

// ComputeQuote prices the line items against the model's rate tables and
// applies the global upcharge and discount rules in fixed order:
//
//  1. resolve each item's unit rate (unknown keys abort the computation)
//  2. item subtotal = rate × quantity
//  3. rawSubtotal = Σ item subtotals
//  4. scan upcharge tiers in declared order; the first tier whose threshold
//     is strictly greater than rawSubtotal applies
//  5. gross = rawSubtotal + upcharge
//  6. discount = gross × discount% / 100
//  7. final = gross - discount, rounded to 2 places
//
// The function is pure: it never mutates the model and identical inputs
// always produce identical output.
func ComputeQuote(m *model.PricingModel, items []LineItem) (*Quote, error) {
	if m == nil {
		return nil, fmt.Errorf("pricing model is nil")
	}
	if m.Rates == nil {
		return nil, fmt.Errorf("pricing model %s has no rate tables", m.ID)
	}

	q := &Quote{
		ModelID:         m.ID,
		ModelName:       m.Name,
		Lines:           make([]QuoteLine, 0, len(items)),
		DiscountPercent: decimal.NewFromFloat(m.Rates.GlobalRules.DiscountPercent),
	}

	raw := decimal.Zero
	for i := range items {
		line, err := priceItem(m, &items[i])
		if err != nil {
			return nil, err
		}
		q.Lines = append(q.Lines, line)
		raw = raw.Add(line.Amount)
	}
	q.RawSubtotal = raw

	// First-match tier scan in declared order. Tier order as authored
	// matters even when thresholds are not monotonically increasing.
	q.Upcharge = decimal.Zero
	for i, tier := range m.Rates.GlobalRules.Tiers {
		if decimal.NewFromFloat(tier.Threshold).GreaterThan(raw) {
			q.AppliedTier = i + 1
			q.Upcharge = decimal.NewFromFloat(tier.Amount)
			break
		}
	}

	q.GrossJobCost = q.RawSubtotal.Add(q.Upcharge)
	q.Discount = q.GrossJobCost.Mul(q.DiscountPercent).Div(decimal.NewFromInt(100))
	q.Final = q.GrossJobCost.Sub(q.Discount).Round(2)
	return q, nil
}

func priceItem(m *model.PricingModel, li *LineItem) (QuoteLine, error) {
	var rate decimal.Decimal
	var err error

	if li.Category == "skylights" && li.Table == "models" {
		rate, err = skylightRate(m, li)
	} else {
		rate, err = plainRate(m, li)
	}
	if err != nil {
		return QuoteLine{}, err
	}

	qty := decimal.NewFromFloat(li.Quantity)
	desc := li.Description
	if desc == "" {
		desc = li.path()
	}
	return QuoteLine{
		Description: desc,
		Path:        li.path(),
		UnitRate:    rate,
		Quantity:    qty,
		Amount:      rate.Mul(qty),
	}, nil
}

func plainRate(m *model.PricingModel, li *LineItem) (decimal.Decimal, error) {
	v, _, err := m.Rates.ResolveRate(li.path())
	if err != nil {
		return decimal.Zero, &UnknownRateKeyError{ModelID: m.ID, Path: li.path(), Reason: err.Error()}
	}
	return decimal.NewFromFloat(v), nil
}

// skylightRate resolves the compound skylight rate: fixed or vented unit
// price plus labor cost, scaled by the pitch multiplier when a pitch band
// is given.
func skylightRate(m *model.PricingModel, li *LineItem) (decimal.Decimal, error) {
	code, option, ok := strings.Cut(li.Key, "_")
	if !ok {
		return decimal.Zero, &UnknownRateKeyError{
			ModelID: m.ID, Path: li.path(),
			Reason: `skylight key must be "<model>_fixed" or "<model>_vented"`,
		}
	}

	sm, found := m.Rates.Skylights.Models[code]
	if !found {
		return decimal.Zero, &UnknownRateKeyError{
			ModelID: m.ID, Path: li.path(),
			Reason: fmt.Sprintf("unknown skylight model %q", code),
		}
	}

	var unit float64
	switch option {
	case skylightFixed:
		unit = sm.FixedPrice
	case skylightVented:
		unit = sm.VentedPrice
	default:
		return decimal.Zero, &UnknownRateKeyError{
			ModelID: m.ID, Path: li.path(),
			Reason: fmt.Sprintf("unknown skylight option %q", option),
		}
	}

	rate := decimal.NewFromFloat(unit).Add(decimal.NewFromFloat(sm.LaborCost))

	if li.PitchBand != "" {
		mult, found := m.Rates.Skylights.PitchMultipliers[li.PitchBand]
		if !found {
			return decimal.Zero, &UnknownRateKeyError{
				ModelID: m.ID, Path: "skylights.pitchMultipliers." + li.PitchBand,
				Reason: fmt.Sprintf("unknown pitch band %q", li.PitchBand),
			}
		}
		rate = rate.Mul(decimal.NewFromFloat(mult))
	}
	return rate, nil
}
