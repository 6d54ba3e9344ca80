package pricing

import (
	"errors"
	"testing"

	"github.com/perryhq/roofline/internal/model"
)

func testModel() *model.PricingModel {
	return &model.PricingModel{
		ID:   "m1",
		Name: "Roofing",
		Rates: &model.RateTables{
			ShingleMetalBase: model.ShingleMetalBase{
				GAF: model.RateTable{"7-8_1layer": 400},
			},
			TrimEdges: model.TrimEdges{
				Standard: model.RateTable{"ridge": 8},
			},
			Skylights: model.Skylights{
				Models: map[string]model.SkylightModel{
					"C06": {FixedPrice: 450, VentedPrice: 625, LaborCost: 300},
				},
				PitchMultipliers: model.RateTable{"9-10": 1.5},
			},
			GlobalRules: model.GlobalRules{
				Tiers: [3]model.UpchargeTier{
					{Threshold: 5000, Amount: 1500},
					{Threshold: 7500, Amount: 1000},
					{Threshold: 10000, Amount: 750},
				},
				DiscountPercent: 23,
			},
		},
	}
}

func TestComputeQuote_EndToEnd(t *testing.T) {
	m := testModel()
	items := []LineItem{
		{Category: "shingleMetalBase", Table: "gaf", Key: "7-8_1layer", Quantity: 10},
	}

	q, err := ComputeQuote(m, items)
	if err != nil {
		t.Fatalf("ComputeQuote() error: %v", err)
	}

	// 400 x 10 = 4000; tier 1 (below 5000) adds 1500; 23% off 5500.
	if got := q.RawSubtotal.StringFixed(2); got != "4000.00" {
		t.Errorf("RawSubtotal = %s, want 4000.00", got)
	}
	if q.AppliedTier != 1 {
		t.Errorf("AppliedTier = %d, want 1", q.AppliedTier)
	}
	if got := q.Upcharge.StringFixed(2); got != "1500.00" {
		t.Errorf("Upcharge = %s, want 1500.00", got)
	}
	if got := q.GrossJobCost.StringFixed(2); got != "5500.00" {
		t.Errorf("GrossJobCost = %s, want 5500.00", got)
	}
	if got := q.Discount.StringFixed(2); got != "1265.00" {
		t.Errorf("Discount = %s, want 1265.00", got)
	}
	if got := q.Final.StringFixed(2); got != "4235.00" {
		t.Errorf("Final = %s, want 4235.00", got)
	}
}

func TestComputeQuote_TierFirstMatch(t *testing.T) {
	tests := []struct {
		name         string
		quantity     float64
		wantTier     int
		wantUpcharge string
	}{
		// 400/square shingle rate drives the raw subtotal.
		{name: "below first threshold", quantity: 10, wantTier: 1, wantUpcharge: "1500.00"},
		{name: "between first and second", quantity: 15, wantTier: 2, wantUpcharge: "1000.00"},
		{name: "between second and third", quantity: 20, wantTier: 3, wantUpcharge: "750.00"},
		{name: "at third threshold no tier", quantity: 25, wantTier: 0, wantUpcharge: "0.00"},
		{name: "beyond all thresholds", quantity: 100, wantTier: 0, wantUpcharge: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			q, err := ComputeQuote(m, []LineItem{
				{Category: "shingleMetalBase", Table: "gaf", Key: "7-8_1layer", Quantity: tt.quantity},
			})
			if err != nil {
				t.Fatalf("ComputeQuote() error: %v", err)
			}
			if q.AppliedTier != tt.wantTier {
				t.Errorf("AppliedTier = %d, want %d", q.AppliedTier, tt.wantTier)
			}
			if got := q.Upcharge.StringFixed(2); got != tt.wantUpcharge {
				t.Errorf("Upcharge = %s, want %s", got, tt.wantUpcharge)
			}
		})
	}
}

func TestComputeQuote_TierOrderIsAuthoredOrder(t *testing.T) {
	// With non-monotonic thresholds the declared order wins: tier 1 (7500)
	// matches a 6000 subtotal before tier 2 (5000) is even considered.
	m := testModel()
	m.Rates.GlobalRules.Tiers = [3]model.UpchargeTier{
		{Threshold: 7500, Amount: 1000},
		{Threshold: 5000, Amount: 1500},
		{Threshold: 10000, Amount: 750},
	}
	q, err := ComputeQuote(m, []LineItem{
		{Category: "shingleMetalBase", Table: "gaf", Key: "7-8_1layer", Quantity: 15},
	})
	if err != nil {
		t.Fatalf("ComputeQuote() error: %v", err)
	}
	if q.AppliedTier != 1 {
		t.Errorf("AppliedTier = %d, want 1", q.AppliedTier)
	}
	if got := q.Upcharge.StringFixed(2); got != "1000.00" {
		t.Errorf("Upcharge = %s, want 1000.00", got)
	}
}

func TestComputeQuote_SkylightCompoundRate(t *testing.T) {
	m := testModel()
	q, err := ComputeQuote(m, []LineItem{
		{Category: "skylights", Table: "models", Key: "C06_vented", PitchBand: "9-10", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("ComputeQuote() error: %v", err)
	}

	// (625 + 300) x 1.5 = 1387.50 per unit.
	if got := q.Lines[0].UnitRate.StringFixed(2); got != "1387.50" {
		t.Errorf("UnitRate = %s, want 1387.50", got)
	}
	if got := q.Lines[0].Amount.StringFixed(2); got != "2775.00" {
		t.Errorf("Amount = %s, want 2775.00", got)
	}
}

func TestComputeQuote_UnknownKeyAborts(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
	}{
		{name: "unknown table key", item: LineItem{Category: "trimEdges", Table: "standard", Key: "soffit", Quantity: 1}},
		{name: "unknown category", item: LineItem{Category: "decks", Table: "standard", Key: "ridge", Quantity: 1}},
		{name: "unknown skylight model", item: LineItem{Category: "skylights", Table: "models", Key: "Z99_fixed", Quantity: 1}},
		{name: "malformed skylight key", item: LineItem{Category: "skylights", Table: "models", Key: "C06", Quantity: 1}},
		{name: "unknown skylight option", item: LineItem{Category: "skylights", Table: "models", Key: "C06_solar", Quantity: 1}},
		{name: "unknown pitch band", item: LineItem{Category: "skylights", Table: "models", Key: "C06_fixed", PitchBand: "20+", Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			// A valid first item must not rescue a quote with a bad item.
			items := []LineItem{
				{Category: "trimEdges", Table: "standard", Key: "ridge", Quantity: 10},
				tt.item,
			}
			q, err := ComputeQuote(m, items)
			if err == nil {
				t.Fatalf("ComputeQuote() = %v, want error", q.Final)
			}
			var unknownErr *UnknownRateKeyError
			if !errors.As(err, &unknownErr) {
				t.Errorf("error type = %T, want *UnknownRateKeyError", err)
			}
			if q != nil {
				t.Error("aborted quote must be nil, not a partial result")
			}
		})
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	m := testModel()
	items := []LineItem{
		{Category: "shingleMetalBase", Table: "gaf", Key: "7-8_1layer", Quantity: 24},
		{Category: "trimEdges", Table: "standard", Key: "ridge", Quantity: 42},
		{Category: "skylights", Table: "models", Key: "C06_fixed", Quantity: 1},
	}

	first, err := ComputeQuote(m, items)
	if err != nil {
		t.Fatalf("ComputeQuote() error: %v", err)
	}
	second, err := ComputeQuote(m, items)
	if err != nil {
		t.Fatalf("ComputeQuote() second run error: %v", err)
	}

	if !first.Final.Equal(second.Final) {
		t.Errorf("repeat run changed final: %s vs %s", first.Final, second.Final)
	}
	if got := m.Rates.ShingleMetalBase.GAF["7-8_1layer"]; got != 400 {
		t.Errorf("ComputeQuote mutated the model: %v", got)
	}
}

func TestComputeQuote_NilRates(t *testing.T) {
	m := &model.PricingModel{ID: "empty", Name: "Siding"}
	if _, err := ComputeQuote(m, []LineItem{{Category: "trimEdges", Table: "standard", Key: "ridge", Quantity: 1}}); err == nil {
		t.Error("expected error for model without rate tables")
	}
}
