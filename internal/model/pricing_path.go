package model

import (
	"fmt"
	"math"
	"strings"
)

// RateKind describes how a leaf rate is interpreted and validated.
type RateKind int

// Rate kinds.
const (
	// KindCurrency is a decimal currency amount; must be finite and >= 0.
	KindCurrency RateKind = iota
	// KindMultiplier is a dimensionless factor; must be finite and > 0.
	KindMultiplier
	// KindPercent is a percentage; must be finite and within [0, 100].
	KindPercent
)

// InvalidPathError reports a rate-update path that does not resolve to an
// existing leaf in the rate table schema.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid rate path %q: %s", e.Path, e.Reason)
}

// InvalidValueError reports a rate value that fails numeric or range
// validation for the kind of leaf it targets.
type InvalidValueError struct {
	Path   string
	Reason string
	Value  float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for rate path %q: %s", e.Value, e.Path, e.Reason)
}

func badPath(path, format string, args ...any) error {
	return &InvalidPathError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// rateLeaf is a resolved, addressable leaf in the schema.
type rateLeaf struct {
	get  func() float64
	set  func(float64)
	kind RateKind
}

// tableLeaf builds a leaf for an entry in a flat rate table. The key must
// already exist; paths never create new rates.
func tableLeaf(path string, t RateTable, key string, kind RateKind) (rateLeaf, error) {
	if t == nil {
		return rateLeaf{}, badPath(path, "table is not populated")
	}
	if _, ok := t[key]; !ok {
		return rateLeaf{}, badPath(path, "unknown rate key %q", key)
	}
	return rateLeaf{
		get:  func() float64 { return t[key] },
		set:  func(v float64) { t[key] = v },
		kind: kind,
	}, nil
}

func fieldLeaf(f *float64, kind RateKind) rateLeaf {
	return rateLeaf{
		get:  func() float64 { return *f },
		set:  func(v float64) { *f = v },
		kind: kind,
	}
}

// resolve walks a dot-separated path against the typed schema and returns
// the addressable leaf it names. Rate keys themselves may contain dots
// ("penetrations.pipes.1.5_iron"), so table lookups treat everything after
// the table segment as the key.
func (r *RateTables) resolve(path string) (rateLeaf, error) {
	segs := strings.Split(path, ".")
	keyTail := func(from int) string { return strings.Join(segs[from:], ".") }
	switch segs[0] {
	case "shingleMetalBase":
		if len(segs) < 3 {
			return rateLeaf{}, badPath(path, "expected shingleMetalBase.<system>.<key>")
		}
		var t RateTable
		switch segs[1] {
		case "gaf":
			t = r.ShingleMetalBase.GAF
		case "tamko":
			t = r.ShingleMetalBase.Tamko
		case "metal":
			t = r.ShingleMetalBase.Metal
		default:
			return rateLeaf{}, badPath(path, "unknown roofing system %q", segs[1])
		}
		return tableLeaf(path, t, keyTail(2), KindCurrency)

	case "flatRoofing":
		if len(segs) < 3 {
			return rateLeaf{}, badPath(path, "expected flatRoofing.<table>.<key>")
		}
		switch segs[1] {
		case "base":
			return tableLeaf(path, r.FlatRoofing.Base, keyTail(2), KindCurrency)
		case "components":
			return tableLeaf(path, r.FlatRoofing.Components, keyTail(2), KindCurrency)
		default:
			return rateLeaf{}, badPath(path, "unknown flat roofing table %q", segs[1])
		}

	case "trimEdges":
		if len(segs) < 3 {
			return rateLeaf{}, badPath(path, "expected trimEdges.<surface>.<key>")
		}
		var t RateTable
		switch segs[1] {
		case "standard":
			t = r.TrimEdges.Standard
		case "metal_walkable":
			t = r.TrimEdges.MetalWalkable
		case "metal_non_walkable":
			t = r.TrimEdges.MetalNonWalkable
		default:
			return rateLeaf{}, badPath(path, "unknown trim surface %q", segs[1])
		}
		return tableLeaf(path, t, keyTail(2), KindCurrency)

	case "penetrations":
		if len(segs) < 3 {
			return rateLeaf{}, badPath(path, "expected penetrations.<table>.<key>")
		}
		var t RateTable
		switch segs[1] {
		case "pipes":
			t = r.Penetrations.Pipes
		case "metalPipeUpcharges":
			t = r.Penetrations.MetalPipeUpcharges
		case "ventilation":
			t = r.Penetrations.Ventilation
		case "plywood":
			t = r.Penetrations.Plywood
		default:
			return rateLeaf{}, badPath(path, "unknown penetration table %q", segs[1])
		}
		return tableLeaf(path, t, keyTail(2), KindCurrency)

	case "skylights":
		return r.resolveSkylight(path, segs)

	case "chimneyRates":
		if len(segs) < 3 {
			return rateLeaf{}, badPath(path, "expected chimneyRates.<metal>.<key>")
		}
		var t RateTable
		switch segs[1] {
		case "aluminum":
			t = r.ChimneyRates.Aluminum
		case "copper":
			t = r.ChimneyRates.Copper
		default:
			return rateLeaf{}, badPath(path, "unknown chimney metal %q", segs[1])
		}
		return tableLeaf(path, t, keyTail(2), KindCurrency)

	case "smallJobs":
		return r.resolveSmallJob(path, segs)

	case "globalRules":
		return r.resolveGlobalRule(path, segs)

	default:
		return rateLeaf{}, badPath(path, "unknown category %q", segs[0])
	}
}

func (r *RateTables) resolveSkylight(path string, segs []string) (rateLeaf, error) {
	if len(segs) < 3 {
		return rateLeaf{}, badPath(path, "expected skylights.models.<model>.<field> or skylights.pitchMultipliers.<key>")
	}
	switch segs[1] {
	case "pitchMultipliers":
		if len(segs) != 3 {
			return rateLeaf{}, badPath(path, "expected skylights.pitchMultipliers.<key>")
		}
		return tableLeaf(path, r.Skylights.PitchMultipliers, segs[2], KindMultiplier)
	case "models":
		if len(segs) != 4 {
			return rateLeaf{}, badPath(path, "expected skylights.models.<model>.<field>")
		}
		code := segs[2]
		sm, ok := r.Skylights.Models[code]
		if !ok {
			return rateLeaf{}, badPath(path, "unknown skylight model %q", code)
		}
		store := func(update func(*SkylightModel)) {
			update(&sm)
			r.Skylights.Models[code] = sm
		}
		switch segs[3] {
		case "fixedPrice":
			return rateLeaf{
				get:  func() float64 { return r.Skylights.Models[code].FixedPrice },
				set:  func(v float64) { store(func(m *SkylightModel) { m.FixedPrice = v }) },
				kind: KindCurrency,
			}, nil
		case "ventedPrice":
			return rateLeaf{
				get:  func() float64 { return r.Skylights.Models[code].VentedPrice },
				set:  func(v float64) { store(func(m *SkylightModel) { m.VentedPrice = v }) },
				kind: KindCurrency,
			}, nil
		case "laborCost":
			return rateLeaf{
				get:  func() float64 { return r.Skylights.Models[code].LaborCost },
				set:  func(v float64) { store(func(m *SkylightModel) { m.LaborCost = v }) },
				kind: KindCurrency,
			}, nil
		default:
			return rateLeaf{}, badPath(path, "unknown skylight field %q", segs[3])
		}
	default:
		return rateLeaf{}, badPath(path, "unknown skylight table %q", segs[1])
	}
}

func (r *RateTables) resolveSmallJob(path string, segs []string) (rateLeaf, error) {
	if len(segs) < 3 {
		return rateLeaf{}, badPath(path, "expected smallJobs.<service>.<key>")
	}
	switch segs[1] {
	case "gutterCleaning":
		if len(segs) != 4 {
			return rateLeaf{}, badPath(path, "expected smallJobs.gutterCleaning.<factors>.<key>")
		}
		switch segs[2] {
		case "pitchFactors":
			return tableLeaf(path, r.SmallJobs.GutterCleaning.PitchFactors, segs[3], KindMultiplier)
		case "floorFactors":
			return tableLeaf(path, r.SmallJobs.GutterCleaning.FloorFactors, segs[3], KindMultiplier)
		default:
			return rateLeaf{}, badPath(path, "unknown gutter cleaning factor table %q", segs[2])
		}
	case "smallRoofRepair":
		return tableLeaf(path, r.SmallJobs.RoofRepair, strings.Join(segs[2:], "."), KindCurrency)
	case "smallSidingRepair":
		return tableLeaf(path, r.SmallJobs.SidingRepair, strings.Join(segs[2:], "."), KindCurrency)
	case "smallCappingRepair":
		return tableLeaf(path, r.SmallJobs.CappingRepair, strings.Join(segs[2:], "."), KindCurrency)
	case "smallGutterRepair":
		return tableLeaf(path, r.SmallJobs.GutterRepair, strings.Join(segs[2:], "."), KindCurrency)
	case "smallGutterReplacement":
		return tableLeaf(path, r.SmallJobs.GutterReplacement, strings.Join(segs[2:], "."), KindCurrency)
	default:
		return rateLeaf{}, badPath(path, "unknown small job service %q", segs[1])
	}
}

func (r *RateTables) resolveGlobalRule(path string, segs []string) (rateLeaf, error) {
	if len(segs) != 2 {
		return rateLeaf{}, badPath(path, "expected globalRules.<key>")
	}
	switch segs[1] {
	case "upcharge_tier_1_threshold":
		return fieldLeaf(&r.GlobalRules.Tiers[0].Threshold, KindCurrency), nil
	case "upcharge_tier_1_amount":
		return fieldLeaf(&r.GlobalRules.Tiers[0].Amount, KindCurrency), nil
	case "upcharge_tier_2_threshold":
		return fieldLeaf(&r.GlobalRules.Tiers[1].Threshold, KindCurrency), nil
	case "upcharge_tier_2_amount":
		return fieldLeaf(&r.GlobalRules.Tiers[1].Amount, KindCurrency), nil
	case "upcharge_tier_3_threshold":
		return fieldLeaf(&r.GlobalRules.Tiers[2].Threshold, KindCurrency), nil
	case "upcharge_tier_3_amount":
		return fieldLeaf(&r.GlobalRules.Tiers[2].Amount, KindCurrency), nil
	case "global_discount_percentage":
		return fieldLeaf(&r.GlobalRules.DiscountPercent, KindPercent), nil
	default:
		return rateLeaf{}, badPath(path, "unknown global rule %q", segs[1])
	}
}

// ResolveRate returns the current value and kind of the leaf the path names.
func (r *RateTables) ResolveRate(path string) (float64, RateKind, error) {
	leaf, err := r.resolve(path)
	if err != nil {
		return 0, 0, err
	}
	return leaf.get(), leaf.kind, nil
}

// UpdateField validates value against the schema and writes it to the leaf
// the path names. The update is all-or-nothing: on any error the tables are
// left untouched.
func (r *RateTables) UpdateField(path string, value float64) error {
	leaf, err := r.resolve(path)
	if err != nil {
		return err
	}
	if err := validateRateValue(path, value, leaf.kind); err != nil {
		return err
	}
	leaf.set(value)
	return nil
}

func validateRateValue(path string, value float64, kind RateKind) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InvalidValueError{Path: path, Value: value, Reason: "must be a finite number"}
	}
	switch kind {
	case KindCurrency:
		if value < 0 {
			return &InvalidValueError{Path: path, Value: value, Reason: "currency rate must be >= 0"}
		}
	case KindMultiplier:
		if value <= 0 {
			return &InvalidValueError{Path: path, Value: value, Reason: "multiplier must be > 0"}
		}
	case KindPercent:
		if value < 0 || value > 100 {
			return &InvalidValueError{Path: path, Value: value, Reason: "percentage must be between 0 and 100"}
		}
	}
	return nil
}
