// Package model defines the core data structures for the roofline application.
package model

import (
	"time"
)

// RateTable maps a rate key to its numeric rate. Depending on the table the
// value is either a decimal currency amount or a dimensionless factor.
type RateTable map[string]float64

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	if t == nil {
		return nil
	}
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// ShingleMetalBase holds per-square base pricing keyed by pitch band and
// layer count (e.g. "7-8_1layer") for each roofing system.
type ShingleMetalBase struct {
	GAF   RateTable `json:"gaf"`
	Tamko RateTable `json:"tamko"`
	Metal RateTable `json:"metal"`
}

// FlatRoofing holds flat-roof base pricing per layer count plus per-item
// component rates.
type FlatRoofing struct {
	Base          RateTable `json:"base"`
	Components    RateTable `json:"components"`
	MaterialTypes []string  `json:"materialTypes"`
}

// TrimEdges holds per-linear-foot trim pricing for each roof surface class.
type TrimEdges struct {
	Standard         RateTable `json:"standard"`
	MetalWalkable    RateTable `json:"metal_walkable"`
	MetalNonWalkable RateTable `json:"metal_non_walkable"`
}

// Penetrations holds per-item pricing for pipes (size × material keys such
// as "2.0_copper"), metal roof pipe upcharges, ventilation, and plywood
// decking.
type Penetrations struct {
	Pipes              RateTable `json:"pipes"`
	MetalPipeUpcharges RateTable `json:"metalPipeUpcharges"`
	Ventilation        RateTable `json:"ventilation"`
	Plywood            RateTable `json:"plywood"`
}

// SkylightModel carries the three price components of a skylight unit.
type SkylightModel struct {
	FixedPrice  float64 `json:"fixedPrice"`
	VentedPrice float64 `json:"ventedPrice"`
	LaborCost   float64 `json:"laborCost"`
}

// Skylights holds per-model skylight pricing and the pitch multiplier table
// applied on top of it.
type Skylights struct {
	Models           map[string]SkylightModel `json:"models"`
	PitchMultipliers RateTable                `json:"pitchMultipliers"`
}

// ChimneyRates holds per-linear-foot chimney flashing rates by flashing
// metal and wall surface.
type ChimneyRates struct {
	Aluminum RateTable `json:"aluminum"`
	Copper   RateTable `json:"copper"`
}

// GutterCleaning holds the dimensionless pitch and floor factors used to
// price gutter cleaning visits.
type GutterCleaning struct {
	PitchFactors RateTable `json:"pitchFactors"`
	FloorFactors RateTable `json:"floorFactors"`
}

// SmallJobs groups the service-call pricing tables.
type SmallJobs struct {
	GutterCleaning    GutterCleaning `json:"gutterCleaning"`
	RoofRepair        RateTable      `json:"smallRoofRepair"`
	SidingRepair      RateTable      `json:"smallSidingRepair"`
	CappingRepair     RateTable      `json:"smallCappingRepair"`
	GutterRepair      RateTable      `json:"smallGutterRepair"`
	GutterReplacement RateTable      `json:"smallGutterReplacement"`
}

// UpchargeTier is a single minimum-job upcharge rule: when the raw subtotal
// falls under Threshold, Amount is added to the job.
type UpchargeTier struct {
	Threshold float64 `json:"threshold"`
	Amount    float64 `json:"amount"`
}

// GlobalRules carries the three ordered upcharge tiers and the default
// discount percentage applied to every quote. Tiers are evaluated in
// declared order; the engine never re-sorts them.
type GlobalRules struct {
	Tiers           [3]UpchargeTier `json:"tiers"`
	DiscountPercent float64         `json:"global_discount_percentage"`
}

// RateTables is the full nested pricing configuration of a model. Each
// category is a typed structure; generic path-addressed access for form
// editors goes through ResolveRate/UpdateField which validate against this
// schema.
type RateTables struct {
	ShingleMetalBase ShingleMetalBase `json:"shingleMetalBase"`
	FlatRoofing      FlatRoofing      `json:"flatRoofing"`
	TrimEdges        TrimEdges        `json:"trimEdges"`
	Penetrations     Penetrations     `json:"penetrations"`
	Skylights        Skylights        `json:"skylights"`
	ChimneyRates     ChimneyRates     `json:"chimneyRates"`
	SmallJobs        SmallJobs        `json:"smallJobs"`
	GlobalRules      GlobalRules      `json:"globalRules"`
}

// PricingModel is a versioned, named pricing document. Rates is nil for
// stub templates that have no populated rate tables yet.
type PricingModel struct {
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Rates       *RateTables `json:"rateTables,omitempty"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon,omitempty"`
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (m *PricingModel) Clone() *PricingModel {
	out := *m
	if m.Rates != nil {
		out.Rates = m.Rates.Clone()
	}
	return &out
}

// CopySuffix is appended to duplicated model names.
const CopySuffix = " (Copy)"

// Duplicate deep-copies the model under a new identity: fresh id, fresh
// timestamps, and "(Copy)" appended to the name.
func (m *PricingModel) Duplicate(id string, now time.Time) *PricingModel {
	out := m.Clone()
	out.ID = id
	out.Name = m.Name + CopySuffix
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}

// Clone returns a deep copy of the rate tables.
func (r *RateTables) Clone() *RateTables {
	out := *r
	out.ShingleMetalBase = ShingleMetalBase{
		GAF:   r.ShingleMetalBase.GAF.Clone(),
		Tamko: r.ShingleMetalBase.Tamko.Clone(),
		Metal: r.ShingleMetalBase.Metal.Clone(),
	}
	out.FlatRoofing = FlatRoofing{
		Base:          r.FlatRoofing.Base.Clone(),
		Components:    r.FlatRoofing.Components.Clone(),
		MaterialTypes: append([]string(nil), r.FlatRoofing.MaterialTypes...),
	}
	out.TrimEdges = TrimEdges{
		Standard:         r.TrimEdges.Standard.Clone(),
		MetalWalkable:    r.TrimEdges.MetalWalkable.Clone(),
		MetalNonWalkable: r.TrimEdges.MetalNonWalkable.Clone(),
	}
	out.Penetrations = Penetrations{
		Pipes:              r.Penetrations.Pipes.Clone(),
		MetalPipeUpcharges: r.Penetrations.MetalPipeUpcharges.Clone(),
		Ventilation:        r.Penetrations.Ventilation.Clone(),
		Plywood:            r.Penetrations.Plywood.Clone(),
	}
	models := make(map[string]SkylightModel, len(r.Skylights.Models))
	for code, sm := range r.Skylights.Models {
		models[code] = sm
	}
	out.Skylights = Skylights{
		Models:           models,
		PitchMultipliers: r.Skylights.PitchMultipliers.Clone(),
	}
	out.ChimneyRates = ChimneyRates{
		Aluminum: r.ChimneyRates.Aluminum.Clone(),
		Copper:   r.ChimneyRates.Copper.Clone(),
	}
	out.SmallJobs = SmallJobs{
		GutterCleaning: GutterCleaning{
			PitchFactors: r.SmallJobs.GutterCleaning.PitchFactors.Clone(),
			FloorFactors: r.SmallJobs.GutterCleaning.FloorFactors.Clone(),
		},
		RoofRepair:        r.SmallJobs.RoofRepair.Clone(),
		SidingRepair:      r.SmallJobs.SidingRepair.Clone(),
		CappingRepair:     r.SmallJobs.CappingRepair.Clone(),
		GutterRepair:      r.SmallJobs.GutterRepair.Clone(),
		GutterReplacement: r.SmallJobs.GutterReplacement.Clone(),
	}
	return &out
}
