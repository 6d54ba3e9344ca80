package model

import (
	"testing"
	"time"
)

func TestPricingModel_CloneIsDeep(t *testing.T) {
	m := &PricingModel{
		ID:    "m1",
		Name:  "Roofing",
		Rates: testRates(),
	}

	clone := m.Clone()
	clone.Rates.ShingleMetalBase.GAF["7-8_1layer"] = 999
	clone.Rates.Skylights.Models["C06"] = SkylightModel{FixedPrice: 1}
	clone.Rates.GlobalRules.Tiers[0].Amount = 0

	if got := m.Rates.ShingleMetalBase.GAF["7-8_1layer"]; got != 400 {
		t.Errorf("clone shares shingle table with original: %v", got)
	}
	if got := m.Rates.Skylights.Models["C06"].FixedPrice; got != 450 {
		t.Errorf("clone shares skylight models with original: %v", got)
	}
	if got := m.Rates.GlobalRules.Tiers[0].Amount; got != 1500 {
		t.Errorf("clone shares global rules with original: %v", got)
	}
}

func TestPricingModel_Duplicate(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	m := &PricingModel{
		ID:        "m1",
		Name:      "Roofing",
		CreatedAt: created,
		UpdatedAt: created,
		Rates:     testRates(),
	}

	dup := m.Duplicate("m2", now)

	if dup.ID != "m2" {
		t.Errorf("duplicate ID = %q, want m2", dup.ID)
	}
	if dup.Name != "Roofing"+CopySuffix {
		t.Errorf("duplicate Name = %q, want copy suffix appended", dup.Name)
	}
	if !dup.CreatedAt.Equal(now) || !dup.UpdatedAt.Equal(now) {
		t.Errorf("duplicate timestamps = %v/%v, want %v", dup.CreatedAt, dup.UpdatedAt, now)
	}

	// Edits to the duplicate must not leak into the source.
	dup.Rates.ShingleMetalBase.GAF["7-8_1layer"] = 999
	if got := m.Rates.ShingleMetalBase.GAF["7-8_1layer"]; got != 400 {
		t.Errorf("duplicate shares rate tables with source: %v", got)
	}
}
