// Package seed provides the reference data set: the default roofing
// pricing model, the pricing model templates, the standard job-flow
// workflow, and a starter set of clients, jobs, and users.
package seed

import (
	"time"

	"github.com/perryhq/roofline/internal/model"
)

// referenceDate stamps the seeded documents so seeding is reproducible.
var referenceDate = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

// RoofingModel returns the complete default roofing pricing model:
// shingles, metal, flat roofing, trim, penetrations, skylights, chimneys,
// small jobs, and global rules.
func RoofingModel() *model.PricingModel {
	return &model.PricingModel{
		ID:          "model-roofing",
		Name:        "Roofing",
		Description: "Complete roofing pricing model including shingles, metal, flat roofing, trim, penetrations, skylights, chimneys, small jobs, and global rules.",
		Icon:        "Home",
		CreatedAt:   referenceDate,
		UpdatedAt:   referenceDate,
		Rates:       roofingRates(),
	}
}

func roofingRates() *model.RateTables {
	return &model.RateTables{
		// Shingle & metal base pricing, per square, by pitch band and
		// layer count.
		ShingleMetalBase: model.ShingleMetalBase{
			GAF: model.RateTable{
				"3-6_1layer": 350, "3-6_2layer": 425,
				"7-8_1layer": 400, "7-8_2layer": 480,
				"9-11_1layer": 475, "9-11_2layer": 560,
				"12-13_1layer": 550, "12-13_2layer": 640,
				"14-17_1layer": 650, "14-17_2layer": 750,
				"18+_1layer": 800, "18+_2layer": 920,
			},
			Tamko: model.RateTable{
				"3-6_1layer": 320, "3-6_2layer": 395,
				"7-8_1layer": 370, "7-8_2layer": 450,
				"9-11_1layer": 445, "9-11_2layer": 530,
				"12-13_1layer": 520, "12-13_2layer": 610,
				"14-17_1layer": 620, "14-17_2layer": 720,
				"18+_1layer": 770, "18+_2layer": 890,
			},
			Metal: model.RateTable{
				"3-6_1layer": 650, "3-6_2layer": 750,
				"7-8_1layer": 720, "7-8_2layer": 825,
				"9-11_1layer": 820, "9-11_2layer": 935,
				"12-13_1layer": 950, "12-13_2layer": 1070,
				"14-17_1layer": 1100, "14-17_2layer": 1230,
				"18+_1layer": 1300, "18+_2layer": 1450,
			},
		},

		FlatRoofing: model.FlatRoofing{
			Base: model.RateTable{
				"1layer": 300, "2layer": 400, "3layer": 500,
			},
			Components: model.RateTable{
				"slag_stop_edge":                     12,
				"drip_edge":                          8,
				"custom_edge_metal":                  25,
				"flat_pipes":                         85,
				"flat_skylight_1":                    350,
				"flat_skylight_2":                    500,
				"small_heat":                         150,
				"vent_2":                             75,
				"vent_3":                             95,
				"wall_less_than_3ft_tall_ac_unit_lf": 18,
				"wire_pipe_pitch_pocket":             125,
				"small_heater_stack":                 200,
				"large_heater_stack":                 350,
				"scupper_boxes":                      275,
				"roof_drains":                        325,
			},
			MaterialTypes: []string{"Modified", "TPO", "EPDM"},
		},

		// Trim & edge components, per linear foot.
		TrimEdges: model.TrimEdges{
			Standard: model.RateTable{
				"ridge": 8, "ridge_vent": 12, "hip": 10, "valley": 14,
				"rake": 7, "eave": 6, "flashing": 15, "step_flashing": 12,
			},
			MetalWalkable: model.RateTable{
				"ridge": 18, "ridge_vent": 22, "hip": 20, "valley": 24,
				"rake": 16, "eave": 14,
			},
			MetalNonWalkable: model.RateTable{
				"ridge": 24, "ridge_vent": 28, "hip": 26, "valley": 30,
				"rake": 22, "eave": 20,
			},
		},

		// Penetrations, vents & decking, per item.
		Penetrations: model.Penetrations{
			Pipes: model.RateTable{
				"1.5_iron": 85, "1.5_copper": 120, "1.5_pvc": 65,
				"2.0_iron": 95, "2.0_copper": 135, "2.0_pvc": 75,
				"3.0_iron": 110, "3.0_copper": 155, "3.0_pvc": 85,
				"4.0_iron": 130, "4.0_copper": 180, "4.0_pvc": 100,
			},
			MetalPipeUpcharges: model.RateTable{
				"small_walkable": 35, "small_non_walkable": 55,
				"medium_walkable": 50, "medium_non_walkable": 75,
				"large_walkable": 70, "large_non_walkable": 100,
			},
			Ventilation: model.RateTable{
				"4_inch_bath_vent":          95,
				"6_inch_bath_vent":          120,
				"attic_roof_fan_3-8_pitch":  350,
				"attic_roof_fan_8-14_pitch": 500,
			},
			Plywood: model.RateTable{
				"1/2": 65,
				"3/4": 85,
			},
		},

		Skylights: model.Skylights{
			Models: map[string]model.SkylightModel{
				"C01":  {FixedPrice: 350, VentedPrice: 500, LaborCost: 250},
				"C04":  {FixedPrice: 400, VentedPrice: 575, LaborCost: 275},
				"C06":  {FixedPrice: 450, VentedPrice: 625, LaborCost: 300},
				"C08":  {FixedPrice: 500, VentedPrice: 700, LaborCost: 325},
				"D26":  {FixedPrice: 550, VentedPrice: 750, LaborCost: 350},
				"D06":  {FixedPrice: 475, VentedPrice: 650, LaborCost: 300},
				"M02":  {FixedPrice: 375, VentedPrice: 525, LaborCost: 275},
				"M04":  {FixedPrice: 425, VentedPrice: 600, LaborCost: 300},
				"M06":  {FixedPrice: 475, VentedPrice: 675, LaborCost: 325},
				"M08":  {FixedPrice: 525, VentedPrice: 725, LaborCost: 350},
				"S01":  {FixedPrice: 350, VentedPrice: 500, LaborCost: 250},
				"S06":  {FixedPrice: 450, VentedPrice: 625, LaborCost: 300},
				"2222": {FixedPrice: 500, VentedPrice: 700, LaborCost: 325},
				"2234": {FixedPrice: 550, VentedPrice: 750, LaborCost: 350},
				"2246": {FixedPrice: 600, VentedPrice: 825, LaborCost: 375},
				"3030": {FixedPrice: 650, VentedPrice: 875, LaborCost: 400},
				"3046": {FixedPrice: 700, VentedPrice: 950, LaborCost: 425},
				"3434": {FixedPrice: 750, VentedPrice: 1000, LaborCost: 450},
				"3737": {FixedPrice: 800, VentedPrice: 1075, LaborCost: 475},
				"4622": {FixedPrice: 850, VentedPrice: 1125, LaborCost: 500},
				"4630": {FixedPrice: 900, VentedPrice: 1200, LaborCost: 525},
				"4646": {FixedPrice: 950, VentedPrice: 1275, LaborCost: 550},
			},
			PitchMultipliers: model.RateTable{
				"3-6":   1.0,
				"7-8":   1.2,
				"9-10":  1.5,
				"11-12": 1.8,
				"13-16": 2.0,
				"16+":   2.5,
			},
		},

		// Chimney flashing rates, per linear foot.
		ChimneyRates: model.ChimneyRates{
			Aluminum: model.RateTable{
				"w_siding":       18,
				"w_brick_stucco": 25,
				"w_smooth_stone": 30,
				"w_jagged_stone": 38,
			},
			Copper: model.RateTable{
				"w_siding":       35,
				"w_brick_stucco": 45,
				"w_smooth_stone": 55,
				"w_jagged_stone": 68,
			},
		},

		SmallJobs: model.SmallJobs{
			GutterCleaning: model.GutterCleaning{
				PitchFactors: model.RateTable{"0-3": 0.65, "4-6": 0.70, "7-8": 0.90, "9+": 1.80},
				FloorFactors: model.RateTable{"1st": 1, "2nd": 2, "3rd": 3},
			},
			RoofRepair: model.RateTable{
				"setup_cost":          350,
				"gaf_shingles_needed": 200,
				"other_shingle_match": 450,
				"location_3x3":        150,
				"pipe_collar":         200,
			},
			SidingRepair: model.RateTable{
				"setup_cost":      400,
				"siding_needed":   350,
				"siding_match":    350,
				"location_repair": 320,
				"outside_corner":  980,
				"dryer_vent":      70,
				"gable_vent":      75,
			},
			CappingRepair: model.RateTable{
				"setup_cost":                     700,
				"remove_reinstall_gutter_per_lf": 7,
				"fascia_cap_no_gutter_per_lf":    45,
				"rake_capping_10lf":              75,
				"color_charge":                   150,
				"fascia_board_per_lf":            20,
			},
			GutterRepair: model.RateTable{
				"setup_cost":             250,
				"hidden_hangers_each":    7,
				"corner_sealing_each":    45,
				"downspout_install_each": 75,
			},
			GutterReplacement: model.RateTable{
				"setup_cost":               400,
				"gutters_5k":               13,
				"gutters_6k":               15,
				"spouts_2x3":               12,
				"spouts_3x4":               14,
				"gutter_guards_5k_low":     0,
				"gutter_guards_5k_high":    0,
				"gutter_guards_6k_low":     0,
				"gutter_guards_6k_high":    0,
				"half_round_5_traditional": 0,
				"half_round_5_flat_fascia": 0,
				"half_round_6_traditional": 0,
				"half_round_6_flat_fascia": 0,
				"round_spouts_4":           0,
				"round_elbows_4":           0,
			},
		},

		// Global rules: minimum-job upcharge tiers and the default
		// discount percentage.
		GlobalRules: model.GlobalRules{
			Tiers: [3]model.UpchargeTier{
				{Threshold: 5000, Amount: 1500},
				{Threshold: 7500, Amount: 1000},
				{Threshold: 10000, Amount: 750},
			},
			DiscountPercent: 23.00,
		},
	}
}

// Templates returns the available pricing model templates. Only the roofing
// template carries populated rate tables; the rest are placeholders pending
// future definition.
func Templates() []model.PricingModel {
	stub := func(id, name, description, icon string) model.PricingModel {
		return model.PricingModel{
			ID:          id,
			Name:        name,
			Description: description,
			Icon:        icon,
			CreatedAt:   referenceDate,
			UpdatedAt:   referenceDate,
		}
	}

	roofing := RoofingModel()
	roofing.ID = "template-roofing"
	roofing.Description = "Full roofing pricing with shingles, metal, flat, trim, penetrations, skylights, chimneys, small jobs & global rules."

	return []model.PricingModel{
		*roofing,
		stub("template-siding", "Siding", "Siding installation and repair pricing model.", "Layers"),
		stub("template-gutters", "Gutters", "Gutter installation, replacement, and cleaning pricing.", "Droplets"),
		stub("template-windows", "Windows", "Window replacement and installation pricing model.", "Square"),
	}
}
