package model

// Settings holds the engine-wide defaults that feed every resolver call.
// It replaces hidden process-wide state: callers pass it explicitly and
// may change KickerHeight without rebuilding any geometry.
type Settings struct {
	KickerHeight          float64 `json:"kickerHeight" yaml:"kickerHeight" mapstructure:"kicker_height"`                     // Leg height under base/tall cabinets
	DoorGap               float64 `json:"doorGap" yaml:"doorGap" mapstructure:"door_gap"`                                    // Gap around each door edge
	DoorClearance         float64 `json:"doorClearance" yaml:"doorClearance" mapstructure:"door_clearance"`                  // Air gap between carcass front and door back
	DoorOverhang          float64 `json:"doorOverhang" yaml:"doorOverhang" mapstructure:"door_overhang"`                     // Extra door height on top cabinets
	LegDiameter           float64 `json:"legDiameter" yaml:"legDiameter" mapstructure:"leg_diameter"`                        // Cylindrical leg diameter
	LegSetback            float64 `json:"legSetback" yaml:"legSetback" mapstructure:"leg_setback"`                           // Leg centre distance from front and back edges
	LegSideInset          float64 `json:"legSideInset" yaml:"legSideInset" mapstructure:"leg_side_inset"`                    // Leg centre distance from the ends
	ShelfClearance        float64 `json:"shelfClearance" yaml:"shelfClearance" mapstructure:"shelf_clearance"`               // Shelf-free zone above bottom and below top
	BaseRailDepth         float64 `json:"baseRailDepth" yaml:"baseRailDepth" mapstructure:"base_rail_depth"`                 // Rail depth carried by base cabinet tops
	DefaultPanelThickness float64 `json:"defaultPanelThickness" yaml:"defaultPanelThickness" mapstructure:"panel_thickness"` // Board thickness for new cabinets
	DefaultDoorThickness  float64 `json:"defaultDoorThickness" yaml:"defaultDoorThickness" mapstructure:"door_thickness"`    // Door thickness for new cabinets
}

func DefaultSettings() Settings {
	return Settings{
		KickerHeight:          100,
		DoorGap:               2,
		DoorClearance:         2,
		DoorOverhang:          20,
		LegDiameter:           50,
		LegSetback:            70,
		LegSideInset:          50,
		ShelfClearance:        100,
		BaseRailDepth:         100,
		DefaultPanelThickness: 18,
		DefaultDoorThickness:  18,
	}
}
