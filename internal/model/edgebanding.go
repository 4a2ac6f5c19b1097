package model

import "math"

// BandingGroup separates the tape on doors and drawer fronts from the tape
// on exposed carcass edges. The two are usually bought in different
// colours and widths.
type BandingGroup string

const (
	BandingFronts  BandingGroup = "fronts"
	BandingCarcass BandingGroup = "carcass"
)

// BandingGroups lists the groups in report order.
var BandingGroups = []BandingGroup{BandingFronts, BandingCarcass}

// BandingGroupFor returns the tape group for a panel role.
func BandingGroupFor(r PanelRole) BandingGroup {
	if r == RoleDoor || r == RoleDrawer {
		return BandingFronts
	}
	return BandingCarcass
}

// BandingTotal is the tape one group needs.
type BandingTotal struct {
	Group       BandingGroup `json:"group"`
	Pieces      int          `json:"pieces"`
	Edges       int          `json:"edges"`
	LengthMM    float64      `json:"length_mm"`
	WithWasteMM float64      `json:"with_waste_mm"` // rounded up to whole mm
}

// EdgeBandingSummary holds the banding totals for a cut list, overall and
// per tape group. Groups without banded edges are left out.
type EdgeBandingSummary struct {
	Groups           []BandingTotal `json:"groups"`
	TotalLinearMM    float64        `json:"total_linear_mm"`
	TotalLinearM     float64        `json:"total_linear_m"`
	WastePercent     float64        `json:"waste_percent"`
	TotalWithWasteMM float64        `json:"total_with_waste_mm"`
	TotalWithWasteM  float64        `json:"total_with_waste_m"`
	PartCount        int            `json:"part_count"` // banded pieces
	EdgeCount        int            `json:"edge_count"`
}

// Group returns the total for g, or a zero total if g has no banding.
func (s EdgeBandingSummary) Group(g BandingGroup) BandingTotal {
	for _, t := range s.Groups {
		if t.Group == g {
			return t
		}
	}
	return BandingTotal{Group: g}
}

// CalculateEdgeBanding totals the tape for a list of parts. wastePercent is
// added on top (10 means 10%) and the waste figures round up to whole mm.
func CalculateEdgeBanding(parts []Part, wastePercent float64) EdgeBandingSummary {
	factor := 1.0 + wastePercent/100.0
	totals := make(map[BandingGroup]*BandingTotal, len(BandingGroups))
	sum := EdgeBandingSummary{WastePercent: wastePercent}

	for _, p := range parts {
		if !p.EdgeBanding.HasAny() {
			continue
		}
		g := BandingGroupFor(p.Role)
		t := totals[g]
		if t == nil {
			t = &BandingTotal{Group: g}
			totals[g] = t
		}
		length := p.EdgeBanding.LinearLength(p.Width, p.Height) * float64(p.Quantity)
		edges := p.EdgeBanding.EdgeCount() * p.Quantity

		t.Pieces += p.Quantity
		t.Edges += edges
		t.LengthMM += length
		sum.PartCount += p.Quantity
		sum.EdgeCount += edges
		sum.TotalLinearMM += length
	}

	for _, g := range BandingGroups {
		if t := totals[g]; t != nil {
			t.WithWasteMM = math.Ceil(t.LengthMM * factor)
			sum.Groups = append(sum.Groups, *t)
		}
	}
	sum.TotalLinearM = sum.TotalLinearMM / 1000.0
	sum.TotalWithWasteMM = math.Ceil(sum.TotalLinearMM * factor)
	sum.TotalWithWasteM = sum.TotalWithWasteMM / 1000.0
	return sum
}

// PerPartEdgeBanding is the banding for one cut-list line.
type PerPartEdgeBanding struct {
	Cabinet       string       `json:"cabinet"`
	Label         string       `json:"label"`
	Group         BandingGroup `json:"group"`
	Width         float64      `json:"width"`
	Height        float64      `json:"height"`
	Quantity      int          `json:"quantity"`
	Edges         string       `json:"edges"` // e.g. "T+B+L+R"
	LengthPerUnit float64      `json:"length_per_unit"`
	TotalLength   float64      `json:"total_length"`
}

// CalculatePerPartEdgeBanding lists every banded line, fronts first, keeping
// cut-list order within a group.
func CalculatePerPartEdgeBanding(parts []Part) []PerPartEdgeBanding {
	var results []PerPartEdgeBanding
	for _, g := range BandingGroups {
		for _, p := range parts {
			if !p.EdgeBanding.HasAny() || BandingGroupFor(p.Role) != g {
				continue
			}
			perUnit := p.EdgeBanding.LinearLength(p.Width, p.Height)
			results = append(results, PerPartEdgeBanding{
				Cabinet:       p.Cabinet,
				Label:         p.Label,
				Group:         g,
				Width:         p.Width,
				Height:        p.Height,
				Quantity:      p.Quantity,
				Edges:         p.EdgeBanding.String(),
				LengthPerUnit: perUnit,
				TotalLength:   perUnit * float64(p.Quantity),
			})
		}
	}
	return results
}
