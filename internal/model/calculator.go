package model

import (
	"fmt"
	"math"
	"sort"
)

// SheetSpec describes the stock board a cut list is bought as.
type SheetSpec struct {
	Width         float64 `json:"width" mapstructure:"width"`   // mm
	Height        float64 `json:"height" mapstructure:"height"` // mm
	PricePerSheet float64 `json:"price_per_sheet" mapstructure:"price_per_sheet"`
}

// DefaultSheetSpec is a full 2440 x 1220 board without pricing.
func DefaultSheetSpec() SheetSpec {
	return SheetSpec{Width: 2440, Height: 1220}
}

// PurchaseEstimate holds the results of a sheet purchasing calculation
// for one board group (material + thickness).
type PurchaseEstimate struct {
	Group             string  `json:"group"`               // e.g. "white 18mm"
	TotalPartArea     float64 `json:"total_part_area"`     // Total area of all parts (sq mm)
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	KerfWidth         float64 `json:"kerf_width"`          // Kerf width used in calculation
}

// BoardGroup returns the purchase group a part belongs to. Parts of the
// same material but a different thickness come from different boards.
func BoardGroup(p Part) string {
	material := p.Material
	if material == "" {
		material = "unspecified"
	}
	return fmt.Sprintf("%s %.0fmm", material, p.Thickness)
}

// CalculatePurchaseEstimate computes how many sheets to buy for a cut list.
// It accounts for kerf waste and an additional waste percentage factor.
func CalculatePurchaseEstimate(parts []Part, sheet SheetSpec, kerfWidth, wastePercent float64) PurchaseEstimate {
	// Part area including kerf allowance per part
	var totalPartArea float64
	for _, p := range parts {
		partW := p.Width + kerfWidth
		partH := p.Height + kerfWidth
		totalPartArea += partW * partH * float64(p.Quantity)
	}

	sheetArea := sheet.Width * sheet.Height
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPartArea: totalPartArea,
			WastePercent:  wastePercent,
			KerfWidth:     kerfWidth,
		}
	}

	exactSheets := totalPartArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPartArea:     totalPartArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * sheet.PricePerSheet,
		KerfWidth:         kerfWidth,
	}
}

// EstimateByBoard splits a cut list into board groups and estimates each
// group separately, sorted by group name.
func EstimateByBoard(parts []Part, sheet SheetSpec, kerfWidth, wastePercent float64) []PurchaseEstimate {
	groups := make(map[string][]Part)
	for _, p := range parts {
		g := BoardGroup(p)
		groups[g] = append(groups[g], p)
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	estimates := make([]PurchaseEstimate, 0, len(names))
	for _, g := range names {
		est := CalculatePurchaseEstimate(groups[g], sheet, kerfWidth, wastePercent)
		est.Group = g
		estimates = append(estimates, est)
	}
	return estimates
}
