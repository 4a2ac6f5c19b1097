// Package importer reads cabinet schedules from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/cabinetry/internal/engine"
	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cabinets []model.Cabinet
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Type      int
	Width     int
	Height    int
	Depth     int
	Doors     int
	Drawers   int
	Shelves   int
	Thickness int
}

// positionalMapping is used for files without a header row.
var positionalMapping = ColumnMapping{
	Label: 0, Type: 1, Width: 2, Height: 3, Depth: 4,
	Doors: 5, Drawers: 6, Shelves: 7, Thickness: 8,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "cabinet", "cabinet name", "description", "desc", "ref", "reference"},
	"type":      {"type", "cabinet type", "kind", "category"},
	"width":     {"width", "w", "x"},
	"height":    {"height", "h", "y"},
	"depth":     {"depth", "d", "z"},
	"doors":     {"doors", "door", "door count", "doors count"},
	"drawers":   {"drawers", "drawer", "drawer count", "drawer quantity"},
	"shelves":   {"shelves", "shelf", "shelf count", "shelves count"},
	"thickness": {"thickness", "panel thickness", "board", "board thickness", "t"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label: -1, Type: -1, Width: -1, Height: -1, Depth: -1,
		Doors: -1, Drawers: -1, Shelves: -1, Thickness: -1,
	}
	slots := map[string]*int{
		"label":     &mapping.Label,
		"type":      &mapping.Type,
		"width":     &mapping.Width,
		"height":    &mapping.Height,
		"depth":     &mapping.Depth,
		"doors":     &mapping.Doors,
		"drawers":   &mapping.Drawers,
		"shelves":   &mapping.Shelves,
		"thickness": &mapping.Thickness,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optionalInt parses an optional count column. Empty cells read as zero.
func optionalInt(row []string, idx int, rowLabel, name string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if n < 0 {
		return 0, fmt.Sprintf("%s: %s must not be negative", rowLabel, name)
	}
	return n, ""
}

func requiredFloat(row []string, idx int, rowLabel, name string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a Cabinet from a row using the given column mapping.
// Returns the cabinet, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, s model.Settings, rowLabel string, count int) (model.Cabinet, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Cabinet %d", count+1)
	}

	typeStr := strings.ToLower(getCell(row, mapping.Type))
	if typeStr == "" {
		return model.Cabinet{}, fmt.Sprintf("%s: Missing cabinet type", rowLabel), ""
	}
	t, err := model.ParseCabinetType(typeStr)
	if err != nil {
		return model.Cabinet{}, fmt.Sprintf("%s: Unknown cabinet type '%s' (use base, top or tall)", rowLabel, typeStr), ""
	}

	var d model.Dimensions
	for _, f := range []struct {
		idx  int
		name string
		dst  *float64
	}{
		{mapping.Width, "width", &d.Width},
		{mapping.Height, "height", &d.Height},
		{mapping.Depth, "depth", &d.Depth},
	} {
		v, msg := requiredFloat(row, f.idx, rowLabel, f.name)
		if msg != "" {
			return model.Cabinet{}, msg, ""
		}
		*f.dst = v
	}

	cfg := model.DefaultCarcassConfig(s)
	var warning string
	if ts := getCell(row, mapping.Thickness); ts != "" {
		th, err := strconv.ParseFloat(ts, 64)
		if err != nil || th <= 0 {
			warning = fmt.Sprintf("%s: Invalid thickness '%s', using %.0fmm", rowLabel, ts, s.DefaultPanelThickness)
		} else {
			cfg.Material.SetPanelThickness(th)
		}
	}
	if err := engine.ValidateDimensions(d, cfg.Material.PanelThickness); err != nil {
		return model.Cabinet{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	doors, msg := optionalInt(row, mapping.Doors, rowLabel, "door count")
	if msg != "" {
		return model.Cabinet{}, msg, ""
	}
	if doors > 2 {
		return model.Cabinet{}, fmt.Sprintf("%s: Door count must be 0, 1 or 2", rowLabel), ""
	}
	if doors > 0 {
		cfg.DoorEnabled = true
		cfg.DoorCount = doors
	}

	drawers, msg := optionalInt(row, mapping.Drawers, rowLabel, "drawer count")
	if msg != "" {
		return model.Cabinet{}, msg, ""
	}
	if drawers > 0 {
		if err := engine.ValidateDrawerQuantity(drawers); err != nil {
			return model.Cabinet{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		cfg.DrawerEnabled = true
		cfg.DrawerQuantity = drawers
		cfg.DrawerHeights = engine.CalculateOptimalHeights(d.Height, drawers)
	}

	shelves, msg := optionalInt(row, mapping.Shelves, rowLabel, "shelf count")
	if msg != "" {
		return model.Cabinet{}, msg, ""
	}
	if err := engine.ValidateShelves(d, cfg.Material.PanelThickness, engine.ShelfSpec{Count: shelves}, s); err != nil {
		return model.Cabinet{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	cfg.ShelfCount = shelves

	return model.NewCabinet(label, t, d.Width, d.Height, d.Depth, cfg), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cabinets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, s model.Settings) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, s, "Line", result.Warnings)
}

// ImportCSVFromReader imports cabinets from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, s model.Settings) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, s, "Line", nil)
}

// ImportExcel imports cabinets from the first sheet of an Excel file.
func ImportExcel(path string, s model.Settings) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, s, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go to
// ImportExcel, everything else is read as CSV.
func ImportFile(path string, s model.Settings) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, s)
	}
	return ImportCSV(path, s)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, s model.Settings, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		for _, c := range []struct {
			name string
			idx  int
		}{
			{"Type", mapping.Type},
			{"Width", mapping.Width},
			{"Height", mapping.Height},
			{"Depth", mapping.Depth},
		} {
			if c.idx == -1 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > positionalMapping.Width {
		// An unrecognized header still has a non-numeric width cell.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][positionalMapping.Width]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		cabinet, errMsg, warning := parseRow(row, mapping, s, rowLabel, len(result.Cabinets))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Cabinets = append(result.Cabinets, cabinet)
	}

	if len(result.Cabinets) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
