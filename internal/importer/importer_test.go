package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/xuri/excelize/v2"
)

func settings() model.Settings {
	return model.DefaultSettings()
}

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	cases := map[rune]string{
		',':  "Label,Type,Width,Height,Depth\nB1,base,600,720,560\nT1,top,600,700,300\n",
		';':  "Label;Type;Width;Height;Depth\nB1;base;600;720;560\nT1;top;600;700;300\n",
		'\t': "Label\tType\tWidth\tHeight\tDepth\nB1\tbase\t600\t720\t560\nT1\ttop\t600\t700\t300\n",
		'|':  "Label|Type|Width|Height|Depth\nB1|base|600|720|560\nT1|top|600|700|300\n",
	}
	for want, data := range cases {
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("expected %q delimiter, got %q", want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Type", "Width", "Height", "Depth", "Doors", "Drawers", "Shelves", "Thickness"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping != positionalMapping {
		t.Errorf("expected standard order mapping, got %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	row := []string{"D", "H", "W", "Cabinet Type", "Name", "Drawer Count"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Depth != 0 || mapping.Height != 1 || mapping.Width != 2 {
		t.Errorf("unexpected dimension columns: %+v", mapping)
	}
	if mapping.Type != 3 || mapping.Label != 4 || mapping.Drawers != 5 {
		t.Errorf("unexpected feature columns: %+v", mapping)
	}
	if mapping.Doors != -1 || mapping.Shelves != -1 || mapping.Thickness != -1 {
		t.Errorf("expected absent columns at -1: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"B1", "base", "600", "720", "560"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Type,Width,Height,Depth,Doors,Drawers,Shelves,Thickness\n" +
		"B1,base,600,720,560,2,,1,18\n" +
		"D1,Base,500,720,560,,3,,\n" +
		"T1,top,600,700,300,1,,2,16\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 3 {
		t.Fatalf("expected 3 cabinets, got %d", len(result.Cabinets))
	}

	b1 := result.Cabinets[0]
	if b1.Label != "B1" || b1.Type != model.CabinetBase {
		t.Errorf("unexpected first cabinet: %s %s", b1.Label, b1.Type)
	}
	if !b1.Config.DoorEnabled || b1.Config.DoorCount != 2 || b1.Config.ShelfCount != 1 {
		t.Errorf("unexpected B1 features: %+v", b1.Config)
	}

	d1 := result.Cabinets[1]
	if !d1.Config.DrawerEnabled || d1.Config.DrawerQuantity != 3 {
		t.Fatalf("expected 3 drawers on D1, got %+v", d1.Config)
	}
	for _, h := range d1.Config.DrawerHeights {
		if h != 240 {
			t.Errorf("expected equal 240mm drawers, got %v", d1.Config.DrawerHeights)
		}
	}

	t1 := result.Cabinets[2]
	if t1.Config.Material.PanelThickness != 16 || t1.Config.Material.BackThickness != 16 {
		t.Errorf("expected 16mm material on T1, got %+v", t1.Config.Material)
	}
	if t1.ID == b1.ID {
		t.Error("expected unique cabinet IDs")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "B1,base,600,720,560\nT1,tall,600,2100,560,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if result.Cabinets[1].Config.DoorCount != 2 {
		t.Errorf("expected positional door count 2, got %d", result.Cabinets[1].Config.DoorCount)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "Ref#,Kind?,Wide,High,Deep\nB1,base,600,720,560\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Type;Width;Height;Depth\nB1;base;600;720;560\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';', settings())

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	cases := map[string]string{
		"missing type":     "B1,,600,720,560",
		"unknown type":     "B1,island,600,720,560",
		"invalid width":    "B1,base,abc,720,560",
		"missing depth":    "B1,base,600,720,",
		"too small":        "B1,base,30,720,560",
		"three doors":      "B1,base,600,720,560,3",
		"seven drawers":    "B1,base,600,720,560,,7",
		"negative shelves": "B1,base,600,720,560,,,-1",
		"no shelf room":    "B1,base,600,200,560,,,1",
		"invalid doors":    "B1,base,600,720,560,two",
	}
	for name, row := range cases {
		result := ImportCSVFromReader(strings.NewReader(row+"\n"), ',', settings())
		if len(result.Errors) == 0 {
			t.Errorf("%s: expected an error", name)
		}
		if len(result.Cabinets) != 0 {
			t.Errorf("%s: expected no cabinets", name)
		}
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Type,Width,Height,Depth\nB1,base,600,720,560\nB2,base,bad,720,560\nB3,base,400,720,560\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Cabinets) != 2 {
		t.Errorf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Line 3") {
		t.Errorf("expected one error on line 3, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidThicknessWarns(t *testing.T) {
	data := "Label,Type,Width,Height,Depth,Thickness\nB1,base,600,720,560,thick\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Config.Material.PanelThickness != 18 {
		t.Errorf("expected default thickness, got %v", result.Cabinets[0].Config.Material.PanelThickness)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid thickness") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected thickness warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Type,Width,Height,Depth\n,base,600,720,560\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Cabinets) != 1 || result.Cabinets[0].Label != "Cabinet 1" {
		t.Errorf("expected auto label 'Cabinet 1', got %+v", result.Cabinets)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Width,Height\nB1,600,720\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Type") || !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected missing Type and Depth, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyAndHeaderOnly(t *testing.T) {
	if result := ImportCSVFromReader(strings.NewReader(""), ',', settings()); len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
	result := ImportCSVFromReader(strings.NewReader("Label,Type,Width,Height,Depth\n"), ',', settings())
	if len(result.Errors) == 0 {
		t.Error("expected error for header-only input")
	}
}

func TestImportCSVFromReader_WhitespaceAndDecimals(t *testing.T) {
	data := " Label , Type , Width , Height , Depth \n B1 , BASE , 600.5 , 720 , 560.25 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', settings())

	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
	c := result.Cabinets[0]
	if c.Dimensions.Width != 600.5 || c.Dimensions.Depth != 560.25 {
		t.Errorf("unexpected dimensions: %+v", c.Dimensions)
	}
}

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	if err := os.WriteFile(path, []byte("Label;Type;Width;Height;Depth\nB1;base;600;720;560\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path, settings())
	if len(result.Cabinets) != 1 {
		t.Fatalf("expected 1 cabinet, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileErrors(t *testing.T) {
	if result := ImportCSV("/nonexistent/file.csv", settings()); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if result := ImportCSV(path, settings()); len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Type", "W", "H", "D", "Drawers"},
		{"D1", "base", 600, 720, 560, 4},
		{"T1", "top", 600, 700, 300, ""},
	})

	result := ImportFile(path, settings())

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d", len(result.Cabinets))
	}
	if result.Cabinets[0].Config.DrawerQuantity != 4 {
		t.Errorf("expected 4 drawers, got %d", result.Cabinets[0].Config.DrawerQuantity)
	}
	if result.Cabinets[1].Type != model.CabinetTop {
		t.Errorf("expected top cabinet, got %s", result.Cabinets[1].Type)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"B1", "base", 600, 720, 560},
		{"B2", "base", 400, 720, 560},
	})

	result := ImportExcel(path, settings())

	if len(result.Cabinets) != 2 {
		t.Fatalf("expected 2 cabinets, got %d (errors: %v)", len(result.Cabinets), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx", settings())

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Type", "Width", "Height", "Depth"},
		{"B1", "base", "abc", 720, 560},
	})

	result := ImportExcel(path, settings())

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
}
