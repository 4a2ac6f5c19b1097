package export

import "github.com/piwi3910/cabinetry/internal/model"

// Options carries the purchasing assumptions printed with a cut list.
type Options struct {
	Title            string
	Sheet            model.SheetSpec
	KerfWidth        float64 // mm added to each part edge when estimating sheets
	WastePercent     float64 // extra sheets, e.g. 15 for 15%
	EdgeBandingWaste float64 // extra banding, e.g. 10 for 10%
	LabelsPerRow     int
}

func DefaultOptions() Options {
	return Options{
		Title:            "Cut List",
		Sheet:            model.DefaultSheetSpec(),
		KerfWidth:        3,
		WastePercent:     15,
		EdgeBandingWaste: 10,
		LabelsPerRow:     3,
	}
}
