package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cabinetry/internal/export"
	"github.com/piwi3910/cabinetry/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Export formats accepted by --format.
const (
	formatPDF    = "pdf"
	formatLabels = "labels"
	formatXLSX   = "xlsx"
	formatDXF    = "dxf"
	formatJSON   = "json"
)

func newExportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export <room-file>",
		Short: "Export the cut list of a room",
		Long: `Export resolves every cabinet of a room and writes its cut list as a
PDF table, a PDF sheet of QR labels, an Excel workbook, a DXF drawing
of part outlines, or JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := project.LoadRoom(args[0])
			if err != nil {
				return err
			}
			assemblies, err := a.engineFor(room).ResolveRoom(&room)
			if err != nil {
				return err
			}
			cl := export.BuildCutList(assemblies)

			if output == "" {
				output = defaultExportPath(args[0], format)
			}
			opts := exportOptions(a, room.Name)

			switch format {
			case formatPDF:
				err = export.ExportPDF(output, cl, opts)
			case formatLabels:
				err = export.ExportLabels(output, cl, opts)
			case formatXLSX:
				err = export.ExportExcel(output, cl, opts)
			case formatDXF:
				err = export.ExportDXF(output, cl)
			case formatJSON:
				err = export.ExportJSON(output, cl)
			default:
				return fmt.Errorf("unknown export format %q", format)
			}
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", format, err)
			}

			a.log.Info("Cut list exported",
				zap.String("format", format),
				zap.String("path", output),
				zap.Int("parts", len(cl.Parts)),
				zap.Int("pieces", cl.TotalPieces()))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatPDF, "output format: pdf, labels, xlsx, dxf or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default next to the room file)")
	return cmd
}

func exportOptions(a *app, title string) export.Options {
	opts := export.DefaultOptions()
	if title != "" {
		opts.Title = title + " Cut List"
	}
	ec := a.cfg.Export
	opts.Sheet = ec.Sheet
	opts.KerfWidth = ec.KerfWidth
	opts.WastePercent = ec.WastePercent
	opts.EdgeBandingWaste = ec.EdgeBandingWaste
	opts.LabelsPerRow = ec.LabelsPerRow
	return opts
}

// defaultExportPath swaps the room file extension for the format's,
// e.g. kitchen.json -> kitchen-labels.pdf.
func defaultExportPath(roomPath, format string) string {
	base := strings.TrimSuffix(roomPath, filepath.Ext(roomPath))
	switch format {
	case formatLabels:
		return base + "-labels.pdf"
	case formatJSON:
		return base + "-cutlist.json"
	}
	return base + "." + format
}
