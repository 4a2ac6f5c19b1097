package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/cabinetry/internal/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHeightsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heights",
		Short: "Drawer height distribution calculations",
	}
	cmd.AddCommand(newHeightsOptimalCmd(), newHeightsUpdateCmd(), newHeightsScaleCmd(a))
	return cmd
}

func newHeightsOptimalCmd() *cobra.Command {
	var total float64
	var count int

	cmd := &cobra.Command{
		Use:   "optimal",
		Short: "Split a carcass height into equal drawer slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := engine.ValidateDrawerQuantity(count); err != nil {
				return err
			}
			printHeights(cmd.OutOrStdout(), engine.CalculateOptimalHeights(total, count))
			return nil
		},
	}
	cmd.Flags().Float64Var(&total, "total", 0, "carcass height in mm")
	cmd.Flags().IntVar(&count, "count", 1, "number of drawers")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

func newHeightsUpdateCmd() *cobra.Command {
	var total, height float64
	var heights []float64
	var index int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Set one drawer slot and redistribute the others",
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := engine.UpdateHeight(engine.HeightState{
				CarcassHeight: total,
				Quantity:      len(heights),
				Heights:       heights,
			}, index, height)
			printHeights(cmd.OutOrStdout(), upd.Heights)
			if upd.WasReset {
				fmt.Fprintf(cmd.OutOrStdout(), "reset: %s\n", upd.Reason)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&total, "total", 0, "carcass height in mm")
	cmd.Flags().Float64SliceVar(&heights, "heights", nil, "current drawer heights, bottom first")
	cmd.Flags().IntVar(&index, "index", 0, "slot to change (0 is the bottom drawer)")
	cmd.Flags().Float64Var(&height, "height", 0, "new height of the slot in mm")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("heights")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func newHeightsScaleCmd(a *app) *cobra.Command {
	var from, to float64
	var heights []float64

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Scale drawer heights to a new carcass height",
		RunE: func(cmd *cobra.Command, args []string) error {
			constraints := make([]engine.HeightConstraint, len(heights))
			for i := range constraints {
				constraints[i] = engine.HeightConstraint{Min: engine.MinDrawerHeight}
			}
			res := engine.ScaleHeightsProportionally(heights, from, to, constraints)
			printHeights(cmd.OutOrStdout(), res.Heights)
			if res.Abandoned != 0 {
				a.log.Warn("Drawer rescale abandoned remainder",
					zap.Float64("remainder", res.Abandoned),
					zap.Int("iterations", res.Iterations))
				fmt.Fprintf(cmd.OutOrStdout(), "abandoned: %.1f\n", res.Abandoned)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "current carcass height in mm")
	cmd.Flags().Float64Var(&to, "to", 0, "new carcass height in mm")
	cmd.Flags().Float64SliceVar(&heights, "heights", nil, "current drawer heights, bottom first")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("heights")
	return cmd
}

func printHeights(w io.Writer, heights []float64) {
	parts := make([]string, len(heights))
	for i, h := range heights {
		parts[i] = fmt.Sprintf("%.1f", h)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}
