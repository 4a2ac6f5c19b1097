package main

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMergeCmd(a *app) *cobra.Command {
	var category string
	var ids []int
	var yes bool

	cmd := &cobra.Command{
		Use:   "merge <room-file>",
		Short: "Merge adjacent benchtops or kickers into one slab",
		Long: `Merge replaces the selected slabs with a single slab enclosing all of
them. Height, depth, thickness and material differences are reported as
warnings first; the merge is only applied when --yes is given or there
are no warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := model.SlabCategory(category)
			if cat != model.SlabBenchtop && cat != model.SlabKicker {
				return fmt.Errorf("unknown slab category %q", category)
			}
			out := cmd.OutOrStdout()

			return editRoom(args[0], func(r *model.Room) error {
				slabs, err := r.Slabs(cat, ids)
				if err != nil {
					return err
				}
				e := a.engineFor(*r)

				warnings, err := e.AnalyzeMerge(slabs)
				if err != nil {
					return err
				}
				for _, w := range warnings {
					fmt.Fprintf(out, "warning (%s): %s\n", w.Type, w.Message)
				}
				if len(warnings) > 0 && !yes {
					return fmt.Errorf("merge has %d warning(s); rerun with --yes to apply", len(warnings))
				}

				res, err := e.Merge(slabs)
				if err != nil {
					return err
				}
				if res == nil {
					return fmt.Errorf("select at least two %ss to merge", cat)
				}
				merged := r.ApplyMerge(*res)
				a.log.Info("Slabs merged",
					zap.String("category", string(cat)),
					zap.Ints("sources", res.Sources),
					zap.Int("id", merged.ID))
				fmt.Fprintf(out, "merged %d %ss into %s %d (%.0f x %.0f x %.0f)\n",
					len(res.Sources), cat, cat, merged.ID, merged.Width, merged.Depth, merged.Thickness)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", string(model.SlabBenchtop), "slab category: benchtop or kicker")
	cmd.Flags().IntSliceVar(&ids, "ids", nil, "IDs of the slabs to merge")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply the merge even when it has warnings")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}
