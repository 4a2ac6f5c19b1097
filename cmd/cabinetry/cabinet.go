package main

import (
	"fmt"
	"strconv"

	"github.com/piwi3910/cabinetry/internal/engine"
	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/piwi3910/cabinetry/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// editRoom loads a room, applies fn and saves it back when fn succeeds.
func editRoom(path string, fn func(r *model.Room) error) error {
	room, err := project.LoadRoom(path)
	if err != nil {
		return err
	}
	if err := fn(&room); err != nil {
		return err
	}
	return project.SaveRoom(path, room)
}

func findCabinet(r *model.Room, id string) (*model.Cabinet, error) {
	c := r.FindCabinet(id)
	if c == nil {
		return nil, fmt.Errorf("no cabinet with id %q in room %q", id, r.Name)
	}
	return c, nil
}

// appendToRun places c to the right of the rightmost cabinet and adds it.
func appendToRun(r *model.Room, c model.Cabinet) model.Cabinet {
	c.Position.X = 0
	for _, other := range r.Cabinets {
		if right := other.Position.X + other.Dimensions.Width; right > c.Position.X {
			c.Position.X = right
		}
	}
	r.AddCabinet(c)
	return c
}

func newCabinetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cabinet",
		Short: "Add, edit and remove the cabinets of a room",
	}
	cmd.AddCommand(
		newCabinetAddCmd(a),
		newCabinetListCmd(),
		newCabinetRemoveCmd(),
		newCabinetResizeCmd(a),
		newCabinetDrawersCmd(a),
		newCabinetDrawerHeightCmd(a),
		newCabinetThicknessCmd(a),
		newCabinetViewCmd(),
		newCabinetKickerCmd(a),
	)
	return cmd
}

// cabinetSpec collects the flags that describe a new cabinet.
type cabinetSpec struct {
	label                  string
	cabinetType            string
	width, height, depth   float64
	doors, drawers, shelves int
	thickness              float64
}

func (s cabinetSpec) build(settings model.Settings) (model.Cabinet, error) {
	t, err := model.ParseCabinetType(s.cabinetType)
	if err != nil {
		return model.Cabinet{}, err
	}
	cfg := model.DefaultCarcassConfig(settings)
	if s.thickness > 0 {
		cfg.Material.SetPanelThickness(s.thickness)
	}
	cfg.ShelfCount = s.shelves
	if s.doors > 0 {
		cfg.DoorEnabled = true
		cfg.DoorCount = s.doors
	}
	if s.drawers > 0 {
		if err := engine.ValidateDrawerQuantity(s.drawers); err != nil {
			return model.Cabinet{}, err
		}
		cfg.DrawerEnabled = true
		cfg.DrawerQuantity = s.drawers
		cfg.DrawerHeights = engine.CalculateOptimalHeights(s.height, s.drawers)
	}
	return model.NewCabinet(s.label, t, s.width, s.height, s.depth, cfg), nil
}

func newCabinetAddCmd(a *app) *cobra.Command {
	var spec cabinetSpec

	cmd := &cobra.Command{
		Use:   "add <room-file>",
		Short: "Append a cabinet to the right of the existing run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRoom(args[0], func(r *model.Room) error {
				c, err := spec.build(r.Settings)
				if err != nil {
					return err
				}
				if c.Label == "" {
					c.Label = fmt.Sprintf("Cabinet %d", len(r.Cabinets)+1)
				}
				if _, err := a.engineFor(*r).Resolve(&c); err != nil {
					return err
				}
				c = appendToRun(r, c)
				a.log.Info("Cabinet added", zap.String("id", c.ID), zap.String("label", c.Label))
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&spec.label, "label", "", "cabinet label")
	f.StringVar(&spec.cabinetType, "type", string(model.CabinetBase), "cabinet type: base, top or tall")
	f.Float64Var(&spec.width, "width", 600, "outer width in mm")
	f.Float64Var(&spec.height, "height", 720, "outer height in mm")
	f.Float64Var(&spec.depth, "depth", 560, "outer depth in mm")
	f.IntVar(&spec.doors, "doors", 0, "number of doors (0, 1 or 2)")
	f.IntVar(&spec.drawers, "drawers", 0, "number of drawers (0 to 6)")
	f.IntVar(&spec.shelves, "shelves", 0, "number of shelves")
	f.Float64Var(&spec.thickness, "thickness", 0, "panel thickness in mm (default from settings)")
	return cmd
}

func newCabinetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <room-file>",
		Short: "List the cabinets of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := project.LoadRoom(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range room.Cabinets {
				view, _ := room.Views.ViewOf(c.ID)
				if view == "" {
					view = "-"
				}
				d := c.Dimensions
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0fx%.0fx%.0f\tview %s\n", c.ID, c.Label, c.Type, d.Width, d.Height, d.Depth, view)
			}
			return nil
		},
	}
}

func newCabinetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <room-file> <cabinet-id>",
		Short: "Remove a cabinet from a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRoom(args[0], func(r *model.Room) error {
				if !r.RemoveCabinet(args[1]) {
					return fmt.Errorf("no cabinet with id %q in room %q", args[1], r.Name)
				}
				return nil
			})
		},
	}
}

func newCabinetResizeCmd(a *app) *cobra.Command {
	var width, height, depth float64

	cmd := &cobra.Command{
		Use:   "resize <room-file> <cabinet-id>",
		Short: "Change cabinet dimensions, scaling drawer heights to fit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRoom(args[0], func(r *model.Room) error {
				c, err := findCabinet(r, args[1])
				if err != nil {
					return err
				}
				d := c.Dimensions
				if cmd.Flags().Changed("width") {
					d.Width = width
				}
				if cmd.Flags().Changed("height") {
					d.Height = height
				}
				if cmd.Flags().Changed("depth") {
					d.Depth = depth
				}
				_, err = a.engineFor(*r).ResizeCabinet(c, d)
				return err
			})
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "new outer width in mm")
	cmd.Flags().Float64Var(&height, "height", 0, "new outer height in mm")
	cmd.Flags().Float64Var(&depth, "depth", 0, "new outer depth in mm")
	return cmd
}

func newCabinetDrawersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drawers <room-file> <cabinet-id> <quantity>",
		Short: "Change the number of drawers",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid drawer quantity %q: %w", args[2], err)
			}
			return editRoom(args[0], func(r *model.Room) error {
				c, err := findCabinet(r, args[1])
				if err != nil {
					return err
				}
				upd, err := a.engineFor(*r).SetDrawerQuantity(c, quantity)
				if err != nil {
					return err
				}
				c.Config.DrawerEnabled = true
				printHeights(cmd.OutOrStdout(), upd.Heights)
				return nil
			})
		},
	}
}

func newCabinetDrawerHeightCmd(a *app) *cobra.Command {
	var index int
	var height float64

	cmd := &cobra.Command{
		Use:   "drawer-height <room-file> <cabinet-id>",
		Short: "Set one drawer height and redistribute the others",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRoom(args[0], func(r *model.Room) error {
				c, err := findCabinet(r, args[1])
				if err != nil {
					return err
				}
				if !c.Config.DrawerEnabled {
					return fmt.Errorf("cabinet %q has no drawers", c.Label)
				}
				upd := a.engineFor(*r).UpdateDrawerHeight(c, index, height)
				printHeights(cmd.OutOrStdout(), upd.Heights)
				if upd.WasReset {
					fmt.Fprintf(cmd.OutOrStdout(), "reset: %s\n", upd.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "slot to change (0 is the bottom drawer)")
	cmd.Flags().Float64Var(&height, "height", 0, "new height of the slot in mm")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func newCabinetThicknessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "thickness <room-file> <cabinet-id> <mm>",
		Short: "Change the carcass board thickness",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid thickness %q: %w", args[2], err)
			}
			return editRoom(args[0], func(r *model.Room) error {
				c, err := findCabinet(r, args[1])
				if err != nil {
					return err
				}
				_, err = a.engineFor(*r).SetPanelThickness(c, t)
				return err
			})
		},
	}
}

func newCabinetViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <room-file> <cabinet-id> <view>",
		Short: "Assign a cabinet to a named view (A-Z), or '-' to unassign",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRoom(args[0], func(r *model.Room) error {
				if _, err := findCabinet(r, args[1]); err != nil {
					return err
				}
				if args[2] == "-" {
					r.Views.Unassign(args[1])
					return nil
				}
				return r.Views.Assign(args[2], args[1])
			})
		},
	}
}

func newCabinetKickerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kicker <room-file> <mm>",
		Short: "Change the kicker height of base and tall cabinets in a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid kicker height %q: %w", args[1], err)
			}
			return editRoom(args[0], func(r *model.Room) error {
				e := a.engineFor(*r)
				if err := e.SetKickerHeight(h); err != nil {
					return err
				}
				r.Settings = e.Settings
				return nil
			})
		},
	}
}
