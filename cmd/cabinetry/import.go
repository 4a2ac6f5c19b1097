package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cabinetry/internal/importer"
	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/piwi3910/cabinetry/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(a *app) *cobra.Command {
	var roomPath, name string

	cmd := &cobra.Command{
		Use:   "import <schedule>",
		Short: "Import a cabinet schedule from CSV or Excel into a room",
		Long: `Import reads a cabinet schedule (.csv, .xlsx or .xlsm) and appends every
valid row to a room document, creating the room when it does not exist.
Rows with errors are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if roomPath == "" {
				roomPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}

			room, err := project.LoadRoom(roomPath)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(roomPath), filepath.Ext(roomPath))
				}
				room = model.NewRoom(name)
				room.Settings = a.cfg.Engine
			}

			res := importer.ImportFile(args[0], room.Settings)
			out := cmd.OutOrStdout()
			for _, w := range res.Warnings {
				fmt.Fprintln(out, "warning:", w)
			}
			for _, e := range res.Errors {
				fmt.Fprintln(out, "error:", e)
			}
			if len(res.Cabinets) == 0 {
				return fmt.Errorf("no cabinets imported from %s", args[0])
			}

			for _, c := range res.Cabinets {
				appendToRun(&room, c)
			}
			if err := project.SaveRoom(roomPath, room); err != nil {
				return err
			}
			a.log.Info("Schedule imported",
				zap.String("schedule", args[0]),
				zap.String("room", roomPath),
				zap.Int("cabinets", len(res.Cabinets)),
				zap.Int("errors", len(res.Errors)))
			fmt.Fprintf(out, "imported %d cabinet(s) into %s\n", len(res.Cabinets), roomPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&roomPath, "room", "r", "", "room file to append to (default: schedule name with .json)")
	cmd.Flags().StringVar(&name, "name", "", "name of a newly created room")
	return cmd
}
