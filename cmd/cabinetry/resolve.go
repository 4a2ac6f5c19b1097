package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/cabinetry/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newResolveCmd(a *app) *cobra.Command {
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "resolve <room-file>",
		Short: "Resolve every cabinet of a room into panel geometry",
		Long: `Resolve loads a room document and prints the full assembly of every
cabinet as JSON. Drawer heights that no longer fit their carcass are
reset to an equal distribution; --save writes those repairs back.`,
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
			a.log.Info("Room resolved", zap.String("room", room.Name), zap.Int("cabinets", len(assemblies)))

			data, err := json.MarshalIndent(assemblies, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal assemblies: %w", err)
			}
			if output != "" {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}

			if save {
				return project.SaveRoom(args[0], room)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the assemblies to a file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "write repaired drawer heights back to the room file")
	return cmd
}
