package main

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/piwi3910/cabinetry/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable cabinet templates",
	}
	cmd.AddCommand(
		newTemplateListCmd(a),
		newTemplateAddCmd(a),
		newTemplateRemoveCmd(a),
		newTemplateApplyCmd(a),
		newTemplateBackupCmd(a),
		newTemplateRestoreCmd(a),
	)
	return cmd
}

func (a *app) templatePath() (string, error) {
	return project.ResolveTemplatePath(a.cfg.Storage.TemplatesPath)
}

func (a *app) loadTemplates() (model.TemplateStore, string, error) {
	path, err := a.templatePath()
	if err != nil {
		return model.TemplateStore{}, "", fmt.Errorf("failed to locate template store: %w", err)
	}
	store, err := project.LoadTemplates(path)
	if err != nil {
		return model.TemplateStore{}, "", err
	}
	return store, path, nil
}

// findTemplate looks a template up by ID first, then by name.
func findTemplate(store *model.TemplateStore, key string) (*model.CabinetTemplate, error) {
	if t := store.FindByID(key); t != nil {
		return t, nil
	}
	if t := store.FindByName(key); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("no template named %q", key)
}

func newTemplateListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadTemplates()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range store.Templates {
				d := t.Dimensions
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0fx%.0fx%.0f\t%s\n", t.ID, t.Name, t.Type, d.Width, d.Height, d.Depth, t.Description)
			}
			return nil
		},
	}
}

func newTemplateAddCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add <room-file> <cabinet-id>",
		Short: "Save a cabinet of a room as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := project.LoadRoom(args[0])
			if err != nil {
				return err
			}
			c, err := findCabinet(&room, args[1])
			if err != nil {
				return err
			}
			store, path, err := a.loadTemplates()
			if err != nil {
				return err
			}
			if name == "" {
				name = c.Label
			}
			if store.FindByName(name) != nil {
				return fmt.Errorf("a template named %q already exists", name)
			}

			t := model.NewCabinetTemplate(name, description, *c)
			store.Add(t)
			if err := project.SaveTemplates(path, store); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			a.log.Info("Template saved", zap.String("id", t.ID), zap.String("name", t.Name))
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "template name (default: cabinet label)")
	cmd.Flags().StringVar(&description, "description", "", "template description")
	return cmd
}

func newTemplateRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <template>",
		Short: "Delete a template by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, path, err := a.loadTemplates()
			if err != nil {
				return err
			}
			t, err := findTemplate(&store, args[0])
			if err != nil {
				return err
			}
			store.Remove(t.ID)
			return project.SaveTemplates(path, store)
		},
	}
}

func newTemplateApplyCmd(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "apply <template> <room-file>",
		Short: "Add a new cabinet built from a template to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadTemplates()
			if err != nil {
				return err
			}
			t, err := findTemplate(&store, args[0])
			if err != nil {
				return err
			}
			return editRoom(args[1], func(r *model.Room) error {
				l := label
				if l == "" {
					l = fmt.Sprintf("%s %d", t.Name, len(r.Cabinets)+1)
				}
				c := t.ToCabinet(l)
				if _, err := a.engineFor(*r).Resolve(&c); err != nil {
					return err
				}
				c = appendToRun(r, c)
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label of the new cabinet")
	return cmd
}

func newTemplateBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <backup-file> [room-file...]",
		Short: "Write templates and rooms into one backup file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.loadTemplates()
			if err != nil {
				return err
			}
			rooms := make([]model.Room, 0, len(args)-1)
			for _, p := range args[1:] {
				r, err := project.LoadRoom(p)
				if err != nil {
					return err
				}
				rooms = append(rooms, r)
			}
			if err := project.ExportAllData(args[0], store, rooms); err != nil {
				return err
			}
			a.log.Info("Backup written",
				zap.String("path", args[0]),
				zap.Int("templates", len(store.Templates)),
				zap.Int("rooms", len(rooms)))
			return nil
		},
	}
}

func newTemplateRestoreCmd(a *app) *cobra.Command {
	var roomsDir string

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the template store from a backup and extract its rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			path, err := a.templatePath()
			if err != nil {
				return err
			}
			if err := project.SaveTemplates(path, backup.Templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, r := range backup.Rooms {
				name := r.Name
				if name == "" {
					name = fmt.Sprintf("room-%d", i+1)
				}
				p := filepath.Join(roomsDir, name+".json")
				if err := project.SaveRoom(p, r); err != nil {
					return err
				}
				fmt.Fprintln(out, p)
			}
			a.log.Info("Backup restored",
				zap.String("version", backup.Version),
				zap.Int("templates", len(backup.Templates.Templates)),
				zap.Int("rooms", len(backup.Rooms)))
			return nil
		},
	}
	cmd.Flags().StringVar(&roomsDir, "rooms-dir", ".", "directory to write restored rooms into")
	return cmd
}
