package main

import (
	"github.com/piwi3910/cabinetry/internal/config"
	"github.com/piwi3910/cabinetry/internal/engine"
	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/piwi3910/cabinetry/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app is the state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *zap.Logger
}

// engineFor returns an engine that resolves with the room's own settings.
func (a *app) engineFor(r model.Room) *engine.Engine {
	return engine.New(r.Settings, a.log)
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New(), cfg: config.NewDefaultConfig(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "cabinetry",
		Short:         "Parametric cabinet layout engine",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Prepare(a.v, a.cfgFile)
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			observability.InitializeLogger(cfg.Logger)
			a.log = observability.GetLogger()
			a.log.Debug("Starting cabinetry", zap.String("version", Version), zap.String("command", cmd.Name()))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml or ~/.cabinetry/config.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newResolveCmd(a),
		newHeightsCmd(a),
		newCabinetCmd(a),
		newMergeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newTemplateCmd(a),
	)
	return root, a
}
