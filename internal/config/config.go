// Package config loads cabinetry settings from config.yaml, CABINETRY_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CABINETRY_ENGINE_KICKER_HEIGHT.
const EnvPrefix = "CABINETRY"

// Config is the complete application configuration.
type Config struct {
	Logger  LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Engine  model.Settings `mapstructure:"engine" yaml:"engine"`
	Export  ExportConfig   `mapstructure:"export" yaml:"export"`
	Storage StorageConfig  `mapstructure:"storage" yaml:"storage"`
}

// LoggerConfig controls console and file logging.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"` // "console" or "json"
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"` // Empty disables file output
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"` // MB
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console colour of each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ExportConfig holds the purchasing assumptions used by cut-list exports.
type ExportConfig struct {
	Sheet            model.SheetSpec `mapstructure:"sheet" yaml:"sheet"`
	KerfWidth        float64         `mapstructure:"kerf_width" yaml:"kerf_width"`
	WastePercent     float64         `mapstructure:"waste_percent" yaml:"waste_percent"`
	EdgeBandingWaste float64         `mapstructure:"edge_banding_waste" yaml:"edge_banding_waste"`
	LabelsPerRow     int             `mapstructure:"labels_per_row" yaml:"labels_per_row"`
}

// StorageConfig locates user data files.
type StorageConfig struct {
	TemplatesPath string `mapstructure:"templates_path" yaml:"templates_path"` // Empty means ~/.cabinetry/templates.json
}

// SetDefaults registers every key with its default value. Keys must be
// registered for AutomaticEnv to reach them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "cabinetry")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	s := model.DefaultSettings()
	v.SetDefault("engine.kicker_height", s.KickerHeight)
	v.SetDefault("engine.door_gap", s.DoorGap)
	v.SetDefault("engine.door_clearance", s.DoorClearance)
	v.SetDefault("engine.door_overhang", s.DoorOverhang)
	v.SetDefault("engine.leg_diameter", s.LegDiameter)
	v.SetDefault("engine.leg_setback", s.LegSetback)
	v.SetDefault("engine.leg_side_inset", s.LegSideInset)
	v.SetDefault("engine.shelf_clearance", s.ShelfClearance)
	v.SetDefault("engine.base_rail_depth", s.BaseRailDepth)
	v.SetDefault("engine.panel_thickness", s.DefaultPanelThickness)
	v.SetDefault("engine.door_thickness", s.DefaultDoorThickness)

	sheet := model.DefaultSheetSpec()
	v.SetDefault("export.sheet.width", sheet.Width)
	v.SetDefault("export.sheet.height", sheet.Height)
	v.SetDefault("export.sheet.price_per_sheet", sheet.PricePerSheet)
	v.SetDefault("export.kerf_width", 3.0)
	v.SetDefault("export.waste_percent", 15.0)
	v.SetDefault("export.edge_banding_waste", 10.0)
	v.SetDefault("export.labels_per_row", 3)

	v.SetDefault("storage.templates_path", "")
}

// NewDefaultConfig returns the configuration used when no file or
// environment override is present.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Prepare points v at cfgFile, or at config.yaml in the working directory
// and ~/.cabinetry when cfgFile is empty, and enables env overrides.
func Prepare(v *viper.Viper, cfgFile string) {
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cabinetry"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration prepared on v. A missing config file is not
// an error; defaults and environment variables still apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no cabinet could be resolved with.
func (c *Config) Validate() error {
	e := c.Engine
	for _, f := range []struct {
		key   string
		value float64
	}{
		{"engine.kicker_height", e.KickerHeight},
		{"engine.door_gap", e.DoorGap},
		{"engine.door_clearance", e.DoorClearance},
		{"engine.door_overhang", e.DoorOverhang},
		{"engine.shelf_clearance", e.ShelfClearance},
		{"engine.base_rail_depth", e.BaseRailDepth},
		{"export.kerf_width", c.Export.KerfWidth},
		{"export.waste_percent", c.Export.WastePercent},
		{"export.edge_banding_waste", c.Export.EdgeBandingWaste},
	} {
		if f.value < 0 {
			return fmt.Errorf("invalid config: %s must not be negative, got %g", f.key, f.value)
		}
	}
	for _, f := range []struct {
		key   string
		value float64
	}{
		{"engine.leg_diameter", e.LegDiameter},
		{"engine.panel_thickness", e.DefaultPanelThickness},
		{"engine.door_thickness", e.DefaultDoorThickness},
		{"export.sheet.width", c.Export.Sheet.Width},
		{"export.sheet.height", c.Export.Sheet.Height},
	} {
		if f.value <= 0 {
			return fmt.Errorf("invalid config: %s must be positive, got %g", f.key, f.value)
		}
	}
	if c.Export.LabelsPerRow < 1 {
		return fmt.Errorf("invalid config: export.labels_per_row must be at least 1, got %d", c.Export.LabelsPerRow)
	}
	return nil
}
