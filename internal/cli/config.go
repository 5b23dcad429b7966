package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/furnish/internal/activity"
	"github.com/mesh-intelligence/furnish/internal/export"
	"github.com/mesh-intelligence/furnish/pkg/canvas"
	"github.com/mesh-intelligence/furnish/pkg/history"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "FURNISH"
)

// Config keys.
const (
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeySession      = "session"
	cfgKeyHistoryDepth = "history_depth"
	cfgKeyScaleFactor  = "scale_factor"
	cfgKeyTableSize    = "table_size"
	cfgKeyChairSize    = "chair_size"
	cfgKeyTableFill    = "table_fill"
	cfgKeyChairFill    = "chair_fill"
	cfgKeyHitOrder     = "hit_order"
	cfgKeyLogActions   = "log_actions"
	cfgKeyLogFile      = "log_file"
	cfgKeyExportWidth  = "export_width"
	cfgKeyExportHeight = "export_height"
)

const defaultSession = "default"

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# furnish configuration

# Storage backend
backend: sqlite

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Session edited when --session is not given
session: default

# Editor
history_depth: 50
scale_factor: 1.1
table_size: 50
chair_size: 30
table_fill: "8b4513"
chair_fill: "d2b48c"
hit_order: stored

# Activity log, relative to the data directory
log_actions: true
log_file: user_interactions.log

# Export size in pixels (PNG) or points (PDF)
export_width: 800
export_height: 600
`

// settings is the decoded configuration.
type settings struct {
	Backend      string  `mapstructure:"backend" yaml:"backend" json:"backend"`
	DataDir      string  `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	Session      string  `mapstructure:"session" yaml:"session" json:"session"`
	HistoryDepth int     `mapstructure:"history_depth" yaml:"history_depth" json:"history_depth"`
	ScaleFactor  float64 `mapstructure:"scale_factor" yaml:"scale_factor" json:"scale_factor"`
	TableSize    float64 `mapstructure:"table_size" yaml:"table_size" json:"table_size"`
	ChairSize    float64 `mapstructure:"chair_size" yaml:"chair_size" json:"chair_size"`
	TableFill    string  `mapstructure:"table_fill" yaml:"table_fill" json:"table_fill"`
	ChairFill    string  `mapstructure:"chair_fill" yaml:"chair_fill" json:"chair_fill"`
	HitOrder     string  `mapstructure:"hit_order" yaml:"hit_order" json:"hit_order"`
	LogActions   bool    `mapstructure:"log_actions" yaml:"log_actions" json:"log_actions"`
	LogFile      string  `mapstructure:"log_file" yaml:"log_file" json:"log_file"`
	ExportWidth  int     `mapstructure:"export_width" yaml:"export_width" json:"export_width"`
	ExportHeight int     `mapstructure:"export_height" yaml:"export_height" json:"export_height"`

	// Parsed forms, filled by decodeSettings.
	canvasOpts canvas.Options
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeySession, defaultSession)
	v.SetDefault(cfgKeyHistoryDepth, history.DefaultMaxDepth)
	v.SetDefault(cfgKeyScaleFactor, canvas.DefaultScaleFactor)
	v.SetDefault(cfgKeyTableSize, canvas.DefaultTableSize)
	v.SetDefault(cfgKeyChairSize, canvas.DefaultChairSize)
	v.SetDefault(cfgKeyTableFill, types.TableBrown.Hex())
	v.SetDefault(cfgKeyChairFill, types.ChairTan.Hex())
	v.SetDefault(cfgKeyHitOrder, canvas.HitStored.String())
	v.SetDefault(cfgKeyLogActions, true)
	v.SetDefault(cfgKeyLogFile, activity.DefaultFileName)
	v.SetDefault(cfgKeyExportWidth, export.DefaultWidth)
	v.SetDefault(cfgKeyExportHeight, export.DefaultHeight)
}

// envKeys are the keys that FURNISH_<KEY> overrides. data_dir is resolved by
// the paths package, where config.yaml outranks the environment.
var envKeys = []string{
	cfgKeyBackend, cfgKeySession, cfgKeyHistoryDepth, cfgKeyScaleFactor,
	cfgKeyTableSize, cfgKeyChairSize, cfgKeyTableFill, cfgKeyChairFill,
	cfgKeyHitOrder, cfgKeyLogActions, cfgKeyLogFile,
	cfgKeyExportWidth, cfgKeyExportHeight,
}

// loadConfig reads config.yaml from the config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// decodeSettings unmarshals v and validates the editor settings.
func decodeSettings(v *viper.Viper) (settings, error) {
	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(s.Session) == "" {
		s.Session = defaultSession
	}
	if s.HistoryDepth <= 0 {
		return s, fmt.Errorf("%s must be positive, got %d", cfgKeyHistoryDepth, s.HistoryDepth)
	}
	if !(s.ScaleFactor > 0) {
		return s, fmt.Errorf("%s must be positive, got %v", cfgKeyScaleFactor, s.ScaleFactor)
	}
	if !(s.TableSize > 0) || !(s.ChairSize > 0) {
		return s, fmt.Errorf("%s and %s must be positive", cfgKeyTableSize, cfgKeyChairSize)
	}
	if s.ExportWidth <= 0 || s.ExportHeight <= 0 {
		return s, fmt.Errorf("%s and %s must be positive", cfgKeyExportWidth, cfgKeyExportHeight)
	}

	tableFill, err := parseColor(s.TableFill)
	if err != nil {
		return s, fmt.Errorf("%s: %w", cfgKeyTableFill, err)
	}
	chairFill, err := parseColor(s.ChairFill)
	if err != nil {
		return s, fmt.Errorf("%s: %w", cfgKeyChairFill, err)
	}
	order, err := canvas.ParseHitOrder(s.HitOrder)
	if err != nil {
		return s, err
	}

	s.canvasOpts = canvas.Options{
		TableSize:   s.TableSize,
		ChairSize:   s.ChairSize,
		TableFill:   tableFill,
		ChairFill:   chairFill,
		ScaleFactor: s.ScaleFactor,
		HitOrder:    order,
	}
	return s, nil
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return writeJSON(cmd, a.cfg)
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return sysError("marshal config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", filepath.Join(a.configDir, configFileExt), data)
			return nil
		},
	}
}
