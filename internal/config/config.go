// Package config loads deploydiff settings from an optional config file,
// DEPLOYDIFF_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"deploydiff/internal/paths"
	"deploydiff/internal/report"
)

// Default tree names, looked up next to the executable when no root is
// configured.
const (
	DefaultOriginalDir = "personalJiraMiner"
	DefaultDeployedDir = "deployedJiraMiner"
	DefaultOutput      = "differences.json"
)

// ConfigName is the base name of the config file searched for in the
// working directory. Any extension viper understands is accepted.
const ConfigName = "deploydiff"

// EnvPrefix prefixes environment overrides, e.g. DEPLOYDIFF_JOBS.
const EnvPrefix = "DEPLOYDIFF"

// Config represents the complete deploydiff configuration
type Config struct {
	// OriginalDir and DeployedDir are the comparison roots. Empty means the
	// default tree next to the executable.
	OriginalDir  string   `json:"original" mapstructure:"original"`
	DeployedDir  string   `json:"deployed" mapstructure:"deployed"`
	Output       string   `json:"output" mapstructure:"output"`
	ReportFormat string   `json:"reportFormat" mapstructure:"reportFormat"`
	Jobs         int      `json:"jobs" mapstructure:"jobs"`
	Ignore       []string `json:"ignore" mapstructure:"ignore"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	// File, when set, receives a copy of every log line
	File string `json:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output:       DefaultOutput,
		ReportFormat: string(report.FormatJSON),
		Jobs:         1,
		Ignore:       []string{},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("original", d.OriginalDir)
	v.SetDefault("deployed", d.DeployedDir)
	v.SetDefault("output", d.Output)
	v.SetDefault("reportFormat", d.ReportFormat)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
}

// LoadConfig loads configuration. When configFile is empty, deploydiff.*
// is looked up in searchDir and a missing file yields the defaults; an
// explicit configFile must exist. Environment variables override both.
func LoadConfig(searchDir string, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(searchDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to deploydiff.json in dir
func (c *Config) Save(dir string) (string, error) {
	configPath := filepath.Join(dir, ConfigName+".json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return configPath, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return &ConfigError{Field: "jobs", Message: fmt.Sprintf("must be at least 1, got %d", c.Jobs)}
	}
	if _, err := report.ParseFormat(c.ReportFormat); err != nil {
		return &ConfigError{Field: "reportFormat", Message: err.Error()}
	}
	if c.Output == "" {
		return &ConfigError{Field: "output", Message: "must not be empty"}
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return &ConfigError{Field: "ignore", Message: fmt.Sprintf("invalid pattern %q", pattern)}
		}
	}
	return nil
}

// Paths holds the absolute locations used by a run.
type Paths struct {
	Original string
	Deployed string
	Output   string
}

// ResolvePaths makes the configured locations absolute. Unset roots name
// the default trees in toolDir; configured relative roots and the output
// resolve against workDir.
func (c *Config) ResolvePaths(toolDir, workDir string) Paths {
	root := func(configured, fallback string) string {
		if configured == "" {
			return filepath.Join(toolDir, fallback)
		}
		return filepath.Clean(paths.Resolve(workDir, configured))
	}
	return Paths{
		Original: root(c.OriginalDir, DefaultOriginalDir),
		Deployed: root(c.DeployedDir, DefaultDeployedDir),
		Output:   filepath.Clean(paths.Resolve(workDir, c.Output)),
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
