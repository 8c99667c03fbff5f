// Package config provides unified configuration loading for the
// cross-reference service. Supports YAML files, a .env file, and
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Paths         PathsConfig         `yaml:"paths"`
	Columns       ColumnsConfig       `yaml:"columns"`
	Cleaning      CleaningConfig      `yaml:"cleaning"`
	Highlight     HighlightConfig     `yaml:"highlight"`
	History       HistoryConfig       `yaml:"history"`
	Upload        UploadConfig        `yaml:"upload"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// PathsConfig holds the file locations the service works with.
type PathsConfig struct {
	MasterBOM string `yaml:"master_bom"`
	UploadDir string `yaml:"upload_dir"`
	OutputDir string `yaml:"output_dir"`
}

// ColumnsConfig holds project-column discovery settings.
type ColumnsConfig struct {
	// WindowStart/WindowEnd bound the zero-based index range of catalog
	// columns considered project-column candidates. Master BOM exports
	// keep identity columns first and remarks last.
	WindowStart int `yaml:"window_start"`
	WindowEnd   int `yaml:"window_end"`

	// DefaultProject is used when a run supplies no project column hint.
	DefaultProject string `yaml:"default_project"`
}

// CleaningConfig holds data-cleaning switches.
type CleaningConfig struct {
	Uppercase      bool `yaml:"uppercase"`
	StripNonASCII  bool `yaml:"strip_non_ascii"`
	ExcludeInvalid bool `yaml:"exclude_invalid"`
}

// HighlightConfig holds the ARGB fill colors applied to output rows by
// their Action value.
type HighlightConfig struct {
	Updated string `yaml:"updated"`
	Added   string `yaml:"added"`
	Skipped string `yaml:"skipped"`
}

// HistoryConfig holds run-history store settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// UploadConfig holds upload acceptance limits.
type UploadConfig struct {
	MaxSizeMB  int      `yaml:"max_size_mb"`
	Extensions []string `yaml:"extensions"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. A .env file next to the working directory is honored when
// present; missing .env is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for
// development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Paths: PathsConfig{
			MasterBOM: "data/master_bom.xlsx",
			UploadDir: "data/uploads",
			OutputDir: "data/outputs",
		},
		Columns: ColumnsConfig{
			WindowStart: 1,
			WindowEnd:   23,
		},
		Cleaning: CleaningConfig{
			Uppercase:      true,
			StripNonASCII:  true,
			ExcludeInvalid: true,
		},
		Highlight: HighlightConfig{
			Updated: "FFFFCC",
			Added:   "FFCCCC",
			Skipped: "E6E6E6",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "data/crossbom.db",
		},
		Upload: UploadConfig{
			MaxSizeMB:  16,
			Extensions: []string{".xlsx", ".xls", ".csv"},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Columns.WindowStart < 0 {
		return fmt.Errorf("column window start must not be negative: %d", c.Columns.WindowStart)
	}
	if c.Columns.WindowEnd < c.Columns.WindowStart {
		return fmt.Errorf("column window end %d precedes start %d", c.Columns.WindowEnd, c.Columns.WindowStart)
	}

	if c.Upload.MaxSizeMB < 1 {
		return fmt.Errorf("upload max size must be at least 1 MB: %d", c.Upload.MaxSizeMB)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("MASTER_BOM_PATH"); v != "" {
		cfg.Paths.MasterBOM = v
	}

	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Paths.UploadDir = v
	}

	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Paths.OutputDir = v
	}

	if v := os.Getenv("HISTORY_DB_PATH"); v != "" {
		cfg.History.Path = v
	}

	if v := os.Getenv("DEFAULT_PROJECT"); v != "" {
		cfg.Columns.DefaultProject = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

// ResolveRelativePath resolves a path relative to the config file
// location.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	configDir := filepath.Dir(configPath)
	return filepath.Join(configDir, targetPath)
}
