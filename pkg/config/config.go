// Package config provides configuration management for mat-analysis.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MAT_ANALYSIS_LOG_LEVEL.
const EnvPrefix = "MAT_ANALYSIS"

// Config holds all configuration for the application.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
	Plot     PlotConfig     `mapstructure:"plot"`
}

// AnalysisConfig holds load pipeline configuration.
type AnalysisConfig struct {
	DataDir     string `mapstructure:"data_dir"` // downloads from remote storage land here
	MaxWorkers  int    `mapstructure:"max_workers"`
	MaxElements int64  `mapstructure:"max_elements"` // per matrix, 0 = unlimited
	Normalize   bool   `mapstructure:"normalize"`
}

// DatabaseConfig holds load history database configuration.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"` // sqlite, postgres or mysql
	Path     string `mapstructure:"path"` // sqlite file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`     // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`     // e.g., "https" or "http"
	LocalPath string `mapstructure:"local_path"` // for local storage
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"` // empty writes to stderr
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format      string `mapstructure:"format"`      // csv, json or xlsx
	Compression string `mapstructure:"compression"` // none, gzip or zstd
	SheetName   string `mapstructure:"sheet_name"`
}

// PlotConfig holds terminal plot settings.
type PlotConfig struct {
	Height    int `mapstructure:"height"`
	Width     int `mapstructure:"width"`
	Precision int `mapstructure:"precision"`
}

// Load reads configuration from the specified file path. A missing file is
// not an error; defaults and environment overrides still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/mat-analysis")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from memory (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration produced by the built-in defaults.
func Default() *Config {
	cfg, err := LoadFromReader("yaml", nil)
	if err != nil {
		// Defaults alone always unmarshal.
		panic(err)
	}
	return cfg
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.data_dir", "./data")
	v.SetDefault("analysis.max_workers", 4)
	v.SetDefault("analysis.max_elements", 1<<28)
	v.SetDefault("analysis.normalize", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./data/history.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./storage")
	v.SetDefault("storage.scheme", "https")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")

	v.SetDefault("export.format", "csv")
	v.SetDefault("export.compression", "none")
	v.SetDefault("export.sheet_name", "Results")

	v.SetDefault("plot.height", 15)
	v.SetDefault("plot.width", 80)
	v.SetDefault("plot.precision", 3)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be at least 1")
	}
	if c.Analysis.MaxElements < 0 {
		return fmt.Errorf("max elements must not be negative")
	}

	if c.Database.Enabled {
		switch c.Database.Type {
		case "sqlite":
			if c.Database.Path == "" {
				return fmt.Errorf("database path is required for sqlite")
			}
		case "postgres", "mysql":
			if c.Database.Host == "" {
				return fmt.Errorf("database host is required")
			}
		default:
			return fmt.Errorf("unsupported database type: %s", c.Database.Type)
		}
	}

	// Storage credentials are validated by the storage package.
	if c.Storage.Type != "local" && c.Storage.Type != "cos" {
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	switch c.Export.Format {
	case "csv", "json", "xlsx":
	default:
		return fmt.Errorf("unsupported export format: %s", c.Export.Format)
	}

	if c.Plot.Height < 1 || c.Plot.Width < 1 {
		return fmt.Errorf("plot dimensions must be positive")
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	if c.Analysis.DataDir == "" {
		return nil
	}
	return os.MkdirAll(c.Analysis.DataDir, 0755)
}

// DownloadPath returns where a storage key is cached locally.
func (c *Config) DownloadPath(key string) string {
	return filepath.Join(c.Analysis.DataDir, "downloads", filepath.Base(key))
}
