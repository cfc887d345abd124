package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source kinds.
const (
	SourceStatic = "static"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Source   SourceConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// SourceConfig selects where the catalog is fetched from.
type SourceConfig struct {
	Kind    string
	Path    string
	Latency time.Duration
}

// DatabaseConfig holds sqlite settings for the sqlite source.
type DatabaseConfig struct {
	Path       string
	Seed       bool
	ImportPath string `mapstructure:"import_path"`
	// MigrationsDir overrides the embedded migrations when set.
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSizes       []int         `mapstructure:"page_sizes"`
	DefaultPageSize int           `mapstructure:"default_page_size"`
	CategoryLatency time.Duration `mapstructure:"category_latency"`
}

// LogConfig holds logging settings. Logs go to File because the UI owns the
// terminal.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func configPath() string {
	if p := os.Getenv("FILMOTHEQUE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "filmotheque", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", SourceStatic)
	v.SetDefault("source.path", "")
	v.SetDefault("source.latency", "100ms")
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "filmotheque", "catalog.db"))
	v.SetDefault("database.seed", true)
	v.SetDefault("database.import_path", "")
	v.SetDefault("database.migrations_dir", "")
	v.SetDefault("ui.page_sizes", []int{4, 8, 12})
	v.SetDefault("ui.default_page_size", 4)
	v.SetDefault("ui.category_latency", "50ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join(home(), ".local", "state", "filmotheque", "filmotheque.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix FILMOTHEQUE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("FILMOTHEQUE_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "filmotheque"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FILMOTHEQUE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing file is fine: defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceStatic, SourceSQLite:
	case SourceJSON:
		if strings.TrimSpace(c.Source.Path) == "" {
			return fmt.Errorf("config: source.path is required for the json source")
		}
	default:
		return fmt.Errorf("config: unknown source.kind %q", c.Source.Kind)
	}
	if len(c.UI.PageSizes) == 0 {
		return fmt.Errorf("config: ui.page_sizes is empty")
	}
	for _, n := range c.UI.PageSizes {
		if n <= 0 {
			return fmt.Errorf("config: ui.page_sizes has non-positive size %d", n)
		}
	}
	if !slices.Contains(c.UI.PageSizes, c.UI.DefaultPageSize) {
		return fmt.Errorf("config: ui.default_page_size %d is not one of %v", c.UI.DefaultPageSize, c.UI.PageSizes)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if
// needed, and returns the path written.
func Save(cfg Config) (string, error) {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("source.kind", cfg.Source.Kind)
	v.Set("source.path", cfg.Source.Path)
	v.Set("source.latency", cfg.Source.Latency.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.seed", cfg.Database.Seed)
	v.Set("database.import_path", cfg.Database.ImportPath)
	v.Set("database.migrations_dir", cfg.Database.MigrationsDir)
	v.Set("ui.page_sizes", cfg.UI.PageSizes)
	v.Set("ui.default_page_size", cfg.UI.DefaultPageSize)
	v.Set("ui.category_latency", cfg.UI.CategoryLatency.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
