package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Tiles    TilesConfig    `toml:"tiles"`
	Dict     DictConfig     `toml:"dict"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TilesConfig controls the two-column tile board.
type TilesConfig struct {
	Count int `toml:"count"`
}

// DictConfig controls where the word list comes from and how filtering behaves.
type DictConfig struct {
	AssetPath  string `toml:"asset_path"`
	Source     string `toml:"source"`
	DebounceMS int    `toml:"debounce_ms"`
}

// Debounce returns the filter debounce as a [time.Duration].
func (c DictConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UIConfig selects the root screen and its title.
type UIConfig struct {
	Root  string `toml:"root"`
	Title string `toml:"title"`
}

const (
	SourceAsset    = "asset"
	SourceDatabase = "database"
)

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports values that cannot drive the application.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path", ErrMissingConfig)
	}
	if c.Tiles.Count < 0 {
		return fmt.Errorf("%w: tiles.count must not be negative", ErrInvalidConfig)
	}
	if c.Dict.DebounceMS < 0 {
		return fmt.Errorf("%w: dict.debounce_ms must not be negative", ErrInvalidConfig)
	}
	switch c.Dict.Source {
	case SourceAsset, SourceDatabase:
	default:
		return fmt.Errorf("%w: dict.source %q", ErrInvalidConfig, c.Dict.Source)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
