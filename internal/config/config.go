// Package config loads sheetctl's optional settings from a YAML file,
// falling back to defaults when none is present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cellgraph/sheet/spreadsheet"
)

// FileName is the name of the optional configuration file.
const FileName = "sheet.yaml"

// Config holds all sheetctl configuration. Grid and ErrorTokens are
// passed straight through to the engine (spreadsheet.CreateSheetWithLimits,
// FormulaError.Render) by the commands that construct a session; Server
// configures the optional live-view server.
type Config struct {
	Grid        GridConfig              `yaml:"grid"`
	Server      ServerConfig            `yaml:"server"`
	ErrorTokens spreadsheet.ErrorTokens `yaml:"error_tokens"`
}

// GridConfig bounds how large a sheet sheetctl will address. It is a
// ceiling at or below the engine's absolute MaxRows/MaxCols, not a
// replacement for them.
type GridConfig struct {
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// ServerConfig configures the optional live-view HTTP/WebSocket server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = fmt.Errorf("invalid configuration")

// Default returns sheetctl's built-in configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			MaxRows: spreadsheet.MaxRows,
			MaxCols: spreadsheet.MaxCols,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		ErrorTokens: spreadsheet.DefaultErrorTokens,
	}
}

// Load reads configuration from path, falling back to Default when the
// file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that config values are sane.
func Validate(cfg *Config) error {
	if cfg.Grid.MaxRows <= 0 || cfg.Grid.MaxRows > spreadsheet.MaxRows {
		return fmt.Errorf("%w: grid.max_rows must be in (0, %d], got %d", ErrInvalidConfig, spreadsheet.MaxRows, cfg.Grid.MaxRows)
	}
	if cfg.Grid.MaxCols <= 0 || cfg.Grid.MaxCols > spreadsheet.MaxCols {
		return fmt.Errorf("%w: grid.max_cols must be in (0, %d], got %d", ErrInvalidConfig, spreadsheet.MaxCols, cfg.Grid.MaxCols)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ErrorTokens.Ref == "" || cfg.ErrorTokens.Value == "" || cfg.ErrorTokens.Div0 == "" {
		return fmt.Errorf("%w: error_tokens.ref/value/div0 must not be empty", ErrInvalidConfig)
	}
	return nil
}
