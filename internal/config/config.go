// Package config loads server configuration with priority:
// defaults -> TOML file -> environment -> flags.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Aio     AioConfig            `toml:"aio"`
	Schemas SchemasConfig        `toml:"schemas"`
	Docs    DocsConfig           `toml:"docs"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// AioConfig holds settings for the external aio CLI binary.
type AioConfig struct {
	Binary string `toml:"binary"`
}

// SchemasConfig holds tool descriptor loading settings.
type SchemasConfig struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// DocsConfig holds documentation search service settings.
type DocsConfig struct {
	BaseURL      string `toml:"base_url"`
	DefaultCount int    `toml:"default_count"`
}

// Load loads configuration from a TOML file with defaults and env overrides.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies COMMERCE_MCP_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("COMMERCE_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if bin := os.Getenv("AIO_BINARY"); bin != "" {
		cfg.Aio.Binary = bin
	}
	if dir := os.Getenv("COMMERCE_MCP_SCHEMA_DIR"); dir != "" {
		cfg.Schemas.Dir = dir
	}
	if url := os.Getenv("DOCS_SERVICE_URL"); url != "" {
		cfg.Docs.BaseURL = url
	}
	if count := os.Getenv("DOCS_RESULT_COUNT"); count != "" {
		if c, err := strconv.Atoi(count); err == nil && c > 0 {
			cfg.Docs.DefaultCount = c
		}
	}
	if level := os.Getenv("COMMERCE_MCP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(cfg *Config, port, schemaDir string) {
	if port != "" {
		cfg.Server.Port = port
	}
	if schemaDir != "" {
		cfg.Schemas.Dir = schemaDir
	}
}
