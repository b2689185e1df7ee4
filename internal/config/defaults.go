package config

import "github.com/revanth0212/commerce-extensibility-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Commerce-Extensibility-MCP",
			Port: "4280",
		},
		Aio: AioConfig{
			Binary: "aio",
		},
		Schemas: SchemasConfig{
			Dir:   "schemas",
			Watch: false,
		},
		Docs: DocsConfig{
			BaseURL:      "http://localhost:4321",
			DefaultCount: 5,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/commerce-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
