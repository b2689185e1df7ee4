// Command commerce-mcp exposes the Adobe I/O CLI and the Commerce
// extensibility documentation search as MCP tools, over stdio or
// streamable HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/config"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/docs"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/executor"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/router"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/schema"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/server"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/tools"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "commerce-mcp.toml", "Path to config file")
	port := flag.String("port", "", "Override the HTTP port")
	schemaDir := flag.String("schemas", "", "Override the tool descriptor directory")
	workDir := flag.String("cwd", ".", "Working directory for project detection")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *port, *schemaDir)

	common.LoadVersionFromFile()
	logger := common.NewLoggerFromConfig(cfg.Logging)

	store := schema.NewStore(cfg.Schemas.Dir, logger)
	if err := store.Load(); err != nil {
		// A missing or unreadable descriptor directory is non-fatal; the
		// server starts with zero tools and reload can recover later.
		logger.Warn().Str("error", err.Error()).Msg("failed to load tool descriptors, starting with 0 tools")
	}

	rt := router.New(store, logger)
	deps := &tools.Deps{
		Runner:     executor.New(logger),
		Docs:       docs.NewClient(cfg.Docs.BaseURL, logger),
		AioBinary:  cfg.Aio.Binary,
		WorkDir:    *workDir,
		ServerName: cfg.Server.Name,
		DocsCount:  cfg.Docs.DefaultCount,
		Logger:     logger,
	}
	tools.RegisterHandlers(rt, deps)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	registered := tools.RegisterAll(mcpSrv, store, rt)
	resync := func() {
		registered = tools.SyncTools(mcpSrv, store, rt, registered)
		logger.Info().Int("tools", len(registered)).Msg("tool registrations synced")
	}

	logger.Info().
		Int("tools", store.Count()).
		Str("schema_dir", cfg.Schemas.Dir).
		Bool("stdio", *stdio).
		Msg("MCP server initialized")

	if cfg.Schemas.Watch {
		go func() {
			if err := store.Watch(context.Background(), resync); err != nil && err != context.Canceled {
				logger.Warn().Str("error", err.Error()).Msg("schema watcher stopped")
			}
		}()
	}

	if *stdio {
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	httpSrv := server.New(store, streamable, logger, resync)
	if err := httpSrv.Start(":" + cfg.Server.Port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
