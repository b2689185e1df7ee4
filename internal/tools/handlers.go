package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/docs"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/executor"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/project"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/router"
)

// Deps holds the collaborators shared by all tool handlers.
type Deps struct {
	Runner     executor.Runner
	Docs       *docs.Client
	AioBinary  string
	WorkDir    string
	ServerName string
	DocsCount  int
	Logger     *common.Logger
}

// RegisterHandlers wires every tool name to its handler on the router's
// dispatch table.
func RegisterHandlers(rt *router.Router, d *Deps) {
	rt.Register("aio-login", d.handleLogin)
	rt.Register("aio-logout", d.handleLogout)
	rt.Register("aio-whoami", d.handleWhoami)
	rt.Register("app-deploy", d.handleAppDeploy)
	rt.Register("app-undeploy", d.handleAppUndeploy)
	rt.Register("app-build", d.handleAppBuild)
	rt.Register("app-use", d.handleAppUse)
	rt.Register("api-mesh-get", d.handleAPIMeshGet)
	rt.Register("api-mesh-status", d.handleAPIMeshStatus)
	rt.Register("api-mesh-update", d.handleAPIMeshUpdate)
	rt.Register("search-docs", d.handleSearchDocs)
	rt.Register("get-version", d.handleGetVersion)
}

// --- Authentication ---

func (d *Deps) handleLogin(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	argv := []string{"auth", "login"}
	if argBool(args, "force") {
		argv = append(argv, "--force")
	}
	res := d.Runner.Execute(ctx, d.AioBinary, argv...)
	if !res.Success {
		return errorResult(formatFailure("Login failed.", res)), nil
	}
	return textResult(formatSuccess("Logged in to Adobe I/O.", res)), nil
}

func (d *Deps) handleLogout(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	argv := []string{"auth", "logout"}
	if argBool(args, "force") {
		argv = append(argv, "--force")
	}
	res := d.Runner.Execute(ctx, d.AioBinary, argv...)
	if !res.Success {
		return errorResult(formatFailure("Logout failed.", res)), nil
	}
	return textResult(formatSuccess("Logged out of Adobe I/O.", res)), nil
}

func (d *Deps) handleWhoami(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	res := d.Runner.Execute(ctx, d.AioBinary, "where")
	if !res.Success {
		return errorResult(formatFailure("Could not determine the current Adobe I/O context.", res)), nil
	}
	return textResult(formatSuccess("Current Adobe I/O context:", res)), nil
}

// --- Deployment ---

func (d *Deps) handleAppDeploy(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if result := d.requireProject(); result != nil {
		return result, nil
	}
	argv := []string{"app", "deploy"}
	if action := argString(args, "action"); action != "" {
		argv = append(argv, "--action", action)
	}
	if argBool(args, "skip-build") {
		argv = append(argv, "--no-build")
	}
	res := d.Runner.Execute(ctx, d.AioBinary, argv...)
	if !res.Success {
		return errorResult(formatFailure("Deployment failed.", res)), nil
	}
	return textResult(formatSuccess("Application deployed to Adobe I/O Runtime.", res)), nil
}

func (d *Deps) handleAppUndeploy(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if result := d.requireProject(); result != nil {
		return result, nil
	}
	res := d.Runner.Execute(ctx, d.AioBinary, "app", "undeploy")
	if !res.Success {
		return errorResult(formatFailure("Undeploy failed.", res)), nil
	}
	return textResult(formatSuccess("Application undeployed from Adobe I/O Runtime.", res)), nil
}

func (d *Deps) handleAppBuild(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if result := d.requireProject(); result != nil {
		return result, nil
	}
	res := d.Runner.Execute(ctx, d.AioBinary, "app", "build")
	if !res.Success {
		return errorResult(formatFailure("Build failed.", res)), nil
	}
	return textResult(formatSuccess("Application built.", res)), nil
}

func (d *Deps) handleAppUse(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if result := d.requireProject(); result != nil {
		return result, nil
	}
	workspace := argString(args, "workspace")
	res := d.Runner.Execute(ctx, d.AioBinary, "app", "use", "-w", workspace, "--no-input")
	if !res.Success {
		return errorResult(formatFailure(fmt.Sprintf("Failed to switch to workspace %q.", workspace), res)), nil
	}
	return textResult(formatSuccess(fmt.Sprintf("Switched to workspace %q.", workspace), res)), nil
}

// --- API Mesh ---

func (d *Deps) handleAPIMeshGet(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	argv := []string{"api-mesh:get"}
	if argString(args, "format") == "json" {
		argv = append(argv, "--json")
	}
	res := d.Runner.Execute(ctx, d.AioBinary, argv...)
	if !res.Success {
		return errorResult(formatFailure("Failed to fetch the API Mesh configuration.", res)), nil
	}
	return textResult(formatSuccess("API Mesh configuration:", res)), nil
}

func (d *Deps) handleAPIMeshStatus(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	res := d.Runner.Execute(ctx, d.AioBinary, "api-mesh:status")
	if !res.Success {
		return errorResult(formatFailure("Failed to fetch the API Mesh status.", res)), nil
	}
	return textResult(formatSuccess("API Mesh status:", res)), nil
}

func (d *Deps) handleAPIMeshUpdate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	file := argString(args, "file")
	argv := []string{"api-mesh:update", file}
	if argBool(args, "auto-confirm") {
		argv = append(argv, "--autoConfirmAction")
	}
	res := d.Runner.Execute(ctx, d.AioBinary, argv...)
	if !res.Success {
		return errorResult(formatFailure(fmt.Sprintf("API Mesh update from %q failed.", file), res)), nil
	}
	return textResult(formatSuccess("API Mesh update submitted.", res)), nil
}

// --- Documentation ---

func (d *Deps) handleSearchDocs(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	query := argString(args, "query")
	count := argInt(args, "count", d.defaultDocsCount())

	results, err := d.Docs.Search(ctx, query, count)
	if err != nil {
		return errorResult(fmt.Sprintf("Documentation search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return textResult(fmt.Sprintf("No documentation results found for %q.", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d documentation results for %q:\n", len(results), query)
	for i, r := range results {
		source := "unknown source"
		if s, ok := r.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, source)
		if r.RelevanceScore > 0 {
			fmt.Fprintf(&b, " (score %.2f)", r.RelevanceScore)
		}
		b.WriteString("\n")
		if content := strings.TrimSpace(r.PageContent); content != "" {
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return textResult(b.String()), nil
}

// --- Diagnostics ---

func (d *Deps) handleGetVersion(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nVersion: %s\nStatus: OK\n", d.ServerName, common.GetFullVersion())

	res := d.Runner.Execute(ctx, d.AioBinary, "--version")
	if res.Success {
		fmt.Fprintf(&b, "aio CLI: %s\n", strings.TrimSpace(res.Output))
	} else {
		fmt.Fprintf(&b, "aio CLI: not available (%s)\n", strings.TrimSpace(res.Error))
	}
	return textResult(b.String()), nil
}

// requireProject returns an error result when the working directory is not
// inside an App Builder project, nil otherwise.
func (d *Deps) requireProject() *mcp.CallToolResult {
	if _, ok := project.FindRoot(d.WorkDir); !ok {
		return errorResult(fmt.Sprintf(
			"No App Builder project found: %s is missing. Run this tool from a project directory created with 'aio app init'.",
			project.MarkerFile))
	}
	return nil
}

// defaultDocsCount is the result count when the call carries none and the
// descriptor declares no default.
func (d *Deps) defaultDocsCount() int {
	if d.DocsCount > 0 {
		return d.DocsCount
	}
	return 5
}

// --- Argument coercion ---

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func argBool(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func argInt(args map[string]any, key string, defaultVal int) int {
	switch n := args[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}
