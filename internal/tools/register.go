// Package tools implements the tool handlers and their registration with
// the MCP server from loaded descriptors.
package tools

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/router"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/schema"
)

// BuildTool converts a loaded descriptor into an mcp.Tool with the
// equivalent input schema.
func BuildTool(d *schema.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}

	required := make(map[string]bool, len(d.InputSchema.Required))
	for _, name := range d.InputSchema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(d.InputSchema.Properties))
	for name := range d.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := d.InputSchema.Properties[name]

		var popts []mcp.PropertyOption
		if prop.Description != "" {
			popts = append(popts, mcp.Description(prop.Description))
		}
		if required[name] {
			popts = append(popts, mcp.Required())
		}

		switch prop.Type {
		case "number", "integer":
			if len(prop.Enum) > 0 {
				popts = append(popts, numberEnum(prop.Enum))
			}
			if f, ok := defaultNumber(prop.Default); ok {
				popts = append(popts, mcp.DefaultNumber(f))
			}
			opts = append(opts, mcp.WithNumber(name, popts...))
		case "boolean":
			if b, ok := prop.Default.(bool); ok {
				popts = append(popts, mcp.DefaultBool(b))
			}
			opts = append(opts, mcp.WithBoolean(name, popts...))
		case "object":
			opts = append(opts, mcp.WithObject(name, popts...))
		default:
			// string or unknown — exposed as string
			if values := stringEnum(prop.Enum); len(values) > 0 {
				popts = append(popts, mcp.Enum(values...))
			}
			if s, ok := prop.Default.(string); ok {
				popts = append(popts, mcp.DefaultString(s))
			}
			opts = append(opts, mcp.WithString(name, popts...))
		}
	}

	return mcp.NewTool(d.Name, opts...)
}

// RegisterAll registers every loaded descriptor with the MCP server, each
// wired to the router's dispatch pipeline. Returns the registered names.
func RegisterAll(s *mcpserver.MCPServer, store *schema.Store, rt *router.Router) []string {
	descriptors := store.GetAll()
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		s.AddTool(BuildTool(d), rt.ToolHandler(d.Name))
		names = append(names, d.Name)
	}
	return names
}

// SyncTools re-registers tools after a store reload and removes tools that
// disappeared. previous is the name list from the prior registration;
// returns the current one.
func SyncTools(s *mcpserver.MCPServer, store *schema.Store, rt *router.Router, previous []string) []string {
	current := RegisterAll(s, store, rt)

	keep := make(map[string]bool, len(current))
	for _, name := range current {
		keep[name] = true
	}
	var stale []string
	for _, name := range previous {
		if !keep[name] {
			stale = append(stale, name)
		}
	}
	if len(stale) > 0 {
		s.DeleteTools(stale...)
	}
	return current
}

// numberEnum advertises numeric enum literals verbatim; mcp.Enum only
// accepts strings.
func numberEnum(values []any) mcp.PropertyOption {
	enum := make([]any, len(values))
	copy(enum, values)
	return func(propSchema map[string]any) {
		propSchema["enum"] = enum
	}
}

func defaultNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func stringEnum(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, v := range enum {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
