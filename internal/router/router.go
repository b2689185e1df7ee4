// Package router is the single entry point for incoming tool calls:
// envelope validation, schema validation, default resolution, handler
// dispatch, and the error boundary that converts every failure into a
// well-formed text result.
package router

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/schema"
)

// HandlerFunc implements one tool's behavior. args has already been
// validated and default-filled.
type HandlerFunc func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Router validates and dispatches tool calls. Handlers are registered once
// at startup; the dispatch table is read-only afterwards.
type Router struct {
	store    *schema.Store
	handlers map[string]HandlerFunc
	logger   *common.Logger
}

// New creates a Router over the given schema store.
func New(store *schema.Store, logger *common.Logger) *Router {
	return &Router{
		store:    store,
		handlers: map[string]HandlerFunc{},
		logger:   logger,
	}
}

// Register adds a handler to the dispatch table.
func (r *Router) Register(name string, h HandlerFunc) {
	r.handlers[name] = h
}

// HasHandler reports whether a handler is registered for name.
func (r *Router) HasHandler(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Dispatch processes one call through the fixed pipeline. Every exit path
// returns a well-formed result; no error or panic escapes to the caller.
func (r *Router) Dispatch(ctx context.Context, name string, rawArgs any) *mcp.CallToolResult {
	logger := r.logger.WithCorrelationId(uuid.New().String())

	// Step 1: envelope shape.
	if name == "" {
		return errorResult("Invalid request format: tool name is required")
	}
	args, ok := asArguments(rawArgs)
	if !ok {
		return errorResult("Invalid request format: arguments must be an object")
	}

	// Step 2: tool-specific validation. A missing schema is itself a
	// validation failure. Descriptor and validator are fetched together so
	// a reload between steps cannot leave one behind.
	descriptor, validator, ok := r.store.Lookup(name)
	if !ok {
		logger.Warn().Str("tool", name).Msg("call for unknown tool")
		return errorResult(fmt.Sprintf("Input validation failed: schema not found: %s", name))
	}
	result := validator.Validate(args)
	if !result.Valid {
		logger.Warn().Str("tool", name).Str("errors", result.ErrorText()).Msg("input validation failed")
		return errorResult("Input validation failed: " + result.ErrorText())
	}

	// Step 3: defaults.
	finalArgs := schema.ApplyDefaults(descriptor, result.Data)

	// Steps 4+5: resolve and invoke inside the error boundary.
	start := time.Now()
	out := r.invoke(ctx, name, finalArgs, logger)
	logger.Info().
		Str("tool", name).
		Dur("duration", time.Since(start)).
		Bool("is_error", out.IsError).
		Msg("tool call completed")
	return out
}

// invoke resolves the handler and runs it, converting panics and returned
// errors into "Error: <message>" results. A validated name with no handler
// is an internal inconsistency surfaced through the same boundary.
func (r *Router) invoke(ctx context.Context, name string, args map[string]any, logger *common.Logger) (out *mcp.CallToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("tool", name).Str("panic", fmt.Sprintf("%v", rec)).Msg("tool handler panicked")
			out = errorResult(fmt.Sprintf("Error: %v", rec))
		}
	}()

	handler, ok := r.handlers[name]
	if !ok {
		return errorResult(fmt.Sprintf("Error: no handler registered for tool %s", name))
	}

	result, err := handler(ctx, args)
	if err != nil {
		return errorResult(fmt.Sprintf("Error: %v", err))
	}
	if result == nil {
		return errorResult(fmt.Sprintf("Error: tool %s returned no result", name))
	}
	return result
}

// ToolHandler adapts the router to mcp-go's handler signature for one tool.
func (r *Router) ToolHandler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return r.Dispatch(ctx, name, request.GetArguments()), nil
	}
}

// asArguments normalizes the raw arguments payload. A nil payload is an
// empty object; anything other than a JSON object is rejected.
func asArguments(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		if v == nil {
			return map[string]any{}, true
		}
		return v, true
	}
	return nil, false
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
