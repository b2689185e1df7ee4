package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/executor"
)

// authHints are stderr/stdout fragments that indicate a missing or expired
// Adobe IMS session. Substring matching on CLI error text is fragile but
// matches how the aio CLI reports these failures today.
var authHints = []string{
	"not logged in",
	"unauthorized",
	"401",
	"token has expired",
	"cannot get token",
}

const loginGuidance = "It looks like you are not authenticated with Adobe I/O. Run the aio-login tool first, then retry."

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}

// formatSuccess renders a completed command as a success narrative with the
// captured stdout, plus any stderr warnings.
func formatSuccess(title string, res executor.Result) string {
	var b strings.Builder
	b.WriteString(title)
	if out := strings.TrimSpace(res.Output); out != "" {
		b.WriteString("\n\n")
		b.WriteString(codeBlock(out))
	}
	if warn := strings.TrimSpace(res.Error); warn != "" {
		b.WriteString("\n\nWarnings:\n")
		b.WriteString(codeBlock(warn))
	}
	return b.String()
}

// formatFailure renders a failed command with its diagnostics and, for
// auth-shaped failures, remediation guidance.
func formatFailure(title string, res executor.Result) string {
	var b strings.Builder
	b.WriteString(title)

	detail := strings.TrimSpace(res.Error)
	if detail == "" {
		detail = strings.TrimSpace(res.Output)
	}
	if detail != "" {
		b.WriteString("\n\n")
		b.WriteString(codeBlock(detail))
	}
	if needsLogin(res) {
		b.WriteString("\n\n")
		b.WriteString(loginGuidance)
	}
	return b.String()
}

// needsLogin reports whether the failure output looks like a missing IMS
// session.
func needsLogin(res executor.Result) bool {
	text := strings.ToLower(res.Output + "\n" + res.Error)
	for _, hint := range authHints {
		if strings.Contains(text, hint) {
			return true
		}
	}
	return false
}

func codeBlock(s string) string {
	return "```\n" + s + "\n```"
}
