// Package executor runs external child commands and normalizes their
// completion into a success/failure result. Failures are always reported
// through the Result, never as an error or panic crossing this boundary.
package executor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
)

// Result is the normalized outcome of running an external program.
// Success is true iff the process exited 0, regardless of stderr content.
// Output holds everything written to stdout; Error holds stderr, or the
// spawn failure message when the process could not be started at all.
type Result struct {
	Success bool
	Output  string
	Error   string
}

// Runner abstracts command execution so tool handlers can be tested
// without spawning real processes.
type Runner interface {
	Execute(ctx context.Context, command string, argv ...string) Result
}

// Executor runs commands via os/exec. Each invocation is independent: no
// persistent child, no state shared between calls.
type Executor struct {
	logger *common.Logger
}

// New creates an Executor.
func New(logger *common.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute spawns command with argv, waits for completion, and returns the
// captured streams. The child gets no stdin. No internal timeout is
// imposed; bound the runtime through ctx if needed.
func (e *Executor) Execute(ctx context.Context, command string, argv ...string) Result {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, command, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug().Str("command", command).Str("argv", strings.Join(argv, " ")).Msg("executing command")

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if _, exited := err.(*exec.ExitError); !exited {
			// Spawn failure: missing binary, permission denied, cancelled
			// context before start. Nothing was captured.
			e.logger.Warn().Str("command", command).Str("error", err.Error()).Msg("command failed to start")
			return Result{Success: false, Output: "", Error: err.Error()}
		}
		errText := stderr.String()
		if errText == "" {
			errText = err.Error()
		}
		e.logger.Debug().
			Str("command", command).
			Dur("duration", duration).
			Str("error", errText).
			Msg("command exited nonzero")
		return Result{Success: false, Output: stdout.String(), Error: errText}
	}

	e.logger.Debug().Str("command", command).Dur("duration", duration).Msg("command completed")
	return Result{Success: true, Output: stdout.String(), Error: stderr.String()}
}
