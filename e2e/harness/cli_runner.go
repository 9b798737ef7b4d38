package harness

import (
	"bytes"
	"context"
	"time"

	"github.com/artpar/menucms/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands against the harness data directory.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := r.harness.context()
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{
		"--data-dir", r.harness.dataDir,
		"--screen", r.harness.screen,
		"--log-level", "error",
	}, args...))

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Add is a convenience method for the add command.
func (r *CLIRunner) Add(title string, opts ...string) (*CLIResult, error) {
	return r.Run(append([]string{"add", title}, opts...)...)
}

// Show prints the menu outline.
func (r *CLIRunner) Show() (*CLIResult, error) {
	return r.Run("show")
}

// ShowJSON prints the menu entries as JSON.
func (r *CLIRunner) ShowJSON() (*CLIResult, error) {
	return r.Run("show", "--output", "json")
}

func (h *E2EHarness) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.timeout)
}
