package core

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes external commands. It is the single choke point for
// everything mintup does to the system, which keeps every adapter
// mockable in tests.
type Runner interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInput runs a command with the given bytes on stdin.
	ExecuteInput(ctx context.Context, stdin []byte, name string, args ...string) (string, error)
	// LookPath reports whether a command is available on the system.
	LookPath(name string) bool
}

// ExecRunner implements Runner on top of os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (r *ExecRunner) ExecuteInput(ctx context.Context, stdin []byte, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	out, err := cmd.Output()
	return string(out), err
}

func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
