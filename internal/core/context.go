package core

import (
	"context"
	"io"
	"os"
)

// SystemContext carries the runtime context of a provisioning run.
// It wraps the standard context.Context and adds the detected system
// facts plus the run-wide collaborators (runner, logger).
type SystemContext struct {
	context.Context

	// Detected system facts
	OS       string // runtime.GOOS (linux, darwin)
	Distro   string // linuxmint, ubuntu, debian
	Version  string // 22, 24.04
	Hostname string

	// Invoking user
	User    string
	HomeDir string

	// Manifest vars, available to templates and conditions.
	Vars map[string]string

	// DryRun: when true nothing is mutated, actions are only reported.
	DryRun bool

	Runner Runner
	Logger Logger

	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemContext builds a context with sane defaults. The detector
// fills in the distro facts afterwards.
func NewSystemContext(dryRun bool, runner Runner, logger Logger) *SystemContext {
	hostname, _ := os.Hostname()
	if runner == nil {
		runner = &ExecRunner{}
	}
	if logger == nil {
		logger = NewDefaultLogger(os.Stderr, LevelInfo)
	}
	return &SystemContext{
		Context:  context.Background(),
		OS:       "unknown",
		Distro:   "unknown",
		Hostname: hostname,
		User:     os.Getenv("USER"),
		HomeDir:  os.Getenv("HOME"),
		Vars:     map[string]string{},
		DryRun:   dryRun,
		Runner:   runner,
		Logger:   logger,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// WithContext swaps the embedded context.Context, used to propagate
// operator interrupts into external commands.
func (c *SystemContext) WithContext(ctx context.Context) *SystemContext {
	clone := *c
	clone.Context = ctx
	return &clone
}
