// Package cmd wires the mintup subcommands. Every mode builds a system
// context, loads the manifest (falling back to the embedded defaults)
// and hands a descriptor list to the engine.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/mintup/mintup/internal/adapters/file"
	_ "github.com/mintup/mintup/internal/adapters/firefox"
	_ "github.com/mintup/mintup/internal/adapters/journald"
	_ "github.com/mintup/mintup/internal/adapters/pkg"
	_ "github.com/mintup/mintup/internal/adapters/repository"
	_ "github.com/mintup/mintup/internal/adapters/service"
	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
	"github.com/mintup/mintup/internal/engine"
	"github.com/mintup/mintup/internal/system"
)

var (
	configPath string
	dryRun     bool
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "mintup",
	Short: "Reconcile a Linux Mint desktop to its declared state",
	Long: `mintup reads a declarative manifest and reconciles the local machine:
packages present or absent, apt repositories with their signing keys,
kernel parameters, journald settings, environment variables, systemd
services and Firefox policies. Every operation is idempotent; a second
run over an already provisioned machine changes nothing.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return fmt.Errorf("a mode is required")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "mintup.yaml", "manifest file (built-in defaults when absent)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report actions without mutating the system")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")

	// Flag errors are usage errors; show the usage block alongside.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
}

// newContext detects the local system facts and arms Ctrl-C handling.
// The returned stop function releases the signal watcher.
func newContext() (*core.SystemContext, context.CancelFunc) {
	level := core.LevelInfo
	switch {
	case verbosity >= 2:
		level = core.LevelTrace
	case verbosity == 1:
		level = core.LevelDebug
	}
	logger := core.NewDefaultLogger(os.Stderr, level)

	ctx := system.Detect(dryRun, &core.ExecRunner{}, logger)
	if !system.IsDebianFamily(ctx) {
		logger.Warn("distro " + ctx.Distro + " is not apt based, package operations will fail")
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx.WithContext(sigCtx), stop
}

// loadManifest reads the configured manifest. When the default path does
// not exist the embedded descriptor set is used; an explicitly given
// path must exist.
func loadManifest(ctx *core.SystemContext) (*config.Manifest, error) {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			ctx.Logger.Debug("no manifest at " + configPath + ", using built-in defaults")
			return config.Default()
		}
		return nil, fmt.Errorf("manifest %s: %w", configPath, err)
	}
	m, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	ctx.Logger.Debug("loaded manifest " + configPath)
	return m, nil
}

// withContext is the shared mode scaffolding: detect the system, load
// the manifest, merge its vars and run fn. Only setup problems surface
// as a command error.
func withContext(fn func(*core.SystemContext, *config.Manifest) error) error {
	ctx, stop := newContext()
	defer stop()

	m, err := loadManifest(ctx)
	if err != nil {
		return err
	}
	for k, v := range m.Vars {
		ctx.Vars[k] = v
	}
	return fn(ctx, m)
}

// reconcile runs one descriptor list end to end and renders the report.
// Per-item failures are already part of the report and never flip the
// exit code.
func reconcile(build func(*config.Manifest) []core.ConfigItem) error {
	return withContext(func(ctx *core.SystemContext, m *config.Manifest) error {
		report := engine.New(ctx).Run(build(m))
		printReport(ctx, report)
		return nil
	})
}
