package pkg

import (
	"fmt"

	"github.com/mintup/mintup/internal/core"
)

// Maintenance wraps the non-declarative package manager housekeeping
// operations: refreshing indices, full upgrades and cache cleanup.
// These are invoked once per mode rather than reconciled.
type Maintenance struct{}

// EnsureFrontend bootstraps nala through apt-get when it is missing.
func (Maintenance) EnsureFrontend(ctx *core.SystemContext) error {
	if ctx.Runner.LookPath("nala") {
		return nil
	}
	ctx.Logger.Info("nala not found, installing via apt-get")
	if ctx.DryRun {
		return nil
	}
	if out, err := ctx.Runner.Execute(ctx, "apt-get", "update"); err != nil {
		return fmt.Errorf("apt-get update failed: %s: %w", out, err)
	}
	if out, err := ctx.Runner.Execute(ctx, "apt-get", "install", "-y", "nala"); err != nil {
		return fmt.Errorf("nala bootstrap failed: %s: %w", out, err)
	}
	return nil
}

// Refresh syncs the package indices.
func (Maintenance) Refresh(ctx *core.SystemContext) error {
	if ctx.DryRun {
		ctx.Logger.Info("[dry-run] would refresh package indices")
		return nil
	}
	frontend := Frontend(ctx.Runner)
	if out, err := ctx.Runner.Execute(ctx, frontend, "update"); err != nil {
		return fmt.Errorf("%s update failed: %s: %w", frontend, out, err)
	}
	return nil
}

// Upgrade performs a full system upgrade.
func (Maintenance) Upgrade(ctx *core.SystemContext) error {
	if ctx.DryRun {
		ctx.Logger.Info("[dry-run] would upgrade all packages")
		return nil
	}
	frontend := Frontend(ctx.Runner)
	args := []string{"upgrade", "-y"}
	if frontend == "apt-get" {
		args = []string{"dist-upgrade", "-y"}
	}
	if out, err := ctx.Runner.Execute(ctx, frontend, args...); err != nil {
		return fmt.Errorf("%s upgrade failed: %s: %w", frontend, out, err)
	}
	return nil
}

// Clean removes orphaned packages, purges their configs and empties the
// download cache.
func (Maintenance) Clean(ctx *core.SystemContext) error {
	if ctx.DryRun {
		ctx.Logger.Info("[dry-run] would autoremove, autopurge and clean caches")
		return nil
	}
	frontend := Frontend(ctx.Runner)
	steps := [][]string{
		{"autoremove", "-y"},
		{"autopurge", "-y"},
		{"clean"},
	}
	if frontend == "apt-get" {
		steps = [][]string{
			{"autoremove", "--purge", "-y"},
			{"clean"},
		}
	}
	for _, step := range steps {
		if out, err := ctx.Runner.Execute(ctx, frontend, step...); err != nil {
			return fmt.Errorf("%s %s failed: %s: %w", frontend, step[0], out, err)
		}
	}
	return nil
}
