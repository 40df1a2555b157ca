package pkg

import (
	"fmt"

	"github.com/mintup/mintup/internal/core"
)

// RefreshFlatpak updates installed flatpaks and runtimes. A desktop
// machine without flatpak is fine; the step is skipped silently.
func RefreshFlatpak(ctx *core.SystemContext) error {
	if !ctx.Runner.LookPath("flatpak") {
		ctx.Logger.Debug("flatpak not installed, skipping refresh")
		return nil
	}
	if ctx.DryRun {
		ctx.Logger.Info("[dry-run] would update flatpaks")
		return nil
	}
	if out, err := ctx.Runner.Execute(ctx, "flatpak", "update", "-y"); err != nil {
		return fmt.Errorf("flatpak update failed: %s: %w", out, err)
	}
	return nil
}
