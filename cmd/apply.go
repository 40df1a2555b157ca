package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
	"github.com/mintup/mintup/internal/engine"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile the full manifest: repositories, packages, system, firefox",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(func(ctx *core.SystemContext, m *config.Manifest) error {
			report := engine.New(ctx).Run(m.AllItems())
			printReport(ctx, report)

			if m.Flatpak.Update {
				if err := pkg.RefreshFlatpak(ctx); err != nil {
					ctx.Logger.Error(err.Error())
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
