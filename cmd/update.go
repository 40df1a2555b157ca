package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh package indices and upgrade everything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(func(ctx *core.SystemContext, m *config.Manifest) error {
			maint := pkg.Maintenance{}
			for _, step := range []func(*core.SystemContext) error{
				maint.EnsureFrontend,
				maint.Refresh,
				maint.Upgrade,
			} {
				if err := step(ctx); err != nil {
					ctx.Logger.Error(err.Error())
					break
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
