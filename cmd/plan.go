package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
	"github.com/mintup/mintup/internal/engine"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview what apply would change, without touching the system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(func(ctx *core.SystemContext, m *config.Manifest) error {
			if installed, err := pkg.ListInstalled(ctx); err == nil {
				ctx.Logger.Debug(fmt.Sprintf("%d packages currently installed", len(installed)))
			}

			report := engine.New(ctx).Plan(m.AllItems())
			printReport(ctx, report)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
