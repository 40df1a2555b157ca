package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove orphaned packages and empty the package caches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(func(ctx *core.SystemContext, m *config.Manifest) error {
			if err := (pkg.Maintenance{}).Clean(ctx); err != nil {
				ctx.Logger.Error(err.Error())
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
