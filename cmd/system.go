package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Tune kernel parameters, journald, environment and services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(func(m *config.Manifest) []core.ConfigItem {
			return m.SystemItems()
		})
	},
}

func init() {
	rootCmd.AddCommand(systemCmd)
}
