package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Purge the declared unwanted package groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(func(m *config.Manifest) []core.ConfigItem {
			return m.RemoveItems()
		})
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
