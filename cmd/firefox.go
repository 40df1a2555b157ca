package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var firefoxCmd = &cobra.Command{
	Use:   "firefox",
	Short: "Write the Firefox autoconfig policy files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(func(m *config.Manifest) []core.ConfigItem {
			return m.FirefoxItems()
		})
	},
}

func init() {
	rootCmd.AddCommand(firefoxCmd)
}
