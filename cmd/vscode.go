package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintup/mintup/internal/config"
	"github.com/mintup/mintup/internal/core"
)

var vscodeCmd = &cobra.Command{
	Use:   "vscode",
	Short: "Set up the declared apt repositories and their packages",
	Long: `Installs the signing keys and source lists of all declared
repositories (the default manifest declares Microsoft's VS Code
repository), removes conflicting legacy files and installs the packages
each repository provides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(func(m *config.Manifest) []core.ConfigItem {
			return m.RepositoryItems()
		})
	},
}

func init() {
	rootCmd.AddCommand(vscodeCmd)
}
