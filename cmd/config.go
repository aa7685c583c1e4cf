package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage autoarchive configuration",
	Long: `Provides commands for managing the configuration file.

Use these commands to:
  - Store the remote catalog credentials (config init)
  - Point autoarchive at the 7-Zip executable (config init --archiver)
  - Review the effective settings (config show)

Examples:
  # Store the Gist token and ID
  echo "$TOKEN" | autoarchive config init --token-stdin --document-id 0123abcd

  # Show the effective configuration
  autoarchive config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
