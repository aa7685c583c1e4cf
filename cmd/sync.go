package cmd

import (
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"
	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	syncPush bool
	syncPull bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "copy local-only records to the remote catalog")
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "copy remote-only records to the local catalog")
	syncCmd.MarkFlagsMutuallyExclusive("push", "pull")
	syncCmd.MarkFlagsOneRequired("push", "pull")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy records missing from one catalog into the other",
	Long: `Reconciles the local and remote catalogs.

  --push  appends records that only exist locally to the remote catalog,
          for example ones packed while the remote was unreachable.
  --pull  appends records that only exist remotely to the local catalog,
          for example ones packed on another machine.

Existing records are never removed or reordered. The remote catalog must be
readable in both directions.

Examples:
  autoarchive sync --push
  autoarchive sync --pull`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")

		direction := catalog.SyncPull
		if syncPush {
			direction = catalog.SyncPush
		}

		spinner, cleanup := startSpinner(fmt.Sprintf("Syncing catalogs (%s)...", direction))
		defer cleanup()

		cfg, settings, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return nil
		}
		deps := buildDeps(cfg, settings)

		result, err := workflows.Sync(cmd.Context(), deps, workflows.SyncOptions{Direction: direction})
		if err != nil {
			Logger.Errorf("Sync failed: %v", err)
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		target := "remote"
		if direction == catalog.SyncPull {
			target = "local"
		}

		if len(result.Added) == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Catalogs already in sync. Nothing to " + string(direction) + "."
			return nil
		}

		for _, r := range result.Added {
			Logger.Infof("Added %s (%s)", r.ArchiveName, r.OriginalName)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Added %s to the %s catalog\n",
			utils.Pluralize(len(result.Added), "record"), target) +
			fmt.Sprintf("  Remote now has %s, local has %s.",
				utils.Pluralize(result.RemoteCount, "record"), utils.Pluralize(result.LocalCount, "record"))
		return nil
	},
}
