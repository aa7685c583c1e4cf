package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"
	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var unpackRestoreDir string

func init() {
	unpackCmd.Flags().StringVarP(&unpackRestoreDir, "restore-dir", "r", "", "directory to extract into (default from storage.restore_dir)")
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive|dir|glob>...",
	Short: "Extract archives with the passwords recorded for them",
	Long: `Extracts one or more archives using the password recorded for each
archive's content fingerprint. The remote catalog is searched first, then
the local one.

Arguments can be archive files, directories (searched recursively for .7z
files) or glob patterns, including ** patterns.

Examples:
  autoarchive unpack archive_1718000000_3f9a.7z
  autoarchive unpack /mnt/backup
  autoarchive unpack "backups/**/*.7z" --restore-dir ./restored`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unpack command")
		spinner, cleanup := startSpinner("Unpacking archives...")
		defer cleanup()

		cfg, settings, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return nil
		}
		deps := buildDeps(cfg, settings)

		result, err := workflows.Unpack(cmd.Context(), deps, workflows.UnpackOptions{
			Patterns:   args,
			RestoreDir: unpackRestoreDir,
		})
		if err != nil {
			Logger.Errorf("Unpack failed: %v", err)
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		var extracted []string
		finalMessage := ""
		for _, item := range result.Items {
			name := filepath.Base(item.Archive)
			if item.Err != nil {
				Logger.Errorf("Failed to unpack %s: %v", item.Archive, item.Err)
				finalMessage += formatError(item.Err) + "\n  " + ui.Path.Sprint(item.Archive) + "\n"
				continue
			}
			Logger.Infof("Unpacked %s (%s, password from %s catalog)", name, item.Record.OriginalName, item.Source)
			extracted = append(extracted, item.Archive)
		}

		failed := result.Failed()
		if len(extracted) > 0 {
			finalMessage += ui.Success.Sprint("✓") + fmt.Sprintf(" Unpacked %s into ", utils.Pluralize(len(extracted), "archive")) +
				ui.Path.Sprint(result.RestoreDir) + ": " + utils.FormatPaths(extracted)
		}
		if failed > 0 {
			finalMessage += ui.Error.Sprint("✗") + fmt.Sprintf(" %s could not be unpacked", utils.Pluralize(failed, "archive"))
		}
		finalMessage += remoteNote(result.RemoteErr)

		spinner.FinalMSG = finalMessage
		return nil
	},
}
