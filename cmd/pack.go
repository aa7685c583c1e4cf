package cmd

import (
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	packOutputDir string
	packLength    int
)

func init() {
	packCmd.Flags().StringVarP(&packOutputDir, "output", "o", "", "directory for the new archive (default from storage.output_dir)")
	packCmd.Flags().IntVarP(&packLength, "length", "l", 0, "password length (default 16)")
}

var packCmd = &cobra.Command{
	Use:   "pack <folder|file>",
	Short: "Archive a folder under a generated password and record the password",
	Long: `Creates an encrypted 7-Zip archive of the given folder or file.

A random password is generated for the archive and recorded in the local
and remote catalogs under the archive's content fingerprint. The archive
gets a neutral name such as archive_1718000000_3f9a.7z; the original name
is only kept in the catalog.

If the remote catalog cannot be reached the password is still recorded
locally. Run 'autoarchive sync --push' later to copy it to the remote.

Examples:
  autoarchive pack ./photos
  autoarchive pack ./photos --output /mnt/backup
  autoarchive pack report.pdf --length 32`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pack command")
		spinner, cleanup := startSpinner("Packing " + args[0] + "...")
		defer cleanup()

		cfg, settings, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return nil
		}
		deps := buildDeps(cfg, settings)

		opts := workflows.PackOptions{
			Source:         args[0],
			OutputDir:      packOutputDir,
			PasswordLength: packLength,
		}
		Logger.Debugf("Pack options: source=%s, output=%s, length=%d", opts.Source, opts.OutputDir, opts.PasswordLength)

		result, err := workflows.Pack(cmd.Context(), deps, opts)
		if err != nil {
			Logger.Errorf("Pack failed: %v", err)
			msg := formatError(err)
			switch {
			case result != nil && result.RemoteStored:
				msg += "\n" + ui.Info.Sprint("→") + " The password of " + ui.Path.Sprint(result.ArchivePath) +
					" reached the remote catalog only. Run " + ui.Code.Sprint("autoarchive sync --pull") + " once the local catalog is writable"
			case result != nil:
				msg += "\n" + ui.Info.Sprint("→") + " The archive was created at " + ui.Path.Sprint(result.ArchivePath) +
					" but its password is only shown here: " + ui.Secret.Sprint(result.Record.Password)
			}
			spinner.FinalMSG = msg
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Infof("Pack command completed: %s -> %s", result.Record.OriginalName, result.ArchivePath)

		finalMessage := ui.Success.Sprint("✓") + " Packed " + ui.Highlight.Sprint(result.Record.OriginalName) +
			" into " + ui.Path.Sprint(result.ArchivePath) + "\n" +
			fmt.Sprintf("  Fingerprint: %s\n", ui.Muted.Sprint(ui.ShortFingerprint(result.Record.Fingerprint)))
		if result.RemoteStored {
			finalMessage += ui.Info.Sprint("→") + " Password recorded in the local and remote catalogs"
		} else {
			finalMessage += ui.Info.Sprint("→") + " Password recorded in the local catalog only" + remoteNote(result.RemoteErr)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
