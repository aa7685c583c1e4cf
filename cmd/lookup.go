package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	lookupFingerprint  string
	lookupShowPassword bool
	lookupJSON         bool
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupFingerprint, "fingerprint", "f", "", "look up a fingerprint instead of an archive file")
	lookupCmd.Flags().BoolVar(&lookupShowPassword, "show-password", false, "print the recorded password")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output the record as JSON")
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [archive]",
	Short: "Show the catalog record for an archive",
	Long: `Computes the fingerprint of an archive and shows the catalog record
that matches it. The password is hidden unless --show-password is given.

Examples:
  autoarchive lookup archive_1718000000_3f9a.7z
  autoarchive lookup archive_1718000000_3f9a.7z --show-password
  autoarchive lookup --fingerprint b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lookup command")

		opts := workflows.LookupOptions{Fingerprint: lookupFingerprint}
		if len(args) == 1 {
			opts.Path = args[0]
		}
		if (opts.Path == "") == (opts.Fingerprint == "") {
			return fmt.Errorf("give either an archive path or --fingerprint")
		}

		spinner, cleanup := startSpinner("Looking up archive...")
		defer cleanup()

		cfg, settings, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return nil
		}
		deps := buildDeps(cfg, settings)

		result, err := workflows.Lookup(cmd.Context(), deps, opts)
		if err != nil {
			Logger.Errorf("Lookup failed: %v", err)
			msg := formatError(err)
			if result != nil {
				msg += "\n  Fingerprint: " + ui.Muted.Sprint(result.Fingerprint) + remoteNote(result.RemoteErr)
			}
			spinner.FinalMSG = msg
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if lookupJSON {
			record := result.Record
			if !lookupShowPassword {
				record.Password = ""
			}
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal record to JSON: %w", err)
			}
			spinner.FinalMSG = string(data)
			return nil
		}

		r := result.Record
		finalMessage := ui.Success.Sprint("✓") + " Found in the " + string(result.Source) + " catalog\n" +
			fmt.Sprintf("  %-14s %s\n", "Original name:", ui.Highlight.Sprint(r.OriginalName)) +
			fmt.Sprintf("  %-14s %s\n", "Archive name:", ui.Path.Sprint(r.ArchiveName)) +
			fmt.Sprintf("  %-14s %s\n", "Created:", r.CreatedAt) +
			fmt.Sprintf("  %-14s %s", "Fingerprint:", ui.Muted.Sprint(result.Fingerprint))
		if lookupShowPassword {
			finalMessage += fmt.Sprintf("\n  %-14s %s", "Password:", ui.Secret.Sprint(r.Password))
		}
		finalMessage += remoteNote(result.RemoteErr)

		spinner.FinalMSG = finalMessage
		return nil
	},
}
