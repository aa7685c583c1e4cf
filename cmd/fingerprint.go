package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	fingerprintLegacy bool
	fingerprintJSON   bool
)

func init() {
	fingerprintCmd.Flags().BoolVar(&fingerprintLegacy, "legacy", false, "also print the MD5 digest older catalogs use")
	fingerprintCmd.Flags().BoolVar(&fingerprintJSON, "json", false, "output as JSON array")
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file|dir|glob>...",
	Short: "Print content fingerprints of files",
	Long: `Prints the SHA-256 fingerprint the catalog uses as the lookup key,
in the same format as sha256sum.

Examples:
  autoarchive fingerprint archive_1718000000_3f9a.7z
  autoarchive fingerprint "backups/**/*.7z" --legacy
  autoarchive fingerprint ./backups --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting fingerprint command")

		results, err := workflows.Fingerprint(cmd.Context(), workflows.FingerprintOptions{
			Patterns: args,
			Legacy:   fingerprintLegacy,
		})
		if err != nil {
			fmt.Println(formatError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if fingerprintJSON {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal fingerprints to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, r := range results {
			if fingerprintLegacy {
				fmt.Printf("%s  %s  %s\n", r.SHA256, r.MD5, r.Path)
				continue
			}
			fmt.Printf("%s  %s\n", r.SHA256, r.Path)
		}
		return nil
	},
}
