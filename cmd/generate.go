package cmd

import (
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	generateLength int
	generateCount  int
)

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "password length (default 16)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of passwords")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random passwords without recording them",
	Long: `Prints passwords drawn from the same generator pack uses. Nothing is
written to the catalogs.

Examples:
  autoarchive generate
  autoarchive generate --length 32 --count 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command")

		var deps workflows.Deps
		if settings, _, err := loadSettings(); err == nil {
			deps.Audit = newAuditTrail(settings)
		} else {
			Logger.Debugf("Audit log unavailable: %v", err)
		}

		passwords, err := workflows.Generate(cmd.Context(), deps, workflows.GenerateOptions{
			Length: generateLength,
			Count:  generateCount,
		})
		if err != nil {
			fmt.Println(formatError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		for _, pw := range passwords {
			fmt.Println(pw)
		}
		return nil
	},
}
