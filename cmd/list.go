package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"
	"github.com/PolarWolf314/autoarchive/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	listRemote bool
	listLocal  bool
	listFilter string
	listJSON   bool
)

// listFixedWidth is the width of every column except the original name.
const listFixedWidth = 19 + 2 + 28 + 2 + 13 + 2 + 14

func init() {
	listCmd.Flags().BoolVar(&listRemote, "remote", false, "show only the remote catalog")
	listCmd.Flags().BoolVar(&listLocal, "local", false, "show only the local catalog")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "show records whose name contains this text")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array (passwords omitted)")
	listCmd.MarkFlagsMutuallyExclusive("remote", "local")
}

type listJSONRow struct {
	OriginalName string `json:"original_name"`
	ArchiveName  string `json:"archive_name"`
	Fingerprint  string `json:"fingerprint"`
	CreatedAt    string `json:"created_at"`
	InRemote     bool   `json:"in_remote"`
	InLocal      bool   `json:"in_local"`
	Duplicate    bool   `json:"duplicate,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog records",
	Long: `Lists the records of the remote and local catalogs, merged, with where
each record is stored. Passwords are never shown.

Records sharing a fingerprint are marked: lookups use the first of them.

Examples:
  autoarchive list
  autoarchive list --local
  autoarchive list --filter photos
  autoarchive list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		spinner, cleanup := startSpinner("Reading catalogs...")
		defer cleanup()

		cfg, settings, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return nil
		}
		deps := buildDeps(cfg, settings)

		scope := workflows.ListMerged
		switch {
		case listRemote:
			scope = workflows.ListRemote
		case listLocal:
			scope = workflows.ListLocal
		}

		result, err := workflows.List(cmd.Context(), deps, workflows.ListOptions{Scope: scope, Filter: listFilter})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list catalogs: %w", err)
		}
		Logger.Debugf("Remote has %d records, local has %d", result.RemoteCount, result.LocalCount)

		if listRemote && result.RemoteErr != nil {
			spinner.FinalMSG = formatError(result.RemoteErr)
			return nil
		}

		if listJSON {
			rows := make([]listJSONRow, 0, len(result.Rows))
			for _, row := range result.Rows {
				rows = append(rows, listJSONRow{
					OriginalName: row.Record.OriginalName,
					ArchiveName:  row.Record.ArchiveName,
					Fingerprint:  row.Record.Key(),
					CreatedAt:    row.Record.CreatedAt,
					InRemote:     row.InRemote,
					InLocal:      row.InLocal,
					Duplicate:    row.Duplicate,
				})
			}
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal records to JSON: %w", err)
			}
			spinner.FinalMSG = string(data)
			return nil
		}

		if len(result.Rows) == 0 {
			msg := "No catalog records found."
			if listFilter != "" {
				msg = "No catalog records found matching the filter."
			}
			spinner.FinalMSG = msg + remoteNote(result.RemoteErr)
			return nil
		}

		spinner.FinalMSG = formatListTable(result.Rows, utils.TerminalWidth()) + "\n" +
			fmt.Sprintf("%s, %s remote, %s local",
				utils.Pluralize(len(result.Rows), "record"),
				utils.Pluralize(result.RemoteCount, "record"),
				utils.Pluralize(result.LocalCount, "record")) +
			remoteNote(result.RemoteErr)
		return nil
	},
}

// formatListTable lays out rows in columns, shrinking the name column to fit width.
func formatListTable(rows []workflows.ListRow, width int) string {
	nameWidth := width - listFixedWidth - 2
	if nameWidth < 12 {
		nameWidth = 12
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-19s  %-*s  %-28s  %-13s  %s\n", "CREATED", nameWidth, "ORIGINAL NAME", "ARCHIVE", "FINGERPRINT", "STORED")
	for _, row := range rows {
		stored := storedIn(row)
		if row.Duplicate {
			stored += " " + ui.Warning.Sprint("dup")
		}
		created := "-"
		if t, ok := row.Record.Created(); ok {
			created = t.Format(catalog.TimestampLayout)
		}
		fmt.Fprintf(&b, "%-19s  %-*s  %-28s  %-13s  %s\n",
			created,
			nameWidth, ui.Truncate(row.Record.OriginalName, nameWidth),
			row.Record.ArchiveName,
			ui.ShortFingerprint(row.Record.Key()),
			stored)
	}
	return b.String()
}

func storedIn(row workflows.ListRow) string {
	switch {
	case row.InRemote && row.InLocal:
		return "both"
	case row.InRemote:
		return "remote"
	case row.InLocal:
		return "local"
	default:
		return "-"
	}
}
