package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/autoarchive/internal/configs"
	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"

	"github.com/spf13/cobra"
)

var (
	configInitToken            string
	configInitTokenStdin       bool
	configInitDocumentID       string
	configInitFilename         string
	configInitBaseURL          string
	configInitArchiver         string
	configInitCompressionLevel int
	configInitCatalogPath      string
	configInitOutputDir        string
	configInitRestoreDir       string
)

func init() {
	configInitCmd.Flags().StringVar(&configInitToken, "token", "", "GitHub token with gist scope")
	configInitCmd.Flags().BoolVar(&configInitTokenStdin, "token-stdin", false, "read the token from stdin")
	configInitCmd.Flags().StringVar(&configInitDocumentID, "document-id", "", "ID of the Gist holding the remote catalog")
	configInitCmd.Flags().StringVar(&configInitFilename, "filename", "", "file inside the Gist (default keys_db.json)")
	configInitCmd.Flags().StringVar(&configInitBaseURL, "base-url", "", "GitHub API root")
	configInitCmd.Flags().StringVar(&configInitArchiver, "archiver", "", "path to the 7z executable")
	configInitCmd.Flags().IntVar(&configInitCompressionLevel, "compression-level", 0, "7-Zip compression level (0-9)")
	configInitCmd.Flags().StringVar(&configInitCatalogPath, "catalog", "", "local catalog file")
	configInitCmd.Flags().StringVar(&configInitOutputDir, "output-dir", "", "default directory for new archives")
	configInitCmd.Flags().StringVar(&configInitRestoreDir, "restore-dir", "", "default directory for extracted content")
	configInitCmd.MarkFlagsMutuallyExclusive("token", "token-stdin")
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the configuration file",
	Long: `Writes the configuration file, keeping any setting that is not given
as a flag. Without flags it writes the defaults.

The token is never prompted for. Pass it with --token, or pipe it in with
--token-stdin so it does not end up in the shell history. The
AUTOARCHIVE_TOKEN and AUTOARCHIVE_DOCUMENT_ID environment variables
override the file at run time.

Examples:
  # Write the default configuration
  autoarchive config init

  # Store the remote catalog credentials
  echo "$TOKEN" | autoarchive config init --token-stdin --document-id 0123abcd

  # Use a 7-Zip installed elsewhere
  autoarchive config init --archiver /usr/bin/7z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		_, path, err := loadSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve user directories: %w", err)
		}

		cfg, unknown, err := configs.LoadConfig(path)
		if err != nil {
			fmt.Println(formatError(err))
			return nil
		}
		for _, key := range unknown {
			Logger.WarnfAlways("Unknown config key %q in %s will be dropped", key, path)
		}

		if configInitTokenStdin {
			if stdin == os.Stdin && utils.IsTerminal() {
				fmt.Println(ui.Error.Sprint("✗") + " No token on stdin\n" +
					ui.Info.Sprint("→") + " Pipe it in, for example " + ui.Code.Sprint("echo \"$TOKEN\" | autoarchive config init --token-stdin"))
				return nil
			}
			token, err := utils.ReadSecret(stdin)
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " No token on stdin\n" +
					ui.Error.Sprint("Error: ") + err.Error())
				return nil
			}
			cfg.Remote.Token = token
		}

		flags := cmd.Flags()
		set := func(name string, apply func()) {
			if flags.Changed(name) {
				Logger.Debugf("Setting %s from flag", name)
				apply()
			}
		}
		set("token", func() { cfg.Remote.Token = configInitToken })
		set("document-id", func() { cfg.Remote.DocumentID = configInitDocumentID })
		set("filename", func() { cfg.Remote.Filename = configInitFilename })
		set("base-url", func() { cfg.Remote.BaseURL = configInitBaseURL })
		set("archiver", func() { cfg.Archiver.Path = configInitArchiver })
		set("compression-level", func() { cfg.Archiver.CompressionLevel = configInitCompressionLevel })
		set("catalog", func() { cfg.Storage.CatalogPath = configInitCatalogPath })
		set("output-dir", func() { cfg.Storage.OutputDir = configInitOutputDir })
		set("restore-dir", func() { cfg.Storage.RestoreDir = configInitRestoreDir })

		if err := cfg.Validate(); err != nil {
			fmt.Println(formatError(err))
			return nil
		}

		if err := configs.SaveConfig(path, cfg); err != nil {
			return Logger.ErrorfAndReturn("Failed to save config: %w", err)
		}
		Logger.Infof("Config saved to %s", path)

		fmt.Println(ui.Success.Sprint("✓") + " Configuration saved to " + ui.Path.Sprint(path))
		if cfg.RemoteEnabled() {
			fmt.Println(ui.Info.Sprint("→") + " Remote catalog: Gist " + ui.Highlight.Sprint(cfg.Remote.DocumentID))
		} else {
			fmt.Println(ui.Info.Sprint("→") + " No remote catalog configured, passwords are kept in the local catalog only")
		}
		return nil
	},
}
