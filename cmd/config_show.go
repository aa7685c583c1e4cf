package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/configs"
	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration autoarchive runs with: the config file,
overlaid with environment variables, over the defaults. The token is masked.

Examples:
  autoarchive config show
  autoarchive config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		cfg, settings, err := loadConfig()
		if err != nil {
			fmt.Println(formatError(err))
			return nil
		}

		masked := *cfg
		masked.Remote.Token = utils.MaskToken(cfg.Remote.Token)
		catalogPath := cfg.ResolveCatalogPath(settings)

		if configShowJSON {
			return outputConfigJSON(&masked, settings, catalogPath)
		}
		outputConfigText(&masked, settings, catalogPath)
		return nil
	},
}

type configView struct {
	ConfigFile string          `json:"config_file"`
	Catalog    string          `json:"catalog"`
	AuditLog   string          `json:"audit_log"`
	Config     *configs.Config `json:"config"`
}

func outputConfigJSON(cfg *configs.Config, settings *configs.Settings, catalogPath string) error {
	path := configPath
	if path == "" {
		path = settings.ConfigPath()
	}
	output, err := json.MarshalIndent(configView{
		ConfigFile: path,
		Catalog:    catalogPath,
		AuditLog:   settings.AuditLogPath(),
		Config:     cfg,
	}, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

func outputConfigText(cfg *configs.Config, settings *configs.Settings, catalogPath string) {
	path := configPath
	if path == "" {
		path = settings.ConfigPath()
	}

	orNone := func(s string) string {
		if s == "" {
			return ui.Muted.Sprint("none")
		}
		return s
	}

	location := ui.Path.Sprint(path)
	if exists, err := utils.PathExists(path); err == nil && !exists {
		location += ", not created yet"
	}
	fmt.Println(ui.Info.Sprint("Configuration") + " (" + location + "):")
	fmt.Println()
	fmt.Println("  Archiver")
	fmt.Printf("    %-18s %s\n", "Path:", ui.Path.Sprint(cfg.Archiver.Path))
	fmt.Printf("    %-18s %d\n", "Compression level:", cfg.Archiver.CompressionLevel)
	fmt.Println()
	fmt.Println("  Remote catalog")
	fmt.Printf("    %-18s %s\n", "Document ID:", orNone(cfg.Remote.DocumentID))
	fmt.Printf("    %-18s %s\n", "Token:", orNone(cfg.Remote.Token))
	fmt.Printf("    %-18s %s\n", "File:", cfg.Remote.Filename)
	fmt.Printf("    %-18s %s\n", "API:", cfg.Remote.BaseURL)
	fmt.Printf("    %-18s %s\n", "Timeout:", cfg.Timeout())
	fmt.Println()
	fmt.Println("  Storage")
	fmt.Printf("    %-18s %s\n", "Local catalog:", ui.Path.Sprint(catalogPath))
	fmt.Printf("    %-18s %s\n", "Audit log:", ui.Path.Sprint(settings.AuditLogPath()))
	fmt.Printf("    %-18s %s\n", "Output dir:", ui.Path.Sprint(cfg.Storage.OutputDir))
	fmt.Printf("    %-18s %s\n", "Restore dir:", ui.Path.Sprint(cfg.Storage.RestoreDir))

	if !cfg.RemoteEnabled() {
		fmt.Println()
		fmt.Println(ui.Warning.Sprint("⚠") + " No remote catalog configured.")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("autoarchive config init --token-stdin --document-id <gist id>") + " to set one up")
	}
}
