package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/autoarchive/internal/archiver"
	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/PolarWolf314/autoarchive/internal/configs"
	"github.com/PolarWolf314/autoarchive/internal/utils"
	"github.com/PolarWolf314/autoarchive/internal/workflows"
)

// loadSettings resolves the user directories and the config file path.
func loadSettings() (*configs.Settings, string, error) {
	settings, err := configs.UserSettings()
	if err != nil {
		return nil, "", err
	}

	path := configPath
	if path == "" {
		path = settings.ConfigPath()
	}
	return settings, path, nil
}

// loadConfig reads the config file, applies environment overrides and warns about unknown keys.
func loadConfig() (*configs.Config, *configs.Settings, error) {
	settings, path, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	Logger.Debugf("Loading config from %s", path)
	cfg, unknown, err := configs.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	for _, key := range unknown {
		Logger.WarnfAlways("Unknown config key %q in %s", key, path)
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, settings, nil
}

// newAuditTrail opens the audit log under the data directory.
func newAuditTrail(settings *configs.Settings) *audit.Trail {
	return audit.New(settings.AuditLogPath(), utils.Operator())
}

// buildDeps wires the catalog stores, the archiver and the audit trail from cfg.
func buildDeps(cfg *configs.Config, settings *configs.Settings) workflows.Deps {
	trail := newAuditTrail(settings)
	Logger.Debugf("Audit log: %s (run %s)", trail.Path(), trail.RunID())
	reporter := catalog.Reporters{eventReporter(), trail.Reporter()}

	var remote catalog.RemoteCatalog = catalog.OfflineRemote{}
	if cfg.RemoteEnabled() {
		Logger.Debugf("Remote catalog: gist %s, file %s, timeout %s", cfg.Remote.DocumentID, cfg.Remote.Filename, cfg.Timeout())
		remote = catalog.NewRemoteStore(catalog.RemoteOptions{
			BaseURL:    cfg.Remote.BaseURL,
			DocumentID: cfg.Remote.DocumentID,
			Token:      cfg.Remote.Token,
			Filename:   cfg.Remote.Filename,
			Timeout:    cfg.Timeout(),
		}, reporter)
	} else {
		Logger.Infof("Remote catalog not configured, using the local catalog only")
	}

	catalogPath := cfg.ResolveCatalogPath(settings)
	Logger.Debugf("Local catalog: %s", catalogPath)
	local := catalog.NewLocalStore(catalogPath, reporter)

	synchronizer := catalog.NewSynchronizer(remote, local,
		catalog.WithLocker(catalog.NewFileLock(catalogPath+".lock")),
		catalog.WithReporter(reporter),
	)

	zip := archiver.New(cfg.Archiver.Path, cfg.Archiver.CompressionLevel)
	if verbose || debug {
		zip.Stdout = os.Stdout
	}
	Logger.Debugf("Archiver: %s (level %d)", zip.Path, zip.CompressionLevel)

	return workflows.Deps{
		Catalog:    synchronizer,
		Archiver:   zip,
		Audit:      trail,
		OutputDir:  cfg.Storage.OutputDir,
		RestoreDir: cfg.Storage.RestoreDir,
	}
}

// eventReporter renders degraded-mode events as user warnings.
func eventReporter() catalog.Reporter {
	return catalog.ReporterFunc(func(e catalog.Event) {
		msg := describeEvent(e)
		Logger.Debugf("catalog event: %s", e)
		pauseSpinner(func() { Logger.WarnfUser("%s", msg) })
	})
}

func describeEvent(e catalog.Event) string {
	switch e.Kind {
	case catalog.EventRemoteUnavailable:
		return fmt.Sprintf("Remote catalog unavailable, continuing without it: %v", e.Err)
	case catalog.EventRemoteWriteFailed:
		return fmt.Sprintf("Remote catalog was not updated: %v", e.Err)
	case catalog.EventRemoteWriteSkipped:
		return fmt.Sprintf("%s was saved to the local catalog only", e.Detail)
	case catalog.EventRemoteReplaced:
		return fmt.Sprintf("Remote catalog could not be parsed and was started afresh: %v", e.Err)
	case catalog.EventLocalCorrupt:
		return fmt.Sprintf("Local catalog %s could not be read and is treated as empty: %v", e.Path, e.Err)
	case catalog.EventLocalQuarantined:
		if e.Err != nil {
			return fmt.Sprintf("Unreadable local catalog %s could not be moved aside: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("Unreadable local catalog was moved to %s", e.Detail)
	case catalog.EventLocalFallback:
		return fmt.Sprintf("Password for %s was found in the local catalog only", e.Detail)
	default:
		return e.String()
	}
}
