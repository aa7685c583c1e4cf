// Package logger provides leveled logging for autoarchive CLI commands.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown. Catalog
// degraded-mode events (remote unreachable, local file quarantined) are
// critical warnings.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown (critical warnings)
//	Logger.WarnfUser()       // User-facing warnings (not debug info)
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//	Logger.Fatalf()          // Always shown, then exits
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Archiving %s", source)
//
// The root command builds the logger in PersistentPreRun.
// Out and Err can be redirected for tests.
package logger
