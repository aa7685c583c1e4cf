package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	logger "github.com/PolarWolf314/autoarchive/internal/logging"
	"github.com/PolarWolf314/autoarchive/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "autoarchive",
		Short: "Password-protected archives whose passwords you never have to keep",
		Long: `autoarchive packs folders into encrypted 7-Zip archives under a generated
password and remembers that password by the archive's content fingerprint.

The password catalog is kept twice: in a local file and in a remote
document (a GitHub Gist). Either copy alone is enough to unpack.

Usage:
  autoarchive <command> [flags]

Run 'autoarchive help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			myFigure := figure.NewColorFigure("autoarchive", "", "cyan", true)
			myFigure.Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("autoarchive --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is <user config dir>/autoarchive/config.toml)")

	RootCmd.AddCommand(packCmd)
	RootCmd.AddCommand(unpackCmd)
	RootCmd.AddCommand(lookupCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(syncCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(fingerprintCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets every flag of every command to its default for testing.
func ResetGlobalState() {
	resetFlags(RootCmd)
	Logger = logger.Logger{}
	stdin = os.Stdin
}

// resetFlags restores flag defaults recursively to prevent test pollution.
func resetFlags(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
