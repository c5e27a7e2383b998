package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"lacpctl/internal/config"
	"lacpctl/pkg/logging"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lacpctl",
	Short: "Run LACP regression test bundles against captured device state",
	Long: `lacpctl discovers self-contained regression test bundles, injects
captured device context (name and login credentials) into their
environment, executes each bundle as an isolated child process with a
wall-clock timeout, and aggregates the outcomes into a summary.

Device snapshots are plain JSON documents under a devices directory;
bundles are directories matching a fixed naming prefix.`,
	// SilenceUsage is set to true to prevent printing usage message on
	// errors handled by us (e.g. unknown device names, failed runs)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if level == "" {
			if cfg, err := config.LoadConfig(); err == nil {
				level = cfg.GlobalSettings.LogLevel
			}
		}
		logging.Init(logging.ParseLevel(level), os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "lacpctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newDevicesCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
}
