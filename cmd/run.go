package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lacpctl/internal/config"
	"lacpctl/internal/devices"
	"lacpctl/internal/harness"
	"lacpctl/internal/tui"
)

func newRunCmd() *cobra.Command {
	var (
		device        string
		filter        string
		interactive   bool
		verbose       bool
		quiet         bool
		jsonOutput    bool
		reportDir     string
		testsDir      string
		devicesDir    string
		timeout       time.Duration
		deviceTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover and execute the regression test suite",
		Long: `Discovers test bundle directories under the tests directory, optionally
scopes the run to a named device (injecting DEVICE and, when credentials
are captured, HOSTNAME/USERNAME/PASSWORD into each bundle's environment),
and executes each bundle sequentially as an isolated child process with a
wall-clock timeout.

The exit code is 0 only when every executed bundle passed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			// Flags take precedence over config files.
			if testsDir == "" {
				testsDir = cfg.Suite.TestsDir
			}
			if devicesDir == "" {
				devicesDir = cfg.Suite.DevicesDir
			}
			if timeout == 0 {
				timeout = cfg.Suite.Timeout()
			}
			if deviceTimeout == 0 {
				deviceTimeout = cfg.Suite.DeviceTimeout()
			}

			repo := devices.NewRepository(devicesDir)

			if interactive && device == "" {
				names := repo.ListDevices()
				if len(names) == 0 {
					return fmt.Errorf("no devices found in %s", devicesDir)
				}
				picked, ok, err := tui.PickDevice(names)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
				device = picked
			}

			var reporter harness.Reporter
			switch {
			case jsonOutput:
				reporter = harness.NewJSONReporter()
			case quiet:
				reporter = harness.NewQuietReporter()
			default:
				reporter = harness.NewConsoleReporter(verbose, reportDir)
			}

			runner := harness.NewRunner(repo, reporter)
			summary, err := runner.Run(harness.Options{
				TestsDir:      testsDir,
				BundlePrefix:  cfg.Suite.BundlePrefix,
				EntryPoint:    cfg.Suite.EntryPoint,
				Interpreter:   cfg.Suite.Interpreter,
				Device:        device,
				Filter:        filter,
				Timeout:       timeout,
				DeviceTimeout: deviceTimeout,
			})
			if err != nil {
				return err
			}

			if !summary.Succeeded() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "scope the run to a named device")
	cmd.Flags().StringVar(&filter, "filter", "", "only run bundles whose name contains this substring (case-insensitive)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "pick the device interactively before running")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print captured stdout of passing bundles")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "only report failures and the final tally")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the summary as JSON on stdout")
	cmd.Flags().StringVar(&reportDir, "report", "", "directory to save a timestamped JSON report into")
	cmd.Flags().StringVar(&testsDir, "tests-dir", "", "root directory containing test bundles (overrides config)")
	cmd.Flags().StringVar(&devicesDir, "devices-dir", "", "devices snapshot directory (overrides config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-bundle timeout for device-less runs (overrides config)")
	cmd.Flags().DurationVar(&deviceTimeout, "device-timeout", 0, "per-bundle timeout for device-scoped runs (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("quiet", "json")
	cmd.MarkFlagsMutuallyExclusive("device", "interactive")

	return cmd
}
