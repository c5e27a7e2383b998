package harness

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"lacpctl/internal/bundles"
	"lacpctl/internal/devices"
	"lacpctl/internal/executor"
	"lacpctl/pkg/logging"
)

const logSubsystem = "Orchestrator"

// Runner orchestrates one suite: bundle discovery, device resolution,
// sequential isolated execution, and summary folding.
type Runner struct {
	repo     *devices.Repository
	reporter Reporter
	baseEnv  []string
}

// NewRunner creates a runner over the given device repository, reporting
// through the given reporter.
func NewRunner(repo *devices.Repository, reporter Reporter) *Runner {
	return &Runner{
		repo:     repo,
		reporter: reporter,
		baseEnv:  os.Environ(),
	}
}

// SetBaseEnv overrides the ambient environment bundles inherit. Intended
// for tests.
func (r *Runner) SetBaseEnv(env []string) {
	r.baseEnv = env
}

// Run executes the suite described by opts and returns its Summary.
//
// Bundles run one at a time, in discovery order, each as an isolated child
// process with its own copy of the environment overlay. A bundle failure
// never aborts the remaining suite; only an unknown device name (when one
// was explicitly requested) aborts before any execution begins.
func (r *Runner) Run(opts Options) (*Summary, error) {
	summary := &Summary{
		StartTime: time.Now(),
		Device:    opts.Device,
	}

	discovered := bundles.Find(opts.TestsDir, opts.BundlePrefix, opts.Filter)

	var creds *devices.LoginCredentials
	if opts.Device != "" {
		if !slices.Contains(r.repo.ListDevices(), opts.Device) {
			return nil, &DeviceNotFoundError{Name: opts.Device}
		}
		creds = r.repo.Credentials(opts.Device)
		if creds == nil {
			logging.Warn(logSubsystem, "Device %s has no login credentials; bundles run with device name only", opts.Device)
		}
		if lacp := r.repo.LacpInterfaces(opts.Device); len(lacp) == 0 {
			logging.Warn(logSubsystem, "No LACP interfaces found on device %s; running anyway", opts.Device)
		} else {
			logging.Info(logSubsystem, "Found %d LACP interface(s) on device %s", len(lacp), opts.Device)
		}
	}

	summary.Total = len(discovered)
	if len(discovered) == 0 {
		summary.NoTestsFound = true
		summary.EndTime = time.Now()
		summary.Duration = summary.EndTime.Sub(summary.StartTime)
		r.reporter.ReportStart(opts, 0)
		r.reporter.ReportSummary(*summary)
		return summary, nil
	}

	r.reporter.ReportStart(opts, len(discovered))

	timeout := opts.Timeout
	if opts.Device != "" {
		// Device-backed bundles talk to captured device state and tend to
		// be slower, so they get the larger bound.
		timeout = opts.DeviceTimeout
	}

	for _, path := range discovered {
		name := filepath.Base(path)
		r.reporter.ReportBundleStart(name)

		outcome := executor.Run(path, executor.Options{
			EntryPoint:  opts.EntryPoint,
			Interpreter: opts.Interpreter,
			Env:         BuildEnv(r.baseEnv, opts.Device, creds),
			Timeout:     timeout,
		})

		result := BundleResult{
			Bundle:  name,
			Path:    path,
			Outcome: outcome,
		}
		summary.fold(result)
		r.reporter.ReportBundleResult(result)
	}

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)
	r.reporter.ReportSummary(*summary)

	return summary, nil
}
