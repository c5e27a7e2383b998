package harness

import (
	"fmt"
	"time"

	"lacpctl/internal/executor"
)

// Options configure one orchestrated suite run.
type Options struct {
	// TestsDir is the root under which bundle directories are discovered.
	TestsDir string `json:"tests_dir"`
	// BundlePrefix is the fixed directory-name prefix identifying bundles.
	BundlePrefix string `json:"bundle_prefix"`
	// EntryPoint is the file name executed inside each bundle.
	EntryPoint string `json:"entry_point"`
	// Interpreter optionally runs the entry point (empty = direct exec).
	Interpreter string `json:"interpreter,omitempty"`
	// Device scopes the run to a named device; empty runs device-less.
	Device string `json:"device,omitempty"`
	// Filter narrows bundles to names containing it, case-insensitively.
	Filter string `json:"filter,omitempty"`
	// Timeout bounds device-less bundle runs.
	Timeout time.Duration `json:"timeout"`
	// DeviceTimeout bounds device-scoped bundle runs.
	DeviceTimeout time.Duration `json:"device_timeout"`
}

// BundleResult pairs a bundle with its classified outcome.
type BundleResult struct {
	// Bundle is the bundle's directory name.
	Bundle string `json:"bundle"`
	// Path is the bundle's full directory path.
	Path string `json:"path"`
	// Outcome is the classified execution result.
	Outcome executor.Outcome `json:"outcome"`
}

// Summary aggregates the outcomes of one suite run. It is created empty
// when the run starts, folded incrementally as bundles complete, and
// finalized once all bundles have run.
type Summary struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	// Device is the device name the run was scoped to, if any.
	Device string `json:"device,omitempty"`
	// Total counts every discovered bundle, skips included.
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	// Results lists individual outcomes in execution order.
	Results []BundleResult `json:"results"`
	// NoTestsFound distinguishes "nothing matched discovery" from an
	// ordinary empty-but-attempted run.
	NoTestsFound bool `json:"no_tests_found,omitempty"`
}

// fold merges one bundle result into the running summary. Timeouts and
// spawn errors count as failures; skips are listed but tallied separately.
func (s *Summary) fold(result BundleResult) {
	s.Results = append(s.Results, result)
	switch {
	case result.Outcome.Status == executor.StatusPassed:
		s.Passed++
	case result.Outcome.Status == executor.StatusSkipped:
		s.Skipped++
	case result.Outcome.CountsAsFailure():
		s.Failed++
	}
}

// Succeeded reports whether the run as a whole passed: at least one bundle
// was discovered and nothing failed, timed out, or errored.
func (s *Summary) Succeeded() bool {
	return !s.NoTestsFound && s.Failed == 0
}

// DeviceNotFoundError reports a device-scoped run against a device that is
// not in the repository. It aborts the run before any execution begins.
type DeviceNotFoundError struct {
	Name string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device %q not found in devices directory", e.Name)
}
