package config

import (
	"time"
)

// LacpctlConfig is the top-level configuration structure for lacpctl.
type LacpctlConfig struct {
	GlobalSettings GlobalSettings `yaml:"globalSettings"`
	Suite          SuiteConfig    `yaml:"suite"`
}

// GlobalSettings holds settings that are not specific to one suite run.
type GlobalSettings struct {
	LogLevel string `yaml:"logLevel,omitempty"` // "debug", "info", "warn", "error"
}

// SuiteConfig describes where test bundles and device snapshots live and
// how bundle entry points are executed.
type SuiteConfig struct {
	// DevicesDir is the root of the device snapshot tree
	// (one subdirectory per device, JSON documents inside).
	DevicesDir string `yaml:"devicesDir,omitempty"`
	// TestsDir is the root under which test bundle directories are discovered.
	TestsDir string `yaml:"testsDir,omitempty"`
	// BundlePrefix is the fixed directory-name prefix identifying test bundles.
	BundlePrefix string `yaml:"bundlePrefix,omitempty"`
	// EntryPoint is the file name of the executable entry inside each bundle.
	EntryPoint string `yaml:"entryPoint,omitempty"`
	// Interpreter, when non-empty, is prepended to the entry point when
	// spawning (e.g. "python3" for main.py entry points). When empty the
	// entry point is executed directly.
	Interpreter string `yaml:"interpreter,omitempty"`
	// TimeoutSeconds bounds the wall clock of one bundle run without
	// device context.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`
	// DeviceTimeoutSeconds bounds bundle runs that carry a device context.
	// Device backed bundles tend to do more I/O bound work, so this bound
	// is larger.
	DeviceTimeoutSeconds int `yaml:"deviceTimeoutSeconds,omitempty"`
}

// Timeout returns the device-less bundle timeout as a duration.
func (s SuiteConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DeviceTimeout returns the device-scoped bundle timeout as a duration.
func (s SuiteConfig) DeviceTimeout() time.Duration {
	return time.Duration(s.DeviceTimeoutSeconds) * time.Second
}
