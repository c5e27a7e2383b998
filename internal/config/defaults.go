package config

// Default suite settings. The entry point and interpreter follow the
// historical bundle convention: each bundle ships a main.py run under
// python3.
const (
	DefaultDevicesDir           = "Devices"
	DefaultTestsDir             = "."
	DefaultBundlePrefix         = "Test-Bundle_"
	DefaultEntryPoint           = "main.py"
	DefaultInterpreter          = "python3"
	DefaultTimeoutSeconds       = 30
	DefaultDeviceTimeoutSeconds = 60
)

// GetDefaultConfig returns the built-in configuration used when no config
// files are present.
func GetDefaultConfig() LacpctlConfig {
	return LacpctlConfig{
		GlobalSettings: GlobalSettings{
			LogLevel: "info",
		},
		Suite: SuiteConfig{
			DevicesDir:           DefaultDevicesDir,
			TestsDir:             DefaultTestsDir,
			BundlePrefix:         DefaultBundlePrefix,
			EntryPoint:           DefaultEntryPoint,
			Interpreter:          DefaultInterpreter,
			TimeoutSeconds:       DefaultTimeoutSeconds,
			DeviceTimeoutSeconds: DefaultDeviceTimeoutSeconds,
		},
	}
}
