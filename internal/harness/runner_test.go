package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lacpctl/internal/devices"
	"lacpctl/internal/executor"
)

// recordingReporter captures every callback for assertions.
type recordingReporter struct {
	startCount int
	started    []string
	results    []BundleResult
	summaries  []Summary
}

func (r *recordingReporter) ReportStart(opts Options, bundleCount int) {
	r.startCount = bundleCount
}

func (r *recordingReporter) ReportBundleStart(bundle string) {
	r.started = append(r.started, bundle)
}

func (r *recordingReporter) ReportBundleResult(result BundleResult) {
	r.results = append(r.results, result)
}

func (r *recordingReporter) ReportSummary(summary Summary) {
	r.summaries = append(r.summaries, summary)
}

// writeBundle creates one test bundle directory with a main.sh script.
func writeBundle(t *testing.T, testsDir, name, script string) {
	t.Helper()
	dir := filepath.Join(testsDir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.sh"), []byte(script), 0644))
}

// writeDevice creates one device snapshot directory.
func writeDevice(t *testing.T, devicesDir, name, systemJSON string) {
	t.Helper()
	dir := filepath.Join(devicesDir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if systemJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "system_info.json"), []byte(systemJSON), 0644))
	}
}

func shSuiteOptions(testsDir string) Options {
	return Options{
		TestsDir:      testsDir,
		BundlePrefix:  "Test-Bundle_",
		EntryPoint:    "main.sh",
		Interpreter:   "sh",
		Timeout:       2 * time.Second,
		DeviceTimeout: 2 * time.Second,
	}
}

func TestRunMixedOutcomes(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_a_pass", "exit 0\n")
	writeBundle(t, testsDir, "Test-Bundle_b_fail", "exit 1\n")
	writeBundle(t, testsDir, "Test-Bundle_c_hang", "sleep 30\n")

	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(t.TempDir()), reporter)

	summary, err := runner.Run(shSuiteOptions(testsDir))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	assert.False(t, summary.Succeeded())

	// Sequential, in discovery order.
	assert.Equal(t, []string{"Test-Bundle_a_pass", "Test-Bundle_b_fail", "Test-Bundle_c_hang"}, reporter.started)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, executor.StatusPassed, summary.Results[0].Outcome.Status)
	assert.Equal(t, executor.StatusFailed, summary.Results[1].Outcome.Status)
	assert.Equal(t, executor.StatusTimeout, summary.Results[2].Outcome.Status)

	require.Len(t, reporter.summaries, 1)
	assert.Equal(t, summary.Failed, reporter.summaries[0].Failed)
}

func TestRunSkipsAreNotFailures(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_a_pass", "exit 0\n")
	require.NoError(t, os.MkdirAll(filepath.Join(testsDir, "Test-Bundle_b_empty"), 0755))

	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(t.TempDir()), reporter)

	summary, err := runner.Run(shSuiteOptions(testsDir))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.True(t, summary.Succeeded())
}

func TestRunNoBundlesFound(t *testing.T) {
	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(t.TempDir()), reporter)

	summary, err := runner.Run(shSuiteOptions(t.TempDir()))
	require.NoError(t, err)

	assert.True(t, summary.NoTestsFound)
	assert.Equal(t, 0, summary.Total)
	assert.False(t, summary.Succeeded())
	assert.Equal(t, 0, reporter.startCount)
	assert.Empty(t, reporter.started)
	require.Len(t, reporter.summaries, 1)
}

func TestRunUnknownDeviceAbortsBeforeExecution(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_a_pass", "exit 0\n")

	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(t.TempDir()), reporter)

	opts := shSuiteOptions(testsDir)
	opts.Device = "no-such-device"
	summary, err := runner.Run(opts)

	assert.Nil(t, summary)
	var notFound *DeviceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-device", notFound.Name)
	assert.Empty(t, reporter.started)
	assert.Empty(t, reporter.summaries)
}

func TestRunInjectsDeviceEnvironment(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_env",
		`echo "device=$DEVICE host=$HOSTNAME user=$USERNAME pass=$PASSWORD"`+"\n")

	devicesDir := t.TempDir()
	writeDevice(t, devicesDir, "switch-a",
		`{"login_credentials": {"hostname": "10.0.0.1", "username": "admin", "password": "secret"}}`)

	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(devicesDir), reporter)
	runner.SetBaseEnv([]string{"PATH=" + os.Getenv("PATH")})

	opts := shSuiteOptions(testsDir)
	opts.Device = "switch-a"
	summary, err := runner.Run(opts)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	outcome := summary.Results[0].Outcome
	require.Equal(t, executor.StatusPassed, outcome.Status)
	assert.Contains(t, outcome.Stdout, "device=switch-a")
	assert.Contains(t, outcome.Stdout, "host=10.0.0.1")
	assert.Contains(t, outcome.Stdout, "user=admin")
	assert.Contains(t, outcome.Stdout, "pass=secret")
	assert.Equal(t, "switch-a", summary.Device)
}

func TestRunDeviceWithoutCredentials(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_env",
		`echo "device=$DEVICE host=${HOSTNAME:-none}"`+"\n")

	devicesDir := t.TempDir()
	writeDevice(t, devicesDir, "switch-a", `{"device_info": {"type": "switch"}}`)

	runner := NewRunner(devices.NewRepository(devicesDir), &recordingReporter{})
	runner.SetBaseEnv([]string{"PATH=" + os.Getenv("PATH")})

	opts := shSuiteOptions(testsDir)
	opts.Device = "switch-a"
	summary, err := runner.Run(opts)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	outcome := summary.Results[0].Outcome
	require.Equal(t, executor.StatusPassed, outcome.Status)
	assert.Contains(t, outcome.Stdout, "device=switch-a")
	assert.Contains(t, outcome.Stdout, "host=none")
}

func TestRunFilterNarrowsSuite(t *testing.T) {
	testsDir := t.TempDir()
	writeBundle(t, testsDir, "Test-Bundle_lacp_basic", "exit 0\n")
	writeBundle(t, testsDir, "Test-Bundle_lldp_check", "exit 0\n")

	reporter := &recordingReporter{}
	runner := NewRunner(devices.NewRepository(t.TempDir()), reporter)

	opts := shSuiteOptions(testsDir)
	opts.Filter = "LACP"
	summary, err := runner.Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, []string{"Test-Bundle_lacp_basic"}, reporter.started)
}

func TestSummaryFold(t *testing.T) {
	summary := &Summary{}
	statuses := []executor.Status{
		executor.StatusPassed,
		executor.StatusFailed,
		executor.StatusTimeout,
		executor.StatusError,
		executor.StatusSkipped,
	}
	for _, status := range statuses {
		summary.fold(BundleResult{Outcome: executor.Outcome{Status: status}})
	}

	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 3, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, summary.Results, 5)
	assert.False(t, summary.Succeeded())
}

func TestSummarySucceeded(t *testing.T) {
	assert.True(t, (&Summary{Total: 2, Passed: 2}).Succeeded())
	assert.True(t, (&Summary{Total: 1, Skipped: 1}).Succeeded())
	assert.False(t, (&Summary{Total: 2, Passed: 1, Failed: 1}).Succeeded())
	assert.False(t, (&Summary{NoTestsFound: true}).Succeeded())
}
