package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lacpctl/internal/executor"
)

// Reporter receives progress callbacks during a suite run.
type Reporter interface {
	// ReportStart is called once, after discovery, before any execution.
	ReportStart(opts Options, bundleCount int)
	// ReportBundleStart is called before each bundle runs.
	ReportBundleStart(bundle string)
	// ReportBundleResult is called as each bundle's outcome is folded in.
	ReportBundleResult(result BundleResult)
	// ReportSummary is called once with the finalized summary.
	ReportSummary(summary Summary)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

const separator = "============================================================"

// consoleReporter prints human-readable progress to stdout.
type consoleReporter struct {
	verbose    bool
	reportPath string
}

// NewConsoleReporter creates the default human-readable reporter. When
// reportPath is non-empty the finalized summary is additionally saved
// there as a timestamped JSON file.
func NewConsoleReporter(verbose bool, reportPath string) Reporter {
	return &consoleReporter{
		verbose:    verbose,
		reportPath: reportPath,
	}
}

func (r *consoleReporter) ReportStart(opts Options, bundleCount int) {
	fmt.Println(separator)
	fmt.Println(headerStyle.Render("LACP Regression Test Suite"))
	fmt.Println(separator)

	if opts.Device != "" {
		fmt.Printf("Device: %s\n", opts.Device)
	}
	if opts.Filter != "" {
		fmt.Printf("Filter: %s\n", opts.Filter)
	}
	fmt.Printf("Found %d test bundle(s)\n", bundleCount)
	if bundleCount > 0 {
		fmt.Println()
	}
}

func (r *consoleReporter) ReportBundleStart(bundle string) {
	fmt.Printf("🔄 Running: %s\n", bundle)
}

func (r *consoleReporter) ReportBundleResult(result BundleResult) {
	out := result.Outcome
	switch out.Status {
	case executor.StatusPassed:
		fmt.Println(passStyle.Render(fmt.Sprintf("✅ PASSED: %s (%v)", result.Bundle, out.Duration.Round(time.Millisecond))))
		if r.verbose && strings.TrimSpace(out.Stdout) != "" {
			fmt.Printf("   Output: %s\n", strings.TrimSpace(out.Stdout))
		}
	case executor.StatusFailed:
		fmt.Println(failStyle.Render(fmt.Sprintf("❌ FAILED: %s (exit code: %d)", result.Bundle, out.ExitCode)))
		if strings.TrimSpace(out.Stderr) != "" {
			fmt.Printf("   Error: %s\n", strings.TrimSpace(out.Stderr))
		}
		if strings.TrimSpace(out.Stdout) != "" {
			fmt.Printf("   Output: %s\n", strings.TrimSpace(out.Stdout))
		}
	case executor.StatusTimeout:
		fmt.Println(failStyle.Render(fmt.Sprintf("⏰ TIMEOUT: %s (exceeded %v)", result.Bundle, out.Duration.Round(time.Second))))
	case executor.StatusError:
		fmt.Println(failStyle.Render(fmt.Sprintf("💥 ERROR: %s - %s", result.Bundle, out.Reason)))
	case executor.StatusSkipped:
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  SKIPPED: %s (%s)", result.Bundle, out.Reason)))
	}
}

func (r *consoleReporter) ReportSummary(summary Summary) {
	fmt.Println()
	fmt.Println(separator)
	fmt.Println(headerStyle.Render("TEST SUITE SUMMARY"))
	fmt.Println(separator)

	if summary.NoTestsFound {
		fmt.Println(failStyle.Render("❌ No test bundles found!"))
		return
	}

	fmt.Printf("Total tests: %d\n", summary.Total)
	fmt.Println(passStyle.Render(fmt.Sprintf("✅ Passed: %d", summary.Passed)))
	fmt.Println(failStyle.Render(fmt.Sprintf("❌ Failed: %d", summary.Failed)))
	if summary.Skipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  Skipped: %d", summary.Skipped)))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("Duration: %v", summary.Duration.Round(time.Millisecond))))

	if summary.Succeeded() {
		fmt.Println("\n🎉 All tests passed!")
	} else {
		fmt.Printf("\n💔 %d test(s) failed!\n", summary.Failed)
	}

	if r.reportPath != "" {
		if path, err := saveReport(summary, r.reportPath); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  Failed to save report: %v", err)))
		} else {
			fmt.Printf("📄 Report saved to: %s\n", path)
		}
	}
}

// quietReporter only surfaces failures and the final tally, for CI logs.
type quietReporter struct{}

// NewQuietReporter creates a reporter that only outputs essential
// information.
func NewQuietReporter() Reporter {
	return &quietReporter{}
}

func (r *quietReporter) ReportStart(opts Options, bundleCount int) {}

func (r *quietReporter) ReportBundleStart(bundle string) {}

func (r *quietReporter) ReportBundleResult(result BundleResult) {
	out := result.Outcome
	if !out.CountsAsFailure() {
		return
	}
	switch out.Status {
	case executor.StatusTimeout:
		fmt.Printf("⏰ %s: timeout\n", result.Bundle)
	case executor.StatusError:
		fmt.Printf("💥 %s: %s\n", result.Bundle, out.Reason)
	default:
		fmt.Printf("❌ %s: exit code %d\n", result.Bundle, out.ExitCode)
	}
}

func (r *quietReporter) ReportSummary(summary Summary) {
	if summary.NoTestsFound {
		fmt.Println("❌ no test bundles found")
		return
	}
	if summary.Succeeded() {
		if summary.Skipped > 0 {
			fmt.Printf("✅ %d/%d tests passed (%d skipped)\n", summary.Passed, summary.Total, summary.Skipped)
		} else {
			fmt.Printf("✅ All %d tests passed\n", summary.Total)
		}
	} else {
		fmt.Printf("❌ %d/%d tests failed\n", summary.Failed, summary.Total)
	}
}

// jsonReporter emits the finalized summary as JSON on stdout, for machine
// consumption.
type jsonReporter struct{}

// NewJSONReporter creates a reporter that outputs JSON for CI/CD
// integration.
func NewJSONReporter() Reporter {
	return &jsonReporter{}
}

func (r *jsonReporter) ReportStart(opts Options, bundleCount int) {}

func (r *jsonReporter) ReportBundleStart(bundle string) {}

func (r *jsonReporter) ReportBundleResult(result BundleResult) {}

func (r *jsonReporter) ReportSummary(summary Summary) {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Printf(`{"error": "failed to marshal summary: %v"}`, err)
		return
	}
	fmt.Println(string(jsonData))
}

// nopReporter discards all progress. Used where stdout belongs to another
// protocol (the MCP stdio transport) and the Summary is consumed directly.
type nopReporter struct{}

// NewNopReporter creates a reporter that discards all progress output.
func NewNopReporter() Reporter {
	return &nopReporter{}
}

func (r *nopReporter) ReportStart(opts Options, bundleCount int) {}
func (r *nopReporter) ReportBundleStart(bundle string)           {}
func (r *nopReporter) ReportBundleResult(result BundleResult)    {}
func (r *nopReporter) ReportSummary(summary Summary)             {}

// saveReport writes the summary as a timestamped JSON file under dir and
// returns the full path.
func saveReport(summary Summary, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	fullPath := filepath.Join(dir, fmt.Sprintf("lacpctl-report-%s.json", timestamp))

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return fullPath, nil
}
