package executor

import "time"

// Status classifies the result of running one bundle.
type Status string

const (
	// StatusPassed indicates the entry point exited zero.
	StatusPassed Status = "PASSED"
	// StatusFailed indicates the entry point exited non-zero.
	StatusFailed Status = "FAILED"
	// StatusTimeout indicates the bundle was killed after exceeding its
	// wall-clock bound.
	StatusTimeout Status = "TIMEOUT"
	// StatusError indicates the process could not be spawned at all.
	StatusError Status = "ERROR"
	// StatusSkipped indicates the bundle had no entry point to run.
	StatusSkipped Status = "SKIPPED"
)

// Outcome is the immutable result of one bundle execution.
type Outcome struct {
	Status   Status `json:"status"`
	ExitCode int    `json:"exit_code,omitempty"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	// Reason carries the skip reason or spawn error message.
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// CountsAsFailure reports whether this outcome fails the suite. Timeouts
// and spawn errors count as failures; skips count neither way.
func (o Outcome) CountsAsFailure() bool {
	switch o.Status {
	case StatusFailed, StatusTimeout, StatusError:
		return true
	default:
		return false
	}
}
