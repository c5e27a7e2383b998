package executor

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"lacpctl/pkg/logging"
)

const logSubsystem = "TestExecutor"

// Options parameterize one bundle execution.
type Options struct {
	// EntryPoint is the file name of the executable entry inside the bundle.
	EntryPoint string
	// Interpreter, when non-empty, runs the entry point (e.g. "python3"
	// for main.py bundles). When empty the entry point is executed directly.
	Interpreter string
	// Env is the full environment for the child. The executor never reads
	// the ambient environment itself; the caller supplies a complete copy.
	Env []string
	// Timeout is the hard wall-clock bound for the child.
	Timeout time.Duration
}

// outputCapture collects a child's stdout and stderr into buffers through
// pipes, line by line, so the parent's own output never interleaves with it.
type outputCapture struct {
	stdoutBuf    *bytes.Buffer
	stderrBuf    *bytes.Buffer
	stdoutReader *io.PipeReader
	stderrReader *io.PipeReader
	stdoutWriter *io.PipeWriter
	stderrWriter *io.PipeWriter
	wg           sync.WaitGroup
	mu           sync.RWMutex
}

func newOutputCapture() *outputCapture {
	c := &outputCapture{
		stdoutBuf: &bytes.Buffer{},
		stderrBuf: &bytes.Buffer{},
	}

	c.stdoutReader, c.stdoutWriter = io.Pipe()
	c.stderrReader, c.stderrWriter = io.Pipe()

	c.wg.Add(2)
	go c.drain(c.stdoutReader, c.stdoutBuf)
	go c.drain(c.stderrReader, c.stderrBuf)

	return c
}

// maxLineBytes bounds a single captured line before the drain falls back
// to raw copying.
const maxLineBytes = 1024 * 1024

func (c *outputCapture) drain(reader io.Reader, buffer *bytes.Buffer) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		c.mu.Lock()
		buffer.WriteString(line + "\n")
		c.mu.Unlock()
	}
	if scanner.Err() == nil {
		return
	}
	// A line past the token limit stops the scan early. Keep reading raw
	// so the child never blocks on a full pipe; a stopped drain here would
	// wedge cmd.Wait and with it the whole suite.
	chunk := make([]byte, 32*1024)
	for {
		n, err := reader.Read(chunk)
		if n > 0 {
			c.mu.Lock()
			buffer.Write(chunk[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// close closes the capture pipes and waits for the drain goroutines.
func (c *outputCapture) close() {
	c.stdoutWriter.Close()
	c.stderrWriter.Close()
	c.wg.Wait()
}

func (c *outputCapture) contents() (stdout, stderr string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stdoutBuf.String(), c.stderrBuf.String()
}

// Run executes one bundle's entry point as an isolated child process and
// classifies the result. A missing entry point is a skip, not a spawn
// attempt. The child runs in its own process group so a timeout can kill
// the entry point together with anything it spawned. A single attempt is
// made per bundle; retry policy belongs to the caller.
func Run(bundlePath string, opts Options) Outcome {
	entryPath := filepath.Join(bundlePath, opts.EntryPoint)
	if _, err := os.Stat(entryPath); err != nil {
		return Outcome{
			Status: StatusSkipped,
			Reason: "entry point not found",
		}
	}

	var cmd *exec.Cmd
	if opts.Interpreter != "" {
		cmd = exec.Command(opts.Interpreter, entryPath)
	} else {
		cmd = exec.Command(entryPath)
	}
	cmd.Dir = bundlePath
	cmd.Env = opts.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	capture := newOutputCapture()
	cmd.Stdout = capture.stdoutWriter
	cmd.Stderr = capture.stderrWriter

	start := time.Now()
	if err := cmd.Start(); err != nil {
		capture.close()
		logging.Warn(logSubsystem, "Cannot spawn %s: %v", entryPath, err)
		return Outcome{
			Status:   StatusError,
			Reason:   err.Error(),
			Duration: time.Since(start),
		}
	}

	pid := cmd.Process.Pid
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		capture.close()
		stdout, stderr := capture.contents()
		duration := time.Since(start)

		if err == nil {
			return Outcome{
				Status:   StatusPassed,
				Stdout:   stdout,
				Stderr:   stderr,
				Duration: duration,
			}
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return Outcome{
				Status:   StatusFailed,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout,
				Stderr:   stderr,
				Duration: duration,
			}
		}
		// Wait failed for a reason other than a non-zero exit.
		return Outcome{
			Status:   StatusError,
			Reason:   err.Error(),
			Stdout:   stdout,
			Stderr:   stderr,
			Duration: duration,
		}

	case <-timer.C:
		// Kill the whole process group, then reap the child.
		if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
			logging.Warn(logSubsystem, "Failed to kill process group %d: %v", pid, err)
			_ = cmd.Process.Kill()
		}
		<-done
		capture.close()
		// Partial output is deliberately discarded on timeout.
		return Outcome{
			Status:   StatusTimeout,
			Duration: time.Since(start),
		}
	}
}
