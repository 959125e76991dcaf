// Package process launches external binaries with line-streamed output
// capture, a run timeout, and cooperative cancellation. It is the leaf
// dependency for every ffmpeg/ffprobe-backed service in the repository.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"splice/internal/services"
)

// ExternalError reports a process that ran to completion but exited non-zero.
// The captured stderr tail is preserved for diagnostics.
type ExternalError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *ExternalError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Binary, e.ExitCode, stderr)
}

// Option configures the runner.
type Option func(*Runner)

// WithTimeout sets the per-invocation timeout. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithLogger attaches a logger for debug-level invocation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner executes external binaries. The zero timeout means invocations run
// until the process exits or the caller's context fires.
type Runner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner constructs a runner with the supplied options.
func NewRunner(opts ...Option) *Runner {
	runner := &Runner{logger: slog.Default()}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes the binary and returns its captured stdout. A non-zero exit
// surfaces as *ExternalError tagged with services.ErrExternalTool; a timeout
// surfaces tagged with services.ErrTimeout; caller cancellation propagates as
// the context error so callers can distinguish user stops from failures.
func (r *Runner) Run(ctx context.Context, binary string, args []string) (string, error) {
	var stdout strings.Builder
	err := r.execute(ctx, binary, args, func(reader io.Reader) error {
		_, copyErr := io.Copy(&stdout, reader)
		return copyErr
	}, nil)
	if err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Output executes the binary and returns raw stdout bytes. Used when stdout
// carries binary payloads (raw PCM) rather than text.
func (r *Runner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	var stdout bytes.Buffer
	err := r.execute(ctx, binary, args, func(reader io.Reader) error {
		_, copyErr := io.Copy(&stdout, reader)
		return copyErr
	}, nil)
	if err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// RunWithProgress executes the binary and forwards every stderr line to the
// supplied sink as it arrives. ffmpeg writes encoder progress and filter
// diagnostics to stderr, so the sink sees them live rather than post-mortem.
func (r *Runner) RunWithProgress(ctx context.Context, binary string, args []string, onLine func(string)) error {
	return r.execute(ctx, binary, args, func(reader io.Reader) error {
		_, copyErr := io.Copy(io.Discard, reader)
		return copyErr
	}, onLine)
}

func (r *Runner) execute(ctx context.Context, binary string, args []string, consumeStdout func(io.Reader) error, onStderrLine func(string)) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return services.Wrap(services.ErrConfiguration, "process", "run", "binary not configured", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(binary, args...) //nolint:gosec
	// New process group so a kill reaches ffmpeg's own children too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "process", "start "+binary, "", err)
	}
	r.logger.Debug("process started", "binary", binary, "args", strings.Join(args, " "), "pid", cmd.Process.Pid)

	var stderrBuf lineBuffer
	var wg sync.WaitGroup
	var stdoutErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		stdoutErr = consumeStdout(stdout)
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			stderrBuf.append(line)
			if onStderrLine != nil {
				onStderrLine(line)
			}
		}
	}()

	// Both streams must drain before Wait or the pipes are torn down under
	// the readers.
	done := make(chan error, 1)
	go func() {
		wg.Wait()
		done <- cmd.Wait()
	}()

	var timeoutCh <-chan time.Time
	if r.timeout > 0 {
		timer := time.NewTimer(r.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case waitErr := <-done:
		return r.finish(binary, waitErr, stdoutErr, stderrBuf.tail())
	case <-ctx.Done():
		r.killGroup(cmd)
		<-done
		r.logger.Debug("process cancelled", "binary", binary)
		return ctx.Err()
	case <-timeoutCh:
		r.killGroup(cmd)
		<-done
		return services.Wrap(services.ErrTimeout, "process", binary, fmt.Sprintf("exceeded %s", r.timeout), nil)
	}
}

func (r *Runner) finish(binary string, waitErr, stdoutErr error, stderrTail string) error {
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return fmt.Errorf("%w: %w", services.ErrExternalTool, &ExternalError{
				Binary:   binary,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderrTail,
			})
		}
		return services.Wrap(services.ErrExternalTool, "process", "wait "+binary, "", waitErr)
	}
	if stdoutErr != nil {
		return services.Wrap(services.ErrExternalTool, "process", "read stdout of "+binary, "", stdoutErr)
	}
	return nil
}

func (r *Runner) killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	if pgid, err := unix.Getpgid(pid); err == nil {
		if err := unix.Kill(-pgid, unix.SIGKILL); err == nil {
			return
		}
	}
	_ = cmd.Process.Kill()
}

// lineBuffer retains the most recent stderr lines. ffmpeg can emit hundreds of
// progress lines per second; only the tail matters for error translation.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
}

const maxRetainedLines = 40

func (b *lineBuffer) append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	if len(b.lines) > maxRetainedLines {
		b.lines = b.lines[len(b.lines)-maxRetainedLines:]
	}
}

func (b *lineBuffer) tail() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}
