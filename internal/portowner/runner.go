package portowner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Runner runs a command to completion and returns its standard output
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// ExecRunner spawns one subprocess per call. A zero Timeout waits for as long as ctx allows.
type ExecRunner struct {
	Timeout time.Duration
}

func (r ExecRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)

	stdoutBuf := &safeBuffer{}
	stderrBuf := &safeBuffer{}
	cmd.Stdout = stdoutBuf
	cmd.Stderr = stderrBuf

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start %s: %w", command, err)
	}

	err := cmd.Wait()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdoutBuf.String(), fmt.Errorf("%s interrupted: %w", command, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdoutBuf.String(), fmt.Errorf("%s exited with code %d: %s",
				command, exitErr.ExitCode(), strings.TrimSpace(stderrBuf.String()))
		}
		return stdoutBuf.String(), fmt.Errorf("%s failed: %w", command, err)
	}

	return stdoutBuf.String(), nil
}
