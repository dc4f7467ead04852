// Package launcher starts desktop applications as detached processes.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"web-assistant/internal/application/port/output"
)

var _ output.AppLauncher = (*ProcessLauncher)(nil)

var ErrNotInstalled = errors.New("application not installed")

type ProcessLauncher struct {
	logger   output.LoggerPort
	lookPath func(string) (string, error)
	start    func(path string) (*exec.Cmd, error)
}

func NewProcessLauncher(logger output.LoggerPort) *ProcessLauncher {
	return &ProcessLauncher{
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Launch resolves executable on PATH and starts it without waiting for it
// to exit. Outside Windows a trailing ".exe" is ignored during lookup.
func (l *ProcessLauncher) Launch(ctx context.Context, executable string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := l.resolve(executable)
	if err != nil {
		return err
	}

	cmd, err := l.start(path)
	if err != nil {
		return fmt.Errorf("start %s: %w", executable, err)
	}
	l.logger.Info("Application started", "executable", executable, "path", path)

	if cmd != nil {
		go func() {
			if err := cmd.Wait(); err != nil {
				l.logger.Debug("Application exited", "executable", executable, "error", err)
			}
		}()
	}
	return nil
}

func (l *ProcessLauncher) resolve(executable string) (string, error) {
	candidates := []string{executable}
	if runtime.GOOS != "windows" {
		if base, ok := strings.CutSuffix(strings.ToLower(executable), ".exe"); ok {
			candidates = append(candidates, base)
		}
	}
	for _, c := range candidates {
		if path, err := l.lookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotInstalled, executable)
}

func startDetached(path string) (*exec.Cmd, error) {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
