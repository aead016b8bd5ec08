// Package launcher runs user-chosen scripts through the OS shell without
// waiting for them.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern matches the script files this platform can run.
var Pattern = PatternFor(runtime.GOOS)

// ErrUnsupported is returned for files the platform shell cannot run.
var ErrUnsupported = errors.New("unsupported script type")

// PatternFor returns the script pattern for goos.
func PatternFor(goos string) string {
	switch goos {
	case "windows":
		return "*.{bat,cmd}"
	case "darwin":
		return "*.{sh,command}"
	default:
		return "*.sh"
	}
}

// ProcessError reports a script that could not be started.
type ProcessError struct {
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("launch %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Runnable reports whether path looks like a script this platform runs.
func Runnable(path string) bool {
	return runnableOn(runtime.GOOS, path)
}

func runnableOn(goos, path string) bool {
	ok, _ := doublestar.Match(PatternFor(goos), strings.ToLower(filepath.Base(path)))
	return ok
}

// Launcher starts scripts detached from the caller.
type Launcher struct {
	logger *slog.Logger
	goos   string
}

// New creates a Launcher. A nil logger discards output.
func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{logger: logger, goos: runtime.GOOS}
}

// Command builds the shell invocation for path.
func (l *Launcher) Command(path string) *exec.Cmd {
	var cmd *exec.Cmd
	switch l.goos {
	case "windows":
		// start returns immediately and opens the script in its own console
		cmd = exec.Command("cmd", "/C", "start", "", path)
	default:
		cmd = exec.Command("sh", path)
	}
	cmd.Dir = filepath.Dir(path)
	return cmd
}

// Run starts path and returns once the process is spawned. The exit status
// is only logged.
func (l *Launcher) Run(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &ProcessError{Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return &ProcessError{Path: abs, Err: err}
	}
	if info.IsDir() {
		return &ProcessError{Path: abs, Err: errors.New("is a directory")}
	}
	if !runnableOn(l.goos, abs) {
		return &ProcessError{Path: abs, Err: ErrUnsupported}
	}

	cmd := l.Command(abs)
	if err := cmd.Start(); err != nil {
		return &ProcessError{Path: abs, Err: err}
	}
	l.logger.Info("script launched", "path", abs, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Warn("script exited", "path", abs, "err", err)
			return
		}
		l.logger.Debug("script exited", "path", abs)
	}()
	return nil
}
