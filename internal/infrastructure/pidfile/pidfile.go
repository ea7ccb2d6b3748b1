package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile enforces a single running daemon instance per data directory
type PIDFile struct {
	path string
}

// New creates a PID file manager for the given path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire claims the PID file. A stale file left by a dead process is
// replaced silently; a live owner makes Acquire fail.
func (p *PIDFile) Acquire() error {
	if data, err := os.ReadFile(p.path); err == nil {
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if parseErr == nil && processAlive(pid) {
			return fmt.Errorf("simulation daemon is already running (PID %d)", pid)
		}
		_ = os.Remove(p.path)
	}

	if err := os.WriteFile(p.path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file. Missing files are not an error.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// processAlive probes a PID with signal 0. EPERM means the process
// exists but belongs to someone else, which still counts as alive.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
