package fsx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

const lockRetry = 50 * time.Millisecond

// Lock is an advisory lock on a sidecar file.
type Lock struct {
	fl   *flock.Flock
	path string
}

// LockFile takes an exclusive lock on path+".lock", waiting up to timeout.
// The returned error wraps ErrLockTimeout when another holder keeps it.
func LockFile(path string, timeout time.Duration) (*Lock, error) {
	lockPath := path + ".lock"
	fl := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("failed to attempt lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s held by another process (waited %v): %w", lockPath, timeout, ErrLockTimeout)
	}
	slog.Debug("config lock acquired", "path", lockPath)
	return &Lock{fl: fl, path: lockPath}, nil
}

func (l *Lock) Unlock() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		slog.Warn("failed to release config lock", "path", l.path, "error", err)
	}
	l.fl = nil
}
