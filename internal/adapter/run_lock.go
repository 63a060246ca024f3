package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	m "unfold.dev/pkg/unfold/internal/model"
)

// ErrLocked is returned when another run already holds the lock for an output root.
var ErrLocked = errors.New("output directory is locked by another run")

// RunLocker serializes runs that target the same output root.
type RunLocker interface {
	// Acquire takes an exclusive, non-blocking lock for outputRoot. The returned
	// release function must be called once the run no longer mutates it.
	Acquire(ctx context.Context, outputRoot m.Path) (func() error, error)
}

// FlockRunLocker keeps one lock file per output root inside a lock directory,
// so the output root itself never contains lock artifacts.
type FlockRunLocker struct {
	dir string
}

// NewFlockRunLocker constructs a locker storing lock files in the OS temp dir.
func NewFlockRunLocker() *FlockRunLocker {
	return &FlockRunLocker{dir: filepath.Join(os.TempDir(), "unfold-locks")}
}

// NewFlockRunLockerIn constructs a locker storing lock files in dir.
func NewFlockRunLockerIn(dir string) *FlockRunLocker {
	return &FlockRunLocker{dir: dir}
}

// LockPath returns the lock file used for outputRoot.
func (l *FlockRunLocker) LockPath(outputRoot m.Path) string {
	sum := sha256.Sum256([]byte(filepath.Clean(string(outputRoot))))
	return filepath.Join(l.dir, fmt.Sprintf("%x.lock", sum[:12]))
}

// Acquire implements RunLocker.
func (l *FlockRunLocker) Acquire(ctx context.Context, outputRoot m.Path) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory %s: %w", l.dir, err)
	}

	lockPath := l.LockPath(outputRoot)
	fileLock := flock.New(lockPath)

	acquired, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", lockPath, err)
	}

	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, outputRoot)
	}

	return func() error {
		if err := fileLock.Unlock(); err != nil {
			return fmt.Errorf("failed to release lock on %s: %w", lockPath, err)
		}

		return nil
	}, nil
}
