package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when another process holds the lock past the timeout.
	ErrLockTimeout = fmt.Errorf("timeout acquiring lock")
	// ErrFilenameRequired is returned when a filename is empty.
	ErrFilenameRequired = fmt.Errorf("filename is required")
	// ErrNilLock is returned when Release is called on a nil lock.
	ErrNilLock = fmt.Errorf("nil lock handle")
)

const (
	// shortPollInterval is the interval to sleep when polling for a lock.
	shortPollInterval = 10 * time.Millisecond
)

// InstanceLock is an exclusive OS-level advisory lock that keeps a second
// server from starting against the same lock file.
type InstanceLock struct {
	FilePath string
	flock    *flock.Flock
}

// Acquire takes the exclusive lock on filename, polling until timeout.
func Acquire(filename string, timeout time.Duration) (*InstanceLock, error) {
	if filename == "" {
		return nil, ErrFilenameRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fileLock := flock.New(filename)
	locked, err := fileLock.TryLockContext(ctx, shortPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("error acquiring instance lock %s: %w", filename, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &InstanceLock{FilePath: filename, flock: fileLock}, nil
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (l *InstanceLock) Release() error {
	if l == nil || l.flock == nil {
		return ErrNilLock
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("error releasing instance lock %s: %w", l.FilePath, err)
	}
	return nil
}
