package lock

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLockTimeout = 100 * time.Millisecond

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.lock")

	l, err := Acquire(path, testLockTimeout)
	require.NoError(t, err)
	assert.Equal(t, path, l.FilePath)
	require.NoError(t, l.Release())

	again, err := Acquire(path, testLockTimeout)
	require.NoError(t, err, "lock can be retaken after release")
	require.NoError(t, again.Release())
}

func TestAcquire_HeldElsewhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.lock")

	held, err := Acquire(path, testLockTimeout)
	require.NoError(t, err)
	defer held.Release()

	start := time.Now()
	_, err = Acquire(path, testLockTimeout)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), testLockTimeout/2)
}

func TestAcquire_EmptyFilename(t *testing.T) {
	_, err := Acquire("", testLockTimeout)
	assert.ErrorIs(t, err, ErrFilenameRequired)
}

func TestAcquire_BadDirectory(t *testing.T) {
	_, err := Acquire(filepath.Join(t.TempDir(), "missing", "server.lock"), testLockTimeout)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockTimeout)
}

func TestRelease_Nil(t *testing.T) {
	var l *InstanceLock
	assert.ErrorIs(t, l.Release(), ErrNilLock)
}
