//go:build linux

package filesystem

import "golang.org/x/sys/unix"

type accessMode uint32

const (
	accessRead    accessMode = unix.R_OK
	accessWrite   accessMode = unix.W_OK
	accessExecute accessMode = unix.X_OK
)

// canAccess asks the kernel whether the effective identity may use path in mode.
func canAccess(path string, mode accessMode) bool {
	return unix.Faccessat(unix.AT_FDCWD, path, uint32(mode), unix.AT_EACCESS) == nil
}
