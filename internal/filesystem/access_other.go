//go:build !linux

package filesystem

import "os"

type accessMode uint32

const (
	accessRead    accessMode = 0o4
	accessWrite   accessMode = 0o2
	accessExecute accessMode = 0o1
)

// canAccess falls back to the owner permission bits.
func canAccess(path string, mode accessMode) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return uint32(info.Mode().Perm()>>6)&uint32(mode) != 0
}
