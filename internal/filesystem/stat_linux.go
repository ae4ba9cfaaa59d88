//go:build linux

package filesystem

import (
	stdErrors "errors"

	"golang.org/x/sys/unix"
)

// statPath reads size, type and both timestamps with one statx(2) call.
// Birth time is left nil when the filesystem does not record it.
func statPath(path string) (*attrs, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	if stdErrors.Is(err, unix.ENOSYS) {
		return statPortable(path)
	}
	if err != nil {
		return nil, err
	}

	a := &attrs{
		size:      stx.Size,
		modTime:   utcTime(stx.Mtime.Sec, int64(stx.Mtime.Nsec)),
		isDir:     uint32(stx.Mode)&unix.S_IFMT == unix.S_IFDIR,
		isRegular: uint32(stx.Mode)&unix.S_IFMT == unix.S_IFREG,
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		a.birthTime = utcTime(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return a, nil
}
