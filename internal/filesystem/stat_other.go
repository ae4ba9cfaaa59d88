//go:build !linux

package filesystem

func statPath(path string) (*attrs, error) {
	return statPortable(path)
}
