//go:build darwin

package sink

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync uses fsync; macOS has no fdatasync.
func fdatasync(f *os.File) error {
	return unix.Fsync(int(f.Fd())) //nolint:gosec
}
