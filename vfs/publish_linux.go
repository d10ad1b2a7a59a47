package vfs

import (
	"errors"

	"golang.org/x/sys/unix"
)

func publish(tmp string, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, tmp, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST):
		return OutputExists{dst}
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS):
		// filesystem without RENAME_NOREPLACE
		return linkPublish(tmp, dst)
	default:
		return IOError{"publish image", dst, err}
	}
}
