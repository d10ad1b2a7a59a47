package vfs

import (
	"os"
)

// linkPublish makes tmp visible as dst without replacing an existing dst.
func linkPublish(tmp string, dst string) error {
	err := os.Link(tmp, dst)
	if os.IsExist(err) {
		return OutputExists{dst}
	}
	if err != nil {
		return IOError{"publish image", dst, err}
	}

	_ = os.Remove(tmp)
	return nil
}
