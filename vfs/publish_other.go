//go:build !linux

package vfs

func publish(tmp string, dst string) error {
	return linkPublish(tmp, dst)
}
