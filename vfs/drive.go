package vfs

import (
	"fmt"

	"github.com/tchajed/goose/machine/disk"
)

// DiskVolume adapts a goose disk to Volume. goose disks panic on I/O
// failure; those panics are returned as IOError.
type DiskVolume struct {
	name string
	disk disk.Disk
}

var _ Volume = (*DiskVolume)(nil)

func NewDiskVolume(name string, d disk.Disk) *DiskVolume {
	return &DiskVolume{name: name, disk: d}
}

// NewMemVolume returns an in-memory volume of the given number of blocks.
func NewMemVolume(blocks uint64) *DiskVolume {
	return NewDiskVolume("mem", disk.NewMemDisk(blocks))
}

// NewFileDiskVolume opens (creating if needed) a file-backed goose disk
// sized to exactly blocks blocks.
func NewFileDiskVolume(path string, blocks uint64) (*DiskVolume, error) {
	d, err := disk.NewFileDisk(path, blocks)
	if err != nil {
		return nil, IOError{"open disk", path, err}
	}

	return NewDiskVolume(path, d), nil
}

func recoverIOError(op string, name string, err *error) {
	if r := recover(); r != nil {
		*err = IOError{op, name, fmt.Errorf("%v", r)}
	}
}

func (dv *DiskVolume) checkRange(op string, ptr BlockPtr, data []byte) error {
	if len(data) != BlockSize {
		return IOError{op, dv.name, fmt.Errorf("buffer of %d bytes", len(data))}
	}
	if uint64(ptr) >= dv.disk.Size() {
		return IOError{op, dv.name, OutOfRange{uint64(ptr), dv.disk.Size() - 1}}
	}

	return nil
}

func (dv *DiskVolume) ReadBlock(ptr BlockPtr, data []byte) (err error) {
	defer recoverIOError("read block", dv.name, &err)
	if err := dv.checkRange("read block", ptr, data); err != nil {
		return err
	}

	dv.disk.ReadTo(uint64(ptr), data)
	return nil
}

func (dv *DiskVolume) WriteBlock(ptr BlockPtr, data []byte) (err error) {
	defer recoverIOError("write block", dv.name, &err)
	if err := dv.checkRange("write block", ptr, data); err != nil {
		return err
	}

	blk := make(disk.Block, disk.BlockSize)
	copy(blk, data)
	dv.disk.Write(uint64(ptr), blk)
	return nil
}

func (dv *DiskVolume) Size() (uint64, error) {
	return dv.disk.Size(), nil
}

func (dv *DiskVolume) Sync() (err error) {
	defer recoverIOError("sync", dv.name, &err)
	dv.disk.Barrier()
	return nil
}

func (dv *DiskVolume) Close() (err error) {
	defer recoverIOError("close", dv.name, &err)
	dv.disk.Close()
	return nil
}
