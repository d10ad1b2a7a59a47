package vfs

import (
	"errors"
	"io"
	"os"
)

type VolumePtr int64   // byte offset within the image
type BlockPtr uint64   // absolute block number
type ClusterPtr uint32 // index into the data region
type InodePtr uint32   // inode number, 1-based

// Volume is a block device holding a MiniVSFS image. Every transfer is
// exactly one block.
type Volume interface {
	ReadBlock(ptr BlockPtr, data []byte) error
	WriteBlock(ptr BlockPtr, data []byte) error
	// Size reports the volume length in whole blocks.
	Size() (uint64, error)
	Sync() error
	Close() error
}

type FileVolume struct {
	file *os.File
}

var _ Volume = (*FileVolume)(nil)

// PrepareVolumeFile creates (or truncates) the image file at path.
func PrepareVolumeFile(path string) (*FileVolume, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, IOError{"create image", path, err}
	}

	return &FileVolume{file: f}, nil
}

func NewVolume(path string) (*FileVolume, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, IOError{"open image", path, err}
	}

	return &FileVolume{file: f}, nil
}

func NewReadOnlyVolume(path string) (*FileVolume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, IOError{"open image", path, err}
	}

	return &FileVolume{file: f}, nil
}

// Mode returns the permission bits of the image file, 0644 if they
// cannot be read.
func (v *FileVolume) Mode() os.FileMode {
	stat, err := v.file.Stat()
	if err != nil {
		return 0644
	}

	return stat.Mode().Perm()
}

func (v *FileVolume) ReadBlock(ptr BlockPtr, data []byte) error {
	if len(data) != BlockSize {
		return IOError{"read block", v.file.Name(), io.ErrShortBuffer}
	}

	_, err := v.file.ReadAt(data, int64(BlockPtrToVolumePtr(ptr)))
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return IOError{"read block", v.file.Name(), err}
	}

	return nil
}

func (v *FileVolume) WriteBlock(ptr BlockPtr, data []byte) error {
	if len(data) != BlockSize {
		return IOError{"write block", v.file.Name(), io.ErrShortWrite}
	}

	_, err := v.file.WriteAt(data, int64(BlockPtrToVolumePtr(ptr)))
	if err != nil {
		return IOError{"write block", v.file.Name(), err}
	}

	return nil
}

func (v *FileVolume) Size() (uint64, error) {
	stat, err := v.file.Stat()
	if err != nil {
		return 0, IOError{"stat image", v.file.Name(), err}
	}

	return uint64(stat.Size()) / BlockSize, nil
}

func (v *FileVolume) Sync() error {
	if err := v.file.Sync(); err != nil {
		return IOError{"sync image", v.file.Name(), err}
	}

	return nil
}

func (v *FileVolume) Close() error {
	if err := v.file.Close(); err != nil {
		return IOError{"close image", v.file.Name(), err}
	}

	return nil
}

// CopyVolume copies the first blocks blocks of src to dst.
func CopyVolume(dst Volume, src Volume, blocks uint64) error {
	buf := make([]byte, BlockSize)
	for i := BlockPtr(0); uint64(i) < blocks; i++ {
		err := src.ReadBlock(i, buf)
		if err != nil {
			return err
		}

		err = dst.WriteBlock(i, buf)
		if err != nil {
			return err
		}
	}

	return nil
}
