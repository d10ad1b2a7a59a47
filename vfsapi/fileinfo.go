package vfsapi

import "github.com/withishtiaq/mini-vsfs/vfs"

type FileInfo struct {
	name     string
	inodePtr vfs.InodePtr
	size     uint64
	isDir    bool
	blocks   int
}

func (fi FileInfo) Name() string {
	return fi.name
}

func (fi FileInfo) InodePtr() vfs.InodePtr {
	return fi.inodePtr
}

func (fi FileInfo) Size() uint64 {
	return fi.size
}

func (fi FileInfo) IsDir() bool {
	return fi.isDir
}

func (fi FileInfo) Blocks() int {
	return fi.blocks
}
