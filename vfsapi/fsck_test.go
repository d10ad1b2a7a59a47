package vfsapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withishtiaq/mini-vsfs/vfs"
)

func requireInconsistent(t *testing.T, fs *vfs.Filesystem, problem string) {
	err := FsCheck(fs)
	require.Error(t, err)
	require.IsType(t, Inconsistency{}, err)
	assert.Contains(t, err.(Inconsistency).Problem, problem)
}

func TestFsCheckConsistent(t *testing.T) {
	fs := prepareFS(t)
	assert.NoError(t, FsCheck(fs))

	addFile(t, fs, "a", 5000)
	addFile(t, fs, "b", 0)
	addFile(t, fs, "c", vfs.MaxFileSize)
	assert.NoError(t, FsCheck(fs))

	reloaded, err := vfs.LoadFilesystem(fs.Volume)
	require.NoError(t, err)
	assert.NoError(t, FsCheck(reloaded))
}

func TestFsCheckSuperblock(t *testing.T) {
	fs := prepareFS(t)
	fs.Superblock.MtimeEpoch++
	requireInconsistent(t, fs, "superblock checksum")
}

func TestFsCheckInodeBitmap(t *testing.T) {
	fs := prepareFS(t)
	addFile(t, fs, "a", 10)

	require.NoError(t, fs.InodeBitmap.SetBit(5, 1))
	requireInconsistent(t, fs, "inode 6 is marked used but not referenced")

	require.NoError(t, fs.InodeBitmap.SetBit(5, 0))
	require.NoError(t, fs.InodeBitmap.SetBit(1, 0))
	requireInconsistent(t, fs, "inode 2 is referenced but marked free")

	require.NoError(t, fs.InodeBitmap.SetBit(1, 1))
	require.NoError(t, fs.InodeBitmap.SetBit(fs.Superblock.InodeCount, 1))
	requireInconsistent(t, fs, "past the inode count")
}

func TestFsCheckDataBitmap(t *testing.T) {
	fs := prepareFS(t)
	addFile(t, fs, "a", 10)

	require.NoError(t, fs.DataBitmap.SetBit(1, 0))
	requireInconsistent(t, fs, "marked free")

	require.NoError(t, fs.DataBitmap.SetBit(1, 1))
	require.NoError(t, fs.DataBitmap.SetBit(10, 1))
	requireInconsistent(t, fs, "data bitmap marks 3 blocks used, inodes reference 2")
}

func TestFsCheckInodeChecksum(t *testing.T) {
	fs := prepareFS(t)
	ins := addFile(t, fs, "a", 10)

	blockPtr, offset := vfs.InodePtrToBlock(fs.Superblock, ins.InodePtr)
	block := make([]byte, vfs.BlockSize)
	require.NoError(t, fs.Volume.ReadBlock(blockPtr, block))
	// low byte of the size field at offset 12
	block[offset+12] ^= 0xff
	require.NoError(t, fs.Volume.WriteBlock(blockPtr, block))

	requireInconsistent(t, fs, "inode 2 checksum mismatch")
}

func TestFsCheckRootDirectory(t *testing.T) {
	fs := prepareFS(t)
	addFile(t, fs, "a", 10)

	fs.RootDirectory[2].Checksum ^= 1
	requireInconsistent(t, fs, "directory entry 2 checksum mismatch")
	fs.RootDirectory[2].Finalize()

	fs.RootDirectory[5] = vfs.NewDirectoryEntry("stray", 2, vfs.DirectoryEntryFileType)
	requireInconsistent(t, fs, "after a free slot")
	fs.RootDirectory[5] = vfs.DirectoryEntry{}

	fs.RootInode.Links = 5
	fs.RootInode.Finalize()
	requireInconsistent(t, fs, "root link count 5, expected 3")

	fs.RootInode.Links = 3
	fs.RootInode.Size = 64
	fs.RootInode.Finalize()
	requireInconsistent(t, fs, "root size 64, expected 192")
}

func TestFsCheckSuperblockTail(t *testing.T) {
	fs := prepareFS(t)
	fs.SuperblockBlock[500] = 1
	requireInconsistent(t, fs, "superblock checksum")

	fs.SuperblockBlock = fs.Superblock.FinalizeOnto(fs.SuperblockBlock)
	assert.NoError(t, FsCheck(fs))
}
