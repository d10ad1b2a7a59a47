package vfsapi

import (
	"fmt"

	"github.com/withishtiaq/mini-vsfs/vfs"
)

type Inconsistency struct {
	Problem string
}

func (i Inconsistency) Error() string {
	return "inconsistent filesystem: " + i.Problem
}

func inconsistency(format string, a ...interface{}) error {
	return Inconsistency{fmt.Sprintf(format, a...)}
}

// FsCheck verifies every checksum in the image and that the bitmaps, the
// inode table, and the root directory agree with each other.
func FsCheck(fs *vfs.Filesystem) error {
	sb := fs.Superblock
	if !fs.VerifySuperblock() {
		return inconsistency("superblock checksum mismatch")
	}

	err := checkRootDirectory(fs)
	if err != nil {
		return err
	}

	// Collect inodes reachable from the root directory
	inodePtrs := map[vfs.InodePtr]vfs.Inode{vfs.RootInodePtr: fs.RootInode}
	for _, entry := range fs.RootDirectory.Entries() {
		if _, ok := inodePtrs[entry.InodePtr]; ok {
			continue
		}

		inode, err := fs.ReadInode(entry.InodePtr)
		if err != nil {
			return err
		}
		inodePtrs[entry.InodePtr] = inode
	}

	// Check all used inodes
	for i := uint64(0); i < sb.InodeCount; i++ {
		value, err := fs.InodeBitmap.GetBit(i)
		if err != nil {
			return err
		}

		ptr := vfs.BitIndexToInodePtr(i)
		_, ok := inodePtrs[ptr]
		if value == 0 && ok {
			return inconsistency("inode %d is referenced but marked free", ptr)
		} else if value == 1 && !ok {
			return inconsistency("inode %d is marked used but not referenced", ptr)
		}
	}
	if fs.InodeBitmap.CountSet(fs.InodeBitmap.Len()) != uint64(len(inodePtrs)) {
		return inconsistency("inode bitmap has bits set past the inode count")
	}

	// Check all used data clusters
	owners := make(map[vfs.BlockPtr]vfs.InodePtr)
	for ptr, inode := range inodePtrs {
		if !inode.Verify() {
			return inconsistency("inode %d checksum mismatch", ptr)
		}
		if inode.Size > vfs.MaxFileSize {
			return inconsistency("inode %d size %d exceeds %d", ptr, inode.Size, vfs.MaxFileSize)
		}

		used := inode.UsedPtrs()
		if !inode.IsDir() && uint64(len(used))*vfs.BlockSize < inode.Size {
			return inconsistency("inode %d size %d exceeds its %d blocks", ptr, inode.Size, len(used))
		}

		for _, blockPtr := range used {
			if !fs.InDataRegion(blockPtr) {
				return inconsistency("inode %d points outside the data region at block %d", ptr, blockPtr)
			}
			if owner, ok := owners[blockPtr]; ok {
				return inconsistency("block %d is shared by inodes %d and %d", blockPtr, owner, ptr)
			}
			owners[blockPtr] = ptr

			value, err := fs.DataBitmap.GetBit(uint64(vfs.BlockPtrToClusterPtr(sb, blockPtr)))
			if err != nil {
				return err
			}
			if value != 1 {
				return inconsistency("block %d is used by inode %d but marked free", blockPtr, ptr)
			}
		}
	}

	if fs.DataBitmap.CountSet(fs.DataBitmap.Len()) != uint64(len(owners)) {
		return inconsistency("data bitmap marks %d blocks used, inodes reference %d",
			fs.DataBitmap.CountSet(fs.DataBitmap.Len()), len(owners))
	}

	return nil
}

func checkRootDirectory(fs *vfs.Filesystem) error {
	root := fs.RootInode
	if !root.IsDir() {
		return inconsistency("root inode is not a directory")
	}

	entries := fs.RootDirectory.Entries()
	if len(entries) < 2 || entries[0].NameString() != "." || entries[1].NameString() != ".." {
		return inconsistency("root directory does not start with . and ..")
	}

	for i, entry := range fs.RootDirectory {
		if i >= len(entries) {
			if !entry.IsFree() {
				return inconsistency("root directory has an entry after a free slot at %d", i)
			}
			continue
		}

		if !entry.Verify() {
			return inconsistency("directory entry %d checksum mismatch", i)
		}
		if uint64(entry.InodePtr) > fs.Superblock.InodeCount {
			return inconsistency("directory entry %d points past the inode table", i)
		}
	}

	files := uint64(len(entries) - 2)
	if uint64(root.Links) != 2+files {
		return inconsistency("root link count %d, expected %d", root.Links, 2+files)
	}
	if root.Size != uint64(len(entries))*vfs.DirectoryEntrySize {
		return inconsistency("root size %d, expected %d", root.Size, uint64(len(entries))*vfs.DirectoryEntrySize)
	}

	return nil
}
