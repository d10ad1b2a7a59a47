package vfs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/withishtiaq/mini-vsfs/util"
)

// Commit writes ins to dst, which must already hold a copy of the image,
// reading exactly ins.Size bytes of content from data. The in-memory
// structures of fs are updated to match.
func (fs *Filesystem) Commit(dst Volume, ins Insertion, data io.Reader, opts ...Option) error {
	o := newOptions(opts)
	now := o.epoch()
	sb := &fs.Superblock

	// Bitmaps
	err := fs.InodeBitmap.SetBit(InodePtrToBitIndex(ins.InodePtr), 1)
	if err != nil {
		return err
	}
	err = dst.WriteBlock(BlockPtr(sb.InodeBitmapStart), fs.InodeBitmap)
	if err != nil {
		return err
	}

	for _, cluster := range ins.Clusters {
		err = fs.DataBitmap.SetBit(uint64(cluster), 1)
		if err != nil {
			return err
		}
	}
	err = dst.WriteBlock(BlockPtr(sb.DataBitmapStart), fs.DataBitmap)
	if err != nil {
		return err
	}

	// New inode, then the root inode it is linked from
	inode := NewInode(InodeModeRegular, 1, ins.Size, now)
	for i, cluster := range ins.Clusters {
		inode.Direct[i] = uint32(ClusterPtrToBlockPtr(*sb, cluster))
	}
	inode.Finalize()

	fs.RootInode.Links++
	fs.RootInode.Size += DirectoryEntrySize
	fs.RootInode.Mtime = now
	fs.RootInode.Finalize()

	err = fs.writeInodes(dst, map[InodePtr]Inode{
		ins.InodePtr: inode,
		RootInodePtr: fs.RootInode,
	}, []InodePtr{ins.InodePtr, RootInodePtr})
	if err != nil {
		return err
	}

	// Directory entry
	fs.RootDirectory[ins.Slot] = NewDirectoryEntry(ins.Name, ins.InodePtr, DirectoryEntryFileType)
	err = dst.WriteBlock(fs.RootDirBlock, fs.RootDirectory.Encode())
	if err != nil {
		return err
	}

	// Content, zero-padding the last block
	block := make([]byte, BlockSize)
	remaining := ins.Size
	for _, cluster := range ins.Clusters {
		for i := range block {
			block[i] = 0
		}

		n := util.Min(remaining, BlockSize)
		_, err = io.ReadFull(data, block[:n])
		if err != nil {
			return IOError{"read file data", ins.Name, err}
		}
		remaining -= n

		err = dst.WriteBlock(ClusterPtrToBlockPtr(*sb, cluster), block)
		if err != nil {
			return err
		}
	}

	sb.MtimeEpoch = now
	block0 := sb.FinalizeOnto(fs.SuperblockBlock)
	err = dst.WriteBlock(0, block0)
	if err != nil {
		return err
	}
	fs.SuperblockBlock = block0

	util.DPrintf(1, "Commit: %s as inode %d, %d blocks\n", ins.Name, ins.InodePtr, len(ins.Clusters))
	return dst.Sync()
}

// writeInodes rewrites the table blocks holding the given inodes, in the
// order of the first inode each block holds.
func (fs *Filesystem) writeInodes(dst Volume, inodes map[InodePtr]Inode, order []InodePtr) error {
	written := make(map[BlockPtr]bool)
	for _, ptr := range order {
		blockPtr, _ := InodePtrToBlock(fs.Superblock, ptr)
		if written[blockPtr] {
			continue
		}

		block := make([]byte, BlockSize)
		err := dst.ReadBlock(blockPtr, block)
		if err != nil {
			return err
		}

		for p, inode := range inodes {
			b, offset := InodePtrToBlock(fs.Superblock, p)
			if b == blockPtr {
				copy(block[offset:offset+InodeSize], inode.Encode())
			}
		}

		err = dst.WriteBlock(blockPtr, block)
		if err != nil {
			return err
		}
		written[blockPtr] = true
	}

	return nil
}

// AddFile inserts the regular file at filePath into the root directory of
// the image at inputPath, producing a new image at outputPath. The input
// image is never modified and an existing outputPath is never replaced.
// The output is staged next to outputPath and only appears once complete.
func AddFile(inputPath string, outputPath string, filePath string, opts ...Option) (Insertion, error) {
	_, err := os.Lstat(outputPath)
	if err == nil {
		return Insertion{}, OutputExists{outputPath}
	} else if !os.IsNotExist(err) {
		return Insertion{}, IOError{"stat output", outputPath, err}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return Insertion{}, IOError{"stat file", filePath, err}
	}
	if !info.Mode().IsRegular() {
		return Insertion{}, NotRegularFile{filePath}
	}

	src, err := NewReadOnlyVolume(inputPath)
	if err != nil {
		return Insertion{}, err
	}
	defer func() {
		_ = src.Close()
	}()

	fs, err := LoadFilesystem(src)
	if err != nil {
		return Insertion{}, err
	}

	ins, err := fs.PlanInsert(filepath.Base(filePath), uint64(info.Size()))
	if err != nil {
		return Insertion{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Insertion{}, IOError{"open file", filePath, err}
	}
	defer func() {
		_ = file.Close()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*")
	if err != nil {
		return Insertion{}, IOError{"create staging image", outputPath, err}
	}
	tmpPath := tmp.Name()

	// CreateTemp uses 0600; the output carries the input image's mode
	err = tmp.Chmod(src.Mode())
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return Insertion{}, IOError{"create staging image", outputPath, err}
	}

	err = stageInsert(fs, ins, file, tmpPath, opts)
	if err == nil {
		err = publish(tmpPath, outputPath)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return Insertion{}, err
	}

	return ins, nil
}

func stageInsert(fs *Filesystem, ins Insertion, data io.Reader, tmpPath string, opts []Option) error {
	staged, err := NewFileDiskVolume(tmpPath, fs.Superblock.TotalBlocks)
	if err != nil {
		return err
	}

	err = CopyVolume(staged, fs.Volume, fs.Superblock.TotalBlocks)
	if err == nil {
		err = fs.Commit(staged, ins, data, opts...)
	}
	if err != nil {
		_ = staged.Close()
		return err
	}

	return staged.Close()
}
