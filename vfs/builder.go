package vfs

import (
	"os"

	"github.com/withishtiaq/mini-vsfs/util"
)

// NewFilesystem prepares the metadata of a pristine image: root inode and
// its directory block pre-allocated, everything else free.
func NewFilesystem(volume Volume, geometry Geometry, opts ...Option) *Filesystem {
	o := newOptions(opts)
	now := o.epoch()

	sb := geometry.NewSuperblock(now)
	sb.Finalize()

	inodeBitmap := NewBitmap()
	_ = inodeBitmap.SetBit(InodePtrToBitIndex(RootInodePtr), 1)

	dataBitmap := NewBitmap()
	_ = dataBitmap.SetBit(0, 1)

	rootDirBlock := ClusterPtrToBlockPtr(sb, 0)
	rootInode := NewInode(InodeModeDirectory, 2, 2*DirectoryEntrySize, now)
	rootInode.Direct[0] = uint32(rootDirBlock)
	rootInode.Finalize()

	return &Filesystem{
		Volume:        volume,
		Superblock:    sb,
		Geometry:      geometry,
		InodeBitmap:   inodeBitmap,
		DataBitmap:    dataBitmap,
		RootInode:     rootInode,
		RootDirectory: NewRootDirectoryBlock(),
		RootDirBlock:  rootDirBlock,

		SuperblockBlock: sb.Encode(),
	}
}

// WriteStructureToVolume writes every block of the image in order, so the
// result is fully materialized.
func (f *Filesystem) WriteStructureToVolume() error {
	err := f.Volume.WriteBlock(0, f.Superblock.EncodeOnto(f.SuperblockBlock))
	if err != nil {
		return err
	}

	err = f.Volume.WriteBlock(BlockPtr(f.Superblock.InodeBitmapStart), f.InodeBitmap)
	if err != nil {
		return err
	}

	err = f.Volume.WriteBlock(BlockPtr(f.Superblock.DataBitmapStart), f.DataBitmap)
	if err != nil {
		return err
	}

	zero := make([]byte, BlockSize)

	rootBlock, rootOffset := InodePtrToBlock(f.Superblock, RootInodePtr)
	for i := uint64(0); i < f.Superblock.InodeTableBlocks; i++ {
		ptr := BlockPtr(f.Superblock.InodeTableStart + i)
		block := zero
		if ptr == rootBlock {
			block = make([]byte, BlockSize)
			copy(block[rootOffset:], f.RootInode.Encode())
		}

		err = f.Volume.WriteBlock(ptr, block)
		if err != nil {
			return err
		}
	}

	for i := uint64(0); i < f.Superblock.DataRegionBlocks; i++ {
		ptr := ClusterPtrToBlockPtr(f.Superblock, ClusterPtr(i))
		block := zero
		if ptr == f.RootDirBlock {
			block = f.RootDirectory.Encode()
		}

		err = f.Volume.WriteBlock(ptr, block)
		if err != nil {
			return err
		}
	}

	util.DPrintf(1, "WriteStructureToVolume: wrote %d blocks\n", f.Superblock.TotalBlocks)
	return f.Volume.Sync()
}

// CreateImage builds a new image file at path. Parameters are validated
// before the file is touched; a failed write removes the partial file.
func CreateImage(path string, sizeKiB uint64, inodeCount uint64, opts ...Option) (Geometry, error) {
	geometry, err := NewGeometry(sizeKiB, inodeCount)
	if err != nil {
		return Geometry{}, err
	}

	volume, err := PrepareVolumeFile(path)
	if err != nil {
		return Geometry{}, err
	}

	fs := NewFilesystem(volume, geometry, opts...)
	err = fs.WriteStructureToVolume()
	if err == nil {
		err = volume.Close()
	} else {
		_ = volume.Close()
	}
	if err != nil {
		_ = os.Remove(path)
		return Geometry{}, err
	}

	return geometry, nil
}
