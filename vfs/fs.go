package vfs

import (
	"github.com/withishtiaq/mini-vsfs/util"
)

// Filesystem is the in-memory view of an image: its superblock, both
// bitmaps, and the root directory.
type Filesystem struct {
	Volume        Volume
	Superblock    Superblock
	Geometry      Geometry
	InodeBitmap   Bitmap
	DataBitmap    Bitmap
	RootInode     Inode
	RootDirectory DirectoryBlock
	RootDirBlock  BlockPtr

	// SuperblockBlock is block 0 as last read or written. Bytes past
	// SuperblockSize are carried over on every rewrite.
	SuperblockBlock []byte
}

// LoadFilesystem decodes the metadata of the image on volume.
func LoadFilesystem(volume Volume) (*Filesystem, error) {
	block := make([]byte, BlockSize)
	err := volume.ReadBlock(0, block)
	if err != nil {
		return nil, err
	}

	sb, err := DecodeSuperblock(block)
	if err != nil {
		return nil, err
	}

	geometry, err := GeometryFromSuperblock(sb)
	if err != nil {
		return nil, err
	}
	util.DPrintf(1, "LoadFilesystem: %d blocks, %d inodes\n", sb.TotalBlocks, sb.InodeCount)

	size, err := volume.Size()
	if err != nil {
		return nil, err
	}
	if size < sb.TotalBlocks {
		return nil, FormatError{"image shorter than its total block count"}
	}

	fs := &Filesystem{
		Volume:          volume,
		Superblock:      sb,
		Geometry:        geometry,
		InodeBitmap:     NewBitmap(),
		DataBitmap:      NewBitmap(),
		SuperblockBlock: append([]byte(nil), block...),
	}

	err = volume.ReadBlock(BlockPtr(sb.InodeBitmapStart), fs.InodeBitmap)
	if err != nil {
		return nil, err
	}

	err = volume.ReadBlock(BlockPtr(sb.DataBitmapStart), fs.DataBitmap)
	if err != nil {
		return nil, err
	}

	fs.RootInode, err = fs.ReadInode(RootInodePtr)
	if err != nil {
		return nil, err
	}

	fs.RootDirBlock = BlockPtr(fs.RootInode.Direct[0])
	if !fs.InDataRegion(fs.RootDirBlock) {
		return nil, FormatError{"root directory block outside data region"}
	}

	err = volume.ReadBlock(fs.RootDirBlock, block)
	if err != nil {
		return nil, err
	}

	fs.RootDirectory, err = DecodeDirectoryBlock(block)
	if err != nil {
		return nil, err
	}

	return fs, nil
}

// VerifySuperblock checks the superblock checksum against block 0 as
// stored, tail included.
func (fs *Filesystem) VerifySuperblock() bool {
	return fs.Superblock.VerifyOnto(fs.SuperblockBlock)
}

func (fs *Filesystem) InDataRegion(ptr BlockPtr) bool {
	return uint64(ptr) >= fs.Superblock.DataRegionStart && uint64(ptr) < fs.Superblock.TotalBlocks
}

func (fs *Filesystem) ReadInode(ptr InodePtr) (Inode, error) {
	if ptr == 0 || uint64(ptr) > fs.Superblock.InodeCount {
		return Inode{}, OutOfRange{uint64(ptr), fs.Superblock.InodeCount}
	}

	blockPtr, offset := InodePtrToBlock(fs.Superblock, ptr)
	block := make([]byte, BlockSize)
	err := fs.Volume.ReadBlock(blockPtr, block)
	if err != nil {
		return Inode{}, err
	}

	return DecodeInode(block[offset:])
}

// ReadData returns the first inode.Size bytes reachable from its direct
// pointers.
func (fs *Filesystem) ReadData(inode Inode) ([]byte, error) {
	if inode.Size > MaxFileSize {
		return nil, FormatError{"inode size exceeds direct pointer capacity"}
	}

	data := make([]byte, 0, inode.Size)
	block := make([]byte, BlockSize)
	remaining := inode.Size
	for _, ptr := range inode.Direct {
		if remaining == 0 {
			break
		}
		if !fs.InDataRegion(BlockPtr(ptr)) {
			return nil, FormatError{"direct pointer outside data region"}
		}

		err := fs.Volume.ReadBlock(BlockPtr(ptr), block)
		if err != nil {
			return nil, err
		}

		n := util.Min(remaining, BlockSize)
		data = append(data, block[:n]...)
		remaining -= n
	}

	if remaining != 0 {
		return nil, FormatError{"inode size exceeds allocated blocks"}
	}

	return data, nil
}
