package vfs

import (
	"github.com/withishtiaq/mini-vsfs/util"
)

// Geometry is the block layout of an image. Only the inode table and data
// region vary; the bitmaps are always one block each at blocks 1 and 2.
type Geometry struct {
	TotalBlocks      uint64
	InodeCount       uint64
	InodeTableBlocks uint64
	DataRegionStart  uint64
	DataRegionBlocks uint64
}

func ValidateParams(sizeKiB uint64, inodeCount uint64) error {
	if sizeKiB < MinSizeKiB || sizeKiB > MaxSizeKiB || sizeKiB%4 != 0 {
		return ArgumentError{"size-kib", sizeKiB, "must be between 180-4096 and multiple of 4"}
	}
	if inodeCount < MinInodeCount || inodeCount > MaxInodeCount {
		return ArgumentError{"inodes", inodeCount, "must be between 128-512"}
	}

	return nil
}

func NewGeometry(sizeKiB uint64, inodeCount uint64) (Geometry, error) {
	err := ValidateParams(sizeKiB, inodeCount)
	if err != nil {
		return Geometry{}, err
	}

	totalBlocks := sizeKiB * 1024 / BlockSize
	inodeTableBlocks := util.RoundUp(inodeCount*InodeSize, BlockSize)
	dataRegionStart := uint64(InodeTableStart) + inodeTableBlocks

	if dataRegionStart >= totalBlocks {
		return Geometry{}, GeometryError{totalBlocks, dataRegionStart}
	}

	return Geometry{
		TotalBlocks:      totalBlocks,
		InodeCount:       inodeCount,
		InodeTableBlocks: inodeTableBlocks,
		DataRegionStart:  dataRegionStart,
		DataRegionBlocks: totalBlocks - dataRegionStart,
	}, nil
}

// GeometryFromSuperblock validates a decoded superblock and returns the
// layout it describes.
func GeometryFromSuperblock(sb Superblock) (Geometry, error) {
	if sb.Magic != Magic {
		return Geometry{}, FormatError{"bad magic"}
	}
	if sb.BlockSize != BlockSize {
		return Geometry{}, FormatError{"unsupported block size"}
	}
	if sb.InodeBitmapStart != uint64(InodeBitmapStart) || sb.InodeBitmapBlocks != InodeBitmapBlocks ||
		sb.DataBitmapStart != uint64(DataBitmapStart) || sb.DataBitmapBlocks != DataBitmapBlocks ||
		sb.InodeTableStart != uint64(InodeTableStart) {
		return Geometry{}, FormatError{"unexpected region placement"}
	}
	if sb.InodeCount == 0 || sb.InodeCount > BlockSize*8 ||
		sb.InodeTableBlocks != util.RoundUp(sb.InodeCount*InodeSize, BlockSize) {
		return Geometry{}, FormatError{"inode table does not match inode count"}
	}
	if sb.DataRegionStart != uint64(InodeTableStart)+sb.InodeTableBlocks ||
		sb.DataRegionStart >= sb.TotalBlocks ||
		sb.DataRegionBlocks != sb.TotalBlocks-sb.DataRegionStart ||
		sb.DataRegionBlocks > BlockSize*8 {
		return Geometry{}, FormatError{"data region does not match total blocks"}
	}
	if sb.RootInode != uint64(RootInodePtr) {
		return Geometry{}, FormatError{"unexpected root inode"}
	}

	return Geometry{
		TotalBlocks:      sb.TotalBlocks,
		InodeCount:       sb.InodeCount,
		InodeTableBlocks: sb.InodeTableBlocks,
		DataRegionStart:  sb.DataRegionStart,
		DataRegionBlocks: sb.DataRegionBlocks,
	}, nil
}

func (g Geometry) SizeKiB() uint64 {
	return g.TotalBlocks * BlockSize / 1024
}

// NewSuperblock fills a superblock for g. The checksum is left zero.
func (g Geometry) NewSuperblock(mtime uint64) Superblock {
	return Superblock{
		Magic:             Magic,
		Version:           Version,
		BlockSize:         BlockSize,
		TotalBlocks:       g.TotalBlocks,
		InodeCount:        g.InodeCount,
		InodeBitmapStart:  uint64(InodeBitmapStart),
		InodeBitmapBlocks: InodeBitmapBlocks,
		DataBitmapStart:   uint64(DataBitmapStart),
		DataBitmapBlocks:  DataBitmapBlocks,
		InodeTableStart:   uint64(InodeTableStart),
		InodeTableBlocks:  g.InodeTableBlocks,
		DataRegionStart:   g.DataRegionStart,
		DataRegionBlocks:  g.DataRegionBlocks,
		RootInode:         uint64(RootInodePtr),
		MtimeEpoch:        mtime,
		Flags:             0,
	}
}
