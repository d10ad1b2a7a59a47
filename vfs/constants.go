package vfs

const (
	BlockSize          = 4096
	InodeSize          = 128
	SuperblockSize     = 116
	DirectoryEntrySize = 64

	Magic   uint32 = 0x4D565346
	Version uint32 = 1

	RootInodePtr InodePtr = 1

	DirectPtrCount = 12
	MaxFileSize    = DirectPtrCount * BlockSize

	InodesPerBlock           = BlockSize / InodeSize
	DirectoryEntriesPerBlock = BlockSize / DirectoryEntrySize
)

// Fixed region placement.
const (
	InodeBitmapStart  BlockPtr = 1
	InodeBitmapBlocks          = 1
	DataBitmapStart   BlockPtr = 2
	DataBitmapBlocks           = 1
	InodeTableStart   BlockPtr = 3
)

// Accepted builder parameters.
const (
	MinSizeKiB    = 180
	MaxSizeKiB    = 4096
	MinInodeCount = 128
	MaxInodeCount = 512
)

const (
	InodeModeDirectory uint16 = 0040000
	InodeModeRegular   uint16 = 0100000

	DefaultProjectID uint32 = 1
)
