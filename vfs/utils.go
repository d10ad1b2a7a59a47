package vfs

func BlockPtrToVolumePtr(ptr BlockPtr) VolumePtr {
	return VolumePtr(ptr) * BlockSize
}

// InodePtrToBlock returns the table block holding ptr and the slot offset
// inside it.
func InodePtrToBlock(sb Superblock, ptr InodePtr) (BlockPtr, int) {
	index := uint64(ptr - 1)
	return BlockPtr(sb.InodeTableStart + index/InodesPerBlock), int(index%InodesPerBlock) * InodeSize
}

func ClusterPtrToBlockPtr(sb Superblock, ptr ClusterPtr) BlockPtr {
	return BlockPtr(sb.DataRegionStart + uint64(ptr))
}

func BlockPtrToClusterPtr(sb Superblock, ptr BlockPtr) ClusterPtr {
	return ClusterPtr(uint64(ptr) - sb.DataRegionStart)
}

// InodePtrToBitIndex maps an inode number to its inode bitmap bit.
func InodePtrToBitIndex(ptr InodePtr) uint64 {
	return uint64(ptr) - 1
}

func BitIndexToInodePtr(index uint64) InodePtr {
	return InodePtr(index + 1)
}

func CToGoString(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}
