package vfs

import (
	"github.com/withishtiaq/mini-vsfs/util"
)

// Insertion is the set of resources reserved for one new file. Planning
// never touches the bitmaps; Commit applies it.
type Insertion struct {
	Name     string
	Size     uint64
	InodePtr InodePtr
	Clusters []ClusterPtr
	Slot     DEPtr
}

func (ins Insertion) BlocksNeeded() uint64 {
	return uint64(len(ins.Clusters))
}

// PlanInsert reserves an inode, data blocks, and a root directory slot for
// a file of size bytes called name.
func (fs *Filesystem) PlanInsert(name string, size uint64) (Insertion, error) {
	if name == "" || name == "." || name == ".." {
		return Insertion{}, ArgumentError{"file name", name, "not usable as a directory entry"}
	}

	blocksNeeded := util.RoundUp(size, BlockSize)
	if blocksNeeded > DirectPtrCount {
		return Insertion{}, ResourceExhausted{"direct block pointers", blocksNeeded, DirectPtrCount}
	}

	inodeIndex, ok := fs.InodeBitmap.FindFirstFree(fs.Superblock.InodeCount)
	if !ok {
		return Insertion{}, ResourceExhausted{"free inodes", 1, 0}
	}

	free := fs.DataBitmap.FindFree(fs.Superblock.DataRegionBlocks, blocksNeeded)
	if uint64(len(free)) < blocksNeeded {
		return Insertion{}, ResourceExhausted{"free data blocks", blocksNeeded, uint64(len(free))}
	}

	slot, ok := fs.RootDirectory.FreeSlot()
	if !ok {
		return Insertion{}, ResourceExhausted{"root directory slots", 1, 0}
	}

	clusters := make([]ClusterPtr, len(free))
	for i, index := range free {
		clusters[i] = ClusterPtr(index)
	}

	ins := Insertion{
		Name:     name,
		Size:     size,
		InodePtr: BitIndexToInodePtr(inodeIndex),
		Clusters: clusters,
		Slot:     slot,
	}
	util.DPrintf(1, "PlanInsert: %s inode %d clusters %v slot %d\n", name, ins.InodePtr, clusters, slot)
	return ins, nil
}
