package vfs

import (
	"github.com/tchajed/marshal"
)

// inodeChecksumSpan is the prefix of an encoded inode covered by its CRC.
const inodeChecksumSpan = InodeSize - 8

type Inode struct {
	Mode       uint16
	Links      uint16
	Uid        uint32
	Gid        uint32
	Size       uint64
	Atime      uint64
	Mtime      uint64
	Ctime      uint64
	Direct     [DirectPtrCount]uint32
	Reserved   [3]uint32
	ProjID     uint32
	Uid16Gid16 uint32
	XattrPtr   uint64

	// Crc holds a CRC-32 in its low 32 bits; it must stay the last field.
	Crc uint64
}

func NewInode(mode uint16, links uint16, size uint64, now uint64) Inode {
	return Inode{
		Mode:   mode,
		Links:  links,
		Size:   size,
		Atime:  now,
		Mtime:  now,
		Ctime:  now,
		ProjID: DefaultProjectID,
	}
}

func (i Inode) Encode() []byte {
	enc := marshal.NewEnc(InodeSize)
	// mode and links are adjacent little-endian uint16s
	enc.PutInt32(uint32(i.Mode) | uint32(i.Links)<<16)
	enc.PutInt32(i.Uid)
	enc.PutInt32(i.Gid)
	enc.PutInt(i.Size)
	enc.PutInt(i.Atime)
	enc.PutInt(i.Mtime)
	enc.PutInt(i.Ctime)
	for _, ptr := range i.Direct {
		enc.PutInt32(ptr)
	}
	for _, r := range i.Reserved {
		enc.PutInt32(r)
	}
	enc.PutInt32(i.ProjID)
	enc.PutInt32(i.Uid16Gid16)
	enc.PutInt(i.XattrPtr)
	enc.PutInt(i.Crc)
	return enc.Finish()
}

func DecodeInode(data []byte) (Inode, error) {
	if len(data) < InodeSize {
		return Inode{}, FormatError{"truncated inode"}
	}

	var i Inode
	dec := marshal.NewDec(data[:InodeSize])
	modeLinks := dec.GetInt32()
	i.Mode = uint16(modeLinks)
	i.Links = uint16(modeLinks >> 16)
	i.Uid = dec.GetInt32()
	i.Gid = dec.GetInt32()
	i.Size = dec.GetInt()
	i.Atime = dec.GetInt()
	i.Mtime = dec.GetInt()
	i.Ctime = dec.GetInt()
	for k := range i.Direct {
		i.Direct[k] = dec.GetInt32()
	}
	for k := range i.Reserved {
		i.Reserved[k] = dec.GetInt32()
	}
	i.ProjID = dec.GetInt32()
	i.Uid16Gid16 = dec.GetInt32()
	i.XattrPtr = dec.GetInt()
	i.Crc = dec.GetInt()
	return i, nil
}

func (i Inode) ComputeChecksum() uint32 {
	i.Crc = 0
	return Crc32(i.Encode()[:inodeChecksumSpan])
}

// Finalize stamps the CRC. Call it after every other field is set.
func (i *Inode) Finalize() uint32 {
	c := i.ComputeChecksum()
	i.Crc = uint64(c)
	return c
}

func (i Inode) Verify() bool {
	return i.Crc == uint64(i.ComputeChecksum())
}

func (i Inode) IsDir() bool {
	return i.Mode&0170000 == InodeModeDirectory
}

func (i Inode) IsRegular() bool {
	return i.Mode&0170000 == InodeModeRegular
}

// UsedPtrs returns the non-zero direct pointers in order.
func (i Inode) UsedPtrs() []BlockPtr {
	ptrs := make([]BlockPtr, 0, DirectPtrCount)
	for _, ptr := range i.Direct {
		if ptr != 0 {
			ptrs = append(ptrs, BlockPtr(ptr))
		}
	}
	return ptrs
}
