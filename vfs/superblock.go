package vfs

import (
	"github.com/tchajed/marshal"
)

type Superblock struct {
	Magic             uint32
	Version           uint32
	BlockSize         uint32
	TotalBlocks       uint64
	InodeCount        uint64
	InodeBitmapStart  uint64
	InodeBitmapBlocks uint64
	DataBitmapStart   uint64
	DataBitmapBlocks  uint64
	InodeTableStart   uint64
	InodeTableBlocks  uint64
	DataRegionStart   uint64
	DataRegionBlocks  uint64
	RootInode         uint64
	MtimeEpoch        uint64
	Flags             uint32

	// Checksum must stay the last field.
	Checksum uint32
}

// superblockChecksumSpan is how much of block 0 the checksum covers.
const superblockChecksumSpan = BlockSize - 4

// Encode returns the superblock as a full, zero-padded block 0.
func (sb Superblock) Encode() []byte {
	enc := marshal.NewEnc(SuperblockSize)
	enc.PutInt32(sb.Magic)
	enc.PutInt32(sb.Version)
	enc.PutInt32(sb.BlockSize)
	enc.PutInt(sb.TotalBlocks)
	enc.PutInt(sb.InodeCount)
	enc.PutInt(sb.InodeBitmapStart)
	enc.PutInt(sb.InodeBitmapBlocks)
	enc.PutInt(sb.DataBitmapStart)
	enc.PutInt(sb.DataBitmapBlocks)
	enc.PutInt(sb.InodeTableStart)
	enc.PutInt(sb.InodeTableBlocks)
	enc.PutInt(sb.DataRegionStart)
	enc.PutInt(sb.DataRegionBlocks)
	enc.PutInt(sb.RootInode)
	enc.PutInt(sb.MtimeEpoch)
	enc.PutInt32(sb.Flags)
	enc.PutInt32(sb.Checksum)

	block := make([]byte, BlockSize)
	copy(block, enc.Finish())
	return block
}

func DecodeSuperblock(data []byte) (Superblock, error) {
	if len(data) < SuperblockSize {
		return Superblock{}, FormatError{"truncated superblock"}
	}

	dec := marshal.NewDec(data[:SuperblockSize])
	return Superblock{
		Magic:             dec.GetInt32(),
		Version:           dec.GetInt32(),
		BlockSize:         dec.GetInt32(),
		TotalBlocks:       dec.GetInt(),
		InodeCount:        dec.GetInt(),
		InodeBitmapStart:  dec.GetInt(),
		InodeBitmapBlocks: dec.GetInt(),
		DataBitmapStart:   dec.GetInt(),
		DataBitmapBlocks:  dec.GetInt(),
		InodeTableStart:   dec.GetInt(),
		InodeTableBlocks:  dec.GetInt(),
		DataRegionStart:   dec.GetInt(),
		DataRegionBlocks:  dec.GetInt(),
		RootInode:         dec.GetInt(),
		MtimeEpoch:        dec.GetInt(),
		Flags:             dec.GetInt32(),
		Checksum:          dec.GetInt32(),
	}, nil
}

// EncodeOnto returns a copy of block with its first SuperblockSize bytes
// replaced by the encoded superblock. The rest of block is kept.
func (sb Superblock) EncodeOnto(block []byte) []byte {
	out := make([]byte, BlockSize)
	copy(out, block)
	copy(out, sb.Encode()[:SuperblockSize])
	return out
}

// ComputeChecksum is the CRC-32 of a zero-tailed block 0 with the checksum
// field zeroed.
func (sb Superblock) ComputeChecksum() uint32 {
	return sb.ComputeChecksumOnto(nil)
}

// ComputeChecksumOnto is ComputeChecksum for the block 0 that EncodeOnto
// would produce from block.
func (sb Superblock) ComputeChecksumOnto(block []byte) uint32 {
	sb.Checksum = 0
	return Crc32(sb.EncodeOnto(block)[:superblockChecksumSpan])
}

// Finalize stamps the checksum. Call it after every other field is set.
func (sb *Superblock) Finalize() uint32 {
	sb.Checksum = sb.ComputeChecksum()
	return sb.Checksum
}

// FinalizeOnto stamps the checksum over block and returns the new block 0.
func (sb *Superblock) FinalizeOnto(block []byte) []byte {
	sb.Checksum = sb.ComputeChecksumOnto(block)
	return sb.EncodeOnto(block)
}

func (sb Superblock) Verify() bool {
	return sb.VerifyOnto(nil)
}

func (sb Superblock) VerifyOnto(block []byte) bool {
	return sb.Checksum == sb.ComputeChecksumOnto(block)
}
