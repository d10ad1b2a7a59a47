package vfs

import (
	"bytes"

	"github.com/tchajed/marshal"
)

type DEPtr int

const DirectoryEntryNameLength = 58

// Names keep one byte for the terminator.
const MaxNameLength = DirectoryEntryNameLength - 1

const (
	DirectoryEntryFileType byte = 1
	DirectoryEntryDirType  byte = 2
)

type DirectoryEntry struct {
	InodePtr InodePtr
	Type     byte
	Name     [DirectoryEntryNameLength]byte
	Checksum byte
}

func NewDirectoryEntry(name string, inodePtr InodePtr, entryType byte) DirectoryEntry {
	de := DirectoryEntry{
		InodePtr: inodePtr,
		Type:     entryType,
		Name:     StringNameToBytes(name),
	}
	de.Finalize()
	return de
}

// StringNameToBytes truncates name to MaxNameLength bytes and NUL-pads it.
func StringNameToBytes(name string) [DirectoryEntryNameLength]byte {
	var nameBytes [DirectoryEntryNameLength]byte
	copy(nameBytes[:MaxNameLength], name)
	return nameBytes
}

func (de DirectoryEntry) NameString() string {
	return CToGoString(de.Name[:])
}

func (de DirectoryEntry) IsFree() bool {
	return de.InodePtr == 0
}

func (de DirectoryEntry) Encode() []byte {
	enc := marshal.NewEnc(DirectoryEntrySize)
	enc.PutInt32(uint32(de.InodePtr))
	enc.PutBytes([]byte{de.Type})
	enc.PutBytes(de.Name[:])
	enc.PutBytes([]byte{de.Checksum})
	return enc.Finish()
}

func DecodeDirectoryEntry(data []byte) (DirectoryEntry, error) {
	if len(data) < DirectoryEntrySize {
		return DirectoryEntry{}, FormatError{"truncated directory entry"}
	}

	var de DirectoryEntry
	dec := marshal.NewDec(data[:DirectoryEntrySize])
	de.InodePtr = InodePtr(dec.GetInt32())
	de.Type = dec.GetBytes(1)[0]
	copy(de.Name[:], dec.GetBytes(DirectoryEntryNameLength))
	de.Checksum = dec.GetBytes(1)[0]
	return de, nil
}

func (de DirectoryEntry) ComputeChecksum() byte {
	de.Checksum = 0
	return DirectoryEntryParity(de.Encode())
}

// Finalize stamps the parity byte. Call it after every other field is set.
func (de *DirectoryEntry) Finalize() byte {
	de.Checksum = de.ComputeChecksum()
	return de.Checksum
}

func (de DirectoryEntry) Verify() bool {
	return de.Checksum == de.ComputeChecksum()
}

// DirectoryBlock is the single data block of the root directory. Used
// entries form a packed prefix; the first free slot ends it.
type DirectoryBlock [DirectoryEntriesPerBlock]DirectoryEntry

func NewRootDirectoryBlock() DirectoryBlock {
	var block DirectoryBlock
	block[0] = NewDirectoryEntry(".", RootInodePtr, DirectoryEntryDirType)
	block[1] = NewDirectoryEntry("..", RootInodePtr, DirectoryEntryDirType)
	return block
}

func (d DirectoryBlock) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(BlockSize)
	for _, de := range d {
		buf.Write(de.Encode())
	}
	return buf.Bytes()
}

func DecodeDirectoryBlock(data []byte) (DirectoryBlock, error) {
	var d DirectoryBlock
	if len(data) < BlockSize {
		return d, FormatError{"truncated directory block"}
	}

	for i := range d {
		de, err := DecodeDirectoryEntry(data[i*DirectoryEntrySize:])
		if err != nil {
			return d, err
		}
		d[i] = de
	}

	return d, nil
}

// FreeSlot returns the first empty slot, or false if the block is full.
func (d DirectoryBlock) FreeSlot() (DEPtr, bool) {
	for i, de := range d {
		if de.IsFree() {
			return DEPtr(i), true
		}
	}

	return 0, false
}

// Entries returns the used prefix.
func (d DirectoryBlock) Entries() []DirectoryEntry {
	slot, ok := d.FreeSlot()
	if !ok {
		return d[:]
	}
	return d[:slot]
}

func (d DirectoryBlock) FindByName(name string) (DEPtr, DirectoryEntry, error) {
	nameBytes := StringNameToBytes(name)
	for i, de := range d.Entries() {
		if de.NameString() == CToGoString(nameBytes[:]) {
			return DEPtr(i), de, nil
		}
	}

	return 0, DirectoryEntry{}, DirectoryEntryNotFound{name}
}
