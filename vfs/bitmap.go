package vfs

import (
	"errors"
)

// Bitmap is an occupancy map, 1 = allocated. Bit i lives in byte i/8 at
// position i%8.
type Bitmap []byte

func NewBitmap() Bitmap {
	return make(Bitmap, BlockSize)
}

func (b Bitmap) Len() uint64 {
	return uint64(len(b)) * 8
}

func (b Bitmap) SetBit(position uint64, value byte) error {
	if value != 0 && value != 1 {
		return errors.New("value can be only 0 or 1")
	}

	posInSlice := position / 8

	if posInSlice >= uint64(len(b)) {
		return OutOfRange{position, b.Len() - 1}
	}

	posInByte := position % 8

	if value == 1 {
		b[posInSlice] |= byte(1) << posInByte
	} else {
		b[posInSlice] &= ^(byte(1) << posInByte)
	}

	return nil
}

func (b Bitmap) GetBit(position uint64) (byte, error) {
	posInSlice := position / 8
	posInByte := position % 8

	if posInSlice >= uint64(len(b)) {
		return 0, OutOfRange{position, b.Len() - 1}
	}

	return (b[posInSlice] >> posInByte) & 1, nil
}

// FindFirstFree returns the lowest clear bit in [0, limit).
func (b Bitmap) FindFirstFree(limit uint64) (uint64, bool) {
	free := b.FindFree(limit, 1)
	if len(free) == 0 {
		return 0, false
	}
	return free[0], true
}

// FindFree returns up to n clear bits in [0, limit), lowest first. It
// never modifies the bitmap.
func (b Bitmap) FindFree(limit uint64, n uint64) []uint64 {
	if limit > b.Len() {
		limit = b.Len()
	}

	found := make([]uint64, 0, n)
	for i := uint64(0); i < limit && uint64(len(found)) < n; i++ {
		if b[i/8]&(byte(1)<<(i%8)) == 0 {
			found = append(found, i)
		}
	}

	return found
}

// CountSet counts set bits in [0, limit).
func (b Bitmap) CountSet(limit uint64) uint64 {
	if limit > b.Len() {
		limit = b.Len()
	}

	var n uint64
	for i := uint64(0); i < limit; i++ {
		if b[i/8]&(byte(1)<<(i%8)) != 0 {
			n++
		}
	}
	return n
}
