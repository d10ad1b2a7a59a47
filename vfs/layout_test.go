package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryAllValidParams(t *testing.T) {
	for sizeKiB := uint64(MinSizeKiB); sizeKiB <= MaxSizeKiB; sizeKiB += 4 {
		for inodes := uint64(MinInodeCount); inodes <= MaxInodeCount; inodes++ {
			g, err := NewGeometry(sizeKiB, inodes)
			if err != nil {
				t.Fatalf("%d KiB / %d inodes: %v", sizeKiB, inodes, err)
			}
			if g.DataRegionStart >= g.TotalBlocks {
				t.Fatalf("%d KiB / %d inodes: no data region", sizeKiB, inodes)
			}
			if g.InodeTableBlocks != (inodes*InodeSize+BlockSize-1)/BlockSize {
				t.Fatalf("%d KiB / %d inodes: %d inode table blocks", sizeKiB, inodes, g.InodeTableBlocks)
			}
			if g.DataRegionStart+g.DataRegionBlocks != g.TotalBlocks {
				t.Fatalf("%d KiB / %d inodes: regions do not cover the image", sizeKiB, inodes)
			}
		}
	}
}

func TestGeometry1MiB(t *testing.T) {
	g, err := NewGeometry(1024, 128)
	require.NoError(t, err)

	assert.Equal(t, Geometry{
		TotalBlocks:      256,
		InodeCount:       128,
		InodeTableBlocks: 4,
		DataRegionStart:  7,
		DataRegionBlocks: 249,
	}, g)
	assert.Equal(t, uint64(1024), g.SizeKiB())
}

func TestGeometryRejectsParams(t *testing.T) {
	for _, tc := range []struct {
		sizeKiB uint64
		inodes  uint64
	}{
		{176, 128},
		{4100, 128},
		{182, 128},
		{0, 128},
		{1024, 127},
		{1024, 513},
	} {
		_, err := NewGeometry(tc.sizeKiB, tc.inodes)
		assert.IsType(t, ArgumentError{}, err, "%d KiB / %d inodes", tc.sizeKiB, tc.inodes)
	}
}

func TestGeometryFromSuperblock(t *testing.T) {
	g, err := NewGeometry(2048, 300)
	require.NoError(t, err)

	sb := g.NewSuperblock(42)
	read, err := GeometryFromSuperblock(sb)
	require.NoError(t, err)
	assert.Equal(t, g, read)

	bad := sb
	bad.Magic = 0xDEADBEEF
	_, err = GeometryFromSuperblock(bad)
	assert.Equal(t, FormatError{"bad magic"}, err)

	bad = sb
	bad.DataRegionBlocks++
	_, err = GeometryFromSuperblock(bad)
	assert.IsType(t, FormatError{}, err)

	bad = sb
	bad.InodeTableBlocks = 1
	_, err = GeometryFromSuperblock(bad)
	assert.IsType(t, FormatError{}, err)
}

func TestPointerConversions(t *testing.T) {
	g, err := NewGeometry(1024, 128)
	require.NoError(t, err)
	sb := g.NewSuperblock(0)

	block, offset := InodePtrToBlock(sb, 33)
	assert.Equal(t, BlockPtr(4), block)
	assert.Equal(t, 0, offset)

	block, offset = InodePtrToBlock(sb, 32)
	assert.Equal(t, BlockPtr(3), block)
	assert.Equal(t, 31*InodeSize, offset)

	assert.Equal(t, BlockPtr(9), ClusterPtrToBlockPtr(sb, 2))
	assert.Equal(t, ClusterPtr(2), BlockPtrToClusterPtr(sb, 9))
}
