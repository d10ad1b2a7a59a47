package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetBit(t *testing.T) {
	bitmap := make(Bitmap, 2)
	require.NoError(t, bitmap.SetBit(9, 1))

	val, err := bitmap.GetBit(9)
	require.NoError(t, err)
	assert.Equal(t, byte(1), val)
	assert.Equal(t, Bitmap{0x00, 0x02}, bitmap)

	require.NoError(t, bitmap.SetBit(9, 0))
	val, err = bitmap.GetBit(9)
	require.NoError(t, err)
	assert.Equal(t, byte(0), val)
}

func TestSetBitRejectsValue(t *testing.T) {
	bitmap := make(Bitmap, 1)
	assert.Error(t, bitmap.SetBit(0, 2))
}

func TestOutOfRangeFail(t *testing.T) {
	bitmap := make(Bitmap, 1)
	_, err := bitmap.GetBit(8)
	assert.Equal(t, OutOfRange{8, 7}, err)

	err = bitmap.SetBit(8, 1)
	assert.IsType(t, OutOfRange{}, err)
}

func TestFindFirstFree(t *testing.T) {
	bitmap := NewBitmap()
	index, ok := bitmap.FindFirstFree(128)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), index)

	for i := uint64(0); i < 10; i++ {
		require.NoError(t, bitmap.SetBit(i, 1))
	}
	index, ok = bitmap.FindFirstFree(128)
	assert.True(t, ok)
	assert.Equal(t, uint64(10), index)

	_, ok = bitmap.FindFirstFree(10)
	assert.False(t, ok, "limit excludes free bits past it")
}

func TestFindFree(t *testing.T) {
	bitmap := NewBitmap()
	for _, i := range []uint64{0, 2, 3, 6} {
		require.NoError(t, bitmap.SetBit(i, 1))
	}
	before := append(Bitmap(nil), bitmap...)

	assert.Equal(t, []uint64{1, 4, 5}, bitmap.FindFree(100, 3))
	assert.Equal(t, []uint64{1, 4, 5}, bitmap.FindFree(7, 12), "short when limit is reached")
	assert.Empty(t, bitmap.FindFree(100, 0))
	assert.Equal(t, before, bitmap, "search never allocates")
}

func TestCountSet(t *testing.T) {
	bitmap := NewBitmap()
	for _, i := range []uint64{0, 7, 8, 4000} {
		require.NoError(t, bitmap.SetBit(i, 1))
	}

	assert.Equal(t, uint64(4), bitmap.CountSet(bitmap.Len()))
	assert.Equal(t, uint64(2), bitmap.CountSet(8))
}
