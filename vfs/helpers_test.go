package vfs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testEpoch = time.Unix(1700000000, 0)

func fixedClock() Option {
	return WithClock(func() time.Time { return testEpoch })
}

// countingVolume records writes made through it.
type countingVolume struct {
	Volume
	writes int
}

func (cv *countingVolume) WriteBlock(ptr BlockPtr, data []byte) error {
	cv.writes++
	return cv.Volume.WriteBlock(ptr, data)
}

func prepareMemFS(t *testing.T, sizeKiB uint64, inodes uint64) *Filesystem {
	geometry, err := NewGeometry(sizeKiB, inodes)
	require.NoError(t, err)

	fs := NewFilesystem(NewMemVolume(geometry.TotalBlocks), geometry, fixedClock())
	require.NoError(t, fs.WriteStructureToVolume())
	return fs
}

func prepareImage(t *testing.T, dir string, sizeKiB uint64, inodes uint64) string {
	path := filepath.Join(dir, "base.img")
	_, err := CreateImage(path, sizeKiB, inodes, fixedClock())
	require.NoError(t, err)
	return path
}

func content(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i%251) + 1
	}
	return data
}

func writeHostFile(t *testing.T, dir string, name string, size int) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content(size), 0644))
	return path
}

func readBlock(t *testing.T, volume Volume, ptr BlockPtr) []byte {
	block := make([]byte, BlockSize)
	require.NoError(t, volume.ReadBlock(ptr, block))
	return block
}

func insert(t *testing.T, fs *Filesystem, name string, size int) Insertion {
	ins, err := fs.PlanInsert(name, uint64(size))
	require.NoError(t, err)
	require.NoError(t, fs.Commit(fs.Volume, ins, bytes.NewReader(content(size)), fixedClock()))
	return ins
}
