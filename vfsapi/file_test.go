package vfsapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withishtiaq/mini-vsfs/vfs"
)

func TestOpen(t *testing.T) {
	assert := assert.New(t)
	fs := prepareFS(t)
	addFile(t, fs, "a.txt", 6000)

	f, err := Open(fs, "a.txt")
	require.NoError(t, err)
	assert.False(f.IsDir())

	info := f.Stat()
	assert.Equal("a.txt", info.Name())
	assert.Equal(vfs.InodePtr(2), info.InodePtr())
	assert.Equal(uint64(6000), info.Size())
	assert.Equal(2, info.Blocks())

	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(payload(6000), data)

	_, err = Open(fs, "b.txt")
	assert.Equal(vfs.DirectoryEntryNotFound{Name: "b.txt"}, err)
}

func TestOpenRoot(t *testing.T) {
	fs := prepareFS(t)

	f, err := Open(fs, ".")
	require.NoError(t, err)
	assert.True(t, f.IsDir())
	assert.Equal(t, vfs.RootInodePtr, f.Stat().InodePtr())
}

func TestReadDir(t *testing.T) {
	fs := prepareFS(t)
	addFile(t, fs, "one", 1)
	addFile(t, fs, "empty", 0)

	infos, err := ReadDir(fs)
	require.NoError(t, err)
	require.Len(t, infos, 4)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	assert.Equal(t, []string{".", "..", "one", "empty"}, names)

	assert.True(t, infos[0].IsDir())
	assert.Equal(t, uint64(4*vfs.DirectoryEntrySize), infos[0].Size())
	assert.Equal(t, 1, infos[2].Blocks())
	assert.Equal(t, 0, infos[3].Blocks())
	assert.Equal(t, vfs.InodePtr(3), infos[3].InodePtr())
}
