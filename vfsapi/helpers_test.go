package vfsapi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/withishtiaq/mini-vsfs/vfs"
)

func prepareFS(t *testing.T) *vfs.Filesystem {
	geometry, err := vfs.NewGeometry(1024, 128)
	require.NoError(t, err)

	fs := vfs.NewFilesystem(vfs.NewMemVolume(geometry.TotalBlocks), geometry)
	require.NoError(t, fs.WriteStructureToVolume())
	return fs
}

func payload(size int) []byte {
	return bytes.Repeat([]byte("minivsfs"), size/8+1)[:size]
}

func addFile(t *testing.T, fs *vfs.Filesystem, name string, size int) vfs.Insertion {
	ins, err := fs.PlanInsert(name, uint64(size))
	require.NoError(t, err)
	require.NoError(t, fs.Commit(fs.Volume, ins, bytes.NewReader(payload(size))))
	return ins
}
