package vfsapi

import (
	"github.com/withishtiaq/mini-vsfs/vfs"
)

type File struct {
	filesystem *vfs.Filesystem
	entry      vfs.DirectoryEntry
	inode      vfs.Inode
}

// Open looks name up in the root directory.
func Open(fs *vfs.Filesystem, name string) (File, error) {
	_, entry, err := fs.RootDirectory.FindByName(name)
	if err != nil {
		return File{}, err
	}

	inode, err := fs.ReadInode(entry.InodePtr)
	if err != nil {
		return File{}, err
	}

	return File{
		filesystem: fs,
		entry:      entry,
		inode:      inode,
	}, nil
}

func (f File) Stat() FileInfo {
	return newFileInfo(f.entry, f.inode)
}

func (f File) IsDir() bool {
	return f.inode.IsDir()
}

// ReadAll returns the file content.
func (f File) ReadAll() ([]byte, error) {
	return f.filesystem.ReadData(f.inode)
}

// ReadDir lists the used entries of the root directory, "." and ".."
// included.
func ReadDir(fs *vfs.Filesystem) ([]FileInfo, error) {
	entries := fs.RootDirectory.Entries()
	fileInfos := make([]FileInfo, 0, len(entries))

	for _, entry := range entries {
		inode, err := fs.ReadInode(entry.InodePtr)
		if err != nil {
			return fileInfos, err
		}
		fileInfos = append(fileInfos, newFileInfo(entry, inode))
	}

	return fileInfos, nil
}

func newFileInfo(entry vfs.DirectoryEntry, inode vfs.Inode) FileInfo {
	return FileInfo{
		name:     entry.NameString(),
		inodePtr: entry.InodePtr,
		size:     inode.Size,
		isDir:    inode.IsDir(),
		blocks:   len(inode.UsedPtrs()),
	}
}
