package shell

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/rodaine/table"

	"github.com/withishtiaq/mini-vsfs/vfs"
	"github.com/withishtiaq/mini-vsfs/vfsapi"
)

func ClusterPtrsToStrings(ptrs []vfs.ClusterPtr) []string {
	strs := make([]string, 0)
	for _, ptr := range ptrs {
		strs = append(strs, strconv.Itoa(int(ptr)))
	}

	return strs
}

// WriteInfo prints the superblock and allocation summary of fs.
func WriteInfo(w io.Writer, fs *vfs.Filesystem) {
	sb := fs.Superblock
	tbl := table.New("field", "value").WithWriter(w)
	tbl.AddRow("magic", fmt.Sprintf("0x%08X", sb.Magic))
	tbl.AddRow("version", sb.Version)
	tbl.AddRow("block size", sb.BlockSize)
	tbl.AddRow("total blocks", sb.TotalBlocks)
	tbl.AddRow("inodes", fmt.Sprintf("%d (%d used)", sb.InodeCount, fs.InodeBitmap.CountSet(sb.InodeCount)))
	tbl.AddRow("inode bitmap", fmt.Sprintf("block %d", sb.InodeBitmapStart))
	tbl.AddRow("data bitmap", fmt.Sprintf("block %d", sb.DataBitmapStart))
	tbl.AddRow("inode table", fmt.Sprintf("blocks %d-%d", sb.InodeTableStart, sb.InodeTableStart+sb.InodeTableBlocks-1))
	tbl.AddRow("data region", fmt.Sprintf("blocks %d-%d (%d used)", sb.DataRegionStart, sb.TotalBlocks-1,
		fs.DataBitmap.CountSet(sb.DataRegionBlocks)))
	tbl.AddRow("root inode", sb.RootInode)
	tbl.AddRow("mtime", sb.MtimeEpoch)
	tbl.AddRow("checksum", fmt.Sprintf("0x%08X", sb.Checksum))
	tbl.Print()
}

// WriteListing prints the root directory.
func WriteListing(w io.Writer, fs *vfs.Filesystem) error {
	fileInfos, err := vfsapi.ReadDir(fs)
	if err != nil {
		return err
	}

	tbl := table.New("", "name", "inode", "size", "blocks").WithWriter(w)
	for _, fi := range fileInfos {
		kind := "-"
		if fi.IsDir() {
			kind = "+"
		}
		tbl.AddRow(kind, fi.Name(), fi.InodePtr(), fi.Size(), fi.Blocks())
	}
	tbl.Print()

	return nil
}

func printTo(c *ishell.Context, f func(w io.Writer)) {
	buf := new(bytes.Buffer)
	f(buf)
	c.Print(buf.String())
}

func loadedFilesystem(c *ishell.Context) (*vfs.Filesystem, bool) {
	fs, ok := c.Get("fs").(*vfs.Filesystem)
	if !ok || fs == nil {
		c.Println("NO IMAGE LOADED (use format or load)")
		return nil, false
	}

	return fs, true
}
