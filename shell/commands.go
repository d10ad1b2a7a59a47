package shell

import (
	"errors"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/withishtiaq/mini-vsfs/vfs"
	"github.com/withishtiaq/mini-vsfs/vfsapi"
)

// Store is the session state shared by commands; both ishell.Shell and
// ishell.Context satisfy it.
type Store interface {
	Get(key string) interface{}
	Set(key string, value interface{})
}

// Load opens the image at path and makes it the current image.
func Load(c Store, path string) error {
	volume, err := vfs.NewReadOnlyVolume(path)
	if err != nil {
		return err
	}

	fs, err := vfs.LoadFilesystem(volume)
	if err != nil {
		_ = volume.Close()
		return err
	}

	if old, ok := c.Get("fs").(*vfs.Filesystem); ok && old != nil {
		_ = old.Volume.Close()
	}
	c.Set("volume_path", path)
	c.Set("fs", fs)

	return nil
}

func Format(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("usage: format <size-kib> <inodes>")
		return
	}

	sizeKiB, err := strconv.ParseUint(c.Args[0], 10, 64)
	if err != nil {
		c.Err(err)
		return
	}
	inodes, err := strconv.ParseUint(c.Args[1], 10, 64)
	if err != nil {
		c.Err(err)
		return
	}

	path := c.Get("volume_path").(string)
	if old, ok := c.Get("fs").(*vfs.Filesystem); ok && old != nil {
		_ = old.Volume.Close()
		c.Set("fs", nil)
	}

	_, err = vfs.CreateImage(path, sizeKiB, inodes)
	if err != nil {
		c.Err(err)
		return
	}

	err = Load(c, path)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

func LoadCmd(c *ishell.Context) {
	path, ok := c.Get("volume_path").(string)
	if len(c.Args) == 1 {
		path, ok = c.Args[0], true
	}
	if !ok {
		c.Println("usage: load <image>")
		return
	}

	err := Load(c, path)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

func Info(c *ishell.Context) {
	fs, ok := loadedFilesystem(c)
	if !ok {
		return
	}

	printTo(c, func(w io.Writer) {
		WriteInfo(w, fs)
	})
}

func Ls(c *ishell.Context) {
	fs, ok := loadedFilesystem(c)
	if !ok {
		return
	}

	var err error
	printTo(c, func(w io.Writer) {
		err = WriteListing(w, fs)
	})
	if err != nil {
		c.Err(err)
	}
}

func Cat(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("expected 1 argument")
		return
	}

	fs, ok := loadedFilesystem(c)
	if !ok {
		return
	}

	data, err := readFile(fs, c.Args[0])
	if err != nil {
		printFileError(c, err)
		return
	}

	c.Println(string(data))
}

func Outcp(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("expected 2 arguments")
		return
	}

	fs, ok := loadedFilesystem(c)
	if !ok {
		return
	}

	data, err := readFile(fs, c.Args[0])
	if err != nil {
		printFileError(c, err)
		return
	}

	err = ioutil.WriteFile(c.Args[1], data, 0644)
	if err != nil {
		c.Println("PATH NOT FOUND")
		return
	}
	c.Println("OK")
}

// Incp inserts a host file into the current image, writing the result to a
// new image which then becomes current.
func Incp(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("usage: incp <host file> <output image>")
		return
	}

	if _, ok := loadedFilesystem(c); !ok {
		return
	}

	input := c.Get("volume_path").(string)
	ins, err := vfs.AddFile(input, c.Args[1], c.Args[0])
	if err != nil {
		var exhausted vfs.ResourceExhausted
		var exists vfs.OutputExists
		switch {
		case errors.As(err, &exhausted):
			c.Println("NO SPACE (" + exhausted.Error() + ")")
		case errors.As(err, &exists):
			c.Println("EXIST (" + exists.Error() + ")")
		case errors.Is(err, os.ErrNotExist):
			c.Println("FILE NOT FOUND")
		default:
			c.Err(err)
		}
		return
	}

	err = Load(c, c.Args[1])
	if err != nil {
		c.Err(err)
		return
	}
	c.Printf("OK (inode %d, blocks %v)\n", ins.InodePtr, ClusterPtrsToStrings(ins.Clusters))
}

func Check(c *ishell.Context) {
	fs, ok := loadedFilesystem(c)
	if !ok {
		return
	}

	err := vfsapi.FsCheck(fs)
	if err != nil {
		c.Println(err)
		return
	}
	c.Println("OK")
}

func readFile(fs *vfs.Filesystem, name string) ([]byte, error) {
	file, err := vfsapi.Open(fs, name)
	if err != nil {
		return nil, err
	}
	if file.IsDir() {
		return nil, errNotAFile
	}

	return file.ReadAll()
}

var errNotAFile = errors.New("not a regular file")

func printFileError(c *ishell.Context, err error) {
	switch err.(type) {
	case vfs.DirectoryEntryNotFound:
		c.Println("FILE NOT FOUND")
	default:
		c.Err(err)
	}
}
