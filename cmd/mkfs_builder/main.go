package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/withishtiaq/mini-vsfs/util"
	"github.com/withishtiaq/mini-vsfs/vfs"
)

const usage = "Usage: mkfs_builder --image <file> --size-kib <180..4096> --inodes <128..512>"

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("mkfs_builder", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var image string
	flags.StringVar(&image, "image", "", "image file to create")

	var sizeKiB uint64
	flags.Uint64Var(&sizeKiB, "size-kib", 0, "image size in KiB (180..4096, multiple of 4)")

	var inodes uint64
	flags.Uint64Var(&inodes, "inodes", 0, "inode count (128..512)")

	flags.Uint64Var(&util.Debug, "debug", 0, "debug level (higher is more verbose)")

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if image == "" || sizeKiB == 0 || inodes == 0 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	geometry, err := vfs.CreateImage(image, sizeKiB, inodes)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "MiniVSFS image '%s' created successfully\n", image)
	fmt.Fprintf(stdout, "Size: %d KiB (%d blocks)\n", geometry.SizeKiB(), geometry.TotalBlocks)
	fmt.Fprintf(stdout, "Inodes: %d\n", geometry.InodeCount)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
