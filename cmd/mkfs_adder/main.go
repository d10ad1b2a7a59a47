package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/withishtiaq/mini-vsfs/util"
	"github.com/withishtiaq/mini-vsfs/vfs"
)

const usage = "Usage: mkfs_adder --input <file> --output <file> --file <file>"

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("mkfs_adder", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var input string
	flags.StringVar(&input, "input", "", "existing image")

	var output string
	flags.StringVar(&output, "output", "", "new image to write (must not exist)")

	var file string
	flags.StringVar(&file, "file", "", "regular file to add to the root directory")

	flags.Uint64Var(&util.Debug, "debug", 0, "debug level (higher is more verbose)")

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if input == "" || output == "" || file == "" {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	ins, err := vfs.AddFile(input, output, file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "File '%s' added successfully to MiniVSFS image\n", file)
	fmt.Fprintf(stdout, "Allocated inode: %d\n", ins.InodePtr)
	fmt.Fprintf(stdout, "Allocated %d data blocks\n", ins.BlocksNeeded())
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
