package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/withishtiaq/mini-vsfs/shell"
	"github.com/withishtiaq/mini-vsfs/util"
)

func main() {
	flag.Uint64Var(&util.Debug, "debug", 0, "debug level (higher is more verbose)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: minivsfs [-debug N] <image>")
		os.Exit(1)
	}

	sh := ishell.New()
	sh.SetPrompt("/ > ")
	sh.Set("volume_path", flag.Arg(0))

	path := flag.Arg(0)
	_, err := os.Stat(path)
	if err == nil {
		// We want to load existing image
		err = shell.Load(sh, path)
		if err != nil {
			fmt.Println(err)
		}
	}

	sh.AddCmd(&ishell.Cmd{
		Name: "format",
		Help: "format <size-kib> <inodes>: create an empty image",
		Func: shell.Format,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "load",
		Help: "load [image]: open an image",
		Func: shell.LoadCmd,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "info",
		Help: "show the superblock",
		Func: shell.Info,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "ls",
		Help: "list the root directory",
		Func: shell.Ls,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "cat",
		Help: "cat <name>: print a file",
		Func: shell.Cat,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "outcp",
		Help: "outcp <name> <host path>: copy a file out of the image",
		Func: shell.Outcp,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "incp",
		Help: "incp <host file> <output image>: add a file into a new image",
		Func: shell.Incp,
	})

	sh.AddCmd(&ishell.Cmd{
		Name: "check",
		Help: "verify checksums and allocation consistency",
		Func: shell.Check,
	})

	sh.Run()
}
