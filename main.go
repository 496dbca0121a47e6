package main

import (
	"fmt"
	"os"

	"github.com/bitcoin-sv/headerchain/cmd/headerchaincli"
	"github.com/ordishs/gocore"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "headerchain"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	if err := headerchaincli.Start(os.Args, version, commit); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
