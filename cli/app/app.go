// Package app assembles the top-level contractdbg CLI.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/contractdbg/cli/commands"
	"github.com/nspcc-dev/contractdbg/cli/shell"
	"github.com/urfave/cli"
)

// Version is set at build time via -ldflags; it defaults to "dev" for
// local builds.
var Version = "dev"

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "contractdbg\nVersion: %s\nGoVersion: %s\n", Version, runtime.Version())
}

// New creates a contractdbg instance of [cli.App] with every command
// included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "contractdbg"
	ctl.Version = Version
	ctl.Usage = "Debugger for contracts compiled to sandboxed guest bytecode"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, commands.NewCommands()...)
	ctl.Commands = append(ctl.Commands, shell.NewCommands()...)
	return ctl
}
