// Package flags collects small cli.Flag helpers shared by the
// debugger's commands.
package flags

import (
	"github.com/nspcc-dev/contractdbg/internal/debugconfig"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// Common flag long names, collected so commands and the shell agree on
// spelling.
const (
	TimeoutFlagName    = "timeout"
	MockFlagName       = "mock"
	BreakpointFlagName = "break"
	ConfigFlagName     = "config"
	ProgressFlagName   = "progress"
)

// Timeout is the --timeout flag shared by every invocation command.
var Timeout = cli.IntFlag{
	Name:  TimeoutFlagName,
	Usage: "Abort the call after the given number of seconds; 0 disables the watchdog",
}

// Mock is the repeatable --mock flag carrying one
// `contract_id:function=json_value` spec per occurrence.
var Mock = cli.StringSliceFlag{
	Name:  MockFlagName,
	Usage: "Register a cross-contract call mock as contract_id:function=json_value; repeatable",
}

// Breakpoint is the repeatable --break flag carrying one
// `function[:condition]` spec per occurrence.
var Breakpoint = cli.StringSliceFlag{
	Name:  BreakpointFlagName,
	Usage: "Arm a breakpoint as function or function:condition; repeatable",
}

// Config points at a debugconfig YAML file.
var Config = cli.StringFlag{
	Name:  ConfigFlagName,
	Usage: "Path to a debugger configuration file",
}

// Progress toggles console progress reporting during long calls.
var Progress = cli.BoolFlag{
	Name:  ProgressFlagName,
	Usage: "Print start/finish progress lines around each invocation",
}

// LoadConfig reads the --config file named on c, or debugconfig.Default
// if the flag was omitted, and builds the zap logger it describes. Every
// command that opens a session should call this once at the top of its
// action and thread the resulting logger into session.New.
func LoadConfig(c *cli.Context) (debugconfig.Config, *zap.Logger, error) {
	cfg := debugconfig.Default()
	if path := c.String(ConfigFlagName); path != "" {
		loaded, err := debugconfig.Load(path)
		if err != nil {
			return debugconfig.Config{}, nil, err
		}
		cfg = loaded
	}
	logger, err := debugconfig.NewLogger(cfg.Logger)
	if err != nil {
		return debugconfig.Config{}, nil, err
	}
	wasmreader.SetCacheSize(cfg.CacheSize)
	return cfg, logger, nil
}
