// Package commands implements the debugger's urfave/cli subcommands:
// run (one-shot invocation), inspect (binary introspection), and
// upgrade-check (signature compatibility analysis).
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nspcc-dev/contractdbg/cli/flags"
	"github.com/nspcc-dev/contractdbg/internal/argnorm"
	"github.com/nspcc-dev/contractdbg/internal/argparse"
	"github.com/nspcc-dev/contractdbg/internal/breakpoint"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/hostvm/fakehost"
	"github.com/nspcc-dev/contractdbg/internal/invoker"
	"github.com/nspcc-dev/contractdbg/internal/metricsserver"
	"github.com/nspcc-dev/contractdbg/internal/mockregistry"
	"github.com/nspcc-dev/contractdbg/internal/session"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/urfave/cli"
)

// NewCommands returns the top-level subcommands the root app registers.
func NewCommands() []cli.Command {
	return []cli.Command{
		runCommand(),
		inspectCommand(),
		upgradeCheckCommand(),
	}
}

func runCommand() cli.Command {
	return cli.Command{
		Name:      "run",
		Usage:     "Load a contract binary and invoke one exported function",
		UsageText: "contractdbg run <wasm-file> <function> [json-args]",
		Flags: []cli.Flag{
			flags.Timeout,
			flags.Mock,
			flags.Breakpoint,
			flags.Progress,
			flags.Config,
		},
		Action: handleRun,
	}
}

func handleRun(c *cli.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return cli.NewExitError(fmt.Errorf("usage: %s", c.Command.UsageText), 1)
	}
	wasmPath, function := args[0], args[1]
	userJSON := "[]"
	if len(args) > 2 {
		userJSON = args[2]
	}

	wasmBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("reading %s: %w", wasmPath, err), 1)
	}

	var progress invoker.ProgressReporter = invoker.NopProgress{}
	if c.Bool(flags.ProgressFlagName) {
		progress = invoker.NewConsoleProgress(c.App.Writer)
	}

	cfg, logger, err := flags.LoadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = logger.Sync() }()
	stopMetrics := metricsserver.Start(cfg.MetricsAddr, logger)
	defer func() { _ = stopMetrics(context.Background()) }()

	timeoutSecs := cfg.DefaultTimeoutSeconds
	if c.IsSet(flags.TimeoutFlagName) {
		timeoutSecs = c.Int(flags.TimeoutFlagName)
	}

	mgr := session.New(logger)
	entry, err := mgr.Open(wasmBytes, func() hostvm.Host { return fakehost.New() }, progress)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	registry := mockregistry.New()
	for _, spec := range c.StringSlice(flags.MockFlagName) {
		contractID, fn, resp, err := mockregistry.ParseSpec(spec)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		registry.Register(contractID, fn, resp)
		entry.Loader.Host.RegisterMockDispatcher(contractID, dispatcherFor(registry, contractID))
	}

	for _, spec := range c.StringSlice(flags.BreakpointFlagName) {
		bpFunction, condition := splitBreakpointSpec(spec)
		if err := entry.Breakpoints.Set(bpFunction, condition); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	normalized, err := argnorm.Normalize(entry.Loader.Specs, function, userJSON)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	parsedArgs, err := argparse.ParseArgs(normalized)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	storageBefore, err := entry.Loader.Host.Storage(entry.Loader.ContractAddress)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	argDoc := breakpoint.NameArguments(argnorm.ParamNames(entry.Loader.Specs, function), normalized)
	hit, err := entry.Breakpoints.ShouldBreak(function, storageBefore, argDoc)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if hit {
		fmt.Fprintf(c.App.Writer, "breakpoint hit on %q before invocation\n", function)
	}

	storageFn := func() (map[string]string, error) { return entry.Loader.Host.Storage(entry.Loader.ContractAddress) }
	display, record, err := entry.Invoker.Invoke(
		entry.Loader.Host,
		entry.Loader.ContractAddress,
		entry.Loader.ErrorDB,
		function,
		parsedArgs,
		timeoutSecs,
		storageFn,
	)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintln(c.App.Writer, display)
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err == nil {
		fmt.Fprintln(c.App.Writer, string(recordJSON))
	}
	return nil
}

// dispatcherFor adapts a mockregistry.Registry, which is keyed by
// (contractID, function), into the per-contract hostvm.MockDispatcher
// shape the host installs.
func dispatcherFor(registry *mockregistry.Registry, contractID string) hostvm.MockDispatcher {
	return func(function string, args []value.Value) (value.Value, error) {
		return registry.Dispatch(contractID, function, args)
	}
}

func splitBreakpointSpec(spec string) (function, condition string) {
	idx := strings.Index(spec, ":")
	if idx < 0 {
		return spec, ""
	}
	return spec[:idx], spec[idx+1:]
}
