// Package shell implements the interactive REPL: a readline prompt that
// dispatches each line through an inner urfave/cli app, mirroring the
// teacher's VM CLI shell loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"
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
	"github.com/nspcc-dev/contractdbg/internal/upgradeanalyzer"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/urfave/cli"
)

// NewCommands returns the "shell" subcommand the root app registers.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "shell",
			Usage:     "Start an interactive debugging session",
			UsageText: "contractdbg shell",
			Flags: []cli.Flag{
				flags.Config,
			},
			Action: handleShell,
		},
	}
}

// state is the shell's mutable working set: the currently loaded
// session (if any) and the mock registry backing its cross-contract
// dispatchers.
type state struct {
	sessions    *session.Manager
	current     *session.Entry
	currentBC   []byte
	mocks       *mockregistry.Registry
	timeoutSecs int
}

var shellCommands = []cli.Command{
	{
		Name:      "load",
		Usage:     "Load a contract binary as the current session",
		UsageText: "load <wasm-file>",
		Action:    wrap(handleLoad),
	},
	{
		Name:      "call",
		Usage:     "Invoke an exported function on the current session",
		UsageText: "call <function> [json-args]",
		Action:    wrap(handleCall),
	},
	{
		Name:      "break",
		Usage:     "Arm a breakpoint on the current session",
		UsageText: "break <function> [condition]",
		Action:    wrap(handleBreak),
	},
	{
		Name:      "mock",
		Usage:     "Register a cross-contract call mock",
		UsageText: "mock <contract_id:function=json_value>",
		Action:    wrap(handleMock),
	},
	{
		Name:      "storage",
		Usage:     "Dump the current session's storage",
		UsageText: "storage",
		Action:    wrap(handleStorage),
	},
	{
		Name:      "upgrade-check",
		Usage:     "Compare the current session's binary against another file",
		UsageText: "upgrade-check <other-wasm-file>",
		Action:    wrap(handleUpgradeCheck),
	},
	{
		Name:      "exit",
		Usage:     "Exit the shell",
		UsageText: "exit",
		Action:    handleExit,
	},
}

const stateKey = "state"

// wrap adapts an action needing *state to the plain cli.ActionFunc
// shape, pulling state out of the app's Metadata the way the teacher's
// VM CLI threads its chain/interop-context through cli.App.Metadata.
func wrap(f func(*cli.Context, *state) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		st := c.App.Metadata[stateKey].(*state)
		return f(c, st)
	}
}

func handleLoad(c *cli.Context, st *state) error {
	if !c.Args().Present() {
		return errors.New("usage: load <wasm-file>")
	}
	wasmBytes, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	entry, err := st.sessions.Open(wasmBytes, func() hostvm.Host { return fakehost.New() }, invoker.NopProgress{})
	if err != nil {
		return err
	}
	st.current = entry
	st.currentBC = wasmBytes
	fmt.Fprintf(c.App.Writer, "loaded session %s at %s\n", entry.Loader.ID, entry.Loader.ContractAddress)
	return nil
}

func handleCall(c *cli.Context, st *state) error {
	if st.current == nil {
		return errors.New("no session loaded; use 'load' first")
	}
	if !c.Args().Present() {
		return errors.New("usage: call <function> [json-args]")
	}
	function := c.Args().Get(0)
	userJSON := "[]"
	if len(c.Args()) > 1 {
		userJSON = c.Args().Get(1)
	}

	normalized, err := argnorm.Normalize(st.current.Loader.Specs, function, userJSON)
	if err != nil {
		return err
	}
	parsedArgs, err := argparse.ParseArgs(normalized)
	if err != nil {
		return err
	}

	storageBefore, err := st.current.Loader.Host.Storage(st.current.Loader.ContractAddress)
	if err != nil {
		return err
	}
	argDoc := breakpoint.NameArguments(argnorm.ParamNames(st.current.Loader.Specs, function), normalized)
	hit, err := st.current.Breakpoints.ShouldBreak(function, storageBefore, argDoc)
	if err != nil {
		return err
	}
	if hit {
		fmt.Fprintf(c.App.Writer, "breakpoint hit on %q before invocation\n", function)
	}

	storageFn := func() (map[string]string, error) {
		return st.current.Loader.Host.Storage(st.current.Loader.ContractAddress)
	}
	display, _, err := st.current.Invoker.Invoke(
		st.current.Loader.Host,
		st.current.Loader.ContractAddress,
		st.current.Loader.ErrorDB,
		function,
		parsedArgs,
		st.timeoutSecs,
		storageFn,
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, display)
	return nil
}

func handleBreak(c *cli.Context, st *state) error {
	if st.current == nil {
		return errors.New("no session loaded; use 'load' first")
	}
	if !c.Args().Present() {
		return errors.New("usage: break <function> [condition]")
	}
	function := c.Args().Get(0)
	condition := ""
	if len(c.Args()) > 1 {
		condition = c.Args().Get(1)
	}
	if err := st.current.Breakpoints.Set(function, condition); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "breakpoint armed on %q\n", function)
	return nil
}

func handleMock(c *cli.Context, st *state) error {
	if st.current == nil {
		return errors.New("no session loaded; use 'load' first")
	}
	if !c.Args().Present() {
		return errors.New("usage: mock <contract_id:function=json_value>")
	}
	contractID, function, resp, err := mockregistry.ParseSpec(c.Args().Get(0))
	if err != nil {
		return err
	}
	st.mocks.Register(contractID, function, resp)
	st.current.Loader.Host.RegisterMockDispatcher(contractID, func(fn string, args []value.Value) (value.Value, error) {
		return st.mocks.Dispatch(contractID, fn, args)
	})
	fmt.Fprintf(c.App.Writer, "mock registered for %s:%s\n", contractID, function)
	return nil
}

func handleStorage(c *cli.Context, st *state) error {
	if st.current == nil {
		return errors.New("no session loaded; use 'load' first")
	}
	storage, err := st.current.Loader.Host.Storage(st.current.Loader.ContractAddress)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(storage))
	for k := range storage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(c.App.Writer, "%s=%s\n", k, storage[k])
	}
	return nil
}

func handleUpgradeCheck(c *cli.Context, st *state) error {
	if st.current == nil {
		return errors.New("no session loaded; use 'load' first")
	}
	if !c.Args().Present() {
		return errors.New("usage: upgrade-check <other-wasm-file>")
	}
	otherBytes, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	report, err := upgradeanalyzer.Analyze("current", st.currentBC, c.Args().Get(0), otherBytes)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "compatible: %v\n", report.IsCompatible)
	for _, bc := range report.BreakingChanges {
		fmt.Fprintf(c.App.Writer, "  BREAKING: %s\n", bc.Detail)
	}
	return nil
}

func handleExit(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, "Bye!")
	return errExit
}

var errExit = errors.New("shell exit")

func handleShell(c *cli.Context) error {
	cfg, logger, err := flags.LoadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = logger.Sync() }()
	stopMetrics := metricsserver.Start(cfg.MetricsAddr, logger)
	defer func() { _ = stopMetrics(context.Background()) }()

	st := &state{
		sessions:    session.New(logger),
		mocks:       mockregistry.New(),
		timeoutSecs: cfg.DefaultTimeoutSeconds,
	}

	shellApp := cli.NewApp()
	shellApp.Name = ""
	shellApp.HelpName = ""
	shellApp.UsageText = ""
	shellApp.Writer = c.App.Writer
	shellApp.ErrWriter = c.App.ErrWriter
	shellApp.Commands = shellCommands
	shellApp.ExitErrHandler = func(*cli.Context, error) {}
	shellApp.Metadata = map[string]interface{}{stateKey: st}

	var completerItems []readline.PrefixCompleterInterface
	for _, cmd := range shellCommands {
		completerItems = append(completerItems, readline.PcItem(cmd.Name))
	}
	completer := readline.NewPrefixCompleter(completerItems...)

	l, err := readline.NewEx(&readline.Config{
		Prompt:       "\033[32mcontractdbg>\033[0m ",
		AutoComplete: completer,
	})
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to create readline instance: %w", err), 1)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		parts, err := shellquote.Split(line)
		if err != nil || len(parts) == 0 {
			if err != nil {
				fmt.Fprintf(shellApp.ErrWriter, "Error: %v\n", err)
			}
			continue
		}

		runErr := shellApp.Run(append([]string{"contractdbg"}, parts...))
		if errors.Is(runErr, errExit) {
			return nil
		}
		if runErr != nil {
			fmt.Fprintf(shellApp.ErrWriter, "Error: %v\n", runErr)
		}
	}
}
