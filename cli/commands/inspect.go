package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"github.com/urfave/cli"
)

func inspectCommand() cli.Command {
	return cli.Command{
		Name:      "inspect",
		Usage:     "Print a contract binary's exported signatures and declared error catalogue",
		UsageText: "contractdbg inspect <wasm-file>",
		Action:    handleInspect,
	}
}

func handleInspect(c *cli.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return cli.NewExitError(fmt.Errorf("usage: %s", c.Command.UsageText), 1)
	}

	wasmBytes, err := os.ReadFile(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("reading %s: %w", args[0], err), 1)
	}

	sigs, err := wasmreader.ParseSignatures(wasmBytes)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(c.App.Writer, "Exported functions:")
	for _, sig := range sigs {
		fmt.Fprintf(c.App.Writer, "  %s(%s) -> (%s)\n", sig.Name, joinTypes(sig.Params), joinTypes(sig.Results))
	}

	spec, err := wasmreader.ParseContractSpec(wasmBytes)
	if err != nil {
		fmt.Fprintf(c.App.Writer, "\ncontractspec section present but failed to parse: %v\n", err)
		return nil
	}
	if spec == nil {
		fmt.Fprintln(c.App.Writer, "\nNo contractspec section present.")
		return nil
	}

	specJSON, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(c.App.Writer, "\ncontractspec:")
	fmt.Fprintln(c.App.Writer, string(specJSON))
	return nil
}

func joinTypes(ts []wasmreader.GuestType) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	return out
}
