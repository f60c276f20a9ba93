package commands

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/contractdbg/internal/upgradeanalyzer"
	"github.com/urfave/cli"
)

func upgradeCheckCommand() cli.Command {
	return cli.Command{
		Name:      "upgrade-check",
		Usage:     "Compare two contract binaries' exported signatures for breaking changes",
		UsageText: "contractdbg upgrade-check <old-wasm-file> <new-wasm-file>",
		Action:    handleUpgradeCheck,
	}
}

func handleUpgradeCheck(c *cli.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return cli.NewExitError(fmt.Errorf("usage: %s", c.Command.UsageText), 1)
	}
	oldPath, newPath := args[0], args[1]

	oldBytes, err := os.ReadFile(oldPath)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("reading %s: %w", oldPath, err), 1)
	}
	newBytes, err := os.ReadFile(newPath)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("reading %s: %w", newPath, err), 1)
	}

	report, err := upgradeanalyzer.Analyze(oldPath, oldBytes, newPath, newBytes)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if report.IsCompatible {
		fmt.Fprintln(c.App.Writer, "compatible: no breaking changes detected")
	} else {
		fmt.Fprintf(c.App.Writer, "incompatible: %d breaking change(s) detected\n", len(report.BreakingChanges))
	}
	for _, bc := range report.BreakingChanges {
		fmt.Fprintf(c.App.Writer, "  BREAKING: %s\n", bc.Detail)
	}
	for _, nc := range report.NonBreakingChanges {
		fmt.Fprintf(c.App.Writer, "  added:    %s\n", nc.Detail)
	}
	if report.SuggestedVersionBump != "" {
		fmt.Fprintf(c.App.Writer, "suggested version bump: %s\n", report.SuggestedVersionBump)
	}

	if !report.IsCompatible {
		return cli.NewExitError("", 1)
	}
	return nil
}
