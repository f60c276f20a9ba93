// Package upgradeanalyzer diffs the exported function signatures of two
// contract binaries and classifies each difference as breaking or
// non-breaking.
package upgradeanalyzer

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
)

// BreakingChangeKind enumerates the ways a new binary can break callers
// of the old one.
type BreakingChangeKind int

const (
	FunctionRemoved BreakingChangeKind = iota
	ParameterCountChanged
	ParameterTypeChanged
	ReturnTypeChanged
)

// BreakingChange is one detected incompatibility between the old and new
// signature of a function.
type BreakingChange struct {
	Kind     BreakingChangeKind
	Function string
	Detail   string
}

// NonBreakingChange records an additive, backward-compatible difference.
type NonBreakingChange struct {
	Function string
	Detail   string
}

// CompatibilityReport is the full result of comparing an old binary's
// exported signatures against a new one's.
type CompatibilityReport struct {
	IsCompatible       bool
	OldPath            string
	NewPath            string
	BreakingChanges    []BreakingChange
	NonBreakingChanges []NonBreakingChange
	OldFunctions       []wasmreader.FunctionSignature
	NewFunctions       []wasmreader.FunctionSignature
	// SuggestedVersionBump is a semver-style hint: "major" when any
	// breaking change was found, "minor" when only additions were found,
	// "" when the two binaries expose identical signatures.
	SuggestedVersionBump string
}

// Analyze compares oldBytes against newBytes and produces a
// CompatibilityReport. oldPath and newPath are carried through purely
// for display; they do not affect the comparison.
func Analyze(oldPath string, oldBytes []byte, newPath string, newBytes []byte) (*CompatibilityReport, error) {
	oldSigs, err := wasmreader.ParseSignatures(oldBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing old binary: %w", err)
	}
	newSigs, err := wasmreader.ParseSignatures(newBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing new binary: %w", err)
	}

	newByName := make(map[string]wasmreader.FunctionSignature, len(newSigs))
	for _, s := range newSigs {
		newByName[s.Name] = s
	}
	oldByName := make(map[string]wasmreader.FunctionSignature, len(oldSigs))
	for _, s := range oldSigs {
		oldByName[s.Name] = s
	}

	report := &CompatibilityReport{
		OldPath:      oldPath,
		NewPath:      newPath,
		OldFunctions: oldSigs,
		NewFunctions: newSigs,
	}

	// Old-binary declaration order first, since those are the functions
	// existing callers depend on.
	for _, old := range oldSigs {
		newSig, ok := newByName[old.Name]
		if !ok {
			report.BreakingChanges = append(report.BreakingChanges, BreakingChange{
				Kind:     FunctionRemoved,
				Function: old.Name,
				Detail:   fmt.Sprintf("function %q was removed", old.Name),
			})
			continue
		}
		report.BreakingChanges = append(report.BreakingChanges, diffSignature(old, newSig)...)
	}

	// New-binary declaration order for additions, since an added function
	// cannot have existed in the old binary's order at all.
	for _, n := range newSigs {
		if _, ok := oldByName[n.Name]; !ok {
			report.NonBreakingChanges = append(report.NonBreakingChanges, NonBreakingChange{
				Function: n.Name,
				Detail:   fmt.Sprintf("function %q was added", n.Name),
			})
		}
	}

	report.IsCompatible = len(report.BreakingChanges) == 0
	report.SuggestedVersionBump = versionBump(report)

	if nc := versionBumpMismatch(report, oldBytes, newBytes); nc != nil {
		report.NonBreakingChanges = append(report.NonBreakingChanges, *nc)
	}
	return report, nil
}

// versionBumpMismatch checks, when both binaries declare a contractspec
// version, whether a breaking change was shipped without a major version
// bump. It never affects IsCompatible: a version bump is a hygiene signal,
// not a compatibility guarantee.
func versionBumpMismatch(report *CompatibilityReport, oldBytes, newBytes []byte) *NonBreakingChange {
	if len(report.BreakingChanges) == 0 {
		return nil
	}
	oldSpec, err := wasmreader.ParseContractSpec(oldBytes)
	if err != nil || oldSpec == nil || oldSpec.Version == "" {
		return nil
	}
	newSpec, err := wasmreader.ParseContractSpec(newBytes)
	if err != nil || newSpec == nil || newSpec.Version == "" {
		return nil
	}

	oldVer, err := semver.Parse(oldSpec.Version)
	if err != nil {
		return nil
	}
	newVer, err := semver.Parse(newSpec.Version)
	if err != nil {
		return nil
	}

	if newVer.Major > oldVer.Major {
		return nil
	}
	return &NonBreakingChange{
		Function: "",
		Detail: fmt.Sprintf(
			"breaking changes detected but version was not bumped to a new major (old %s, new %s)",
			oldVer, newVer,
		),
	}
}

func diffSignature(old, new wasmreader.FunctionSignature) []BreakingChange {
	var changes []BreakingChange
	if len(old.Params) != len(new.Params) {
		changes = append(changes, BreakingChange{
			Kind:     ParameterCountChanged,
			Function: old.Name,
			Detail:   fmt.Sprintf("parameter count changed from %d to %d", len(old.Params), len(new.Params)),
		})
		return changes
	}
	for i := range old.Params {
		if old.Params[i] != new.Params[i] {
			changes = append(changes, BreakingChange{
				Kind:     ParameterTypeChanged,
				Function: old.Name,
				Detail:   fmt.Sprintf("parameter %d changed type from %s to %s", i, old.Params[i], new.Params[i]),
			})
		}
	}
	if !sameTypes(old.Results, new.Results) {
		changes = append(changes, BreakingChange{
			Kind:     ReturnTypeChanged,
			Function: old.Name,
			Detail:   fmt.Sprintf("return type changed from %s to %s", displayTypes(old.Results), displayTypes(new.Results)),
		})
	}
	return changes
}

func sameTypes(a, b []wasmreader.GuestType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func displayTypes(ts []wasmreader.GuestType) string {
	if len(ts) == 0 {
		return "()"
	}
	s := ts[0].String()
	for _, t := range ts[1:] {
		s += "," + t.String()
	}
	return s
}

// versionBump maps a CompatibilityReport to a semver-style hint: a
// breaking change calls for a major bump, a purely additive change for
// a minor bump, an unchanged surface for no hint at all.
func versionBump(report *CompatibilityReport) string {
	switch {
	case len(report.BreakingChanges) > 0:
		return "major"
	case len(report.NonBreakingChanges) > 0:
		return "minor"
	default:
		return ""
	}
}
