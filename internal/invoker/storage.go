package invoker

import (
	"fmt"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// StorageDiffEntry classifies one key's change between storage_before
// and storage_after.
type StorageDiffEntry struct {
	Key    string
	Kind   string // "added", "removed", or "changed"
	Before string
	After  string
}

// DiffStorage computes the symmetric difference between two string to
// string mappings, sorted lexicographically by key for a deterministic
// rendering.
func DiffStorage(before, after map[string]string) []StorageDiffEntry {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var out []StorageDiffEntry
	for _, k := range sorted {
		b, bok := before[k]
		a, aok := after[k]
		switch {
		case !bok && aok:
			out = append(out, StorageDiffEntry{Key: k, Kind: "added", After: a})
		case bok && !aok:
			out = append(out, StorageDiffEntry{Key: k, Kind: "removed", Before: b})
		case bok && aok && b != a:
			out = append(out, StorageDiffEntry{Key: k, Kind: "changed", Before: b, After: a})
		}
	}
	return out
}

// RenderStorageDiff renders a unified diff between the sorted
// "key=value" line forms of before and after, for human consumption.
func RenderStorageDiff(before, after map[string]string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        renderLines(before),
		B:        renderLines(after),
		FromFile: "storage_before",
		ToFile:   "storage_after",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func renderLines(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, m[k]))
	}
	return lines
}
