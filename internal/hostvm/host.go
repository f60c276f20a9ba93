// Package hostvm defines the contract the execution core programs
// against for the sandboxed guest-bytecode host. The real sandbox is an
// external, black-box capability (see the purpose-and-scope notes this
// module carries forward); this package only fixes the shape of that
// contract so the core can be exercised against a reference
// implementation (see the fakehost subpackage) without depending on one
// concrete sandbox.
package hostvm

import "github.com/nspcc-dev/contractdbg/internal/value"

// MockDispatcher services a guest-triggered cross-contract call that
// targets an address the core has installed a dispatcher for.
type MockDispatcher func(function string, args []value.Value) (value.Value, error)

// Snapshot is an opaque handle produced by Host.Snapshot; its only valid
// use is a later call to Host.Restore on the same Host.
type Snapshot interface{}

// Host is the sandboxed guest-bytecode execution environment. One Host
// instance is exclusively owned by a single executor session for its
// lifetime; it is not safe to call concurrently from more than one
// invocation.
type Host interface {
	// RegisterContract loads wasmBytes into the sandbox and returns its
	// content-derived address.
	RegisterContract(wasmBytes []byte) (address string, err error)

	// Exports reports the function export set of a previously
	// registered contract.
	Exports(address string) (map[string]struct{}, error)

	// Call invokes an exported function and returns the host's nested
	// result (see CallResult).
	Call(address, function string, args []value.Value) (CallResult, error)

	// Storage returns a snapshot copy of the contract's current
	// storage mapping.
	Storage(address string) (map[string]string, error)

	// Snapshot captures the full storage state of address for later
	// restoration.
	Snapshot(address string) (Snapshot, error)

	// Restore replaces address's storage with the state captured by a
	// prior Snapshot call.
	Restore(address string, snap Snapshot) error

	// BudgetBytesConsumed reports the cumulative CPU/instruction
	// budget consumed across every call made on this Host so far.
	BudgetBytesConsumed() uint64

	// MemoryBytesConsumed reports the cumulative linear-memory bytes
	// consumed across every call made on this Host so far.
	MemoryBytesConsumed() uint64

	// RegisterMockDispatcher installs dispatch to service any guest
	// call targeting contractID.
	RegisterMockDispatcher(contractID string, dispatch MockDispatcher)
}
