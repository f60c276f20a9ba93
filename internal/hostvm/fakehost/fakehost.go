// Package fakehost is a reference, in-process implementation of
// hostvm.Host, standing in for the real guest-bytecode sandbox wherever
// the execution core needs something to run against. It understands a
// small, fixed set of builtin exported functions (a counter, an oracle
// price feed, and a cross-contract caller) rather than interpreting
// arbitrary guest bytecode.
package fakehost

import (
	"fmt"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"golang.org/x/crypto/blake2b"
)

type contractState struct {
	storage map[string]string
	exports map[string]struct{}
}

// Host is the reference hostvm.Host implementation.
type Host struct {
	mu        sync.Mutex
	contracts map[string]*contractState
	budget    uint64
	memory    uint64
	mocks     map[string]hostvm.MockDispatcher
}

func New() *Host {
	return &Host{
		contracts: map[string]*contractState{},
		mocks:     map[string]hostvm.MockDispatcher{},
	}
}

var _ hostvm.Host = (*Host)(nil)

func (h *Host) RegisterContract(wasmBytes []byte) (string, error) {
	exports, err := wasmreader.ParseExports(wasmBytes)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(wasmBytes)
	address := "C" + base58.Encode(sum[:])

	h.mu.Lock()
	defer h.mu.Unlock()
	h.contracts[address] = &contractState{storage: map[string]string{}, exports: exports}
	return address, nil
}

func (h *Host) Exports(address string) (map[string]struct{}, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.contracts[address]
	if !ok {
		return nil, fmt.Errorf("unknown contract %s", address)
	}
	out := make(map[string]struct{}, len(c.exports))
	for name := range c.exports {
		out[name] = struct{}{}
	}
	return out, nil
}

func (h *Host) Call(address, function string, args []value.Value) (hostvm.CallResult, error) {
	h.mu.Lock()
	c, ok := h.contracts[address]
	h.mu.Unlock()
	if !ok {
		return hostvm.CallResult{}, fmt.Errorf("unknown contract %s", address)
	}
	if _, exported := c.exports[function]; !exported {
		return abort(fmt.Sprintf("function %q is not exported", function)), nil
	}

	fn, ok := builtins[function]
	if !ok {
		return abort(fmt.Sprintf("no reference behaviour registered for %q", function)), nil
	}

	h.mu.Lock()
	h.budget += 64
	h.memory += 16
	h.mu.Unlock()

	return fn(h, address, args), nil
}

func (h *Host) Storage(address string) (map[string]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.contracts[address]
	if !ok {
		return nil, fmt.Errorf("unknown contract %s", address)
	}
	return cloneStorage(c.storage), nil
}

type storageSnapshot struct {
	data map[string]string
}

func (h *Host) Snapshot(address string) (hostvm.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.contracts[address]
	if !ok {
		return nil, fmt.Errorf("unknown contract %s", address)
	}
	return &storageSnapshot{data: cloneStorage(c.storage)}, nil
}

func (h *Host) Restore(address string, snap hostvm.Snapshot) error {
	ss, ok := snap.(*storageSnapshot)
	if !ok {
		return fmt.Errorf("invalid snapshot handle")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.contracts[address]
	if !ok {
		return fmt.Errorf("unknown contract %s", address)
	}
	c.storage = cloneStorage(ss.data)
	return nil
}

func (h *Host) BudgetBytesConsumed() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.budget
}

func (h *Host) MemoryBytesConsumed() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.memory
}

func (h *Host) RegisterMockDispatcher(contractID string, dispatch hostvm.MockDispatcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mocks[contractID] = dispatch
}

func (h *Host) callMock(contractID, function string, args []value.Value) (value.Value, error) {
	h.mu.Lock()
	dispatch, ok := h.mocks[contractID]
	h.mu.Unlock()
	if !ok {
		return value.Value{}, fmt.Errorf("no mock dispatcher installed for %s", contractID)
	}
	return dispatch(function, args)
}

func cloneStorage(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func abort(message string) hostvm.CallResult {
	return hostvm.CallResult{Ok: false, InvErr: &hostvm.InvokeError{Kind: hostvm.InvokeErrorAbort, Message: message}}
}

func contractErr(code uint32) hostvm.CallResult {
	return hostvm.CallResult{Ok: false, InvErr: &hostvm.InvokeError{Kind: hostvm.InvokeErrorContract, Code: code}}
}

func ok(v value.Value) hostvm.CallResult {
	return hostvm.CallResult{Ok: true, Value: v}
}
