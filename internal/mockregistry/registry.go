// Package mockregistry implements the shared-ownership table of mocked
// cross-contract responses, and the spec grammar ("contract_id:function=
// json_value") used to populate it from the CLI.
package mockregistry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/nspcc-dev/contractdbg/internal/argparse"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/value"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type key struct {
	contractID string
	function   string
}

// CallLogEntry records one guest-triggered call observed by a mock
// dispatcher.
type CallLogEntry struct {
	ContractID string
	Function   string
	Args       []value.Value
}

// Registry is the mutex-guarded mapping of (contract, function) to a
// recorded response, plus the append-only call log guest calls populate.
type Registry struct {
	mu        sync.Mutex
	responses map[key]value.Value
	calls     []CallLogEntry
}

func New() *Registry {
	return &Registry{responses: map[key]value.Value{}}
}

// Register installs or replaces the recorded response for a
// (contractID, function) pair.
func (r *Registry) Register(contractID, function string, response value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key{contractID, function}] = response
}

// Dispatch services one guest-triggered call: on a hit it logs the call
// and returns the recorded response, on a miss it fails with
// MockNotFound. A panic while the lock is held (a poisoned registry in
// the original's terms) is reported as an ExecutionError ("mock registry
// lock poisoned") rather than propagated, since Go has no
// panic-poisoned-mutex concept of its own.
func (r *Registry) Dispatch(contractID, function string, args []value.Value) (v value.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errs.ExecutionError("mock registry lock poisoned: %v", p)
		}
	}()
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[key{contractID, function}]
	if !ok {
		return value.Value{}, errs.MockNotFound(contractID, function)
	}
	r.calls = append(r.calls, CallLogEntry{ContractID: contractID, Function: function, Args: args})
	return resp, nil
}

// CallLog returns a snapshot of every call observed so far.
func (r *Registry) CallLog() []CallLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallLogEntry, len(r.calls))
	copy(out, r.calls)
	return out
}

// ContractIDs lists every contract address a dispatcher should be
// installed for, sorted for deterministic iteration.
func (r *Registry) ContractIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	for k := range r.responses {
		seen[k.contractID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ParseSpec validates and parses one "contract_id:function=json_value"
// mock specification.
func ParseSpec(spec string) (contractID, function string, response value.Value, err error) {
	colon := strings.Index(spec, ":")
	if colon < 0 {
		return "", "", value.Value{}, errs.InvalidArguments("mock spec %q: missing ':' separator", spec)
	}
	contractID = spec[:colon]
	rest := spec[colon+1:]
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return "", "", value.Value{}, errs.InvalidArguments("mock spec %q: missing '=' separator", spec)
	}
	function = rest[:eq]
	jsonValue := rest[eq+1:]

	if _, err := argparse.ParseValue(fmt.Sprintf("{\"type\":\"address\",\"value\":%q}", contractID)); err != nil {
		return "", "", value.Value{}, errs.InvalidArguments("mock spec %q: invalid contract_id: %v", spec, err)
	}
	if !symbolPattern.MatchString(function) {
		return "", "", value.Value{}, errs.InvalidArguments("mock spec %q: invalid function symbol %q", spec, function)
	}
	response, err = argparse.ParseValue(jsonValue)
	if err != nil {
		return "", "", value.Value{}, fmt.Errorf("mock spec %q: %w", spec, err)
	}
	return contractID, function, response, nil
}
