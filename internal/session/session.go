// Package session correlates a loaded contract, its breakpoints, and
// its invoker under one identity so CLI and shell log lines can be
// traced back to a single load. It is deliberately lighter than
// loader.Session: it does not know how to parse or execute a contract,
// only how to keep the pieces that do together and log-correlated.
package session

import (
	"fmt"
	"sync"

	"github.com/nspcc-dev/contractdbg/internal/breakpoint"
	"github.com/nspcc-dev/contractdbg/internal/invoker"
	"github.com/nspcc-dev/contractdbg/internal/loader"
	"go.uber.org/zap"
)

// Entry bundles everything one loaded contract needs for the lifetime
// of a debugging session.
type Entry struct {
	Loader      *loader.Session
	Breakpoints *breakpoint.Manager
	Invoker     *invoker.Invoker
	Logger      *zap.Logger
}

// Manager tracks every open Entry, keyed by the loader session's ID.
type Manager struct {
	mu      sync.Mutex
	base    *zap.Logger
	entries map[string]*Entry
}

// New creates a Manager. base may be nil, in which case a no-op logger
// is used for every session.
func New(base *zap.Logger) *Manager {
	if base == nil {
		base = zap.NewNop()
	}
	return &Manager{base: base, entries: map[string]*Entry{}}
}

// Open loads wasmBytes into a fresh host via newHost, and registers the
// resulting session under its own ID.
func (m *Manager) Open(wasmBytes []byte, newHost loader.HostFactory, progress invoker.ProgressReporter) (*Entry, error) {
	logger := m.base
	loaded, err := loader.Load(wasmBytes, newHost, logger)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	entry := &Entry{
		Loader:      loaded,
		Breakpoints: breakpoint.NewManager(),
		Invoker:     invoker.New(progress),
		Logger:      logger.With(zap.String("session_id", loaded.ID), zap.String("contract_address", loaded.ContractAddress)),
	}

	m.mu.Lock()
	m.entries[loaded.ID] = entry
	m.mu.Unlock()
	return entry, nil
}

// Get returns the entry for id, if still open.
func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

// Close drops the entry for id; it does not tear down the underlying
// host, which has no explicit teardown in this model.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

// IDs returns every currently open session ID.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	return ids
}
