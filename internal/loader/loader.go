// Package loader bootstraps a fresh execution session: it instantiates
// a host sandbox, registers the contract binary, and builds the error
// catalogue the invoker consults when a guest call fails with a typed
// contract error code.
package loader

import (
	"github.com/google/uuid"
	"github.com/nspcc-dev/contractdbg/internal/errorcatalog"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"go.uber.org/zap"
)

// HostFactory builds a fresh, unshared host sandbox for one session.
// The caller supplies this (typically fakehost.New) rather than loader
// depending on any one sandbox implementation.
type HostFactory func() hostvm.Host

// Session is a single, isolated load of one contract binary. There is
// no process-wide sharing between sessions: every call to Load returns
// a brand new Session backed by a brand new Host.
type Session struct {
	ID              string
	Host            hostvm.Host
	ContractAddress string
	ErrorDB         *errorcatalog.Database
	Signatures      []wasmreader.FunctionSignature
	Specs           map[string]wasmreader.ContractSpecFunction
}

// Load instantiates a fresh host, registers wasmBytes as a contract, and
// attempts to populate the error catalogue from the declared spec
// section. A malformed spec section is warned via logger and a missing
// one is tolerated silently; neither is fatal. logger may be nil to
// suppress the warning.
func Load(wasmBytes []byte, newHost HostFactory, logger *zap.Logger) (*Session, error) {
	sigs, err := wasmreader.ParseSignatures(wasmBytes)
	if err != nil {
		return nil, err
	}

	host := newHost()
	address, err := host.RegisterContract(wasmBytes)
	if err != nil {
		return nil, err
	}

	errDB := errorcatalog.New()
	specs := map[string]wasmreader.ContractSpecFunction{}

	spec, specErr := wasmreader.ParseContractSpec(wasmBytes)
	switch {
	case specErr != nil:
		if logger != nil {
			logger.Warn("contract spec section failed to parse; argument normalisation will be a pass-through",
				zap.Error(specErr))
		}
	case spec != nil:
		errDB = errorcatalog.FromSpec(spec)
		for _, fn := range spec.Functions {
			specs[fn.Name] = fn
		}
	}

	return &Session{
		ID:              uuid.NewString(),
		Host:            host,
		ContractAddress: address,
		ErrorDB:         errDB,
		Signatures:      sigs,
		Specs:           specs,
	}, nil
}

// HasFunction reports whether name is among the contract's raw
// signatures. Neither the invoker nor the CLI commands call it: a
// function name is passed to the host without this check.
func (s *Session) HasFunction(name string) bool {
	for _, sig := range s.Signatures {
		if sig.Name == name {
			return true
		}
	}
	return false
}
