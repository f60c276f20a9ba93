package wasmreader

import (
	"encoding/json"
	"fmt"
)

// FunctionSignature is the raw guest-bytecode signature of an exported
// function: its name plus ordered parameter and result type lists.
type FunctionSignature struct {
	Name    string
	Params  []GuestType
	Results []GuestType
}

// ContractSpecParameter names a parameter with its surface type syntax
// (Option<T>, Tuple<T1,T2,...>, Vec<T>, Map<K,V>, or a primitive name).
type ContractSpecParameter struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
}

// ContractSpecFunction is one function entry in the contractspec custom
// section.
type ContractSpecFunction struct {
	Name   string                  `json:"name"`
	Params []ContractSpecParameter `json:"params"`
}

// ContractSpecError is one declared entry in the contract's error enum.
type ContractSpecError struct {
	Code uint32 `json:"code"`
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// ContractSpec is the parsed contents of the contractspec custom section.
type ContractSpec struct {
	Version   string                  `json:"version,omitempty"`
	Functions []ContractSpecFunction  `json:"functions"`
	Errors    []ContractSpecError     `json:"errors"`
}

// ContractSpecSection is the distinguished custom section name carrying
// richer parameter names, surface types, and the declared error enum.
const ContractSpecSection = "contractspec"

// ParseExports returns the set of function export names.
func ParseExports(b []byte) (map[string]struct{}, error) {
	m, err := parseModuleCached(b)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(m.exportOrder))
	for _, name := range m.exportOrder {
		out[name] = struct{}{}
	}
	return out, nil
}

// ParseSignatures returns every exported function's raw signature, in the
// order the export section declared them.
func ParseSignatures(b []byte) ([]FunctionSignature, error) {
	m, err := parseModuleCached(b)
	if err != nil {
		return nil, err
	}
	sigs := make([]FunctionSignature, 0, len(m.exportOrder))
	for _, name := range m.exportOrder {
		sigs = append(sigs, m.signatureFor(name))
	}
	return sigs, nil
}

// ParseContractSpec parses the contractspec custom section, if present.
// Absence is tolerated and reported as (nil, nil); a present-but-malformed
// section is reported as an error so the caller can decide whether to
// warn or abort.
func ParseContractSpec(b []byte) (*ContractSpec, error) {
	m, err := parseModuleCached(b)
	if err != nil {
		return nil, err
	}
	raw, ok := m.custom[ContractSpecSection]
	if !ok {
		return nil, nil
	}
	var spec ContractSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("malformed %s section: %w", ContractSpecSection, err)
	}
	return &spec, nil
}
