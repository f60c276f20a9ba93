// Package argnorm rewrites user-supplied JSON argument arrays into the
// typed envelopes the Arg Parser expects, driven by the contract's
// declared surface types (Option<T>, Tuple<T1,T2,...>).
package argnorm

import (
	"encoding/json"

	"github.com/nspcc-dev/contractdbg/internal/argtypes"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
)

// Normalize applies the ordered rewrite rules against userJSON for the
// named function, looked up in specs by function name. Absence of the
// function, or userJSON not being a top-level array, leaves the input
// unchanged rather than erroring: normalisation is advisory, the Arg
// Parser is the final arbiter of validity.
func Normalize(specs map[string]wasmreader.ContractSpecFunction, function, userJSON string) (string, error) {
	spec, ok := specs[function]
	if !ok {
		return userJSON, nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(userJSON), &arr); err != nil {
		return userJSON, nil
	}

	out := make([]json.RawMessage, len(arr))
	copy(out, arr)

	for i, param := range spec.Params {
		if i >= len(arr) {
			break
		}
		raw := arr[i]
		switch {
		case argtypes.IsOption(param.TypeName):
			if isEnvelope(raw) {
				continue
			}
			wrapped, err := json.Marshal(struct {
				Type  string          `json:"type"`
				Value json.RawMessage `json:"value"`
			}{Type: "option", Value: raw})
			if err != nil {
				return "", errs.ExecutionError("normalising option parameter %q: %v", param.Name, err)
			}
			out[i] = wrapped

		case argtypes.IsTuple(param.TypeName):
			arity := argtypes.TupleArity(param.TypeName)
			var elems []json.RawMessage
			if err := json.Unmarshal(raw, &elems); err != nil {
				return "", errs.InvalidArguments("parameter %q: expected a tuple array", param.Name)
			}
			if len(elems) != arity {
				return "", errs.InvalidArguments("parameter %q: arity mismatch: expected %d, got %d", param.Name, arity, len(elems))
			}
			wrapped, err := json.Marshal(struct {
				Type  string            `json:"type"`
				Arity int               `json:"arity"`
				Value []json.RawMessage `json:"value"`
			}{Type: "tuple", Arity: arity, Value: elems})
			if err != nil {
				return "", errs.ExecutionError("normalising tuple parameter %q: %v", param.Name, err)
			}
			out[i] = wrapped
		}
	}

	result, err := json.Marshal(out)
	if err != nil {
		return "", errs.ExecutionError("re-encoding normalised arguments: %v", err)
	}
	return string(result), nil
}

// ParamNames returns the declared parameter names for function, in
// declaration order, or nil if no contractspec entry names it.
func ParamNames(specs map[string]wasmreader.ContractSpecFunction, function string) []string {
	spec, ok := specs[function]
	if !ok {
		return nil
	}
	names := make([]string, len(spec.Params))
	for i, p := range spec.Params {
		names[i] = p.Name
	}
	return names
}

func isEnvelope(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	_, ok := m["type"]
	return ok
}
