package argnorm_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/argnorm"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"github.com/stretchr/testify/require"
)

func specs(fn wasmreader.ContractSpecFunction) map[string]wasmreader.ContractSpecFunction {
	return map[string]wasmreader.ContractSpecFunction{fn.Name: fn}
}

func TestOptionWrapping(t *testing.T) {
	fn := wasmreader.ContractSpecFunction{
		Name:   "f",
		Params: []wasmreader.ContractSpecParameter{{Name: "x", TypeName: "Option<u32>"}},
	}
	out, err := argnorm.Normalize(specs(fn), "f", `[null]`)
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"option","value":null}]`, out)
}

func TestOptionAlreadyEnvelopePassesThrough(t *testing.T) {
	fn := wasmreader.ContractSpecFunction{
		Name:   "f",
		Params: []wasmreader.ContractSpecParameter{{Name: "x", TypeName: "Option<u32>"}},
	}
	out, err := argnorm.Normalize(specs(fn), "f", `[{"type":"option","value":5}]`)
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"option","value":5}]`, out)
}

func TestTupleArityMismatch(t *testing.T) {
	fn := wasmreader.ContractSpecFunction{
		Name:   "f",
		Params: []wasmreader.ContractSpecParameter{{Name: "x", TypeName: "Tuple<u32,u32>"}},
	}
	_, err := argnorm.Normalize(specs(fn), "f", `[[1,2,3]]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
	require.Contains(t, err.Error(), "arity mismatch: expected 2, got 3")
}

func TestTupleWrapping(t *testing.T) {
	fn := wasmreader.ContractSpecFunction{
		Name:   "f",
		Params: []wasmreader.ContractSpecParameter{{Name: "x", TypeName: "Tuple<u32,u32>"}},
	}
	out, err := argnorm.Normalize(specs(fn), "f", `[[1,2]]`)
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"tuple","arity":2,"value":[1,2]}]`, out)
}

func TestUnknownFunctionPassesThrough(t *testing.T) {
	out, err := argnorm.Normalize(map[string]wasmreader.ContractSpecFunction{}, "f", `[1,2,3]`)
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, out)
}

func TestNonArrayPassesThrough(t *testing.T) {
	fn := wasmreader.ContractSpecFunction{Name: "f"}
	out, err := argnorm.Normalize(specs(fn), "f", `{"a":1}`)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, out)
}
