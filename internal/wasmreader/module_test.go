package wasmreader_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"github.com/stretchr/testify/require"
)

func TestParseExports(t *testing.T) {
	img := wasmreader.NewBuilder().
		AddFunction("increment", nil, []wasmreader.GuestType{wasmreader.TypeI64}).
		AddFunction("get_price", []wasmreader.GuestType{wasmreader.TypeU32}, []wasmreader.GuestType{wasmreader.TypeI64}).
		Bytes()

	exports, err := wasmreader.ParseExports(img)
	require.NoError(t, err)
	require.Contains(t, exports, "increment")
	require.Contains(t, exports, "get_price")
	require.Len(t, exports, 2)
}

func TestParseSignatures(t *testing.T) {
	img := wasmreader.NewBuilder().
		AddFunction("set_price", []wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU64}, nil).
		Bytes()

	sigs, err := wasmreader.ParseSignatures(img)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	require.Equal(t, "set_price", sigs[0].Name)
	require.Equal(t, []wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU64}, sigs[0].Params)
	require.Empty(t, sigs[0].Results)
}

func TestParseSignaturesPreservesDeclarationOrder(t *testing.T) {
	img := wasmreader.NewBuilder().
		AddFunction("foo", nil, nil).
		AddFunction("bar", nil, nil).
		AddFunction("baz", nil, nil).
		Bytes()

	sigs, err := wasmreader.ParseSignatures(img)
	require.NoError(t, err)
	require.Equal(t, []string{"foo", "bar", "baz"}, []string{sigs[0].Name, sigs[1].Name, sigs[2].Name})
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := wasmreader.ParseExports([]byte("not a module"))
	require.ErrorIs(t, err, errs.ErrInvalidBinary)
}

func TestParseContractSpecAbsent(t *testing.T) {
	img := wasmreader.NewBuilder().AddFunction("f", nil, nil).Bytes()
	spec, err := wasmreader.ParseContractSpec(img)
	require.NoError(t, err)
	require.Nil(t, spec)
}

func TestParseContractSpecPresent(t *testing.T) {
	img := wasmreader.NewBuilder().
		AddFunction("set_price", []wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU64}, nil).
		SetContractSpec(wasmreader.ContractSpec{
			Functions: []wasmreader.ContractSpecFunction{
				{Name: "set_price", Params: []wasmreader.ContractSpecParameter{
					{Name: "asset", TypeName: "symbol"},
					{Name: "price", TypeName: "u64"},
				}},
			},
		}).
		Bytes()

	spec, err := wasmreader.ParseContractSpec(img)
	require.NoError(t, err)
	require.NotNil(t, spec)
	require.Len(t, spec.Functions, 1)
	require.Equal(t, "set_price", spec.Functions[0].Name)
	require.Equal(t, "price", spec.Functions[0].Params[1].Name)
}

func TestParseSignaturesIsStableAcrossRepeatedCalls(t *testing.T) {
	img := wasmreader.NewBuilder().
		AddFunction("transfer", []wasmreader.GuestType{wasmreader.TypeU64}, nil).
		Bytes()

	first, err := wasmreader.ParseSignatures(img)
	require.NoError(t, err)
	second, err := wasmreader.ParseSignatures(img)
	require.NoError(t, err)
	require.Equal(t, first, second)

	third, err := wasmreader.ParseExports(img)
	require.NoError(t, err)
	require.Contains(t, third, "transfer")
}

func TestGuestTypeDisplay(t *testing.T) {
	require.Equal(t, "i32", wasmreader.TypeI32.String())
	require.Equal(t, "funcref", wasmreader.TypeFuncRef.String())
	require.Equal(t, "?", wasmreader.GuestType(200).String())
}
