package argparse_test

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/argparse"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/stretchr/testify/require"
)

func TestParseRawPrimitives(t *testing.T) {
	vals, err := argparse.ParseArgs(`[true, "hi", null]`)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	require.True(t, value.Equal(value.Bool(true), vals[0]))
	require.True(t, value.Equal(value.String("hi"), vals[1]))
	require.True(t, value.Equal(value.None(), vals[2]))
}

func TestParseIntegerEnvelope(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"u64","value":1100000}]`)
	require.NoError(t, err)
	require.Equal(t, value.TagU64, vals[0].Tag)
	require.Equal(t, big.NewInt(1100000), vals[0].Int)
}

func TestParseIntegerOverflowFails(t *testing.T) {
	_, err := argparse.ParseArgs(`[{"type":"u32","value":4294967296}]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestParseBareLargeIntegerPreservesPrecision(t *testing.T) {
	// 2^100 + 1, well past float64's 53 bits of integer precision; a
	// float64 round-trip would silently round this to 2^100.
	want, ok := new(big.Int).SetString("1267650600228229401496703205377", 10)
	require.True(t, ok)

	vals, err := argparse.ParseArgs(`[{"type":"u128","value":1267650600228229401496703205377}]`)
	require.NoError(t, err)
	require.Equal(t, value.TagU128, vals[0].Tag)
	require.Equal(t, want, vals[0].Int)
}

func TestParseBareNonIntegerNumberFailsRatherThanTruncating(t *testing.T) {
	_, err := argparse.ParseArgs(`[1.5]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)

	_, err = argparse.ParseArgs(`[1e20]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestParseDecimalStringInteger(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"u256","value":"115792089237316195423570985008687907853269984665640564039457584007913129639935"}]`)
	require.NoError(t, err)
	require.Equal(t, value.TagU256, vals[0].Tag)
}

func TestParseAddress(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"address","value":"GADMINACCOUNT01"}]`)
	require.NoError(t, err)
	require.Equal(t, "GADMINACCOUNT01", vals[0].Str)
}

func TestParseAddressTooShortFails(t *testing.T) {
	_, err := argparse.ParseArgs(`[{"type":"address","value":"G1"}]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestParseBytesOddLengthFails(t *testing.T) {
	_, err := argparse.ParseArgs(`[{"type":"bytes","value":"abc"}]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestParseBytes(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"bytes","value":"deadbeef"}]`)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, vals[0].Bytes)
}

func TestParseMissingTypeTagOnObjectFails(t *testing.T) {
	_, err := argparse.ParseArgs(`[{"foo":"bar"}]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
	require.Contains(t, err.Error(), "missing type tag")
}

func TestParseVecRecursive(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"vec","value":[{"type":"u32","value":1},{"type":"u32","value":2}]}]`)
	require.NoError(t, err)
	require.Len(t, vals[0].Vec, 2)
}

func TestParseOptionWrappedNone(t *testing.T) {
	vals, err := argparse.ParseArgs(`[{"type":"option","value":null}]`)
	require.NoError(t, err)
	require.Nil(t, vals[0].Option)
}

func TestParseTupleArityMismatchFails(t *testing.T) {
	_, err := argparse.ParseArgs(`[{"type":"tuple","arity":2,"value":[1,2,3]}]`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}
