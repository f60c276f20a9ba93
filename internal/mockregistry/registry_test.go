package mockregistry_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/mockregistry"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/stretchr/testify/require"
)

func TestParseSpecAndDispatch(t *testing.T) {
	contractID, function, resp, err := mockregistry.ParseSpec(`CORACLE0001:get_price={"type":"u64","value":1100000}`)
	require.NoError(t, err)
	require.Equal(t, "CORACLE0001", contractID)
	require.Equal(t, "get_price", function)
	require.Equal(t, value.TagU64, resp.Tag)

	reg := mockregistry.New()
	reg.Register(contractID, function, resp)

	got, err := reg.Dispatch(contractID, function, nil)
	require.NoError(t, err)
	require.True(t, value.Equal(resp, got))

	log := reg.CallLog()
	require.Len(t, log, 1)
	require.Equal(t, function, log[0].Function)
}

func TestDispatchMockNotFound(t *testing.T) {
	reg := mockregistry.New()
	_, err := reg.Dispatch("CORACLE0001", "unknown_fn", nil)
	require.ErrorIs(t, err, errs.ErrMockNotFound)
}

func TestParseSpecRejectsBadAddress(t *testing.T) {
	_, _, _, err := mockregistry.ParseSpec(`XX:foo={"type":"bool","value":true}`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestParseSpecRejectsBadSymbol(t *testing.T) {
	_, _, _, err := mockregistry.ParseSpec(`CORACLE0001:1bad=true`)
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestContractIDsSortedAndDeduped(t *testing.T) {
	reg := mockregistry.New()
	reg.Register("CBBB", "f", value.Bool(true))
	reg.Register("CAAA", "g", value.Bool(true))
	reg.Register("CAAA", "h", value.Bool(true))
	require.Equal(t, []string{"CAAA", "CBBB"}, reg.ContractIDs())
}
