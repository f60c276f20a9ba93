package fakehost_test

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/fixtures"
	"github.com/nspcc-dev/contractdbg/internal/hostvm/fakehost"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/stretchr/testify/require"
)

func TestCounterIncrementScenario(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Counter())
	require.NoError(t, err)

	before, err := h.Storage(addr)
	require.NoError(t, err)
	require.Empty(t, before)

	res, err := h.Call(addr, "increment", nil)
	require.NoError(t, err)
	require.True(t, res.Ok)
	require.Equal(t, "42", res.Value.Display())

	after, err := h.Storage(addr)
	require.NoError(t, err)
	found := false
	for _, v := range after {
		if v == "42" {
			found = true
		}
	}
	require.True(t, found)
}

func TestOracleSetThenGetScenario(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Oracle())
	require.NoError(t, err)

	_, err = h.Call(addr, "initialize", []value.Value{
		value.Address("GADMINACCOUNT01"),
		value.Int(value.TagU32, big.NewInt(300)),
	})
	require.NoError(t, err)

	_, err = h.Call(addr, "set_price", []value.Value{
		value.Symbol("XLM"),
		value.Int(value.TagU64, big.NewInt(1100000)),
	})
	require.NoError(t, err)

	storageAfterSet, err := h.Storage(addr)
	require.NoError(t, err)

	res, err := h.Call(addr, "get_price", []value.Value{value.Symbol("XLM")})
	require.NoError(t, err)
	require.True(t, res.Ok)
	require.Equal(t, "1100000", res.Value.Display())

	storageAfterGet, err := h.Storage(addr)
	require.NoError(t, err)
	require.Equal(t, storageAfterSet, storageAfterGet)
}

func TestGetPriceNotSetIsContractError(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Oracle())
	require.NoError(t, err)

	res, err := h.Call(addr, "get_price", []value.Value{value.Symbol("XLM")})
	require.NoError(t, err)
	require.False(t, res.Ok)
	require.NotNil(t, res.InvErr)
	require.Equal(t, uint32(1), res.InvErr.Code)
}

func TestSnapshotRestore(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Counter())
	require.NoError(t, err)

	snap, err := h.Snapshot(addr)
	require.NoError(t, err)

	_, err = h.Call(addr, "increment", nil)
	require.NoError(t, err)

	require.NoError(t, h.Restore(addr, snap))

	after, err := h.Storage(addr)
	require.NoError(t, err)
	require.Empty(t, after)
}
