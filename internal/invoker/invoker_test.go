package invoker_test

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/errorcatalog"
	"github.com/nspcc-dev/contractdbg/internal/fixtures"
	"github.com/nspcc-dev/contractdbg/internal/hostvm/fakehost"
	"github.com/nspcc-dev/contractdbg/internal/invoker"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
	"github.com/stretchr/testify/require"
)

func TestInvokeCounterIncrementScenario(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Counter())
	require.NoError(t, err)

	inv := invoker.New(nil)
	storageFn := func() (map[string]string, error) { return h.Storage(addr) }

	display, record, err := inv.Invoke(h, addr, errorcatalog.New(), "increment", nil, 0, storageFn)
	require.NoError(t, err)
	require.Empty(t, record.StorageBefore)
	require.Contains(t, display, "42")
	require.NotNil(t, record.Result)

	found := false
	for _, v := range record.StorageAfter {
		if v == "42" {
			found = true
		}
	}
	require.True(t, found)
}

func TestInvokeOracleSequenceStorageDiffEmptyOnRead(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Oracle())
	require.NoError(t, err)
	inv := invoker.New(nil)
	storageFn := func() (map[string]string, error) { return h.Storage(addr) }
	errDB := errorcatalog.New()

	_, _, err = inv.Invoke(h, addr, errDB, "initialize", []value.Value{
		value.Address("GADMINACCOUNT01"), value.Int(value.TagU32, bigInt(300)),
	}, 0, storageFn)
	require.NoError(t, err)

	_, _, err = inv.Invoke(h, addr, errDB, "set_price", []value.Value{
		value.Symbol("XLM"), value.Int(value.TagU64, bigInt(1100000)),
	}, 0, storageFn)
	require.NoError(t, err)

	display, record, err := inv.Invoke(h, addr, errDB, "get_price", []value.Value{value.Symbol("XLM")}, 0, storageFn)
	require.NoError(t, err)
	require.Contains(t, display, "1100000")

	diff := invoker.DiffStorage(record.StorageBefore, record.StorageAfter)
	require.Empty(t, diff)
}

func TestInvokeContractErrorRoutesThroughCatalogue(t *testing.T) {
	h := fakehost.New()
	addr, err := h.RegisterContract(fixtures.Oracle())
	require.NoError(t, err)
	inv := invoker.New(nil)
	storageFn := func() (map[string]string, error) { return h.Storage(addr) }

	spec, specErr := wasmreader.ParseContractSpec(fixtures.Oracle())
	require.NoError(t, specErr)
	errDB := errorcatalog.FromSpec(spec)

	display, record, err := inv.Invoke(h, addr, errDB, "get_price", []value.Value{value.Symbol("XLM")}, 0, storageFn)
	require.NoError(t, err)
	require.Empty(t, record.Result)
	require.Contains(t, display, "Contract returned error code 1")
	require.Contains(t, display, "PriceNotSet")
}

func TestMemoryTrackerNeverDecreases(t *testing.T) {
	tr := invoker.NewMemoryTracker(10)
	tr.Record("a", 20)
	tr.Record("b", 5) // should clamp up to 20
	tr.Record("c", 30)

	snaps := tr.Snapshots()
	for i := 1; i < len(snaps); i++ {
		require.GreaterOrEqual(t, snaps[i].BytesConsumed, snaps[i-1].BytesConsumed)
	}
}

func TestDiffStorageClassification(t *testing.T) {
	before := map[string]string{"a": "1", "b": "2"}
	after := map[string]string{"a": "1", "b": "3", "c": "4"}
	diff := invoker.DiffStorage(before, after)
	require.Len(t, diff, 2)
	byKey := map[string]invoker.StorageDiffEntry{}
	for _, e := range diff {
		byKey[e.Key] = e
	}
	require.Equal(t, "changed", byKey["b"].Kind)
	require.Equal(t, "added", byKey["c"].Kind)
}

func bigInt(n int64) *big.Int { return big.NewInt(n) }
