package loader_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/fixtures"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/hostvm/fakehost"
	"github.com/nspcc-dev/contractdbg/internal/loader"
	"github.com/stretchr/testify/require"
)

func newFakeHost() hostvm.Host { return fakehost.New() }

func TestLoadReturnsIsolatedSessions(t *testing.T) {
	bin := fixtures.Counter()

	s1, err := loader.Load(bin, newFakeHost, nil)
	require.NoError(t, err)
	s2, err := loader.Load(bin, newFakeHost, nil)
	require.NoError(t, err)

	require.NotEqual(t, s1.ID, s2.ID)
	require.NotSame(t, s1.Host, s2.Host)
	require.Equal(t, s1.ContractAddress, s2.ContractAddress, "content-derived address is stable across loads of the same binary")
}

func TestLoadPopulatesErrorCatalogueFromSpec(t *testing.T) {
	s, err := loader.Load(fixtures.Oracle(), newFakeHost, nil)
	require.NoError(t, err)
	require.Contains(t, s.ErrorDB.DisplayError(1), "PriceNotSet")
}

func TestLoadHasFunction(t *testing.T) {
	s, err := loader.Load(fixtures.Counter(), newFakeHost, nil)
	require.NoError(t, err)
	require.True(t, s.HasFunction("increment"))
	require.False(t, s.HasFunction("nonexistent"))
}
