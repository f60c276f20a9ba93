package session_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/fixtures"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/hostvm/fakehost"
	"github.com/nspcc-dev/contractdbg/internal/invoker"
	"github.com/nspcc-dev/contractdbg/internal/session"
	"github.com/stretchr/testify/require"
)

func newFakeHost() hostvm.Host { return fakehost.New() }

func TestOpenAndGet(t *testing.T) {
	mgr := session.New(nil)
	entry, err := mgr.Open(fixtures.Counter(), newFakeHost, invoker.NopProgress{})
	require.NoError(t, err)
	require.NotEmpty(t, entry.Loader.ID)

	got, ok := mgr.Get(entry.Loader.ID)
	require.True(t, ok)
	require.Same(t, entry, got)
}

func TestCloseRemovesEntry(t *testing.T) {
	mgr := session.New(nil)
	entry, err := mgr.Open(fixtures.Counter(), newFakeHost, invoker.NopProgress{})
	require.NoError(t, err)

	mgr.Close(entry.Loader.ID)
	_, ok := mgr.Get(entry.Loader.ID)
	require.False(t, ok)
}

func TestTwoOpensAreIndependentSessions(t *testing.T) {
	mgr := session.New(nil)
	e1, err := mgr.Open(fixtures.Counter(), newFakeHost, invoker.NopProgress{})
	require.NoError(t, err)
	e2, err := mgr.Open(fixtures.Counter(), newFakeHost, invoker.NopProgress{})
	require.NoError(t, err)

	require.NotEqual(t, e1.Loader.ID, e2.Loader.ID)
	require.Len(t, mgr.IDs(), 2)
}
