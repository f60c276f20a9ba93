package breakpoint_test

import (
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/breakpoint"
	"github.com/stretchr/testify/require"
)

func TestParseConditionStorage(t *testing.T) {
	c, err := breakpoint.ParseCondition("storage[counter] >= 10")
	require.NoError(t, err)
	require.Equal(t, breakpoint.ConditionStorage, c.Kind)
	require.Equal(t, "counter", c.Key)
	require.Equal(t, ">=", c.Op)
	require.Equal(t, "10", c.Value)
}

func TestParseConditionArgument(t *testing.T) {
	c, err := breakpoint.ParseCondition("amount > 100")
	require.NoError(t, err)
	require.Equal(t, breakpoint.ConditionArgument, c.Kind)
	require.Equal(t, "amount", c.Key)
	require.Equal(t, ">", c.Op)
	require.Equal(t, "100", c.Value)
}

func TestParseConditionNoOperatorFails(t *testing.T) {
	_, err := breakpoint.ParseCondition("storage[counter] 10")
	require.Error(t, err)
}

// TestConditionRoundTrip exercises the condition-exactness property:
// parse(format(parse(s))) == parse(s).
func TestConditionRoundTrip(t *testing.T) {
	cases := []string{
		"storage[counter] >= 10",
		"storage[admin] == apple",
		"amount != 0",
		"balance <= 9999",
	}
	for _, s := range cases {
		c1, err := breakpoint.ParseCondition(s)
		require.NoError(t, err)
		c2, err := breakpoint.ParseCondition(c1.String())
		require.NoError(t, err)
		require.Equal(t, c1, c2)
	}
}

// TestScenarioStorageCounterThreshold is the literal scenario 5 walk:
// storage[counter] >= 10 evaluated across a sequence of storage states.
func TestScenarioStorageCounterThreshold(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("increment", "storage[counter] >= 10"))

	hit, err := mgr.ShouldBreak("increment", map[string]string{"counter": "10"}, "")
	require.NoError(t, err)
	require.True(t, hit)

	hit, err = mgr.ShouldBreak("increment", map[string]string{"counter": "9"}, "")
	require.NoError(t, err)
	require.False(t, hit)

	// "apple" does not parse as an integer, so the comparison falls back
	// to lexicographic ordering: 'a' (0x61) sorts after '1' (0x31), so
	// "apple" >= "10" holds.
	hit, err = mgr.ShouldBreak("increment", map[string]string{"counter": "apple"}, "")
	require.NoError(t, err)
	require.True(t, hit)
}

func TestShouldBreakUnconditional(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("increment", ""))
	hit, err := mgr.ShouldBreak("increment", nil, "")
	require.NoError(t, err)
	require.True(t, hit)
}

func TestShouldBreakNoBreakpointRegistered(t *testing.T) {
	mgr := breakpoint.NewManager()
	hit, err := mgr.ShouldBreak("increment", nil, "")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestShouldBreakArgumentCondition(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("transfer", "amount > 100"))

	hit, err := mgr.ShouldBreak("transfer", nil, `{"amount": 150}`)
	require.NoError(t, err)
	require.True(t, hit)

	hit, err = mgr.ShouldBreak("transfer", nil, `{"amount": 50}`)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestNameArgumentsZipsPositionalArrayByDeclarationOrder(t *testing.T) {
	doc := breakpoint.NameArguments([]string{"to", "amount"}, `["GADMINACCOUNT01", 150]`)
	require.JSONEq(t, `{"to":"GADMINACCOUNT01","amount":150}`, doc)
}

func TestNameArgumentsWithoutNamesYieldsNoMatch(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("transfer", "amount > 100"))

	doc := breakpoint.NameArguments(nil, `[150]`)
	hit, err := mgr.ShouldBreak("transfer", nil, doc)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestScenarioArgumentConditionFromPositionalArray(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("transfer", "amount > 100"))

	doc := breakpoint.NameArguments([]string{"to", "amount"}, `["GADMINACCOUNT01", 150]`)
	hit, err := mgr.ShouldBreak("transfer", nil, doc)
	require.NoError(t, err)
	require.True(t, hit)
}

func TestSetReplacesPriorBreakpoint(t *testing.T) {
	mgr := breakpoint.NewManager()
	require.NoError(t, mgr.Set("increment", "storage[counter] >= 10"))
	require.NoError(t, mgr.Set("increment", "storage[counter] >= 999"))

	bp, ok := mgr.Get("increment")
	require.True(t, ok)
	require.Equal(t, "999", bp.Condition.Value)
}

func TestCompareValuesNumeric(t *testing.T) {
	require.True(t, breakpoint.CompareValues("20", "10", ">"))
	require.False(t, breakpoint.CompareValues("9", "10", ">="))
	require.True(t, breakpoint.CompareValues("-5", "3", "<"))
}
