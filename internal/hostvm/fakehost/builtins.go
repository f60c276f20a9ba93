package fakehost

import (
	"math/big"

	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/value"
)

// builtin implements one exported function's behaviour against the
// calling Host's storage for address.
type builtin func(h *Host, address string, args []value.Value) hostvm.CallResult

// builtins is the fixed registry of reference contract behaviours
// fakehost understands: a counter demo, an oracle price-feed demo, and
// a cross-contract caller exercising the mock dispatcher.
var builtins = map[string]builtin{
	"increment":           builtinIncrement,
	"initialize":          builtinInitialize,
	"set_price":           builtinSetPrice,
	"get_price":           builtinGetPrice,
	"call_cross_contract": builtinCallCrossContract,
}

const counterStep = 42

// builtinIncrement is the "counter increment" reference fixture: each
// call advances storage["counter"] by counterStep and returns the new
// total, so a first call against empty storage returns exactly 42.
func builtinIncrement(h *Host, address string, _ []value.Value) hostvm.CallResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.contracts[address]
	cur := new(big.Int)
	if s, ok := c.storage["counter"]; ok {
		cur.SetString(s, 10)
	}
	cur.Add(cur, big.NewInt(counterStep))
	c.storage["counter"] = cur.String()
	return ok(value.Int(value.TagI64, cur))
}

// builtinInitialize is the oracle demo's setup call: initialize(admin
// address, ttl_seconds u32).
func builtinInitialize(h *Host, address string, args []value.Value) hostvm.CallResult {
	if len(args) != 2 {
		return abort("initialize expects (admin: address, ttl_seconds: u32)")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.contracts[address]
	c.storage["admin"] = args[0].Display()
	c.storage["ttl_seconds"] = args[1].Display()
	return ok(value.Tuple(nil))
}

// builtinSetPrice is the oracle demo's write path: set_price(asset
// symbol, price u64).
func builtinSetPrice(h *Host, address string, args []value.Value) hostvm.CallResult {
	if len(args) != 2 {
		return abort("set_price expects (asset: symbol, price: u64)")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.contracts[address]
	c.storage["price:"+args[0].Display()] = args[1].Display()
	return ok(value.Tuple(nil))
}

// builtinGetPrice is the oracle demo's read path: get_price(asset
// symbol) -> u64. A price that was never set is a contract error rather
// than a Go-level fault, exercising the error-catalogue path.
func builtinGetPrice(h *Host, address string, args []value.Value) hostvm.CallResult {
	if len(args) != 1 {
		return abort("get_price expects (asset: symbol)")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.contracts[address]
	s, ok := c.storage["price:"+args[0].Display()]
	if !ok {
		return contractErr(1) // PriceNotSet, see the oracle demo's contractspec error enum
	}
	n := new(big.Int)
	n.SetString(s, 10)
	return hostvm.CallResult{Ok: true, Value: value.Int(value.TagU64, n)}
}

// builtinCallCrossContract exercises the mock dispatcher path:
// call_cross_contract(target address, function symbol, args vec).
func builtinCallCrossContract(h *Host, _ string, args []value.Value) hostvm.CallResult {
	if len(args) != 3 {
		return abort("call_cross_contract expects (target: address, function: symbol, args: vec)")
	}
	target := args[0].Display()
	function := args[1].Display()
	resp, err := h.callMock(target, function, args[2].Vec)
	if err != nil {
		return contractErr(2) // CrossCallFailed
	}
	return ok(resp)
}
