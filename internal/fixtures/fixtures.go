// Package fixtures builds the small set of demo contract images the CLI
// ships with and the core's tests exercise against: a counter, an
// oracle price feed, and a cross-contract caller, all runnable against
// the fakehost reference sandbox without a real guest-bytecode compiler.
package fixtures

import "github.com/nspcc-dev/contractdbg/internal/wasmreader"

// Counter returns a module exporting increment() -> i64.
func Counter() []byte {
	return wasmreader.NewBuilder().
		AddFunction("increment", nil, []wasmreader.GuestType{wasmreader.TypeI64}).
		SetContractSpec(wasmreader.ContractSpec{
			Functions: []wasmreader.ContractSpecFunction{
				{Name: "increment"},
			},
		}).
		Bytes()
}

// Oracle returns a module exporting initialize, set_price, and
// get_price, matching the "oracle set-then-get" reference scenario.
func Oracle() []byte {
	return wasmreader.NewBuilder().
		AddFunction("initialize",
			[]wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU32}, nil).
		AddFunction("set_price",
			[]wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU64}, nil).
		AddFunction("get_price",
			[]wasmreader.GuestType{wasmreader.TypeU32}, []wasmreader.GuestType{wasmreader.TypeU64}).
		SetContractSpec(wasmreader.ContractSpec{
			Functions: []wasmreader.ContractSpecFunction{
				{Name: "initialize", Params: []wasmreader.ContractSpecParameter{
					{Name: "admin", TypeName: "address"},
					{Name: "ttl_seconds", TypeName: "u32"},
				}},
				{Name: "set_price", Params: []wasmreader.ContractSpecParameter{
					{Name: "asset", TypeName: "symbol"},
					{Name: "price", TypeName: "u64"},
				}},
				{Name: "get_price", Params: []wasmreader.ContractSpecParameter{
					{Name: "asset", TypeName: "symbol"},
				}},
			},
			Errors: []wasmreader.ContractSpecError{
				{Code: 1, Name: "PriceNotSet", Doc: "no price has been recorded for this asset yet"},
				{Code: 2, Name: "CrossCallFailed", Doc: "a cross-contract call could not be serviced"},
			},
		}).
		Bytes()
}

// CrossCaller returns a module exporting call_cross_contract(address,
// symbol, vec) for exercising the mock registry end to end.
func CrossCaller() []byte {
	return wasmreader.NewBuilder().
		AddFunction("call_cross_contract",
			[]wasmreader.GuestType{wasmreader.TypeU32, wasmreader.TypeU32, wasmreader.TypeU32}, nil).
		SetContractSpec(wasmreader.ContractSpec{
			Functions: []wasmreader.ContractSpecFunction{
				{Name: "call_cross_contract", Params: []wasmreader.ContractSpecParameter{
					{Name: "target", TypeName: "address"},
					{Name: "function", TypeName: "symbol"},
					{Name: "args", TypeName: "Vec<symbol>"},
				}},
			},
		}).
		Bytes()
}
