package hostvm

import "github.com/nspcc-dev/contractdbg/internal/value"

// InvokeErrorKind discriminates the two ways a call can fail on the
// outer branch of CallResult: a typed contract error code, or an
// unstructured host abort (trap, budget exhaustion, explicit abort).
type InvokeErrorKind int

const (
	InvokeErrorContract InvokeErrorKind = iota
	InvokeErrorAbort
)

// InvokeError is the inner failure payload of a failed call.
type InvokeError struct {
	Kind    InvokeErrorKind
	Code    uint32 // meaningful when Kind == InvokeErrorContract
	Message string // meaningful when Kind == InvokeErrorAbort
}

// CallResult is the host's nested result: the outer branch is whether
// the call completed without an abort/contract error; the inner branch
// on each side is whether that branch's payload itself converted
// cleanly. Together the two branches reproduce the four-way (plus
// contract/abort split) trichotomy the invoker must route through the
// error catalogue without collapsing to a single error string.
type CallResult struct {
	// Ok selects the outer branch: true is ok(...), false is err(...).
	Ok bool

	// Value and ConvertErr are meaningful when Ok is true. A non-nil
	// ConvertErr means the returned value could not be reserialised
	// (ok(err(conv))); otherwise Value holds the successful result
	// (ok(ok(val))).
	Value      value.Value
	ConvertErr error

	// InvErr and InvErrConvertErr are meaningful when Ok is false. A
	// non-nil InvErrConvertErr means the error itself failed to
	// convert (err(err(conv))); otherwise InvErr names the contract
	// error code or abort reason (err(ok(inv_err))).
	InvErr           *InvokeError
	InvErrConvertErr error
}
