package invoker

import (
	"fmt"

	"github.com/nspcc-dev/contractdbg/internal/errorcatalog"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/value"
)

// OutcomeKind names which of the five rows of the result-trichotomy
// table a classified call landed on.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeResultConversionFailed
	OutcomeContractError
	OutcomeAborted
	OutcomeInvokeErrorConversionFailed
)

// Outcome is the classified form of a hostvm.CallResult: a closed tagged
// variant, never collapsed to a single error string, so contract-error
// codes can still be routed through the error catalogue.
type Outcome struct {
	Kind OutcomeKind

	// Value and Display are meaningful for OutcomeSuccess.
	Value   value.Value
	Display string

	// ErrorMessage is the one-line classification for every
	// non-success kind.
	ErrorMessage string

	// ContractErrorCode and ContractErrorDisplay are meaningful for
	// OutcomeContractError.
	ContractErrorCode    uint32
	ContractErrorDisplay string
}

// classify routes a host's nested call result through the five-row
// table: ok(ok(val)), ok(err(conv)), err(ok(Contract(code))),
// err(ok(Abort)), err(err(conv)).
func classify(cr hostvm.CallResult, errDB *errorcatalog.Database) Outcome {
	if cr.Ok {
		if cr.ConvertErr != nil {
			return Outcome{
				Kind:         OutcomeResultConversionFailed,
				ErrorMessage: fmt.Sprintf("Result conversion failed: %v", cr.ConvertErr),
			}
		}
		return Outcome{Kind: OutcomeSuccess, Value: cr.Value, Display: cr.Value.Debug()}
	}

	if cr.InvErrConvertErr != nil {
		return Outcome{
			Kind:         OutcomeInvokeErrorConversionFailed,
			ErrorMessage: fmt.Sprintf("Invocation failed with internal error: %v", cr.InvErrConvertErr),
		}
	}
	if cr.InvErr == nil {
		return Outcome{
			Kind:         OutcomeInvokeErrorConversionFailed,
			ErrorMessage: "invocation failed with internal error: no error detail reported",
		}
	}

	switch cr.InvErr.Kind {
	case hostvm.InvokeErrorContract:
		var display string
		if errDB != nil {
			display = errDB.DisplayError(cr.InvErr.Code)
		}
		return Outcome{
			Kind:                 OutcomeContractError,
			ErrorMessage:         fmt.Sprintf("Contract returned error code %d", cr.InvErr.Code),
			ContractErrorCode:    cr.InvErr.Code,
			ContractErrorDisplay: display,
		}
	default:
		return Outcome{
			Kind:         OutcomeAborted,
			ErrorMessage: fmt.Sprintf("Contract execution aborted: %s", cr.InvErr.Message),
		}
	}
}
