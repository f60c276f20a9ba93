// Package errs defines the typed error taxonomy shared by every stage of
// the execution core, so callers can classify a failure with errors.Is
// without parsing message text.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBinary    = errors.New("invalid binary")
	ErrInvalidFunction  = errors.New("invalid function")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrExecutionError   = errors.New("execution error")
	ErrMockNotFound     = errors.New("mock not found")
	ErrTimeout          = errors.New("timeout")
	ErrLockPoisoned     = errors.New("lock poisoned")
)

func wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// InvalidBinary reports a malformed header or truncated section; fatal for
// the session that hit it.
func InvalidBinary(format string, args ...interface{}) error {
	return wrap(ErrInvalidBinary, format, args...)
}

// InvalidFunction reports that name is not among the contract's exports.
func InvalidFunction(name string) error {
	return wrap(ErrInvalidFunction, "%q is not an exported function", name)
}

// InvalidArguments reports malformed JSON, a type mismatch, an arity
// mismatch, or a malformed address/hex literal.
func InvalidArguments(format string, args ...interface{}) error {
	return wrap(ErrInvalidArguments, format, args...)
}

// ExecutionError reports a host-side failure, a conversion failure, or a
// storage-capture failure.
func ExecutionError(format string, args ...interface{}) error {
	return wrap(ErrExecutionError, format, args...)
}

// MockNotFound reports that the guest called an unmocked function on a
// contract address that has a mock dispatcher installed.
func MockNotFound(contractID, function string) error {
	return wrap(ErrMockNotFound, "%s:%s", contractID, function)
}

// LockPoisoned reports that the shared mock registry was left in an
// inconsistent state by a panic while the lock was held.
func LockPoisoned(msg string) error {
	return wrap(ErrLockPoisoned, "%s", msg)
}
