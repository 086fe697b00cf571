// Package simerrors defines the error kinds produced by the simulation
// core and the fatal/recoverable split described for them: unit and
// numeric parse errors are ordinary Go errors a caller can inspect and
// recover from, everything else is a programmer error that terminates
// the process, following the same two-tier model lazydocker uses for
// ComplexError vs WrapError.
package simerrors

import (
	"fmt"
	"os"

	goerrors "github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Code identifies one of the error kinds the core can produce.
type Code int

const (
	// UnitParse means a Length unit string was not recognized.
	UnitParse Code = iota
	// NumericParse means the numeric prefix of a Length string was malformed.
	NumericParse
	// DivByZero means Div or Mod was called with a zero denominator.
	DivByZero
	// NegativeDelay means Schedule was called with delay < 0.
	NegativeDelay
	// ThreadUnsafeCall means a main-thread-only operation was invoked from
	// a non-main goroutine.
	ThreadUnsafeCall
	// RefcountUnderflow means an EventImpl reference count would go below zero.
	RefcountUnderflow
	// SchedulerEmpty means PeekNext/RemoveNext was called on an empty scheduler.
	SchedulerEmpty
)

func (c Code) String() string {
	switch c {
	case UnitParse:
		return "UnitParse"
	case NumericParse:
		return "NumericParse"
	case DivByZero:
		return "DivByZero"
	case NegativeDelay:
		return "NegativeDelay"
	case ThreadUnsafeCall:
		return "ThreadUnsafeCall"
	case RefcountUnderflow:
		return "RefcountUnderflow"
	case SchedulerEmpty:
		return "SchedulerEmpty"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// ComplexError is an error which carries a Code so that calling code has
// an easier job to do, adapted from
// https://medium.com/yakka/better-go-error-handling-with-xerrors-1987650e0c79
// the same way lazydocker's pkg/commands/errors.go adapts it.
type ComplexError struct {
	Message string
	Code    Code
	frame   xerrors.Frame
}

// New builds a ComplexError capturing the caller's frame.
func New(code Code, message string) ComplexError {
	return ComplexError{
		Message: message,
		Code:    code,
		frame:   xerrors.Caller(1),
	}
}

// FormatError implements xerrors.Formatter.
func (ce ComplexError) FormatError(p xerrors.Printer) error {
	p.Printf("%s: %s", ce.Code, ce.Message)
	ce.frame.Format(p)
	return nil
}

// Format implements fmt.Formatter.
func (ce ComplexError) Format(f fmt.State, c rune) {
	xerrors.FormatError(ce, f, c)
}

func (ce ComplexError) Error() string {
	return fmt.Sprintf("%s: %s", ce.Code, ce.Message)
}

// HasCode reports whether err is (or wraps) a ComplexError with the given code.
func HasCode(err error, code Code) bool {
	var ce ComplexError
	if xerrors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// WrapError wraps an error for the sake of showing a stack trace at the
// top level. go-errors, for some reason, does not return nil when you try
// to wrap a non-error, so we guard for that here too.
func WrapError(err error) error {
	if err == nil {
		return err
	}
	return goerrors.Wrap(err, 0)
}

// Fatal logs the diagnostic (operation name and the ComplexError) through
// log if non-nil, then terminates the process. It never returns. This is
// the only path by which the core's fatal error kinds surface: there is
// no panic/recover contract for them per the core's error propagation
// policy.
func Fatal(log *logrus.Entry, operation string, err error) {
	wrapped := WrapError(err)
	msg := fmt.Sprintf("%s: %s", operation, wrapped.Error())
	if log != nil {
		if stackTracer, ok := wrapped.(*goerrors.Error); ok {
			log.Error(stackTracer.ErrorStack())
		} else {
			log.Error(msg)
		}
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
