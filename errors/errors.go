package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors. Codes are part of the ABCI responses and must never change.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrEmpty              = Register(9, "value is empty")
	ErrInvalidState       = Register(10, "invalid state")
	ErrInvalidType        = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrInvalidAmount      = Register(13, "invalid amount")
	ErrInvalidInput       = Register(14, "invalid input")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrCurrency           = Register(17, "currency")
	ErrDatabase           = Register(18, "database")

	// ErrInvalidOwnership is returned when an asset or a wrapper is used
	// by an account that does not hold it, or when it does not exist
	// anymore.
	ErrInvalidOwnership = Register(19, "invalid ownership")

	ErrInvalidSignature = Register(20, "invalid signature")

	// ErrPanic is only set by Recover. Its message is never shown to a
	// client.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered code. Code 1 is reserved for internal
// errors.
var registry = map[uint32]*Error{1: nil}

// Register declares a new root error. It panics if the code is taken, so
// it must only be called while the program starts.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered for %v", code, prev))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error with an ABCI code. Returned errors wrap one of
// them, so the kind survives any number of Wrap calls.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is returns true if err is this kind or wraps it. A nil kind matches a
// nil error only, including a typed nil.
func (e *Error) Is(err error) bool {
	if e == nil {
		if err == nil {
			return true
		}
		v := reflect.ValueOf(err)
		return v.Kind() == reflect.Ptr && v.IsNil()
	}
	return walk(err, func(cur error) bool { return cur == e })
}

// Wrap annotates err with a description. A stack trace is recorded at the
// innermost wrap only. Wrap of nil is nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// walk calls fn for err and every error it wraps, outermost first, until
// fn returns true.
func walk(err error, fn func(error) bool) bool {
	for err != nil {
		if fn(err) {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// stackTrace returns the first stack trace found while unwrapping err.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		t, ok := cur.(interface{ StackTrace() errors.StackTrace })
		if ok {
			st = t.StackTrace()
		}
		return ok
	})
	return st
}
