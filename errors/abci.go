package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the ABCI code of a successfully processed request.
	SuccessABCICode = 0

	// Errors that carry no ABCI code are internal. They are reported with
	// this code and, outside of debug mode, with a generic log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and the log that should be used in an ABCI
// response for the given error.
//
// Only errors registered in this package (or any error that provides an
// ABCICode method) expose their message. All other errors are internal and
// their message is hidden unless debug is set. In debug mode the log is
// formatted with %+v so that a stack trace is included when available.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	return code, Redact(err, false).Error()
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the outermost error that provides one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	walk(err, func(cur error) bool {
		c, ok := cur.(coder)
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}

// errIsNil returns true if value represented by the given error is nil.
// A typed nil pointer stored in an error interface is nil as well.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces internal errors and recovered panics with a generic
// internal error, so that only errors declared by the application reach a
// client. In debug mode the error is returned unchanged.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
