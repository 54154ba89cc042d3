/*
Package errors implements the error kinds used by the swap application.

Every failure returned by a handler wraps one of the root errors declared
here, so a client can test the kind with ErrXyz.Is(err) and the ABCI layer
can turn it into a response code.

Register a custom root error with Register(code, description). Extensions
do this for errors that only make sense in their own domain (for example
x/swap declares ErrInsufficientFee).

Create errors with errors.Wrap(ErrXyz, "...") at the point of failure so
that a stacktrace is attached. Only the innermost wrap records a stack.
*/
package errors
