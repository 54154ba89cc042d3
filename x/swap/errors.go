package swap

import "github.com/iov-one/swapweave/errors"

// ErrInsufficientFee is returned when a deposit carries a fee below the
// minimum or in a currency other than the configured fee currency.
var ErrInsufficientFee = errors.Register(210, "insufficient fee")
