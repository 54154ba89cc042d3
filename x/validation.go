package x

import (
	"github.com/iov-one/swapweave/errors"
)

// Validater is any model or message that can check its own state.
type Validater interface {
	Validate() error
}

// ValidateAll returns the first failure of the given validaters, annotated
// with its position.
func ValidateAll(vs ...Validater) error {
	for i, v := range vs {
		if v == nil {
			return errors.Wrapf(errors.ErrEmpty, "element %d", i)
		}
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}
