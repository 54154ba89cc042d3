package orm

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr weave.Iterator) []weave.Model {
	defer itr.Close()

	var res []weave.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, weave.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// ValidateSequence returns an error if this is not an 8-byte
// sequence value as allocated by Sequence
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInvalidInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
