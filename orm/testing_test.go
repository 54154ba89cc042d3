package orm

import (
	"github.com/iov-one/swapweave/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// counter is a minimal model used by the tests in this package.
type counter struct {
	Count int64
	Owner []byte
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *counter) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

func (c *counter) Copy() CloneableData {
	return &counter{Count: c.Count, Owner: append([]byte(nil), c.Owner...)}
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "negative count")
	}
	return nil
}

func ownerIndex(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}
