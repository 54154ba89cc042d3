package gconf

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	amino "github.com/tendermint/go-amino"
)

var testCdc = amino.NewCodec()

type myconfig struct {
	Owner weave.Address
	Num   int64
	Str   string
	Cn    coin.Coin
}

var _ OwnedConfig = (*myconfig)(nil)

func (c *myconfig) GetOwner() weave.Address    { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return testCdc.MarshalBinaryBare(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return testCdc.UnmarshalBinaryBare(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := c.Cn.Validate(); err != nil {
		return errors.Wrap(err, "coin")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ weave.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return testCdc.MarshalBinaryBare(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return testCdc.UnmarshalBinaryBare(raw, msg) }
func (msg *myconfigMsg) Path() string               { return "myconfig" }
func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
