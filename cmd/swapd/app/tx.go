package app

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/x/asset"
	"github.com/iov-one/swapweave/x/cash"
	"github.com/iov-one/swapweave/x/sigs"
	"github.com/iov-one/swapweave/x/swap"
	amino "github.com/tendermint/go-amino"
)

var cdc = newCodec()

func newCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*weave.Msg)(nil), nil)
	cash.RegisterCodec(c)
	asset.RegisterCodec(c)
	swap.RegisterCodec(c)
	return c
}

// Tx is the transaction format of the swap chain: one message
// together with the signatures that authorize it.
type Tx struct {
	Msg        weave.Msg
	Signatures []*sigs.StdSignature
}

var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign, that is the transaction
// without any signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		return errors.Wrap(errors.ErrEmpty, "tx")
	}
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
