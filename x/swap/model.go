package swap

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where the pending wrappers are stored.
const BucketName = "wrapper"

var cdc = amino.NewCodec()

// Wrapper is a pending deposit. It binds the deposited asset and fee to
// the account that deposited them.
type Wrapper struct {
	Owner        weave.Address `json:"owner"`
	Intermediary weave.Address `json:"intermediary"`
	AssetID      []byte        `json:"asset_id"`
	Fee          coin.Coin     `json:"fee"`
}

var _ orm.Model = (*Wrapper)(nil)

func (w *Wrapper) Validate() error {
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := w.Intermediary.Validate(); err != nil {
		return errors.Wrap(err, "intermediary")
	}
	if err := orm.ValidateSequence(w.AssetID); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if err := w.Fee.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	if !w.Fee.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "fee must be positive")
	}
	return nil
}

func (w *Wrapper) Copy() orm.CloneableData {
	return &Wrapper{
		Owner:        append(weave.Address(nil), w.Owner...),
		Intermediary: append(weave.Address(nil), w.Intermediary...),
		AssetID:      append([]byte(nil), w.AssetID...),
		Fee:          *w.Fee.Clone(),
	}
}

func (w *Wrapper) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *Wrapper) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, w)
}

// NewWrapperBucket returns a bucket for pending wrappers. It must never be
// registered for queries.
func NewWrapperBucket() orm.ModelBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wrapper{}))
	return orm.NewModelBucket(b)
}

// Condition returns the condition that owns the content of the wrapper
// with the given id.
func Condition(wrapperID []byte) weave.Condition {
	return weave.NewCondition("swap", "wrap", wrapperID)
}

// CustodyAddress is the address holding the asset and the fee of a
// pending wrapper.
func CustodyAddress(wrapperID []byte) weave.Address {
	return Condition(wrapperID).Address()
}

// RegisterCodec adds the messages of this package to a transaction codec.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&DepositMsg{}, pathDepositMsg, nil)
	c.RegisterConcrete(&ExecuteMsg{}, pathExecuteMsg, nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, pathUpdateConfigurationMsg, nil)
}
