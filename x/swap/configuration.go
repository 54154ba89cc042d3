package swap

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/gconf"
)

// packageName is used as the configuration key.
const packageName = "swap"

// MinFeeFractional is the smallest fee a deposit can carry, in fractional
// units of the fee currency.
const MinFeeFractional = 1000

// Configuration holds the settings of the swap extension.
type Configuration struct {
	Owner     weave.Address `json:"owner"`
	FeeTicker string        `json:"fee_ticker"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !coin.IsCC(c.FeeTicker) {
		return errors.Wrapf(errors.ErrCurrency, "fee ticker %q", c.FeeTicker)
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

// MinFee returns the smallest acceptable deposit fee.
func (c *Configuration) MinFee() coin.Coin {
	return coin.NewCoin(0, MinFeeFractional, c.FeeTicker)
}

// CheckFee returns ErrInsufficientFee unless the fee is paid in the fee
// currency and is not below the minimum. A fee is also rejected when twice
// its amount overflows, so the fees of any two wrappers can be summed.
func (c *Configuration) CheckFee(fee coin.Coin) error {
	min := c.MinFee()
	if !fee.SameType(min) {
		return errors.Wrapf(ErrInsufficientFee, "fee must be paid in %s", c.FeeTicker)
	}
	if !fee.IsGTE(min) {
		return errors.Wrapf(ErrInsufficientFee, "minimum fee is %s", min)
	}
	if _, err := fee.Add(fee); err != nil {
		return errors.Wrap(err, "fee cannot be paired")
	}
	return nil
}

// loadConfiguration returns the current configuration of the extension.
func loadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
