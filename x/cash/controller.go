package cash

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that lock or pay out funds.
type Controller interface {
	Balance(weave.ReadOnlyKVStore, weave.Address) (coin.Coins, error)
	MoveCoins(weave.KVStore, weave.Address, weave.Address, coin.Coin) error
	CoinMinter
}

// CoinMinter can increase the number of coins held by an address.
type CoinMinter interface {
	CoinMint(weave.KVStore, weave.Address, coin.Coin) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the address. A missing wallet
// results in ErrNotFound.
func (c BaseController) Balance(store weave.ReadOnlyKVStore, src weave.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account state")
	}
	if w == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no wallet")
	}
	return w.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store weave.KVStore,
	src weave.Address, dest weave.Address, amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrap(errors.ErrInsufficientAmount, "funds")
	}
	if err := sender.Subtract(amount); err != nil {
		return errors.Wrap(err, "cannot subtract")
	}
	if err := c.bucket.Save(store, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// Load the recipient only after the sender was saved, so that moving
	// coins to the same address is a noop.
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return errors.Wrap(err, "cannot add")
	}
	return c.bucket.Save(store, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) CoinMint(store weave.KVStore,
	dest weave.Address, amount coin.Coin) error {

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
