package swap

import (
	"context"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/app"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/gconf"
	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/iov-one/swapweave/x/asset"
	"github.com/iov-one/swapweave/x/cash"
	"github.com/iov-one/swapweave/x/utils"
)

const feeTicker = "FEE"

// world is a fully wired swap environment backed by an in memory store.
type world struct {
	db      weave.CacheableKVStore
	assets  *asset.Registry
	wallets cash.BaseController
	auth    *weavetest.CtxAuth
	handler weave.Handler

	admin weave.Condition
	conf  weave.Condition
}

func newWorld(t testing.TB) *world {
	t.Helper()

	w := &world{
		db:      store.MemStore(),
		assets:  asset.NewRegistry(),
		wallets: cash.NewController(cash.NewBucket()),
		auth:    &weavetest.CtxAuth{Key: "swap-auth"},
		admin:   weavetest.NewCondition(),
		conf:    weavetest.NewCondition(),
	}
	if err := w.assets.Bootstrap(w.db, w.admin.Address()); err != nil {
		t.Fatalf("cannot bootstrap registry: %s", err)
	}
	config := Configuration{Owner: w.conf.Address(), FeeTicker: feeTicker}
	if err := gconf.Save(w.db, packageName, &config); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}

	rt := app.NewRouter()
	RegisterRoutes(rt, w.auth, w.assets, w.wallets)
	w.handler = app.ChainDecorators(
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(rt)
	return w
}

// issue creates an asset owned by the condition address.
func (w *world) issue(t testing.TB, magic, strength uint64, owner weave.Condition) []byte {
	t.Helper()
	a, err := w.assets.Issue(w.db, magic, strength, owner.Address())
	if err != nil {
		t.Fatalf("cannot issue asset: %s", err)
	}
	return a.ID
}

// fund gives the condition address the given amount of the fee currency.
func (w *world) fund(t testing.TB, owner weave.Condition, fractional int64) {
	t.Helper()
	if err := w.wallets.CoinMint(w.db, owner.Address(), coin.NewCoin(0, fractional, feeTicker)); err != nil {
		t.Fatalf("cannot fund account: %s", err)
	}
}

// check runs the message through the check phase on a discarded cache.
func (w *world) check(signer weave.Condition, msg weave.Msg) error {
	ctx := w.auth.SetConditions(context.Background(), signer)
	cache := w.db.CacheWrap()
	defer cache.Discard()
	_, err := w.handler.Check(ctx, cache, &weavetest.Tx{Msg: msg})
	return err
}

// deliver runs the message signed by the signer.
func (w *world) deliver(signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
	ctx := w.auth.SetConditions(context.Background(), signer)
	return w.handler.Deliver(ctx, w.db, &weavetest.Tx{Msg: msg})
}

func (w *world) owner(t testing.TB, assetID []byte) weave.Address {
	t.Helper()
	a, err := w.assets.Get(w.db, assetID)
	if err != nil {
		t.Fatalf("cannot get asset: %s", err)
	}
	return a.Owner
}

// balance returns the fee currency balance in fractional units, zero for
// a missing wallet.
func (w *world) balance(t testing.TB, addr weave.Address) int64 {
	t.Helper()
	coins, err := w.wallets.Balance(w.db, addr)
	if err != nil {
		return 0
	}
	for _, c := range coins {
		if c.Ticker == feeTicker {
			return c.Whole*coin.FracUnit + c.Fractional
		}
	}
	return 0
}

func (w *world) hasWrapper(t testing.TB, id []byte) bool {
	t.Helper()
	return NewWrapperBucket().Has(w.db, id) == nil
}

func fee(fractional int64) *coin.Coin {
	return coin.NewCoinp(0, fractional, feeTicker)
}
