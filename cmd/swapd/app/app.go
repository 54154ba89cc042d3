/*
Package app links together all the various components
to construct the swapd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/app"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
	"github.com/iov-one/swapweave/store/iavl"
	"github.com/iov-one/swapweave/x"
	"github.com/iov-one/swapweave/x/asset"
	"github.com/iov-one/swapweave/x/cash"
	"github.com/iov-one/swapweave/x/sigs"
	"github.com/iov-one/swapweave/x/swap"
	"github.com/iov-one/swapweave/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, dispatching to cash, asset and
// swap messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	wallets := cash.NewController(cash.NewBucket())
	assets := asset.NewRegistry()
	cash.RegisterRoutes(r, authFn, wallets)
	asset.RegisterRoutes(r, authFn, assets)
	swap.RegisterRoutes(r, authFn, assets, wallets)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/assets" and "/"
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		asset.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns all genesis initializers of the application.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		asset.Initializer{},
		swap.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h weave.Handler,
	tx weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStore("", "swapd"), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "database path %q: %s", dbPath, err)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
