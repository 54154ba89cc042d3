package swap

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/gconf"
	"github.com/iov-one/swapweave/orm"
	"github.com/iov-one/swapweave/x"
	"github.com/iov-one/swapweave/x/asset"
	"github.com/iov-one/swapweave/x/cash"
)

const (
	depositCost int64 = 100
	executeCost int64 = 200
)

// Tag keys added to the result of an executed swap.
const (
	TagWrapper  = "swap.wrapper"
	TagExecutor = "swap.executor"
)

// RegisterRoutes registers handlers for swap messages.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, assets asset.Controller, wallets cash.Controller) {
	bucket := NewWrapperBucket()
	r.Handle(pathDepositMsg, &DepositHandler{
		auth:    auth,
		assets:  assets,
		wallets: wallets,
		bucket:  bucket,
		ids:     orm.NewSequence(BucketName, orm.SeqID),
	})
	r.Handle(pathExecuteMsg, &ExecuteHandler{
		auth:    auth,
		assets:  assets,
		wallets: wallets,
		bucket:  bucket,
	})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// DepositHandler creates a pending wrapper from an asset and a fee.
type DepositHandler struct {
	auth    x.Authenticator
	assets  asset.Controller
	wallets cash.Controller
	bucket  orm.ModelBucket
	ids     orm.Sequence
}

var _ weave.Handler = (*DepositHandler)(nil)

func (h *DepositHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver returns the id of the new wrapper as the result data.
func (h *DepositHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.ids.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot allocate wrapper id")
	}
	custody := CustodyAddress(id)

	// The caller gives up both the asset and the fee. If any of the moves
	// fails, the whole transaction is discarded.
	if err := h.assets.Transfer(db, msg.AssetID, owner, custody); err != nil {
		return nil, errors.Wrap(err, "lock asset")
	}
	if err := h.wallets.MoveCoins(db, owner, custody, *msg.Fee); err != nil {
		return nil, errors.Wrap(err, "lock fee")
	}

	wrapper := Wrapper{
		Owner:        owner,
		Intermediary: msg.Intermediary,
		AssetID:      msg.AssetID,
		Fee:          *msg.Fee,
	}
	if _, err := h.bucket.Put(db, id, &wrapper); err != nil {
		return nil, errors.Wrap(err, "cannot save wrapper")
	}

	weave.GetLogger(ctx).Debug("wrapper deposited", "wrapper", id, "intermediary", msg.Intermediary)
	return &weave.DeliverResult{Data: id}, nil
}

// validate checks the fee before the ownership, a deposit below the
// minimum fee never reaches the registry.
func (h *DepositHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*DepositMsg, weave.Address, error) {
	var msg DepositMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.CheckFee(*msg.Fee); err != nil {
		return nil, nil, err
	}

	a, err := h.assets.Get(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, a.Owner, errors.ErrInvalidOwnership); err != nil {
		return nil, nil, errors.Wrap(err, "asset owner")
	}
	return &msg, a.Owner, nil
}

// ExecuteHandler consumes a pair of wrappers.
type ExecuteHandler struct {
	auth    x.Authenticator
	assets  asset.Controller
	wallets cash.Controller
	bucket  orm.ModelBucket
}

var _ weave.Handler = (*ExecuteHandler)(nil)

func (h *ExecuteHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: executeCost}, nil
}

// Deliver delivers each asset to the owner of the other wrapper and pays
// both fees to the intermediary. The total fee is returned as the result
// log.
func (h *ExecuteHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	pair, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	a, b := pair.a, pair.b
	executor := a.Intermediary

	if err := h.assets.Transfer(db, a.AssetID, CustodyAddress(pair.idA), b.Owner); err != nil {
		return nil, errors.Wrap(err, "deliver asset a")
	}
	if err := h.assets.Transfer(db, b.AssetID, CustodyAddress(pair.idB), a.Owner); err != nil {
		return nil, errors.Wrap(err, "deliver asset b")
	}

	// Both fees are gathered in the custody of the first wrapper and paid
	// out in a single move.
	if err := h.wallets.MoveCoins(db, CustodyAddress(pair.idB), CustodyAddress(pair.idA), b.Fee); err != nil {
		return nil, errors.Wrap(err, "gather fee b")
	}
	if err := h.wallets.MoveCoins(db, CustodyAddress(pair.idA), executor, pair.total); err != nil {
		return nil, errors.Wrap(err, "pay fee")
	}

	if err := h.bucket.Delete(db, pair.idA); err != nil {
		return nil, errors.Wrap(err, "consume wrapper a")
	}
	if err := h.bucket.Delete(db, pair.idB); err != nil {
		return nil, errors.Wrap(err, "consume wrapper b")
	}

	weave.GetLogger(ctx).Debug("swap executed", "executor", executor, "fee", pair.total.String())
	return &weave.DeliverResult{
		Log: "swap executed, fee " + pair.total.String(),
		Tags: []weave.KVPair{
			weave.Tag(TagWrapper, pair.idA),
			weave.Tag(TagWrapper, pair.idB),
			weave.Tag(TagExecutor, []byte(executor.String())),
		},
	}, nil
}

type wrapperPair struct {
	idA, idB []byte
	a, b     *Wrapper
	total    coin.Coin
}

// validate loads both wrappers and ensures the signer holds both of them.
// A wrapper that does not exist was either never created or already
// consumed, which is an ownership failure for the caller.
func (h *ExecuteHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*wrapperPair, error) {
	var msg ExecuteMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	a, err := h.load(db, msg.WrapperA)
	if err != nil {
		return nil, errors.Wrap(err, "wrapper a")
	}
	b, err := h.load(db, msg.WrapperB)
	if err != nil {
		return nil, errors.Wrap(err, "wrapper b")
	}
	if !a.Intermediary.Equals(b.Intermediary) {
		return nil, errors.Wrap(errors.ErrInvalidOwnership, "wrappers held by different intermediaries")
	}
	if err := x.RequireSigner(ctx, h.auth, a.Intermediary, errors.ErrInvalidOwnership); err != nil {
		return nil, errors.Wrap(err, "intermediary")
	}
	total, err := a.Fee.Add(b.Fee)
	if err != nil {
		return nil, errors.Wrap(err, "total fee")
	}
	return &wrapperPair{idA: msg.WrapperA, idB: msg.WrapperB, a: a, b: b, total: total}, nil
}

func (h *ExecuteHandler) load(db weave.ReadOnlyKVStore, id []byte) (*Wrapper, error) {
	var w Wrapper
	switch err := h.bucket.One(db, id, &w); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrInvalidOwnership, "no pending wrapper %X", id)
	case err != nil:
		return nil, err
	}
	return &w, nil
}
