package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/iov-one/swapweave/weavetest/assert"
	"github.com/iov-one/swapweave/x/utils"
)

// panicHandler panics on every call to test recovery in the chain.
type panicHandler struct{}

func (panicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic("check boom")
}

func (panicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic("deliver boom")
}

func TestChain(t *testing.T) {
	d1 := &weavetest.Decorator{}
	d2 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		d1,
		utils.NewLogging(),
		utils.NewRecovery(),
		d2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/issue"}}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanic(t *testing.T) {
	inner := &weavetest.Decorator{}
	stack := ChainDecorators(
		utils.NewRecovery(),
		inner,
	).WithHandler(panicHandler{})

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/execute"}}

	_, err := stack.Check(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, 2, inner.CallCount())
}

func TestChainSkipsNilDecorators(t *testing.T) {
	var missing *weavetest.Decorator
	d := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(nil, d, missing).WithHandler(h)
	_, err := stack.Check(context.Background(), nil, &weavetest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, d.CheckCallCount())
	assert.Equal(t, 1, h.CheckCallCount())
}
