package utils

import (
	"context"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always present before calling functions
	ok, ov := []byte("asset"), []byte("owned")
	// some key, value to try to write
	nk, nv := []byte("wrapper"), []byte("pending")

	cases := map[string]struct {
		save    weave.Decorator
		handler weave.Handler
		check   bool // whether to call Check or Deliver
		wantErr *errors.Error

		written [][]byte
		missing [][]byte
	}{
		"savepoint not active, both written": {
			save:    NewSavepoint(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back on error": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back on error": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%s", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%s", k)
			}
		})
	}
}

// A savepoint must also roll back everything written by the decorators
// below it, so that a failing operation leaves no partial state.
func TestSavepointRollsBackNestedWrites(t *testing.T) {
	kv := store.MemStore()
	stack := weavetest.Decorate(
		weavetest.Decorate(
			&weavetest.Handler{DeliverErr: errors.ErrInsufficientAmount},
			writeDecorator{key: []byte("fee"), value: []byte("locked")},
		),
		NewSavepoint().OnDeliver(),
	)

	_, err := stack.Deliver(context.Background(), kv, nil)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	has, err := kv.Has([]byte("fee"))
	require.NoError(t, err)
	assert.False(t, has)
}

// writeDecorator stores a value before passing the call down the stack.
type writeDecorator struct {
	key   []byte
	value []byte
}

var _ weave.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	if err := store.Set(d.key, d.value); err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

func (d writeDecorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	if err := store.Set(d.key, d.value); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}
