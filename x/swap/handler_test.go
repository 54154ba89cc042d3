package swap

import (
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	inter := weavetest.NewCondition()

	cases := map[string]struct {
		funds          int64
		signer         weave.Condition
		fee            *coin.Coin
		intermediary   weave.Address
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"minimum fee": {
			funds:        5000,
			signer:       alice,
			fee:          fee(MinFeeFractional),
			intermediary: inter.Address(),
		},
		"fee above minimum": {
			funds:        5000,
			signer:       alice,
			fee:          fee(4999),
			intermediary: inter.Address(),
		},
		"fee below minimum": {
			funds:          5000,
			signer:         alice,
			fee:            fee(MinFeeFractional - 1),
			intermediary:   inter.Address(),
			wantCheckErr:   ErrInsufficientFee,
			wantDeliverErr: ErrInsufficientFee,
		},
		"fee in a wrong currency": {
			funds:          5000,
			signer:         alice,
			fee:            coin.NewCoinp(1, 0, "ETH"),
			intermediary:   inter.Address(),
			wantCheckErr:   ErrInsufficientFee,
			wantDeliverErr: ErrInsufficientFee,
		},
		"fee too large to be paired": {
			funds:          5000,
			signer:         alice,
			fee:            coin.NewCoinp(600000000000000, 0, feeTicker),
			intermediary:   inter.Address(),
			wantCheckErr:   errors.ErrOverflow,
			wantDeliverErr: errors.ErrOverflow,
		},
		"missing fee": {
			funds:          5000,
			signer:         alice,
			intermediary:   inter.Address(),
			wantCheckErr:   ErrInsufficientFee,
			wantDeliverErr: ErrInsufficientFee,
		},
		"not the asset owner": {
			funds:          5000,
			signer:         bob,
			fee:            fee(MinFeeFractional),
			intermediary:   inter.Address(),
			wantCheckErr:   errors.ErrInvalidOwnership,
			wantDeliverErr: errors.ErrInvalidOwnership,
		},
		"cannot pay the fee": {
			funds:          999,
			signer:         alice,
			fee:            fee(MinFeeFractional),
			intermediary:   inter.Address(),
			wantDeliverErr: errors.ErrInsufficientAmount,
		},
		"no wallet at all": {
			signer:         alice,
			fee:            fee(MinFeeFractional),
			intermediary:   inter.Address(),
			wantDeliverErr: errors.ErrEmpty,
		},
		"missing intermediary": {
			funds:          5000,
			signer:         alice,
			fee:            fee(MinFeeFractional),
			wantCheckErr:   errors.ErrInvalidInput,
			wantDeliverErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newWorld(t)
			assetID := w.issue(t, 42, 7, alice)
			if tc.funds > 0 {
				w.fund(t, alice, tc.funds)
			}

			msg := &DepositMsg{AssetID: assetID, Fee: tc.fee, Intermediary: tc.intermediary}
			if err := w.check(tc.signer, msg); !tc.wantCheckErr.Is(err) {
				t.Fatalf("check: want %q error, got %+v", tc.wantCheckErr, err)
			}
			res, err := w.deliver(tc.signer, msg)
			if !tc.wantDeliverErr.Is(err) {
				t.Fatalf("deliver: want %q error, got %+v", tc.wantDeliverErr, err)
			}

			if err != nil {
				// nothing changed hands
				assert.Equal(t, alice.Address(), w.owner(t, assetID))
				assert.Equal(t, tc.funds, w.balance(t, alice.Address()))
				assert.False(t, w.hasWrapper(t, weavetest.SequenceID(1)))
				return
			}

			id := res.Data
			require.True(t, w.hasWrapper(t, id))
			custody := CustodyAddress(id)
			assert.Equal(t, custody, w.owner(t, assetID))
			assert.Equal(t, tc.funds-tc.fee.Fractional, w.balance(t, alice.Address()))
			assert.Equal(t, tc.fee.Fractional, w.balance(t, custody))

			var wrapper Wrapper
			require.NoError(t, NewWrapperBucket().One(w.db, id, &wrapper))
			assert.Equal(t, alice.Address(), wrapper.Owner)
			assert.Equal(t, tc.intermediary, wrapper.Intermediary)
			assert.Equal(t, assetID, wrapper.AssetID)
			assert.True(t, tc.fee.Equals(wrapper.Fee))
		})
	}
}

func TestExecute(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	inter := weavetest.NewCondition()
	other := weavetest.NewCondition()

	cases := map[string]struct {
		// intermediaryB holds the wrapper of bob, inter by default
		intermediaryB weave.Condition
		// bobAsAlice makes alice deposit both wrappers
		bobAsAlice bool
		signer     weave.Condition
		msg        func(a, b []byte) *ExecuteMsg
		wantErr    *errors.Error
	}{
		"intermediary executes": {
			signer: inter,
			msg:    func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: a, WrapperB: b} },
		},
		"order of wrappers does not matter": {
			signer: inter,
			msg:    func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: b, WrapperB: a} },
		},
		"self swap of a single owner": {
			bobAsAlice: true,
			signer:     inter,
			msg:        func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: a, WrapperB: b} },
		},
		"owner cannot execute": {
			signer:  alice,
			msg:     func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: a, WrapperB: b} },
			wantErr: errors.ErrInvalidOwnership,
		},
		"same wrapper twice": {
			signer:  inter,
			msg:     func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: a, WrapperB: a} },
			wantErr: errors.ErrInvalidInput,
		},
		"unknown wrapper": {
			signer: inter,
			msg: func(a, b []byte) *ExecuteMsg {
				return &ExecuteMsg{WrapperA: a, WrapperB: weavetest.SequenceID(77)}
			},
			wantErr: errors.ErrInvalidOwnership,
		},
		"different intermediaries": {
			intermediaryB: other,
			signer:        inter,
			msg:           func(a, b []byte) *ExecuteMsg { return &ExecuteMsg{WrapperA: a, WrapperB: b} },
			wantErr:       errors.ErrInvalidOwnership,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newWorld(t)
			second := bob
			if tc.bobAsAlice {
				second = alice
			}
			interB := inter
			if tc.intermediaryB != nil {
				interB = tc.intermediaryB
			}

			assetA := w.issue(t, 42, 7, alice)
			assetB := w.issue(t, 34, 4, second)
			w.fund(t, alice, 2000)
			if !tc.bobAsAlice {
				w.fund(t, bob, 3000)
			}

			resA, err := w.deliver(alice, &DepositMsg{AssetID: assetA, Fee: fee(1000), Intermediary: inter.Address()})
			require.NoError(t, err)
			resB, err := w.deliver(second, &DepositMsg{AssetID: assetB, Fee: fee(1000), Intermediary: interB.Address()})
			require.NoError(t, err)

			msg := tc.msg(resA.Data, resB.Data)
			if err := w.check(tc.signer, msg); !tc.wantErr.Is(err) {
				t.Fatalf("check: want %q error, got %+v", tc.wantErr, err)
			}
			res, err := w.deliver(tc.signer, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %q error, got %+v", tc.wantErr, err)
			}

			if err != nil {
				// both wrappers are still pending and hold their content
				assert.True(t, w.hasWrapper(t, resA.Data))
				assert.True(t, w.hasWrapper(t, resB.Data))
				assert.Equal(t, CustodyAddress(resA.Data), w.owner(t, assetA))
				assert.Equal(t, CustodyAddress(resB.Data), w.owner(t, assetB))
				assert.Equal(t, int64(0), w.balance(t, inter.Address()))
				return
			}

			assert.Equal(t, second.Address(), w.owner(t, assetA))
			assert.Equal(t, alice.Address(), w.owner(t, assetB))
			assert.Equal(t, int64(2000), w.balance(t, inter.Address()))
			assert.Equal(t, int64(0), w.balance(t, CustodyAddress(resA.Data)))
			assert.Equal(t, int64(0), w.balance(t, CustodyAddress(resB.Data)))
			assert.False(t, w.hasWrapper(t, resA.Data))
			assert.False(t, w.hasWrapper(t, resB.Data))
			assert.Contains(t, res.Tags, weave.Tag(TagExecutor, []byte(inter.Address().String())))
			assert.Contains(t, res.Log, "0.000002 FEE")

			// a consumed wrapper cannot be executed again
			_, err = w.deliver(tc.signer, msg)
			assert.True(t, errors.ErrInvalidOwnership.Is(err))
			assert.Equal(t, int64(2000), w.balance(t, inter.Address()))
		})
	}
}

func TestPendingAssetStaysReadable(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	inter := weavetest.NewCondition()

	w := newWorld(t)
	assetID := w.issue(t, 42, 7, alice)
	w.fund(t, alice, 1000)
	res, err := w.deliver(alice, &DepositMsg{AssetID: assetID, Fee: fee(1000), Intermediary: inter.Address()})
	require.NoError(t, err)

	held, err := w.assets.ByOwner(w.db, CustodyAddress(res.Data))
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, assetID, held[0].ID)
	assert.Equal(t, uint64(42), held[0].Magic)
	assert.Equal(t, uint64(7), held[0].Strength)

	left, err := w.assets.ByOwner(w.db, alice.Address())
	require.NoError(t, err)
	assert.Empty(t, left)

	// the former owner can see the asset but not take it back
	err = w.assets.Transfer(w.db, assetID, alice.Address(), bob.Address())
	assert.True(t, errors.ErrInvalidOwnership.Is(err))
	assert.Equal(t, CustodyAddress(res.Data), w.owner(t, assetID))
}
