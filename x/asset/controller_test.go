package asset

import (
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry()
	admin := weavetest.NewCondition().Address()

	_, err := reg.Issuer(db)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, reg.Bootstrap(db, admin))
	issuer, err := reg.Issuer(db)
	require.NoError(t, err)
	assert.Equal(t, admin, issuer.Admin)
	assert.Equal(t, uint64(0), issuer.Issued)

	err = reg.Bootstrap(db, weavetest.NewCondition().Address())
	assert.True(t, errors.ErrDuplicate.Is(err))

	// the first administrator remains
	issuer, err = reg.Issuer(db)
	require.NoError(t, err)
	assert.Equal(t, admin, issuer.Admin)

	err = reg.Bootstrap(store.MemStore(), weave.Address("short"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestIssueIsMonotonic(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry()
	require.NoError(t, reg.Bootstrap(db, weavetest.NewCondition().Address()))

	alice := weavetest.NewCondition().Address()
	const n = 5
	seen := make(map[string]bool)
	for i := uint64(0); i < n; i++ {
		a, err := reg.Issue(db, i*10, i, alice)
		require.NoError(t, err)
		assert.False(t, seen[string(a.ID)], "id %X reused", a.ID)
		seen[string(a.ID)] = true

		issued, err := reg.Issued(db)
		require.NoError(t, err)
		assert.Equal(t, i+1, issued)

		got, err := reg.Get(db, a.ID)
		require.NoError(t, err)
		assert.Equal(t, i*10, got.Magic)
		assert.Equal(t, i, got.Strength)
		assert.Equal(t, alice, got.Owner)
	}

	owned, err := reg.ByOwner(db, alice)
	require.NoError(t, err)
	assert.Len(t, owned, n)
}

func TestIssueRequiresBootstrap(t *testing.T) {
	db := store.MemStore()
	_, err := NewRegistry().Issue(db, 1, 2, weavetest.NewCondition().Address())
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestTransfer(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		id      []byte
		from    weave.Address
		to      weave.Address
		wantErr *errors.Error
		owner   weave.Address
	}{
		"owner gives the asset away": {
			id:    weavetest.SequenceID(1),
			from:  alice,
			to:    bob,
			owner: bob,
		},
		"transfer to self": {
			id:    weavetest.SequenceID(1),
			from:  alice,
			to:    alice,
			owner: alice,
		},
		"not the owner": {
			id:      weavetest.SequenceID(1),
			from:    bob,
			to:      bob,
			wantErr: errors.ErrInvalidOwnership,
			owner:   alice,
		},
		"unknown asset": {
			id:      weavetest.SequenceID(99),
			from:    alice,
			to:      bob,
			wantErr: errors.ErrNotFound,
			owner:   alice,
		},
		"invalid recipient": {
			id:      weavetest.SequenceID(1),
			from:    alice,
			to:      weave.Address("x"),
			wantErr: errors.ErrInvalidInput,
			owner:   alice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			reg := NewRegistry()
			require.NoError(t, reg.Bootstrap(db, alice))
			a, err := reg.Issue(db, 42, 7, alice)
			require.NoError(t, err)

			err = reg.Transfer(db, tc.id, tc.from, tc.to)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}

			got, err := reg.Get(db, a.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.owner, got.Owner)

			// the owner index follows the asset
			owned, err := reg.ByOwner(db, tc.owner)
			require.NoError(t, err)
			require.Len(t, owned, 1)
			assert.Equal(t, a.ID, owned[0].ID)
		})
	}
}
