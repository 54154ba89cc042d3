package asset

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis   string
		wantErr   *errors.Error
		wantAdmin string
	}{
		"no asset section": {
			genesis: `{}`,
		},
		"admin given": {
			genesis:   `{"asset": {"admin": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}}`,
			wantAdmin: "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		},
		"admin as condition": {
			genesis:   `{"asset": {"admin": "cond:sigs/ed25519/0102030405"}}`,
			wantAdmin: "cond:sigs/ed25519/0102030405",
		},
		"invalid admin": {
			genesis: `{"asset": {"admin": "1234"}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
			if tc.wantAdmin == "" {
				return
			}
			want, err := weave.ParseAddress(tc.wantAdmin)
			require.NoError(t, err)
			issuer, err := NewRegistry().Issuer(db)
			require.NoError(t, err)
			assert.Equal(t, want, issuer.Admin)
		})
	}
}
