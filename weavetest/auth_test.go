package weavetest

import (
	"context"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticators(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	ctxAuth := &CtxAuth{Key: "auth"}
	withAB := ctxAuth.SetConditions(context.Background(), a, b)

	cases := map[string]struct {
		ctx  weave.Context
		auth interface {
			GetConditions(weave.Context) []weave.Condition
			HasAddress(weave.Context, weave.Address) bool
		}
		want []weave.Condition
	}{
		"no signers":           {ctx: context.Background(), auth: &Auth{}},
		"signer":               {ctx: context.Background(), auth: &Auth{Signer: a}, want: []weave.Condition{a}},
		"signers":              {ctx: context.Background(), auth: &Auth{Signers: []weave.Condition{a, b}}, want: []weave.Condition{a, b}},
		"signer after signers": {ctx: context.Background(), auth: &Auth{Signer: b, Signers: []weave.Condition{a}}, want: []weave.Condition{a, b}},
		"context":              {ctx: withAB, auth: ctxAuth, want: []weave.Condition{a, b}},
		"empty context":        {ctx: context.Background(), auth: ctxAuth},
		"context of other key": {ctx: withAB, auth: &CtxAuth{Key: "other"}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.auth.GetConditions(tc.ctx))
			for _, cond := range tc.want {
				assert.True(t, tc.auth.HasAddress(tc.ctx, cond.Address()))
			}
			assert.False(t, tc.auth.HasAddress(tc.ctx, c.Address()))
		})
	}
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, SequenceID(1))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 1, 224, 243}, SequenceID(123123))
}

func TestNewConditionIsUnique(t *testing.T) {
	assert.False(t, NewCondition().Equals(NewCondition()))
}
