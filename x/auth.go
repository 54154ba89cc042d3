package x

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
)

// Authenticator extracts the conditions that authorized the current
// transaction from the context. Handlers receive it in their constructor,
// so the signature scheme can be swapped without touching the business
// logic.
type Authenticator interface {
	// GetConditions reveals all fulfilled conditions.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth asks each of its authenticators in turn.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of every authenticator, in order.
func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var res []weave.Condition
	for _, a := range m {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any authenticator knows the address.
func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireSigner returns an error of the given kind unless addr
// authorized the current transaction.
func RequireSigner(ctx weave.Context, auth Authenticator, addr weave.Address, kind *errors.Error) error {
	if len(addr) == 0 {
		return errors.Wrap(kind, "no address to authorize")
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(kind, "%s did not sign", addr)
	}
	return nil
}
