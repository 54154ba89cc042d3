package asset

import (
	weave "github.com/iov-one/swapweave"
)

const optKey = "asset"

// Genesis is the asset section of the genesis file.
type Genesis struct {
	Admin weave.Address `json:"admin"`
}

// Initializer bootstraps the registry from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis creates the issuer record if the genesis declares an
// administrator.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	if g.Admin == nil {
		return nil
	}
	return NewRegistry().Bootstrap(db, g.Admin)
}
