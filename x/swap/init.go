package swap

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/gconf"
)

// Initializer stores the swap configuration from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis reads the "conf.swap" section of the genesis.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
