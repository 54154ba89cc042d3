package crypto

import (
	"github.com/iov-one/swapweave/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DefaultDerivationPath is the bip44 path used by the key tool when no other
// path is given.
const DefaultDerivationPath = "m/44'/234'/0'"

// DeriveKey builds a private key from a master seed using SLIP-0010 ed25519
// derivation. An empty path uses the first ed25519.SeedSize bytes of the seed
// directly.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	if path == "" {
		if len(seed) < ed25519.SeedSize {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "seed must have at least %d bytes", ed25519.SeedSize)
		}
		return PrivKeyEd25519FromSeed(seed[:ed25519.SeedSize]), nil
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
