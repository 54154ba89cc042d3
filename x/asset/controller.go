package asset

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
)

// Controller gives other extensions access to the registry. Ownership is
// always read from the store and never cached.
type Controller interface {
	// Get returns the asset with the given id or ErrNotFound.
	Get(db weave.ReadOnlyKVStore, id []byte) (*Asset, error)

	// Transfer reassigns the asset to a new owner. It fails with
	// ErrInvalidOwnership unless from is the current owner.
	Transfer(db weave.KVStore, id []byte, from, to weave.Address) error
}

const maxIssued = ^uint64(0)

// Registry is the store backed implementation of the Controller. It also
// implements the issuer operations.
type Registry struct {
	assets  orm.ModelBucket
	issuers orm.ModelBucket
	ids     orm.Sequence
}

var _ Controller = (*Registry)(nil)

// NewRegistry returns a registry operating on the default buckets.
func NewRegistry() *Registry {
	return &Registry{
		assets:  NewAssetBucket(),
		issuers: NewIssuerBucket(),
		ids:     orm.NewSequence(BucketName, orm.SeqID),
	}
}

// Bootstrap creates the issuer record with the given administrator. It can
// be called only once for a store.
func (r *Registry) Bootstrap(db weave.KVStore, admin weave.Address) error {
	switch err := r.issuers.Has(db, issuerKey); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "issuer already exists")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	issuer := Issuer{Admin: admin}
	if _, err := r.issuers.Put(db, issuerKey, &issuer); err != nil {
		return errors.Wrap(err, "cannot save issuer")
	}
	return nil
}

// Issuer returns the issuer record. ErrNotFound is returned if the
// registry was never bootstrapped.
func (r *Registry) Issuer(db weave.ReadOnlyKVStore) (*Issuer, error) {
	var issuer Issuer
	if err := r.issuers.One(db, issuerKey, &issuer); err != nil {
		return nil, errors.Wrap(err, "issuer")
	}
	return &issuer, nil
}

// Issued returns how many assets were created so far.
func (r *Registry) Issued(db weave.ReadOnlyKVStore) (uint64, error) {
	issuer, err := r.Issuer(db)
	if err != nil {
		return 0, err
	}
	return issuer.Issued, nil
}

// Issue creates a new asset owned by the recipient and increments the
// issuer counter. Both writes go to the same store, so a surrounding
// savepoint commits them together.
func (r *Registry) Issue(db weave.KVStore, magic, strength uint64, recipient weave.Address) (*Asset, error) {
	issuer, err := r.Issuer(db)
	if err != nil {
		return nil, err
	}
	if issuer.Issued == maxIssued {
		return nil, errors.Wrap(errors.ErrOverflow, "issued counter")
	}

	id, err := r.ids.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot allocate id")
	}
	asset := Asset{
		ID:       id,
		Owner:    recipient,
		Magic:    magic,
		Strength: strength,
	}
	if _, err := r.assets.Put(db, id, &asset); err != nil {
		return nil, errors.Wrap(err, "cannot save asset")
	}

	issuer.Issued++
	if _, err := r.issuers.Put(db, issuerKey, issuer); err != nil {
		return nil, errors.Wrap(err, "cannot save issuer")
	}
	return &asset, nil
}

func (r *Registry) Get(db weave.ReadOnlyKVStore, id []byte) (*Asset, error) {
	var a Asset
	if err := r.assets.One(db, id, &a); err != nil {
		return nil, errors.Wrapf(err, "asset %X", id)
	}
	return &a, nil
}

// ByOwner returns all assets held by the address.
func (r *Registry) ByOwner(db weave.ReadOnlyKVStore, owner weave.Address) ([]*Asset, error) {
	models, err := r.assets.ByIndex(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	res := make([]*Asset, 0, len(models))
	for _, m := range models {
		a, ok := m.(*Asset)
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidType, "%T", m)
		}
		res = append(res, a)
	}
	return res, nil
}

func (r *Registry) Transfer(db weave.KVStore, id []byte, from, to weave.Address) error {
	asset, err := r.Get(db, id)
	if err != nil {
		return err
	}
	if !asset.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrInvalidOwnership, "asset %X is not owned by %s", id, from)
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	asset.Owner = to
	if _, err := r.assets.Put(db, id, asset); err != nil {
		return errors.Wrap(err, "cannot save asset")
	}
	return nil
}
