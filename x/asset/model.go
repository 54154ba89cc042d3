package asset

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
	amino "github.com/tendermint/go-amino"
)

const (
	// BucketName is where the assets are stored.
	BucketName = "asset"
	// IssuerBucketName holds the single issuer record.
	IssuerBucketName = "issuer"
)

var issuerKey = []byte("issuer")

var cdc = amino.NewCodec()

// Asset is a unique, non-fungible resource with fixed attributes.
type Asset struct {
	ID       []byte        `json:"id"`
	Owner    weave.Address `json:"owner"`
	Magic    uint64        `json:"magic"`
	Strength uint64        `json:"strength"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	if err := orm.ValidateSequence(a.ID); err != nil {
		return errors.Wrap(err, "id")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

func (a *Asset) Copy() orm.CloneableData {
	return &Asset{
		ID:       append([]byte(nil), a.ID...),
		Owner:    append(weave.Address(nil), a.Owner...),
		Magic:    a.Magic,
		Strength: a.Strength,
	}
}

func (a *Asset) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Asset) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, a)
}

// Issuer is the singleton record of the issuing authority.
type Issuer struct {
	Admin  weave.Address `json:"admin"`
	Issued uint64        `json:"issued"`
}

var _ orm.Model = (*Issuer)(nil)

func (i *Issuer) Validate() error {
	if err := i.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

func (i *Issuer) Copy() orm.CloneableData {
	return &Issuer{
		Admin:  append(weave.Address(nil), i.Admin...),
		Issued: i.Issued,
	}
}

func (i *Issuer) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(i)
}

func (i *Issuer) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, i)
}

// NewAssetBucket returns a bucket for assets, indexed by their owner.
func NewAssetBucket() orm.ModelBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Asset{})).
		WithIndex("owner", ownerIndex)
	return orm.NewModelBucket(b)
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	a, ok := obj.Value().(*Asset)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return a.Owner, nil
}

// NewIssuerBucket returns a bucket holding the issuer record.
func NewIssuerBucket() orm.ModelBucket {
	b := orm.NewBucket(IssuerBucketName, orm.NewSimpleObj(nil, &Issuer{}))
	return orm.NewModelBucket(b)
}

// RegisterCodec adds the messages of this package to a transaction codec.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&IssueMsg{}, pathIssueMsg, nil)
	c.RegisterConcrete(&TransferMsg{}, pathTransferMsg, nil)
}
