package asset

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/x"
)

const (
	issueCost    int64 = 50
	transferCost int64 = 20
)

// RegisterQuery registers assets under /assets and their owner index
// under /assets/owner.
func RegisterQuery(qr weave.QueryRouter) {
	NewAssetBucket().Register("assets", qr)
}

// RegisterRoutes registers handlers for asset messages.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, reg *Registry) {
	r.Handle(pathIssueMsg, IssueHandler{auth: auth, reg: reg})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, reg: reg})
}

// IssueHandler creates new assets.
type IssueHandler struct {
	auth x.Authenticator
	reg  *Registry
}

var _ weave.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: issueCost}, nil
}

// Deliver returns the id of the created asset as the result data.
func (h IssueHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	asset, err := h.reg.Issue(db, msg.Magic, msg.Strength, msg.Recipient)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("asset issued",
		"id", asset.ID, "owner", asset.Owner, "magic", asset.Magic, "strength", asset.Strength)
	return &weave.DeliverResult{Data: asset.ID}, nil
}

func (h IssueHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	issuer, err := h.reg.Issuer(db)
	if err != nil {
		return nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, issuer.Admin, errors.ErrUnauthorized); err != nil {
		return nil, errors.Wrap(err, "issuer admin")
	}
	return &msg, nil
}

// TransferHandler gives an asset to a new owner.
type TransferHandler struct {
	auth x.Authenticator
	reg  *Registry
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, asset, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.reg.Transfer(db, msg.AssetID, asset.Owner, msg.Recipient); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, *Asset, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	asset, err := h.reg.Get(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, asset.Owner, errors.ErrInvalidOwnership); err != nil {
		return nil, nil, errors.Wrap(err, "asset owner")
	}
	return &msg, asset, nil
}
