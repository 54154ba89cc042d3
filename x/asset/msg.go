package asset

import (
	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
)

const (
	pathIssueMsg    = "asset/issue"
	pathTransferMsg = "asset/transfer"
)

// IssueMsg creates a new asset owned by the recipient. Only the issuer
// administrator can sign it.
type IssueMsg struct {
	Magic     uint64        `json:"magic"`
	Strength  uint64        `json:"strength"`
	Recipient weave.Address `json:"recipient"`
}

var _ weave.Msg = (*IssueMsg)(nil)

func (IssueMsg) Path() string {
	return pathIssueMsg
}

// Validate requires a recipient, attributes are not constrained.
func (m *IssueMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

func (m *IssueMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *IssueMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// TransferMsg gives an asset to the recipient. It must be signed by the
// current owner of the asset.
type TransferMsg struct {
	AssetID   []byte        `json:"asset_id"`
	Recipient weave.Address `json:"recipient"`
}

var _ weave.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := orm.ValidateSequence(m.AssetID); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TransferMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
