package swap

import (
	"bytes"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/orm"
)

const (
	pathDepositMsg             = "swap/deposit"
	pathExecuteMsg             = "swap/execute"
	pathUpdateConfigurationMsg = "swap/update_configuration"
)

// DepositMsg locks an asset and a fee in a new wrapper held by the
// intermediary. It must be signed by the asset owner.
type DepositMsg struct {
	AssetID      []byte        `json:"asset_id"`
	Fee          *coin.Coin    `json:"fee"`
	Intermediary weave.Address `json:"intermediary"`
}

var _ weave.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	if err := orm.ValidateSequence(m.AssetID); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if coin.IsEmpty(m.Fee) {
		return errors.Wrap(ErrInsufficientFee, "fee required")
	}
	if err := m.Fee.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	if err := m.Intermediary.Validate(); err != nil {
		return errors.Wrap(err, "intermediary")
	}
	return nil
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// ExecuteMsg consumes two wrappers and swaps their assets. It must be
// signed by the intermediary of both wrappers.
type ExecuteMsg struct {
	WrapperA []byte `json:"wrapper_a"`
	WrapperB []byte `json:"wrapper_b"`
}

var _ weave.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

// Validate rejects a message that references the same wrapper twice, a
// wrapper can be consumed only once.
func (m *ExecuteMsg) Validate() error {
	if err := orm.ValidateSequence(m.WrapperA); err != nil {
		return errors.Wrap(err, "wrapper a")
	}
	if err := orm.ValidateSequence(m.WrapperB); err != nil {
		return errors.Wrap(err, "wrapper b")
	}
	if bytes.Equal(m.WrapperA, m.WrapperB) {
		return errors.Wrap(errors.ErrInvalidInput, "same wrapper twice")
	}
	return nil
}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ExecuteMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateConfigurationMsg changes the extension configuration. Only non
// zero fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if m.Patch.FeeTicker != "" && !coin.IsCC(m.Patch.FeeTicker) {
		return errors.Wrapf(errors.ErrCurrency, "fee ticker %q", m.Patch.FeeTicker)
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
