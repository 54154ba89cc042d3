package weavetest

import weave "github.com/iov-one/swapweave"

// Tx carries a single message. GetMsg returns Err if set.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return nil, nil
}

func (tx *Tx) Unmarshal([]byte) error {
	return nil
}

// Msg is a message routed by RoutePath whose serialized form is kept
// as is in Serialized.
type Msg struct {
	RoutePath  string
	Serialized []byte
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, nil
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return nil
}

func (m *Msg) Validate() error {
	return nil
}
