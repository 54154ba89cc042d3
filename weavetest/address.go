package weavetest

import (
	"crypto/rand"
	"encoding/binary"

	weave "github.com/iov-one/swapweave"
)

// NewCondition returns a random signature condition, good enough to stand
// for a new account.
func NewCondition() weave.Condition {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return weave.NewCondition("sigs", "ed25519", key)
}

// SequenceID returns the key allocated by orm.Sequence for the n-th value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
