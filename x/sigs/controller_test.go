package sigs

import (
	"testing"

	"github.com/iov-one/swapweave/crypto"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("deposit")
	tx := newStdTx(bz)
	bz2 := []byte("execute")

	tbz, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, bz, tbz)

	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.Len(t, c1, 64)

	// sign bytes change on tx, chain_id and seq
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, "bad chain", 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	cond := priv.PublicKey().Condition()

	chainID := "swap-chain-1"
	bz := []byte("asset 42 for asset 34")
	tx := newStdTx(bz)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig13, err := SignTx(priv, tx, chainID, 13)
	require.NoError(t, err)

	// signing is deterministic
	sig0a, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	assert.Equal(t, sig0, sig0a)

	// the first one must start at zero
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// missing fields
	_, err = VerifySignature(kv, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrInvalidSignature.Is(err))

	// wrong chain or payload
	_, err = VerifySignature(kv, sig0, bz, "other-chain")
	assert.True(t, errors.ErrInvalidSignature.Is(err))
	_, err = VerifySignature(kv, sig0, []byte("other payload"), chainID)
	assert.True(t, errors.ErrInvalidSignature.Is(err))

	got, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, cond, got)

	// replay fails, next sequence works, gaps do not
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)

	nonce, err := NextNonce(kv, cond.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)

	nonce, err = NextNonce(kv, crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	chainID := "swap-chain-1"
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()

	tx := newStdTx([]byte("execute"))
	sa, err := SignTx(alice, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(bob, tx, chainID, 0)
	require.NoError(t, err)

	tx.Signatures = []*StdSignature{sa, sb}
	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Len(t, signers, 2)
	assert.Equal(t, alice.PublicKey().Condition(), signers[0])
	assert.Equal(t, bob.PublicKey().Condition(), signers[1])

	tx.Signatures = nil
	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)
}

func TestUserDataSequence(t *testing.T) {
	u := &UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey()}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))

	u.Sequence = (1 << 53) - 1
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(u.Sequence)))

	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: 3}).Validate()))
	assert.True(t, ErrInvalidSequence.Is((&UserData{Sequence: -1}).Validate()))
}
