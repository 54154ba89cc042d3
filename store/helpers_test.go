package store

import (
	"testing"

	"github.com/iov-one/swapweave/weavetest/assert"
)

func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair([]byte("alice"), []byte("42")),
		Pair([]byte("bob"), []byte("34")),
	}
	it := NewSliceIterator(models)
	assert.Equal(t, models, consume(it))
	assert.Panics(t, func() { it.Next() })

	empty := NewSliceIterator(nil)
	assert.Equal(t, false, empty.Valid())
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	b := NewNonAtomicBatch(kv)
	assert.Nil(t, b.Set([]byte("k1"), []byte("v1")))
	assert.Nil(t, b.Set([]byte("k2"), []byte("v2")))
	assert.Nil(t, b.Delete([]byte("k1")))
	assert.Equal(t, 3, len(b.ShowOps()))

	// nothing happens before write
	has, err := kv.Has([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, b.Write())
	assert.Equal(t, 0, len(b.ShowOps()))
	has, err = kv.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	got, err := kv.Get([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), got)
}
