package orm

import (
	"bytes"
	"encoding/binary"
	"regexp"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
)

var isIndexName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Indexer returns the value an object is indexed under. A nil value leaves
// the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index maps a value computed from an object to the primary keys of all
// objects sharing it. Each reference is stored under its own key
//
//   _i.<name>:<uvarint len(value)><value><primary key>
//
// so adding or removing one never rewrites the others. The length prefix
// keeps a value from matching the references of a longer value.
type Index struct {
	name    string
	prefix  []byte
	indexer Indexer
	refKey  func([]byte) []byte
}

var _ weave.QueryHandler = Index{}

// NewIndex returns an index. refKey turns a primary key into the db key of
// the object, it is used to load the objects of a query.
func NewIndex(name string, indexer Indexer, refKey func([]byte) []byte) Index {
	if !isIndexName(name) {
		panic("illegal index name: " + name)
	}
	return Index{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		indexer: indexer,
		refKey:  refKey,
	}
}

// valuePrefix returns the common prefix of all references of value.
func (i Index) valuePrefix(value []byte) []byte {
	var n [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(n[:], uint64(len(value)))
	key := make([]byte, 0, len(i.prefix)+l+len(value))
	key = append(key, i.prefix...)
	key = append(key, n[:l]...)
	return append(key, value...)
}

func (i Index) refDBKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

// Keys returns the primary keys indexed under value, in ascending order.
func (i Index) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	it, err := db.Iterator(prefixRange(i.valuePrefix(value)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var keys [][]byte
	for ; it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Value()...))
	}
	return keys, nil
}

// Update moves the references of an object from prev to save. A nil prev
// is an insert, a nil save is a delete.
func (i Index) Update(db weave.KVStore, prev, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "nothing to index")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrInvalidState, "primary key changed")
	}

	oldValue, err := i.value(prev)
	if err != nil {
		return err
	}
	newValue, err := i.value(save)
	if err != nil {
		return err
	}
	if prev != nil && save != nil && bytes.Equal(oldValue, newValue) {
		return nil
	}

	if oldValue != nil {
		if err := db.Delete(i.refDBKey(oldValue, prev.Key())); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if newValue != nil {
		if err := db.Set(i.refDBKey(newValue, save.Key()), save.Key()); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

func (i Index) value(obj Object) ([]byte, error) {
	if obj == nil {
		return nil, nil
	}
	v, err := i.indexer(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", i.name)
	}
	return v, nil
}

// Query returns the objects indexed under data. Only key queries are
// supported.
func (i Index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "index %s cannot answer %q queries", i.name, mod)
	}
	keys, err := i.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]weave.Model, 0, len(keys))
	for _, pk := range keys {
		key := i.refKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "dangling reference %X", pk)
		}
		res = append(res, weave.Pair(key, value))
	}
	return res, nil
}
