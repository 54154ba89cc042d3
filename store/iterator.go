package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree takes a snapshot of all cached items within [start, end)
// in ascending order. Nil start or end means unbounded.
func ascendBtree(bt *btree.BTree, start, end []byte) []entry {
	var items []entry
	collect := func(item btree.Item) bool {
		items = append(items, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return items
}

// descendBtree is ascendBtree in reversed order.
func descendBtree(bt *btree.BTree, start, end []byte) []entry {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator joins the cached items with the results of the parent
// store, taking into consideration overwrites and deletes.
type mergeIterator struct {
	items     []entry
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []entry, parent Iterator, ascending bool) *mergeIterator {
	it := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	it.skipDeleted()
	return it
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.current() != none
}

// Next moves the iterator to the next sequential key, as defined by
// order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() {
	switch i.current() {
	case us:
		i.items = i.items[1:]
	case both:
		i.items = i.items[1:]
		i.parent.Next()
	case parent:
		i.parent.Next()
	default:
		panic("advanced past the end")
	}
	i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.current() {
	case us, both:
		return i.items[0].key
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.current() {
	case us, both:
		return i.items[0].value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	i.parent.Close()
	i.items = nil
}

// skipDeleted fast forwards over all cached deletes, together with the
// parent entries they hide.
func (i *mergeIterator) skipDeleted() {
	for {
		src := i.current()
		if src != us && src != both {
			return
		}
		if !i.items[0].deleted {
			return
		}
		i.items = i.items[1:]
		if src == both {
			i.parent.Next()
		}
	}
}

// current selects the source holding the next key in iteration order.
func (i *mergeIterator) current() source {
	hasUs := len(i.items) > 0
	hasParent := i.parent != nil && i.parent.Valid()
	switch {
	case !hasUs && !hasParent:
		return none
	case !hasParent:
		return us
	case !hasUs:
		return parent
	}

	cmp := bytes.Compare(i.items[0].key, i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return us
	case cmp > 0:
		return parent
	default:
		return both
	}
}
