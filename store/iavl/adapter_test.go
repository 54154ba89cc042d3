package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest/assert"
)

// makeBase returns the base layer
func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit.Adapter(), cleanup
}

func makeCommitStore() (*CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	commit := NewCommitStore(tmpDir, "base")
	return commit, cleanup
}

func TestIavlGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestIavlIterator(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestCommitAndReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-commit-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "state")
	commit.SetHistorySize(1)
	assert.Nil(t, commit.LoadLatestVersion())

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("asset:1"), []byte("alice")))
	assert.Nil(t, cache.Write())

	// uncommitted data is not visible on the committed view
	got, err := commit.Get([]byte("asset:1"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	first, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	if len(first.Hash) == 0 {
		t.Fatal("empty hash after commit")
	}

	cache = commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("asset:1"), []byte("bob")))
	assert.Nil(t, cache.Write())
	second, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)

	// history size of one releases version one
	if commit.tree.VersionExists(1) {
		t.Fatal("version one not released")
	}

	got, err = commit.Get([]byte("asset:1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("bob"), got)
}
