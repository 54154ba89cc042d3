package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/weavetest/assert"
)

type requireKey string

func (k requireKey) FromGenesis(opts weave.Options, db weave.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "option %q", string(k))
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "swapd-validate")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	good := write("good.json", `{"app_state": {"asset": {}}}`)
	incomplete := write("incomplete.json", `{"app_state": {"cash": []}}`)
	broken := write("broken.json", `{"app_state": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid file":          {paths: []string{good}},
		"no files":            {wantErr: errors.ErrEmpty},
		"missing file":        {paths: []string{filepath.Join(dir, "nope.json")}, wantErr: errors.ErrNotFound},
		"initializer failure": {paths: []string{good, incomplete}, wantErr: errors.ErrNotFound},
		"invalid json":        {paths: []string{broken}, wantErr: errors.ErrInvalidInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(requireKey("asset"), tc.paths)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
