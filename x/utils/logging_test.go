package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/store"
	"github.com/iov-one/swapweave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := weave.WithLogger(context.Background(), logger)
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/issue"}}

	h := &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "issued"}}
	_, err := NewLogging().Deliver(ctx, db, tx, h)
	assert.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "issued"), out)
	assert.True(t, strings.Contains(out, "path=asset/issue"), out)
	assert.True(t, strings.Contains(out, "duration="), out)

	buf.Reset()
	failing := &weavetest.Handler{CheckErr: errors.ErrUnauthorized}
	_, err = NewLogging().Check(ctx, db, tx, failing)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	out = buf.String()
	assert.True(t, strings.Contains(out, "E["), out)
	assert.True(t, strings.Contains(out, "unauthorized"), out)
}
