package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/swapweave/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application and runs the abci socket
// server until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	v, err := loadConfig(home, args)
	if err != nil {
		return err
	}
	leveled, err := NewLevelLogger(logger, v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	watchLogLevel(v, leveled)

	app, err := gen(home, leveled, v.GetBool(keyDebug))
	if err != nil {
		return err
	}

	addr := v.GetString(keyBind)
	leveled.Info("Starting ABCI app", "bind", addr, "config", v.ConfigFileUsed())

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "creating listener: %s", err)
	}
	svr.SetLogger(leveled.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "starting server: %s", err)
	}

	// Wait for a signal to shut down
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	leveled.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}
