package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/coin"
	"github.com/iov-one/swapweave/commands/server"
	"github.com/iov-one/swapweave/errors"
	"github.com/iov-one/swapweave/x/asset"
	"github.com/iov-one/swapweave/x/cash"
	"github.com/iov-one/swapweave/x/swap"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// FeeTicker is the currency deposit fees are paid in on a
// freshly initialized chain.
const FeeTicker = "SWP"

// genesis is the app_state written by the init command.
type genesis struct {
	Cash  []cash.GenesisAccount `json:"cash"`
	Asset asset.Genesis         `json:"asset"`
	Conf  struct {
		Swap swap.Configuration `json:"swap"`
	} `json:"conf"`
}

// GenInitOptions will produce the options for a development chain. The
// administrator (given as the first argument or generated) owns the
// asset registry and the swap configuration, and holds some coins to
// pay fees with.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin weave.Address
	if len(args) > 0 {
		addr, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		admin = addr
	} else {
		addr, phrase, err := server.GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		admin = addr
		fmt.Println(phrase)
	}
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(err, "admin address")
	}

	var g genesis
	g.Cash = []cash.GenesisAccount{
		{Address: admin, Coins: coin.Coins{coin.NewCoinp(1000000, 0, FeeTicker)}},
	}
	g.Asset.Admin = admin
	g.Conf.Swap = swap.Configuration{Owner: admin, FeeTicker: FeeTicker}
	return json.MarshalIndent(g, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "data", "swap.db")
	}

	application, err := Application("swapd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
