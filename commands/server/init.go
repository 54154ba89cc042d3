package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	weave "github.com/iov-one/swapweave"
	"github.com/iov-one/swapweave/crypto"
	"github.com/iov-one/swapweave/errors"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenerateCoinKey returns the address of a new public key, along with
// the hex encoded seed that recovers the private key.
func GenerateCoinKey() (weave.Address, string, error) {
	seed := cmn.RandBytes(32)
	key, err := crypto.DeriveKey(seed, crypto.DefaultDerivationPath)
	if err != nil {
		return nil, "", err
	}
	return key.PublicKey().Address(), fmt.Sprintf("%X", seed), nil
}

// InitCmd will initialize the genesis file in the home directory with
// the app_state produced by gen, and writes a default daemon
// configuration file unless one exists already.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	configDir := filepath.Join(home, "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "create %s: %s", configDir, err)
	}

	genFile := filepath.Join(configDir, "genesis.json")
	doc, err := loadOrCreateGenesis(genFile, logger)
	if err != nil {
		return err
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "write %s: %s", genFile, err)
	}
	logger.Info("Genesis app state set", "path", genFile)

	return writeDefaultConfig(home, logger)
}

// loadOrCreateGenesis reads an existing genesis file, for example one
// created by tendermint init, or builds a new one with a random chain id.
func loadOrCreateGenesis(genFile string, logger log.Logger) (GenesisDoc, error) {
	doc := make(GenesisDoc)
	bz, err := ioutil.ReadFile(genFile)
	switch {
	case err == nil:
		if err := json.Unmarshal(bz, &doc); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis %s: %s", genFile, err)
		}
		logger.Info("Found genesis file", "path", genFile)
		return doc, nil
	case os.IsNotExist(err):
		chainID, _ := json.Marshal(fmt.Sprintf("swap-chain-%v", cmn.RandStr(6)))
		genTime, _ := json.Marshal(time.Now().UTC())
		doc["chain_id"] = chainID
		doc["genesis_time"] = genTime
		logger.Info("Generated genesis file", "path", genFile)
		return doc, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidState, "read %s: %s", genFile, err)
	}
}

func writeDefaultConfig(home string, logger log.Logger) error {
	v := viper.New()
	v.Set(keyBind, "tcp://localhost:26658")
	v.Set(keyDebug, false)
	v.Set(keyLogLevel, "info")
	path := filepath.Join(home, ConfigName+".toml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); ok {
			logger.Info("Found config file", "path", path)
			return nil
		}
		return errors.Wrapf(errors.ErrInvalidState, "write %s: %s", path, err)
	}
	logger.Info("Generated config file", "path", path)
	return nil
}
