package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	weave "github.com/iov-one/swapweave"
	swapd "github.com/iov-one/swapweave/cmd/swapd/app"
	"github.com/iov-one/swapweave/commands/server"
	"github.com/iov-one/swapweave/crypto"
	"github.com/iov-one/swapweave/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Fprintln(os.Stderr, "swapd")
	fmt.Fprintln(os.Stderr, "        Asset swap ABCI Application")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "help     Print this message")
	fmt.Fprintln(os.Stderr, "init     Initialize app options in genesis file")
	fmt.Fprintln(os.Stderr, "start    Run the abci server")
	fmt.Fprintln(os.Stderr, "validate Check that genesis files can initialize the app")
	fmt.Fprintln(os.Stderr, "keys     Derive a key from a hex seed and print its address")
	fmt.Fprintln(os.Stderr, "version  Print the app version")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "swapd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(swapd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(swapd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(swapd.Initializers(), rest)
	case "keys":
		err = keysCmd(rest)
	case "version":
		fmt.Println(weave.Version())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

// keysCmd derives an ed25519 key from a hex encoded seed along the
// given path and prints the public key and address.
func keysCmd(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrEmpty, "usage: keys <seed hex> [derivation path]")
	}
	seed, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "seed must be hex encoded")
	}
	path := crypto.DefaultDerivationPath
	if len(args) > 1 {
		path = args[1]
	}
	key, err := crypto.DeriveKey(seed, path)
	if err != nil {
		return err
	}
	pub := key.PublicKey()
	fmt.Printf("path:    %s\n", path)
	fmt.Printf("pubkey:  %X\n", pub.Ed25519)
	fmt.Printf("address: %s\n", pub.Address())
	if b, err := pub.Address().Bech32("swap"); err == nil {
		fmt.Printf("bech32:  %s\n", b)
	}
	return nil
}
