package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	minichain "minichain"
	bc "minichain/blockchain"
	"minichain/cryptosys"

	"github.com/pterm/pterm"
	"go.dedis.ch/onet/v3/cfgpath"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
	"gopkg.in/urfave/cli.v1"
)

const (
	// DefaultName is the name of the binary we produce and is used to create a directory
	// folder with this name
	DefaultName = "minichain"
	// DefaultConfigFile is looked up in the configuration directory.
	DefaultConfigFile = "config.toml"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = DefaultName
	cliApp.Usage = "Illustrative single-node ledger with proof-of-work sealing."
	cliApp.Version = "0.1"
	cliApp.Commands = cmds
	cliApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "debug, d",
			Value: 0,
			Usage: "debug-level: 1 for terse, 5 for maximal",
		},
		cli.StringFlag{
			Name:   "config, c",
			EnvVar: "MINICHAIN_CONFIG",
			Value:  path.Join(cfgpath.GetConfigPath(DefaultName), DefaultConfigFile),
			Usage:  "TOML configuration file",
		},
	}
	cliApp.Before = func(c *cli.Context) error {
		log.SetDebugVisible(c.Int("debug"))
		return nil
	}
	log.ErrFatal(cliApp.Run(os.Args))
}

func readConfig(c *cli.Context) (*minichain.Config, error) {
	cfg, err := minichain.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return nil, xerrors.Errorf("couldn't load configuration: %w", err)
	}
	return cfg, nil
}

// Runs the two party scenario and prints the resulting chain.
func demo(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	chain, err := runDemo(context.Background(), cfg, c.Uint64("proof"))
	if err != nil {
		return err
	}
	if err := chain.Verify(); err != nil {
		return xerrors.Errorf("chain does not verify: %w", err)
	}
	return printChain(chain.Chain())
}

func runDemo(ctx context.Context, cfg *minichain.Config, proof uint64) (*bc.Blockchain, error) {
	alice, err := minichain.NewParty("Alice", cfg.Keys)
	if err != nil {
		return nil, err
	}
	bob, err := minichain.NewParty("Bob", cfg.Keys)
	if err != nil {
		return nil, err
	}
	chain, err := minichain.NewBlockchain(cfg)
	if err != nil {
		return nil, err
	}

	tx1 := bc.NewTransaction("Alice", "Bob", 10)
	if err := chain.AddTransaction(tx1, alice.Keys.Private(), bob.Keys.Public()); err != nil {
		return nil, err
	}
	// Charlie holds no keys; the payload is encrypted for Alice.
	tx2 := bc.NewTransaction("Bob", "Charlie", 5)
	if err := chain.AddTransaction(tx2, bob.Keys.Private(), alice.Keys.Public()); err != nil {
		return nil, err
	}
	log.Lvl1("Sealing block with difficulty", cfg.Chain.Difficulty)
	if _, err := chain.AddBlock(ctx, proof); err != nil {
		return nil, err
	}
	return chain, nil
}

func chainTable(blocks []*bc.Block) pterm.TableData {
	data := pterm.TableData{
		{"Index", "Hash", "Previous Hash", "Timestamp", "Nonce", "Transactions"},
	}
	for _, block := range blocks {
		var txs []string
		for _, tx := range block.Transactions() {
			txs = append(txs, tx.Message())
		}
		data = append(data, []string{
			fmt.Sprint(block.Index()),
			block.Hash(),
			block.PreviousHash(),
			block.Timestamp().Format(bc.TimeFormat),
			fmt.Sprint(block.Nonce()),
			strings.Join(txs, ", "),
		})
	}
	return data
}

func printChain(blocks []*bc.Block) error {
	if err := pterm.DefaultTable.WithHasHeader().WithData(chainTable(blocks)).Render(); err != nil {
		return err
	}
	for _, block := range blocks {
		log.Lvl2(block.String())
	}
	return nil
}

// Generates and prints a key pair.
func keygen(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("min-modulus") {
		cfg.Keys.MinModulus = c.Int64("min-modulus")
	}
	kp, err := cfg.Keys.Generate(nil)
	if err != nil {
		return err
	}
	fmt.Printf("n=%d e=%d d=%d\n", kp.N, kp.E, kp.D)
	return nil
}

func keyFromFlags(c *cli.Context) (cryptosys.Key, error) {
	if !c.IsSet("n") || !c.IsSet("exp") {
		return cryptosys.Key{}, xerrors.New("please give the key with --n and --exp")
	}
	return cryptosys.Key{N: c.Int64("n"), Exp: c.Int64("exp")}, nil
}

func firstArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", xerrors.Errorf("please give the %s as the only argument", name)
	}
	return c.Args().First(), nil
}

func encrypt(c *cli.Context) error {
	return withKey(c, "message", cryptosys.Encrypt)
}

func decrypt(c *cli.Context) error {
	return withKey(c, "ciphertext", cryptosys.Decrypt)
}

func sign(c *cli.Context) error {
	return withKey(c, "message", cryptosys.Sign)
}

func withKey(c *cli.Context, argName string, op func(string, cryptosys.Key) (string, error)) error {
	key, err := keyFromFlags(c)
	if err != nil {
		return err
	}
	arg, err := firstArg(c, argName)
	if err != nil {
		return err
	}
	out, err := op(arg, key)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func verify(c *cli.Context) error {
	key, err := keyFromFlags(c)
	if err != nil {
		return err
	}
	message, err := firstArg(c, "message")
	if err != nil {
		return err
	}
	if err := cryptosys.Verify(message, c.String("signature"), key); err != nil {
		return err
	}
	log.Info("Signature is valid")
	return nil
}
