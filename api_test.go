package minichain

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	bc "minichain/blockchain"
	"minichain/mining"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/onet/v3/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(os.TempDir(), "minichain-does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, bc.DefaultDifficulty, cfg.Chain.Difficulty)
}

func TestLoadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "minichain")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
[chain]
difficulty = 2
max_attempts = 100000

[keys]
min_modulus = 256

[mining]
workers = 3
`), 0600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, bc.Difficulty(2), cfg.Chain.Difficulty)
	require.Equal(t, uint64(100000), cfg.Chain.MaxAttempts)
	require.Equal(t, int64(256), cfg.Keys.MinModulus)
	require.Equal(t, 100, cfg.Keys.Attempts)
	require.Equal(t, 3, cfg.Mining.Workers)

	chain, err := NewBlockchain(cfg)
	require.NoError(t, err)
	_, err = chain.AddBlock(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(chain.Last().Hash(), "00"))

	require.NoError(t, ioutil.WriteFile(path, []byte("[chain]\ndifficulty = 99\n"), 0600))
	_, err = LoadConfig(path)
	require.Error(t, err)

	require.NoError(t, ioutil.WriteFile(path, []byte("[chain\n"), 0600))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestNewBlockchainSealer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mining.Workers = 4
	chain, err := NewBlockchain(cfg)
	require.NoError(t, err)
	require.IsType(t, &mining.Miner{}, chain.Sealer())

	chain, err = NewBlockchain(nil)
	require.NoError(t, err)
	require.IsType(t, &bc.ProofOfWork{}, chain.Sealer())
}

func TestPartiesPay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chain.Difficulty = 2
	chain, err := NewBlockchain(cfg)
	require.NoError(t, err)

	alice, err := NewParty("Alice", cfg.Keys)
	require.NoError(t, err)
	bob, err := NewParty("Bob", cfg.Keys)
	require.NoError(t, err)

	tx, err := alice.Pay(chain, bob, 10)
	require.NoError(t, err)
	require.True(t, tx.Signed())
	_, err = bob.Pay(chain, alice, 5)
	require.NoError(t, err)

	block, err := chain.AddBlock(context.Background(), 12345)
	require.NoError(t, err)
	txs := block.Transactions()
	require.Len(t, txs, 2)
	require.Equal(t, "Alice->Bob:10", txs[0].Message())
	require.Equal(t, "Bob->Alice:5", txs[1].Message())
	require.NoError(t, chain.VerifyTransaction(&txs[0], alice.Keys.Public(), bob.Keys.Public()))
	require.NoError(t, chain.Verify())
}

func TestNewPartyLogsPublicKeyOnly(t *testing.T) {
	lvl := log.DebugVisible()
	defer log.SetDebugVisible(lvl)
	log.SetDebugVisible(2)
	log.OutputToBuf()
	defer log.OutputToOs()

	alice, err := NewParty("Alice", DefaultConfig().Keys)
	require.NoError(t, err)

	out := log.GetStdOut()
	require.Contains(t, out, alice.Keys.Public().String())
	require.NotContains(t, out, alice.Keys.Private().String())
	require.NotContains(t, out, "private")
}
