package minichain

/*
The api.go defines the entry points used by drivers such as the app: it
loads the configuration, wires a Blockchain with its sealer and creates
the parties that own key pairs.
*/

import (
	"os"

	bc "minichain/blockchain"
	"minichain/cryptosys"
	"minichain/mining"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// MiningConfig selects the sealer.
type MiningConfig struct {
	// Workers > 1 seals with a parallel mining.Miner; otherwise the
	// sequential blockchain.ProofOfWork is used.
	Workers int `toml:"workers"`
}

// Config is the content of the TOML configuration file.
type Config struct {
	Chain  bc.Config           `toml:"chain"`
	Keys   cryptosys.KeyConfig `toml:"keys"`
	Mining MiningConfig        `toml:"mining"`
}

// DefaultConfig returns four leading zeros, sequential sealing and keys
// whose modulus covers ASCII.
func DefaultConfig() *Config {
	return &Config{
		Chain: bc.DefaultConfig(),
		Keys: cryptosys.KeyConfig{
			MinModulus: 128,
			Attempts:   100,
		},
		Mining: MiningConfig{Workers: 1},
	}
}

// LoadConfig reads path on top of DefaultConfig. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Lvlf2("Configuration file %s does not exist, using defaults", path)
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Unknown configuration key %s in %s", key, path)
	}
	if err := cfg.Chain.Difficulty.Validate(); err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// NewBlockchain returns a chain sealed according to cfg.
func NewBlockchain(cfg *Config) (*bc.Blockchain, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var sealer bc.Sealer
	if cfg.Mining.Workers > 1 {
		sealer = mining.New(cfg.Chain.Difficulty, cfg.Mining.Workers, cfg.Chain.MaxAttempts)
	}
	return bc.NewBlockchain(cfg.Chain, cryptosys.Textbook{}, sealer)
}

// Party is a named holder of a key pair.
type Party struct {
	Name string
	Keys *cryptosys.KeyPair
}

// NewParty generates a key pair for name.
func NewParty(name string, cfg cryptosys.KeyConfig) (*Party, error) {
	kp, err := cfg.Generate(nil)
	if err != nil {
		return nil, xerrors.Errorf("keys for %s: %w", name, err)
	}
	log.Lvlf2("%s: public key %s", name, kp.Public())
	return &Party{Name: name, Keys: kp}, nil
}

// Pay creates a transaction from p to recipient and adds it to chain.
func (p *Party) Pay(chain *bc.Blockchain, recipient *Party, amount uint64) (*bc.Transaction, error) {
	tx := bc.NewTransaction(p.Name, recipient.Name, amount)
	if err := chain.AddTransaction(tx, p.Keys.Private(), recipient.Keys.Public()); err != nil {
		return nil, err
	}
	return tx, nil
}
