package blockchain

import (
	"context"
	"sync"
	"time"

	"minichain/cryptosys"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Blockchain owns the chain of sealed blocks and the pool of pending
// transactions.
type Blockchain struct {
	sync.Mutex
	// sealing serializes AddBlock so the tip read before sealing is still
	// the tip when the block is appended.
	sealing sync.Mutex
	config  Config
	crypto  cryptosys.Cryptosystem
	sealer  Sealer
	chain   []*Block
	pending []*Transaction
}

// NewBlockchain returns a chain holding only the genesis block. A nil
// Cryptosystem defaults to cryptosys.Textbook and a nil Sealer to a
// ProofOfWork built from config.
func NewBlockchain(config Config, cs cryptosys.Cryptosystem, sealer Sealer) (*Blockchain, error) {
	if err := config.Difficulty.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid config: %w", err)
	}
	if cs == nil {
		cs = cryptosys.Textbook{}
	}
	if sealer == nil {
		sealer = &ProofOfWork{
			Difficulty:  config.Difficulty,
			MaxAttempts: config.MaxAttempts,
		}
	}
	genesis := NewGenesisBlock(time.Now())
	log.Lvlf2("Created genesis block %s", genesis.Hash())
	return &Blockchain{
		config: config,
		crypto: cs,
		sealer: sealer,
		chain:  []*Block{genesis},
	}, nil
}

// Config returns the configuration the chain was created with.
func (bc *Blockchain) Config() Config {
	return bc.config
}

// Sealer returns the sealer used by AddBlock.
func (bc *Blockchain) Sealer() Sealer {
	return bc.sealer
}

// AddTransaction authenticates tx and appends it to the pending pool. The
// message of tx is encrypted with the recipient's public key and the
// ciphertext is signed with the sender's private key. Only the signature
// is kept. The pool holds its own copy of tx, so later changes by the
// caller do not reach the next block. On error the pool and tx are left
// untouched.
func (bc *Blockchain) AddTransaction(tx *Transaction, senderPrivate cryptosys.PrivateKey,
	recipientPublic cryptosys.PublicKey) error {
	if tx == nil {
		return xerrors.New("nil transaction")
	}
	if tx.Signed() {
		return xerrors.Errorf("%s: %w", tx.Message(), ErrAlreadySigned)
	}
	signature, err := bc.authenticate(tx, senderPrivate, recipientPublic)
	if err != nil {
		return err
	}

	bc.Lock()
	defer bc.Unlock()
	tx.Signature = signature
	pooled := *tx
	bc.pending = append(bc.pending, &pooled)
	log.Lvlf3("Added transaction %s, %d pending", pooled.Message(), len(bc.pending))
	return nil
}

func (bc *Blockchain) authenticate(tx *Transaction, senderPrivate cryptosys.PrivateKey,
	recipientPublic cryptosys.PublicKey) (string, error) {
	ciphertext, err := bc.crypto.Encrypt(tx.Message(), recipientPublic)
	if err != nil {
		return "", xerrors.Errorf("encrypting %s: %w", tx.Message(), err)
	}
	signature, err := bc.crypto.Sign(ciphertext, senderPrivate)
	if err != nil {
		return "", xerrors.Errorf("signing %s: %w", tx.Message(), err)
	}
	return signature, nil
}

// VerifyTransaction checks the signature of tx. The ciphertext that was
// signed is rebuilt from the recipient's public key, which requires a
// deterministic Cryptosystem such as cryptosys.Textbook.
func (bc *Blockchain) VerifyTransaction(tx *Transaction, senderPublic cryptosys.PublicKey,
	recipientPublic cryptosys.PublicKey) error {
	if !tx.Signed() {
		return xerrors.Errorf("%s is unsigned: %w", tx.Message(), cryptosys.ErrVerification)
	}
	ciphertext, err := bc.crypto.Encrypt(tx.Message(), recipientPublic)
	if err != nil {
		return xerrors.Errorf("encrypting %s: %w", tx.Message(), err)
	}
	return bc.crypto.Verify(ciphertext, tx.Signature, senderPublic)
}

// AddBlock seals the pending transactions into a new block and appends it
// to the chain. proof is accepted for compatibility with callers that
// pass a seed; the search does not use it. The chain stays readable and
// transactions can still be added while the block is sealed; those land
// in the following block. If sealing fails, neither the chain nor the
// pending pool change.
func (bc *Blockchain) AddBlock(ctx context.Context, proof uint64) (*Block, error) {
	bc.sealing.Lock()
	defer bc.sealing.Unlock()

	bc.Lock()
	last := bc.chain[len(bc.chain)-1]
	txs := make([]Transaction, len(bc.pending))
	for i, tx := range bc.pending {
		txs[i] = *tx
	}
	bc.Unlock()

	log.Lvlf3("Sealing block %d with %d transaction(s), proof %d", last.Index()+1, len(txs), proof)
	draft := NewDraft(last.Index()+1, txs, last.Hash(), time.Now())
	block, err := bc.proofOfWork(ctx, draft)
	if err != nil {
		return nil, xerrors.Errorf("sealing block %d: %w", draft.Index(), err)
	}

	bc.Lock()
	defer bc.Unlock()
	if tip := bc.chain[len(bc.chain)-1]; tip != last {
		return nil, xerrors.Errorf("tip moved to %s while sealing: %w", tip.Hash(), ErrInvalidChain)
	}
	bc.chain = append(bc.chain, block)
	// The pool only grows while unlocked, so the sealed transactions are
	// still its prefix.
	bc.pending = append([]*Transaction(nil), bc.pending[len(txs):]...)
	log.Lvlf2("Appended block %d / %s, %d pending", block.Index(), block.Hash(), len(bc.pending))
	return block, nil
}

// ProofOfWork seals draft with the configured Sealer.
func (bc *Blockchain) ProofOfWork(ctx context.Context, draft *Draft) (*Block, error) {
	return bc.proofOfWork(ctx, draft)
}

func (bc *Blockchain) proofOfWork(ctx context.Context, draft *Draft) (*Block, error) {
	block, err := bc.sealer.Seal(ctx, draft)
	if err != nil {
		return nil, err
	}
	if !bc.config.Difficulty.Satisfied(block.hash) {
		return nil, xerrors.Errorf("sealer returned %s: %w", block.Hash(), ErrDifficulty)
	}
	return block, nil
}

// Chain returns the blocks from genesis to the tip.
func (bc *Blockchain) Chain() []*Block {
	bc.Lock()
	defer bc.Unlock()
	blocks := make([]*Block, len(bc.chain))
	copy(blocks, bc.chain)
	return blocks
}

// Last returns the tip of the chain.
func (bc *Blockchain) Last() *Block {
	bc.Lock()
	defer bc.Unlock()
	return bc.chain[len(bc.chain)-1]
}

// Len returns the number of blocks including genesis.
func (bc *Blockchain) Len() int {
	bc.Lock()
	defer bc.Unlock()
	return len(bc.chain)
}

// Pending returns a copy of the pending pool in insertion order.
func (bc *Blockchain) Pending() []Transaction {
	bc.Lock()
	defer bc.Unlock()
	txs := make([]Transaction, len(bc.pending))
	for i, tx := range bc.pending {
		txs[i] = *tx
	}
	return txs
}

// Verify checks every block: genesis shape, linkage, hashes, Merkle roots
// and, past genesis, the difficulty.
func (bc *Blockchain) Verify() error {
	bc.Lock()
	defer bc.Unlock()
	return verifyBlocks(bc.chain, bc.config.Difficulty)
}

func verifyBlocks(blocks []*Block, difficulty Difficulty) error {
	if len(blocks) == 0 {
		return xerrors.Errorf("no genesis block: %w", ErrInvalidChain)
	}
	genesis := blocks[0]
	if genesis.PreviousHash() != GenesisPreviousHash || len(genesis.transactions) != 0 {
		return xerrors.Errorf("malformed genesis block: %w", ErrInvalidChain)
	}
	if err := genesis.Verify(0); err != nil {
		return err
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].PreviousHash() != blocks[i-1].Hash() {
			return xerrors.Errorf("block %d does not link to block %d: %w", i, i-1, ErrInvalidChain)
		}
		if err := blocks[i].Verify(difficulty); err != nil {
			return err
		}
	}
	return nil
}
