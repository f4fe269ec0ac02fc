package blockchain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// TimeFormat is used when blocks and transactions are printed.
const TimeFormat = "2006-01-02 15:04:05"

// Draft is a block that has not been sealed yet. Its hash changes with
// every nonce and carries no commitment until Seal succeeds.
type Draft struct {
	index        uint64
	timestamp    time.Time
	transactions []Transaction
	previousHash string
	merkleRoot   *MerkleTree

	// Hash input around the nonce, fixed at construction.
	prefix []byte
	suffix []byte

	nonce  uint64
	hash   Hash
	sealed bool
}

// NewDraft copies txs into a new draft at height index that links to
// previousHash. The hash is computed immediately with nonce 0.
func NewDraft(index uint64, txs []Transaction, previousHash string, timestamp time.Time) *Draft {
	transactions := make([]Transaction, len(txs))
	copy(transactions, txs)
	tree := NewMerkleTree(transactions)
	root, _ := tree.Root()
	d := &Draft{
		index:        index,
		timestamp:    timestamp,
		transactions: transactions,
		previousHash: previousHash,
		merkleRoot:   tree,
		prefix:       headerPrefix(timestamp.UnixNano(), len(transactions), root),
		suffix:       headerSuffix(previousHash),
	}
	d.hash = d.HashAt(0)
	return d
}

// HashAt returns the hash the draft would have with the given nonce. It
// does not modify the draft and may be called concurrently.
func (d *Draft) HashAt(nonce uint64) Hash {
	return blockHash(d.prefix, nonce, d.suffix)
}

// Index returns the height the block will have in the chain.
func (d *Draft) Index() uint64 {
	return d.index
}

// Nonce returns the current nonce.
func (d *Draft) Nonce() uint64 {
	return d.nonce
}

// Hash returns the provisional hash for the current nonce.
func (d *Draft) Hash() Hash {
	return d.hash
}

// SetNonce sets the nonce and recomputes the hash.
func (d *Draft) SetNonce(nonce uint64) error {
	if d.sealed {
		return ErrSealed
	}
	d.nonce = nonce
	d.hash = d.HashAt(nonce)
	return nil
}

// IncrementNonce advances the nonce by one and recomputes the hash.
func (d *Draft) IncrementNonce() error {
	return d.SetNonce(d.nonce + 1)
}

// Seal turns the draft into an immutable Block if the current hash meets
// the difficulty. The draft cannot be used afterwards.
func (d *Draft) Seal(difficulty Difficulty) (*Block, error) {
	if d.sealed {
		return nil, ErrSealed
	}
	if !difficulty.Satisfied(d.hash) {
		return nil, xerrors.Errorf("%s with nonce %d: %w", d.hash, d.nonce, ErrDifficulty)
	}
	d.sealed = true
	return &Block{
		index:        d.index,
		timestamp:    d.timestamp,
		transactions: d.transactions,
		previousHash: d.previousHash,
		merkleRoot:   d.merkleRoot.String(),
		nonce:        d.nonce,
		hash:         d.hash,
	}, nil
}

// Block is a sealed block. It exposes its content read-only.
type Block struct {
	index        uint64
	timestamp    time.Time
	transactions []Transaction
	previousHash string
	merkleRoot   string
	nonce        uint64
	hash         Hash
}

// Index is the height of the block, 0 for genesis.
func (b *Block) Index() uint64 {
	return b.index
}

// Hash returns the 64 character lowercase hex hash.
func (b *Block) Hash() string {
	return b.hash.String()
}

// PreviousHash returns the hash of the parent block, "" for genesis.
func (b *Block) PreviousHash() string {
	return b.previousHash
}

func (b *Block) Timestamp() time.Time {
	return b.timestamp
}

func (b *Block) Nonce() uint64 {
	return b.nonce
}

// MerkleRoot returns the hex Merkle root, "" when the block is empty.
func (b *Block) MerkleRoot() string {
	return b.merkleRoot
}

// Transactions returns a copy of the transactions in block order.
func (b *Block) Transactions() []Transaction {
	txs := make([]Transaction, len(b.transactions))
	copy(txs, b.transactions)
	return txs
}

// Verify recomputes the Merkle root and the hash and checks the latter
// against difficulty.
func (b *Block) Verify(difficulty Difficulty) error {
	tree := NewMerkleTree(b.transactions)
	if tree.String() != b.merkleRoot {
		return xerrors.Errorf("block %d: merkle root mismatch: %w", b.index, ErrInvalidChain)
	}
	root, _ := tree.Root()
	hash := blockHash(headerPrefix(b.timestamp.UnixNano(), len(b.transactions), root),
		b.nonce, headerSuffix(b.previousHash))
	if hash != b.hash {
		return xerrors.Errorf("block %d: hash mismatch: %w", b.index, ErrInvalidChain)
	}
	if !difficulty.Satisfied(hash) {
		return xerrors.Errorf("block %d: %v: %w", b.index, ErrDifficulty, ErrInvalidChain)
	}
	return nil
}

func (b *Block) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Block %d", b.index))
	builder.WriteString(fmt.Sprintf("\n\tHash: %s", b.Hash()))
	builder.WriteString(fmt.Sprintf("\n\tPrevious Hash: %s", b.previousHash))
	builder.WriteString(fmt.Sprintf("\n\tTimestamp: %s", b.timestamp.Format(TimeFormat)))
	builder.WriteString(fmt.Sprintf("\n\tNonce: %d", b.nonce))
	builder.WriteString(fmt.Sprintf("\n\tMerkleRoot: %s", b.merkleRoot))
	builder.WriteString(fmt.Sprintf("\n\tTransactions: %d", len(b.transactions)))
	for _, tx := range b.transactions {
		builder.WriteString(fmt.Sprintf("\n\t\t%s", tx.String()))
	}
	return builder.String()
}
