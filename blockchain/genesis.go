package blockchain

import "time"

// GenesisPreviousHash is the sentinel parent hash of the genesis block.
const GenesisPreviousHash = ""

// NewGenesisBlock returns the first block of a chain: no transactions, the
// empty previous hash and nonce 0. It is not subject to proof-of-work.
func NewGenesisBlock(timestamp time.Time) *Block {
	block, err := NewDraft(0, nil, GenesisPreviousHash, timestamp).Seal(0)
	if err != nil {
		// Difficulty 0 accepts every hash.
		panic(err)
	}
	return block
}
