package blockchain

import "crypto/sha256"

// MerkleTree commits to an ordered list of transactions.
type MerkleTree struct {
	root  Hash
	empty bool
}

// NewMerkleTree builds the tree over txs. A single transaction's root is
// its leaf hash; no pairing round is applied to it.
func NewMerkleTree(txs []Transaction) *MerkleTree {
	if len(txs) == 0 {
		return &MerkleTree{empty: true}
	}
	if len(txs) == 1 {
		return &MerkleTree{root: txs[0].Hash()}
	}

	hashes := make([]Hash, len(txs))
	for i := range txs {
		hashes[i] = txs[i].Hash()
	}
	for len(hashes) > 1 {
		next := make([]Hash, 0, (len(hashes)+1)/2)
		for i := 0; i < len(hashes); i += 2 {
			right := hashes[i]
			if i+1 < len(hashes) {
				right = hashes[i+1]
			}
			next = append(next, hashPair(hashes[i], right))
		}
		hashes = next
	}
	return &MerkleTree{root: hashes[0]}
}

func hashPair(left, right Hash) Hash {
	var buf [2 * HashSize]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	return sha256.Sum256(buf[:])
}

// Root returns the commitment, or false for an empty list.
func (t *MerkleTree) Root() (Hash, bool) {
	return t.root, !t.empty
}

// String returns the hex root, or "" for an empty list.
func (t *MerkleTree) String() string {
	if t.empty {
		return ""
	}
	return t.root.String()
}
