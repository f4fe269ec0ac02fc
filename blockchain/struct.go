package blockchain

import (
	"encoding/hex"

	"golang.org/x/xerrors"
)

// HashSize is the size in bytes of a block or Merkle hash.
const HashSize = 32

// EncodingVersion prefixes every canonical encoding. It changes whenever
// the byte layout of a transaction or block header changes.
const EncodingVersion uint32 = 1

// Hash is a SHA-256 digest.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

var (
	// ErrSealFailure is returned when proof-of-work gives up before
	// finding a nonce.
	ErrSealFailure = xerrors.New("seal failure")
	// ErrSealed is returned when a draft is used after it was sealed.
	ErrSealed = xerrors.New("block already sealed")
	// ErrDifficulty is returned when a hash does not meet the difficulty.
	ErrDifficulty = xerrors.New("hash does not meet difficulty")
	// ErrAlreadySigned is returned when a transaction is added twice.
	ErrAlreadySigned = xerrors.New("transaction already signed")
	// ErrInvalidChain is returned by chain and block verification.
	ErrInvalidChain = xerrors.New("invalid chain")
)
