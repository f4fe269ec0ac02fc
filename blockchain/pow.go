package blockchain

import (
	"context"
	"strings"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

const (
	// DefaultDifficulty is the number of leading zero hex digits a sealed
	// hash needs unless configured otherwise.
	DefaultDifficulty Difficulty = 4
	// MaxDifficulty is the number of hex digits in a hash.
	MaxDifficulty Difficulty = 2 * HashSize

	// ctxCheckInterval is how many hashes are tried between checks for
	// cancellation.
	ctxCheckInterval = 1 << 12
)

// Difficulty is the number of leading zero hex digits a sealed block
// hash must have.
type Difficulty int

// Prefix returns the hex prefix a satisfying hash starts with.
func (d Difficulty) Prefix() string {
	if d <= 0 {
		return ""
	}
	return strings.Repeat("0", int(d))
}

// Satisfied reports whether hash has at least d leading zero hex digits.
func (d Difficulty) Satisfied(hash Hash) bool {
	for i := 0; i < int(d); i++ {
		if i >= 2*HashSize {
			return false
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble != 0 {
			return false
		}
	}
	return true
}

// Validate checks that d is within [0, MaxDifficulty].
func (d Difficulty) Validate() error {
	if d < 0 || d > MaxDifficulty {
		return xerrors.Errorf("difficulty %d outside [0, %d]", d, MaxDifficulty)
	}
	return nil
}

// Sealer searches a nonce for a draft and seals it.
type Sealer interface {
	Seal(ctx context.Context, draft *Draft) (*Block, error)
}

// ProofOfWork is the sequential sealer: starting from the draft's current
// nonce it increments the nonce until the hash meets Difficulty.
type ProofOfWork struct {
	Difficulty Difficulty
	// MaxAttempts bounds the number of hashes tried; 0 is unbounded.
	MaxAttempts uint64
}

var _ Sealer = (*ProofOfWork)(nil)

// Seal blocks until a nonce is found, the attempt bound is reached or ctx
// is done. On failure the draft is left unsealed.
func (p *ProofOfWork) Seal(ctx context.Context, draft *Draft) (*Block, error) {
	if err := p.Difficulty.Validate(); err != nil {
		return nil, err
	}
	var attempts uint64
	for {
		attempts++
		if p.Difficulty.Satisfied(draft.Hash()) {
			break
		}
		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			return nil, xerrors.Errorf("no nonce after %d attempts: %w", attempts, ErrSealFailure)
		}
		if attempts%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, xerrors.Errorf("after %d attempts: %w", attempts, ctx.Err())
			default:
			}
		}
		if draft.Nonce() == ^uint64(0) {
			return nil, xerrors.Errorf("nonce space exhausted: %w", ErrSealFailure)
		}
		if err := draft.IncrementNonce(); err != nil {
			return nil, err
		}
	}
	log.Lvlf3("Block %d solved with nonce %d after %d attempts", draft.Index(), draft.Nonce(), attempts)
	return draft.Seal(p.Difficulty)
}
