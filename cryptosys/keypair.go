package cryptosys

import (
	"crypto/cipher"
	"fmt"

	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// PublicExponent is the fixed public exponent e.
const PublicExponent = 65537

// Key is one half of a key pair: the modulus and either the public or the
// private exponent.
type Key struct {
	N   int64
	Exp int64
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d)", k.N, k.Exp)
}

// KeyPair holds the modulus together with both exponents. The public half
// (N, E) and the private half (N, D) are meant for different holders.
type KeyPair struct {
	N int64
	E int64
	D int64
}

// Public returns (N, E).
func (kp *KeyPair) Public() Key {
	return Key{N: kp.N, Exp: kp.E}
}

// Private returns (N, D).
func (kp *KeyPair) Private() Key {
	return Key{N: kp.N, Exp: kp.D}
}

func (kp *KeyPair) String() string {
	return fmt.Sprintf("public=%s private=%s", kp.Public(), kp.Private())
}

// NewKeyPair derives a key pair from the primes p and q.
func NewKeyPair(p, q int64) (*KeyPair, error) {
	if !IsPrime(p) || !IsPrime(q) {
		return nil, xerrors.Errorf("%d and %d must both be prime: %w", p, q, ErrKeyGeneration)
	}
	if p == q {
		return nil, xerrors.Errorf("p and q are both %d: %w", p, ErrKeyGeneration)
	}
	n := p * q
	phi := (p - 1) * (q - 1)
	if phi < 2 {
		return nil, xerrors.Errorf("phi(%d) = %d is too small: %w", n, phi, ErrKeyGeneration)
	}
	d, err := modInverse(PublicExponent, phi)
	if err != nil {
		return nil, xerrors.Errorf("deriving private exponent for n=%d: %w", n, err)
	}
	return &KeyPair{N: n, E: PublicExponent, D: d}, nil
}

// modInverse returns d in [0, m) such that a*d = 1 (mod m), using the
// extended Euclidean algorithm.
func modInverse(a, m int64) (int64, error) {
	oldR, r := a%m, m
	oldS, s := int64(1), int64(0)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, xerrors.Errorf("gcd(%d, %d) = %d: %w", a, m, oldR, ErrKeyGeneration)
	}
	d := oldS % m
	if d < 0 {
		d += m
	}
	return d, nil
}

// GenerateKeyPair draws two distinct primes and derives a key pair from
// them. A nil stream uses crypto/rand.
func GenerateKeyPair(rand cipher.Stream) (*KeyPair, error) {
	if rand == nil {
		rand = random.New()
	}
	p := GeneratePrime(rand)
	q := GeneratePrime(rand)
	for q == p {
		q = GeneratePrime(rand)
	}
	return NewKeyPair(p, q)
}

// KeyConfig constrains key generation. The zero value accepts the first
// derivable key pair.
type KeyConfig struct {
	// MinModulus is the smallest acceptable modulus. Messages can only
	// hold code points below the modulus.
	MinModulus int64 `toml:"min_modulus"`
	// Attempts bounds the number of draws; 0 means a single draw.
	Attempts int `toml:"attempts"`
}

// Generate draws key pairs until one satisfies the configuration.
func (c KeyConfig) Generate(rand cipher.Stream) (*KeyPair, error) {
	if rand == nil {
		rand = random.New()
	}
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		kp, err := GenerateKeyPair(rand)
		if err != nil {
			lastErr = err
			continue
		}
		if kp.N < c.MinModulus {
			lastErr = xerrors.Errorf("modulus %d below minimum %d: %w", kp.N, c.MinModulus, ErrKeyGeneration)
			continue
		}
		log.Lvlf3("Generated key pair after %d attempt(s): n=%d", i+1, kp.N)
		return kp, nil
	}
	return nil, xerrors.Errorf("no key pair after %d attempt(s): %w", attempts, lastErr)
}
