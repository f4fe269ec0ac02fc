package cryptosys

import "golang.org/x/xerrors"

var (
	// ErrKeyGeneration is returned when no valid key pair can be derived
	// from the drawn primes.
	ErrKeyGeneration = xerrors.New("key generation failed")
	// ErrEncoding is returned when a code point is not representable
	// modulo the key modulus.
	ErrEncoding = xerrors.New("message not representable")
	// ErrParse is returned for malformed ciphertext tokens.
	ErrParse = xerrors.New("malformed ciphertext")
	// ErrVerification is returned when a signature does not match.
	ErrVerification = xerrors.New("signature verification failed")
	// ErrKeyType is returned when a Cryptosystem receives a key it
	// cannot interpret.
	ErrKeyType = xerrors.New("unsupported key type")
)
