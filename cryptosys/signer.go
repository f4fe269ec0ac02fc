package cryptosys

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/xerrors"
)

// Digest returns the lowercase hex SHA-256 of message.
func Digest(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

// Sign encrypts the digest of message with the private key.
func Sign(message string, private Key) (string, error) {
	signature, err := Encrypt(Digest(message), private)
	if err != nil {
		return "", xerrors.Errorf("signing: %w", err)
	}
	return signature, nil
}

// Verify decrypts signature with the signer's public key and compares the
// result to the digest of message.
func Verify(message, signature string, public Key) error {
	digest, err := Decrypt(signature, public)
	if err != nil {
		return xerrors.Errorf("verifying: %w", err)
	}
	if digest != Digest(message) {
		return ErrVerification
	}
	return nil
}
