package cryptosys

import (
	"golang.org/x/xerrors"
)

// PublicKey is a public key of any Cryptosystem.
type PublicKey interface{}

// PrivateKey is a private key of any Cryptosystem.
type PrivateKey interface{}

// Cryptosystem is the capability the ledger needs to authenticate
// transactions. Implementations interpret their own key types and must
// return ErrKeyType for foreign ones.
type Cryptosystem interface {
	Encrypt(plaintext string, recipient PublicKey) (string, error)
	Decrypt(ciphertext string, recipient PrivateKey) (string, error)
	Sign(message string, signer PrivateKey) (string, error)
	Verify(message, signature string, signer PublicKey) error
}

// Textbook is the illustrative RSA-style Cryptosystem implemented by this
// package. It accepts Key values or pointers to them.
type Textbook struct{}

var _ Cryptosystem = Textbook{}

func (Textbook) Encrypt(plaintext string, recipient PublicKey) (string, error) {
	k, err := asKey(recipient)
	if err != nil {
		return "", err
	}
	return Encrypt(plaintext, k)
}

func (Textbook) Decrypt(ciphertext string, recipient PrivateKey) (string, error) {
	k, err := asKey(recipient)
	if err != nil {
		return "", err
	}
	return Decrypt(ciphertext, k)
}

func (Textbook) Sign(message string, signer PrivateKey) (string, error) {
	k, err := asKey(signer)
	if err != nil {
		return "", err
	}
	return Sign(message, k)
}

func (Textbook) Verify(message, signature string, signer PublicKey) error {
	k, err := asKey(signer)
	if err != nil {
		return err
	}
	return Verify(message, signature, k)
}

func asKey(key interface{}) (Key, error) {
	switch k := key.(type) {
	case Key:
		return k, nil
	case *Key:
		if k != nil {
			return *k, nil
		}
	}
	return Key{}, xerrors.Errorf("%T: %w", key, ErrKeyType)
}
