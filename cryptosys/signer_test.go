package cryptosys

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestSignVerify(t *testing.T) {
	kp := testKeyPair(t)
	sig, err := Sign("hello", kp.Private())
	require.NoError(t, err)
	require.NoError(t, Verify("hello", sig, kp.Public()))

	err = Verify("hellp", sig, kp.Public())
	require.True(t, xerrors.Is(err, ErrVerification))

	expected, err := Encrypt(Digest("hello"), kp.Private())
	require.NoError(t, err)
	require.Equal(t, expected, sig)
}

func TestSignSmallModulus(t *testing.T) {
	kp, err := NewKeyPair(5, 7)
	require.NoError(t, err)
	_, err = Sign("hello", kp.Private())
	require.True(t, xerrors.Is(err, ErrEncoding))
}

func TestDigest(t *testing.T) {
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Digest("hello"))
}

func TestTextbook(t *testing.T) {
	kp := testKeyPair(t)
	var cs Cryptosystem = Textbook{}

	ct, err := cs.Encrypt("Alice->Bob:10", kp.Public())
	require.NoError(t, err)
	priv := kp.Private()
	pt, err := cs.Decrypt(ct, &priv)
	require.NoError(t, err)
	require.Equal(t, "Alice->Bob:10", pt)

	sig, err := cs.Sign(ct, kp.Private())
	require.NoError(t, err)
	require.NoError(t, cs.Verify(ct, sig, kp.Public()))

	// A whole pair does not say which half to use.
	_, err = cs.Encrypt("x", kp)
	require.True(t, xerrors.Is(err, ErrKeyType))
	_, err = cs.Decrypt(ct, kp)
	require.True(t, xerrors.Is(err, ErrKeyType))
	var nilKey *Key
	_, err = cs.Sign("x", nilKey)
	require.True(t, xerrors.Is(err, ErrKeyType))
	require.True(t, xerrors.Is(cs.Verify("x", "1", "key"), ErrKeyType))
}
