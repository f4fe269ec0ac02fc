package cryptosys

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/xerrors"
)

// TokenSeparator joins the per-code-point ciphertext tokens. Decrypt
// splits on any run of whitespace, so the two stay symmetric.
const TokenSeparator = " "

// Encrypt raises every code point of message to k.Exp modulo k.N and
// returns the decimal results separated by TokenSeparator.
func Encrypt(message string, k Key) (string, error) {
	if k.N <= 1 {
		return "", xerrors.Errorf("modulus %d: %w", k.N, ErrEncoding)
	}
	if k.Exp < 0 {
		return "", xerrors.Errorf("negative exponent %d: %w", k.Exp, ErrEncoding)
	}
	n := big.NewInt(k.N)
	exp := big.NewInt(k.Exp)
	tokens := make([]string, 0, utf8.RuneCountInString(message))
	for i, r := range message {
		if int64(r) >= k.N {
			return "", xerrors.Errorf("code point %U at offset %d is not below modulus %d: %w",
				r, i, k.N, ErrEncoding)
		}
		c := new(big.Int).Exp(big.NewInt(int64(r)), exp, n)
		tokens = append(tokens, c.String())
	}
	return strings.Join(tokens, TokenSeparator), nil
}

// Decrypt reverses Encrypt using the other half of the key pair.
func Decrypt(ciphertext string, k Key) (string, error) {
	if k.N <= 1 {
		return "", xerrors.Errorf("modulus %d: %w", k.N, ErrParse)
	}
	if k.Exp < 0 {
		return "", xerrors.Errorf("negative exponent %d: %w", k.Exp, ErrParse)
	}
	n := big.NewInt(k.N)
	exp := big.NewInt(k.Exp)
	var builder strings.Builder
	for i, token := range strings.Fields(ciphertext) {
		c, err := strconv.ParseInt(token, 10, 64)
		if err != nil || c < 0 || c >= k.N {
			return "", xerrors.Errorf("token %d %q: %w", i, token, ErrParse)
		}
		m := new(big.Int).Exp(big.NewInt(c), exp, n).Int64()
		if m > utf8.MaxRune || !utf8.ValidRune(rune(m)) {
			return "", xerrors.Errorf("token %d decrypts to invalid code point %d: %w", i, m, ErrParse)
		}
		builder.WriteRune(rune(m))
	}
	return builder.String(), nil
}
