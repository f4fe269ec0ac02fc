package cryptosys

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3/util/random"
)

const (
	// PrimeMin and PrimeMax bound the sampling range of GeneratePrime.
	// The range is small on purpose: keys are illustrative only.
	PrimeMin = 2
	PrimeMax = 100
)

// IsPrime reports whether n is prime using trial division.
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	maxDiv := isqrt(n) + 1
	for d := int64(3); d < maxDiv; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func isqrt(n int64) int64 {
	return new(big.Int).Sqrt(big.NewInt(n)).Int64()
}

// GeneratePrime samples integers uniformly from [PrimeMin, PrimeMax]
// until one is prime. A nil stream uses crypto/rand.
func GeneratePrime(rand cipher.Stream) int64 {
	if rand == nil {
		rand = random.New()
	}
	span := big.NewInt(PrimeMax - PrimeMin + 1)
	for {
		n := random.Int(span, rand).Int64() + PrimeMin
		if IsPrime(n) {
			return n
		}
	}
}
