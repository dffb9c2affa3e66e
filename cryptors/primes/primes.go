// Package primes supplies the prime number helpers used to build the rotor
// key table.
package primes

import (
	"math/big"

	"github.com/bgallie/steckr/cryptors/bitops"
)

// IsPrime reports whether n is prime.  ProbablyPrime is exact for values
// that fit in 64 bits.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}

	return big.NewInt(int64(n)).ProbablyPrime(0)
}

// GeneratePrimes returns, in ascending order, every prime p with
// low <= p <= high.  It returns nil when the range holds no primes.
func GeneratePrimes(low, high int) []int {
	if high < 2 || high < low {
		return nil
	}

	if low < 2 {
		low = 2
	}

	// Sieve of Eratosthenes; a set bit marks a composite.
	composite := bitops.New(high + 1)
	for i := 2; i*i <= high; i++ {
		if composite.Get(uint(i)) {
			continue
		}

		for j := i * i; j <= high; j += i {
			composite.Set(uint(j))
		}
	}

	var res []int
	for i := low; i <= high; i++ {
		if !composite.Get(uint(i)) {
			res = append(res, i)
		}
	}

	return res
}
