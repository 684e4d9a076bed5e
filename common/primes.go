// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	"math"
	"math/big"
)

// IsPrime decides primality by trial division. Even numbers are rejected up front,
// then every odd divisor from 3 up to and including floor(sqrt(n))+1 is tried.
// The cost is O(sqrt(n)); callers bound n before calling.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	root := isqrt(n) + 1
	for i := uint64(3); i <= root && i < n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// IsPrimeInt is IsPrime for big integers. Negative values and values that do not fit
// in a uint64 are reported as not prime; trial division at that size would not finish.
func IsPrimeInt(n *big.Int) bool {
	if n == nil || n.Sign() < 0 || !n.IsUint64() {
		return false
	}
	return IsPrime(n.Uint64())
}

// isqrt returns floor(sqrt(n)), correcting the float estimate at the edges.
func isqrt(n uint64) uint64 {
	const maxRoot = 1<<32 - 1
	r := uint64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// GetFirstNPrimes returns the first n prime numbers.
func GetFirstNPrimes(n int) []uint {
	if n <= 0 {
		return []uint{}
	}

	// For common cases, return pre-computed values
	if n <= 25 {
		// First 25 primes (up to 97)
		allPrimes := []uint{
			2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
			59, 61, 67, 71, 73, 79, 83, 89, 97,
		}
		return allPrimes[:n]
	}

	// p_n < n * (ln(n) + ln(ln(n))) for n >= 6, so 20n is a safe overestimate here
	estimatedLimit := n * 20
	if n > 100 {
		estimatedLimit = n * 15
	}

	primes := GetPrimesUpTo(estimatedLimit)
	for len(primes) < n {
		estimatedLimit *= 2
		primes = GetPrimesUpTo(estimatedLimit)
	}
	return primes[:n]
}

// GetPrimesUpTo generates all prime numbers up to the given limit
// using the Sieve of Eratosthenes algorithm.
func GetPrimesUpTo(limit int) []uint {
	if limit < 2 {
		return []uint{}
	}

	isComposite := make([]bool, limit+1)
	isComposite[0] = true
	isComposite[1] = true

	for p := 2; p*p <= limit; p++ {
		if !isComposite[p] {
			for i := p * p; i <= limit; i += p {
				isComposite[i] = true
			}
		}
	}

	var primes []uint
	for i := 2; i <= limit; i++ {
		if !isComposite[i] {
			primes = append(primes, uint(i))
		}
	}
	return primes
}
