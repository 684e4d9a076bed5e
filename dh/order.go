// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"math/big"
	"sort"

	"github.com/otiai10/primes"

	int2 "github.com/iofinnet/dhlab/common/int"
)

// GeneratorOrder returns the multiplicative order of the generator modulo the prime
// modulus: the size of the subgroup the exchange actually runs in. It starts from
// p-1 and divides out each prime factor while g^(order/q) is still 1.
// Parameters without a modulus of at least 2 that fits in 64 bits, or without a
// generator, have order 0.
func (params *Parameters) GeneratorOrder() uint64 {
	if !params.hasOrder() {
		return 0
	}
	groupOrder := params.modulus.Uint64() - 1
	order := groupOrder
	for _, q := range primeFactors(groupOrder) {
		for order%q == 0 && isIdentity(params.generator, order/q, params.modulus) {
			order /= q
		}
	}
	return order
}

// IsPrimitiveRoot reports whether the generator spans the whole group (Z/pZ)*.
func (params *Parameters) IsPrimitiveRoot() bool {
	if !params.hasOrder() {
		return false
	}
	return params.GeneratorOrder() == params.modulus.Uint64()-1
}

func (params *Parameters) hasOrder() bool {
	return params != nil && params.modulus != nil && params.generator != nil &&
		params.modulus.IsUint64() && params.modulus.Cmp(one) > 0
}

func isIdentity(g *big.Int, exp uint64, modulus *big.Int) bool {
	return int2.ModExp(g, new(big.Int).SetUint64(exp), modulus).Cmp(one) == 0
}

// primeFactors returns the distinct prime factors of n in ascending order.
func primeFactors(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	powers := primes.Factorize(int64(n)).Powers()
	factors := make([]uint64, 0, len(powers))
	for p := range powers {
		factors = append(factors, uint64(p))
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i] < factors[j] })
	return factors
}
