// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package int

import (
	"fmt"
	"math/big"
)

var one = big.NewInt(1)

// modInt is a *big.Int that performs all of its arithmetic with modular reduction.
type modInt big.Int

// ModInt panics when mod is nil or less than 1.
func ModInt(mod *big.Int) *modInt {
	mustBeModulus(mod)
	i := new(big.Int).Set(mod)
	return (*modInt)(i)
}

func (mi *modInt) Add(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Add(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Sub(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Sub(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Mul(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Mul(x, y)
	return i.Mod(i, mi.int())
}

func (mi *modInt) Exp(x, y *big.Int) *big.Int {
	return ModExp(x, y, mi.int())
}

func (mi *modInt) Modulus() *big.Int {
	return mi.int()
}

func (mi *modInt) int() *big.Int {
	return new(big.Int).Set((*big.Int)(mi))
}

// ModExp returns base^exponent mod modulus using right-to-left square-and-multiply.
// The full power is never materialised: every intermediate product is reduced, so
// the cost is O(log exponent) multiplications of values smaller than modulus.
//
// ModExp panics if modulus < 1 or if base or exponent is negative.
func ModExp(base, exponent, modulus *big.Int) *big.Int {
	mustBeModulus(modulus)
	if base == nil || base.Sign() < 0 {
		panic(fmt.Errorf("ModExp: base must be non-negative, got %v", base))
	}
	if exponent == nil || exponent.Sign() < 0 {
		panic(fmt.Errorf("ModExp: exponent must be non-negative, got %v", exponent))
	}
	// everything is congruent to 0 mod 1
	if modulus.Cmp(one) == 0 {
		return new(big.Int)
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i, n := 0, exponent.BitLen(); i < n; i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result
}

func mustBeModulus(mod *big.Int) {
	if mod == nil || mod.Cmp(one) < 0 {
		panic(fmt.Errorf("modulus must be a positive integer, got %v", mod))
	}
}

