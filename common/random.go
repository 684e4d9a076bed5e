// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

const (
	mustGetRandomIntMaxBits = 64
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// MustGetRandomInt panics if it is unable to gather entropy from `rand.Reader` or when `bits` is out of range
func MustGetRandomInt(bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(fmt.Errorf("MustGetRandomInt: bits should be positive, non-zero and at most %d", mustGetRandomIntMaxBits))
	}
	// 2^bits
	max := new(big.Int).Lsh(one, uint(bits))
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(errors.Wrap(err, "rand.Int failure in MustGetRandomInt!"))
	}
	return n
}

// GetRandomPositiveInt returns a uniform value in [1, upper), or nil when upper < 2.
func GetRandomPositiveInt(upper *big.Int) *big.Int {
	if upper == nil || upper.Cmp(two) < 0 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(upper.BitLen())
		if try.Cmp(upper) < 0 && try.Cmp(zero) > 0 {
			break
		}
	}
	return try
}

// GetRandomIntBetween returns a uniform value in [lo, hi], or nil when the range is empty.
func GetRandomIntBetween(lo, hi *big.Int) *big.Int {
	if lo == nil || hi == nil || lo.Cmp(hi) > 0 {
		return nil
	}
	if lo.Cmp(hi) == 0 {
		return new(big.Int).Set(lo)
	}
	// [1, hi-lo+2) shifted down by one and up by lo
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, two)
	n := GetRandomPositiveInt(span)
	n.Sub(n, one)
	return n.Add(n, lo)
}
