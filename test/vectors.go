// Copyright © 2021 Io FinNet Group, Inc.

package test

import (
	"math/big"
)

// Exchange is a worked Diffie-Hellman example with every intermediate value.
type Exchange struct {
	Name              string
	Modulus           int64
	Generator         int64
	SecretA, SecretB  int64
	PublicA, PublicB  int64
	Shared            int64
	GeneratorOrder    uint64
	GeneratorIsPrimRt bool
}

// Exchanges are hand-checked vectors shared by the dh, server and cmd tests.
var Exchanges = []Exchange{{
	Name:    "textbook",
	Modulus: 23, Generator: 5,
	SecretA: 6, SecretB: 15,
	PublicA: 8, PublicB: 19,
	Shared:         2,
	GeneratorOrder: 22, GeneratorIsPrimRt: true,
}, {
	Name:    "small subgroup",
	Modulus: 23, Generator: 2,
	SecretA: 3, SecretB: 4,
	PublicA: 8, PublicB: 16,
	Shared:         2,
	GeneratorOrder: 11, GeneratorIsPrimRt: false,
}, {
	Name:    "p = 97",
	Modulus: 97, Generator: 5,
	SecretA: 36, SecretB: 58,
	PublicA: 50, PublicB: 44,
	Shared:         75,
	GeneratorOrder: 96, GeneratorIsPrimRt: true,
}}

// Int is shorthand for big.NewInt in table-driven tests.
func Int(x int64) *big.Int {
	return big.NewInt(x)
}

// Strings renders each value in decimal, for feeding raw request fields.
func Strings(xs ...int64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x).String()
	}
	return out
}
