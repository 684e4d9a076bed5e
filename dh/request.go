// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"fmt"
	"math/big"

	int2 "github.com/iofinnet/dhlab/common/int"
)

// The functions below are the request boundary: every numeric input arrives as decimal
// text and must be a positive integer. Zero is rejected here, including for secrets and
// exponents, even though the engine functions they call accept 0.

// PublicValue derives g^secret mod p from raw request fields.
func PublicValue(modulusRaw, generatorRaw, secretRaw string) (*big.Int, error) {
	modulus, err := ParsePositiveInt(FieldModulus, modulusRaw)
	if err != nil {
		return nil, err
	}
	generator, err := ParsePositiveInt(FieldGenerator, generatorRaw)
	if err != nil {
		return nil, err
	}
	secret, err := ParsePositiveInt(FieldSecret, secretRaw)
	if err != nil {
		return nil, err
	}
	return DerivePublic(modulus, generator, secret)
}

// SharedValue derives receivedPublic^secret mod p from raw request fields.
func SharedValue(modulusRaw, secretRaw, receivedPublicRaw string) (*big.Int, error) {
	modulus, err := ParsePositiveInt(FieldModulus, modulusRaw)
	if err != nil {
		return nil, err
	}
	secret, err := ParsePositiveInt(FieldSecret, secretRaw)
	if err != nil {
		return nil, err
	}
	received, err := ParsePositiveInt(FieldReceivedPublic, receivedPublicRaw)
	if err != nil {
		return nil, err
	}
	return DeriveShared(modulus, secret, received)
}

// DiscreteExp computes base^exponent mod modulus from raw request fields.
func DiscreteExp(baseRaw, exponentRaw, modulusRaw string) (*big.Int, error) {
	base, err := ParsePositiveInt(FieldBase, baseRaw)
	if err != nil {
		return nil, err
	}
	exponent, err := ParsePositiveInt(FieldExponent, exponentRaw)
	if err != nil {
		return nil, err
	}
	modulus, err := ParsePositiveInt(FieldModulus, modulusRaw)
	if err != nil {
		return nil, err
	}
	return int2.ModExp(base, exponent, modulus), nil
}

// DiscreteLog solves base^x = result mod modulus from raw request fields.
func DiscreteLog(baseRaw, resultRaw, modulusRaw string) (*big.Int, error) {
	base, err := ParsePositiveInt(FieldBase, baseRaw)
	if err != nil {
		return nil, err
	}
	result, err := ParsePositiveInt(FieldResult, resultRaw)
	if err != nil {
		return nil, err
	}
	modulus, err := ParsePositiveInt(FieldModulus, modulusRaw)
	if err != nil {
		return nil, err
	}
	return SolveDiscreteLog(base, result, modulus)
}

// Suggest draws demo parameters of bitsRaw bits, DefaultSuggestBits when bitsRaw is empty.
func Suggest(bitsRaw string) (*Suggestion, error) {
	if bitsRaw == "" {
		return SuggestParameters(DefaultSuggestBits)
	}
	n, err := ParsePositiveInt(FieldBits, bitsRaw)
	if err != nil {
		return nil, err
	}
	if !n.IsInt64() || n.Int64() > MaxSuggestBits {
		return nil, NewError(KindTooLarge, FieldBits, bitsRaw,
			fmt.Errorf("%w: must not exceed %d", ErrBitsOutOfRange, MaxSuggestBits))
	}
	return SuggestParameters(int(n.Int64()))
}
