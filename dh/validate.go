// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// SafetyCeiling is the largest modulus accepted as Diffie-Hellman parameters.
	SafetyCeiling = 1_000_000
	// DiscreteLogBound is the largest modulus the brute-force logarithm search accepts.
	DiscreteLogBound = 10_000
	// MaxOperandDigits bounds the length of every decimal input, so modular
	// exponentiation on request values stays cheap.
	MaxOperandDigits = 1024
)

var (
	one = big.NewInt(1)

	safetyCeiling    = big.NewInt(SafetyCeiling)
	discreteLogBound = big.NewInt(DiscreteLogBound)

	ErrNotPositiveInteger = errors.New("must be a positive integer")
	ErrTooManyDigits      = fmt.Errorf("must have at most %d digits", MaxOperandDigits)
)

// ParsePositiveInt parses raw as a decimal integer >= 1. Only ASCII digits are accepted:
// no sign, whitespace, radix prefix or fraction. Inputs longer than MaxOperandDigits are
// rejected as too large before they are converted.
func ParsePositiveInt(field, raw string) (*big.Int, error) {
	if !isDecimalDigits(raw) {
		return nil, NewError(KindInvalidFormat, field, raw, ErrNotPositiveInteger)
	}
	if len(raw) > MaxOperandDigits {
		return nil, NewError(KindTooLarge, field, raw[:16]+"...", ErrTooManyDigits)
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok || n.Cmp(one) < 0 {
		return nil, NewError(KindInvalidFormat, field, raw, ErrNotPositiveInteger)
	}
	return n, nil
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateParameters checks modulus and generator in order of specificity: format first,
// then the safety ceiling, then the group conditions.
func ValidateParameters(modulusRaw, generatorRaw string) (modulus, generator *big.Int, err error) {
	if modulus, err = ParsePositiveInt(FieldModulus, modulusRaw); err != nil {
		return nil, nil, err
	}
	if generator, err = ParsePositiveInt(FieldGenerator, generatorRaw); err != nil {
		return nil, nil, err
	}
	if err = checkCeiling(modulus); err != nil {
		return nil, nil, err
	}
	if err = checkGroup(modulus, generator); err != nil {
		return nil, nil, err
	}
	return modulus, generator, nil
}

func checkCeiling(modulus *big.Int) error {
	if modulus.Cmp(safetyCeiling) > 0 {
		return NewError(KindTooLarge, FieldModulus, modulus.String(),
			fmt.Errorf("must not exceed %d", SafetyCeiling))
	}
	return nil
}

func checkGroup(modulus, generator *big.Int) error {
	if !isPrime(modulus) {
		return NewError(KindInvalidGroup, FieldModulus, modulus.String(), errors.New("must be prime"))
	}
	if generator.Cmp(one) <= 0 || generator.Cmp(modulus) >= 0 {
		return NewError(KindInvalidGroup, FieldGenerator, generator.String(),
			fmt.Errorf("must satisfy 1 < g < %s", modulus))
	}
	return nil
}
