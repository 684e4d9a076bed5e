// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package dh

import (
	"math/big"

	"github.com/iofinnet/dhlab/common"
)

// Names of the input fields reported in *Error.
const (
	FieldModulus        = "modulus"
	FieldGenerator      = "generator"
	FieldSecret         = "secret"
	FieldReceivedPublic = "received_public"
	FieldBase           = "base"
	FieldExponent       = "exponent"
	FieldResult         = "result"
)

type (
	// Parameters is a validated group: a prime modulus no larger than SafetyCeiling and a
	// generator in the open interval (1, modulus).
	Parameters struct {
		modulus   *big.Int
		generator *big.Int
	}
)

func NewParameters(modulusRaw, generatorRaw string) (*Parameters, error) {
	modulus, generator, err := ValidateParameters(modulusRaw, generatorRaw)
	if err != nil {
		return nil, err
	}
	params := &Parameters{
		modulus:   modulus,
		generator: generator,
	}
	common.Logger.Debugf("parameters accepted: p=%s g=%s", params.modulus, params.generator)
	return params, nil
}

// Validate re-checks the invariants established by NewParameters.
func (params *Parameters) Validate() error {
	if params == nil || params.modulus == nil || params.generator == nil {
		return NewError(KindInvalidFormat, "", "", ErrNotPositiveInteger)
	}
	if params.modulus.Sign() <= 0 {
		return NewError(KindInvalidFormat, FieldModulus, params.modulus.String(), ErrNotPositiveInteger)
	}
	if params.generator.Sign() <= 0 {
		return NewError(KindInvalidFormat, FieldGenerator, params.generator.String(), ErrNotPositiveInteger)
	}
	if err := checkCeiling(params.modulus); err != nil {
		return err
	}
	return checkGroup(params.modulus, params.generator)
}

func (params *Parameters) Modulus() *big.Int {
	return new(big.Int).Set(params.modulus)
}

func (params *Parameters) Generator() *big.Int {
	return new(big.Int).Set(params.generator)
}

// NewKeyPair derives the public value for secret under these parameters.
func (params *Parameters) NewKeyPair(secret *big.Int) (*KeyPair, error) {
	return NewKeyPair(params.modulus, params.generator, secret)
}

func (params *Parameters) String() string {
	return "p=" + params.modulus.String() + " g=" + params.generator.String()
}

func isPrime(n *big.Int) bool {
	return common.IsPrimeInt(n)
}
