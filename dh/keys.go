// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"errors"
	"math/big"

	"github.com/iofinnet/dhlab/common"
	int2 "github.com/iofinnet/dhlab/common/int"
)

// KeyPair holds a caller-chosen secret and the public value g^secret mod p.
// The secret is not checked for randomness or range; this is a teaching aid.
type KeyPair struct {
	Secret *big.Int
	Public *big.Int
}

var errNegative = errors.New("must not be negative")

func NewKeyPair(modulus, generator, secret *big.Int) (*KeyPair, error) {
	public, err := DerivePublic(modulus, generator, secret)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Secret: new(big.Int).Set(secret), Public: public}, nil
}

// SharedSecret combines this key pair's secret with the other party's public value.
func (kp *KeyPair) SharedSecret(modulus, receivedPublic *big.Int) (*big.Int, error) {
	return DeriveShared(modulus, kp.Secret, receivedPublic)
}

// DerivePublic returns generator^secret mod modulus. A zero secret is accepted and
// yields 1 mod modulus.
func DerivePublic(modulus, generator, secret *big.Int) (*big.Int, error) {
	if err := checkOperands(modulus, operand{FieldGenerator, generator}, operand{FieldSecret, secret}); err != nil {
		return nil, err
	}
	public := int2.ModExp(generator, secret, modulus)
	common.Logger.Debugf("public value %s^%s mod %s = %s",
		generator, common.FormatBigInt(secret), modulus, common.FormatBigInt(public))
	return public, nil
}

// DeriveShared returns receivedPublic^secret mod modulus. Two parties sharing modulus and
// generator arrive at the same value with their roles swapped.
func DeriveShared(modulus, secret, receivedPublic *big.Int) (*big.Int, error) {
	if err := checkOperands(modulus, operand{FieldSecret, secret}, operand{FieldReceivedPublic, receivedPublic}); err != nil {
		return nil, err
	}
	return int2.ModExp(receivedPublic, secret, modulus), nil
}

// checkOperands reports operands ModExp would panic on as input errors.
func checkOperands(modulus *big.Int, operands ...operand) error {
	if modulus == nil || modulus.Cmp(one) < 0 {
		return NewError(KindInvalidFormat, FieldModulus, valueOf(modulus), ErrNotPositiveInteger)
	}
	for _, op := range operands {
		if op.value == nil || op.value.Sign() < 0 {
			return NewError(KindInvalidFormat, op.field, valueOf(op.value), errNegative)
		}
	}
	return nil
}

type operand struct {
	field string
	value *big.Int
}

func valueOf(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
