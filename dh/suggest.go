// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/iofinnet/dhlab/common"
)

const (
	// MinSuggestBits and MaxSuggestBits bound the modulus size SuggestParameters draws.
	// Every 19-bit number is below SafetyCeiling.
	MinSuggestBits = 4
	MaxSuggestBits = 19
	// DefaultSuggestBits is used when a request names no size.
	DefaultSuggestBits = 16

	FieldBits = "bits"

	suggestWorkers = 2
	suggestTimeout = 10 * time.Second
)

var ErrBitsOutOfRange = errors.New("bit length out of range")

// Suggestion is a ready-made exchange: a safe prime modulus with a primitive root, and a
// random secret for each party.
type Suggestion struct {
	Params  *Parameters
	SecretA *big.Int
	SecretB *big.Int
}

// SuggestParameters draws a random safe prime p = 2q+1 of the given bit length, a
// primitive root g mod p and two secrets in [2, p-2]. Safe primes keep p-1 = 2q free of
// small factors, so no generator other than 1 and p-1 lands in a tiny subgroup.
func SuggestParameters(bits int) (*Suggestion, error) {
	if bits < MinSuggestBits {
		return nil, NewError(KindInvalidFormat, FieldBits, strconv.Itoa(bits),
			fmt.Errorf("%w: must be at least %d", ErrBitsOutOfRange, MinSuggestBits))
	}
	if bits > MaxSuggestBits {
		return nil, NewError(KindTooLarge, FieldBits, strconv.Itoa(bits),
			fmt.Errorf("%w: must not exceed %d", ErrBitsOutOfRange, MaxSuggestBits))
	}
	sgps, err := common.GetRandomSafePrimesConcurrent(bits, 1, suggestTimeout, suggestWorkers, nil)
	if err != nil {
		return nil, err
	}
	modulus := new(big.Int).SetUint64(sgps[0].SafePrime())
	lo, hi := big.NewInt(2), new(big.Int).Sub(modulus, big.NewInt(2))

	params := &Parameters{modulus: modulus}
	for {
		params.generator = common.GetRandomIntBetween(lo, hi)
		if params.IsPrimitiveRoot() {
			break
		}
	}
	if err = params.Validate(); err != nil {
		return nil, err
	}
	secretA, secretB := common.GetRandomIntBetween(lo, hi), common.GetRandomIntBetween(lo, hi)
	common.Logger.Debugf("suggested %s from safe prime %s, secrets:%s",
		params, sgps[0], common.BigIntsToString([]*big.Int{secretA, secretB}))
	return &Suggestion{
		Params:  params,
		SecretA: secretA,
		SecretB: secretB,
	}, nil
}
