// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"fmt"
	"math/big"

	"github.com/iofinnet/dhlab/common"
	int2 "github.com/iofinnet/dhlab/common/int"
)

// SolveDiscreteLog finds the smallest x in [0, modulus) with base^x mod modulus == result.
//
// The search is an exhaustive linear scan, one modular exponentiation per candidate.
// It exists to show how quickly brute force stops being practical, so it must stay a
// scan; moduli above DiscreteLogBound are refused with KindModulusTooLarge.
func SolveDiscreteLog(base, result, modulus *big.Int) (*big.Int, error) {
	if err := checkOperands(modulus, operand{FieldBase, base}, operand{FieldResult, result}); err != nil {
		return nil, err
	}
	if err := checkLogBound(modulus); err != nil {
		return nil, err
	}
	x := new(big.Int)
	for ; x.Cmp(modulus) < 0; x.Add(x, one) {
		if int2.ModExp(base, x, modulus).Cmp(result) == 0 {
			common.Logger.Debugf("discrete log of %s to base %s mod %s is %s", result, base, modulus, x)
			return x, nil
		}
	}
	return nil, NewError(KindNoSolutionFound, "", "",
		fmt.Errorf("no x in [0, %s) with %s^x mod %s = %s", modulus, base, modulus, result))
}

func checkLogBound(modulus *big.Int) error {
	if modulus.Cmp(discreteLogBound) > 0 {
		return NewError(KindModulusTooLarge, FieldModulus, modulus.String(),
			fmt.Errorf("choose a modulus of at most %d for the demonstration", DiscreteLogBound))
	}
	return nil
}

// PowerRow is one step of the brute-force walk: base^Exponent mod modulus == Value.
type PowerRow struct {
	Exponent uint64
	Value    uint64
}

// PowerTable lists base^x mod modulus for x = 0 .. modulus-1, the sequence
// SolveDiscreteLog walks through, truncated to limit rows unless limit is negative.
// It applies the same modulus bound.
func PowerTable(base, modulus *big.Int, limit int) ([]PowerRow, error) {
	if err := checkOperands(modulus, operand{FieldBase, base}); err != nil {
		return nil, err
	}
	if err := checkLogBound(modulus); err != nil {
		return nil, err
	}
	n := modulus.Uint64()
	if limit >= 0 && uint64(limit) < n {
		n = uint64(limit)
	}
	rows := make([]PowerRow, 0, n)
	modInt := int2.ModInt(modulus)
	for x := uint64(0); x < n; x++ {
		v := modInt.Exp(base, new(big.Int).SetUint64(x))
		rows = append(rows, PowerRow{Exponent: x, Value: v.Uint64()})
	}
	return rows, nil
}
