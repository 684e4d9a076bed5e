// Copyright © 2021 Io FinNet Group, Inc.

package dh_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	int2 "github.com/iofinnet/dhlab/common/int"
	. "github.com/iofinnet/dhlab/dh"
	"github.com/iofinnet/dhlab/test"
)

func TestGeneratorOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		p, g      string
		want      uint64
		primitive bool
	}{
		{"23", "5", 22, true},
		{"23", "2", 11, false},
		{"23", "22", 2, false},
		{"7", "2", 3, false},
		{"7", "3", 6, true},
		{"3", "2", 2, true},
		{"104729", "12", 104728, true},
		{"999983", "2", 499991, false},
		{"999983", "5", 999982, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run("p="+tt.p+",g="+tt.g, func(t *testing.T) {
			params, err := NewParameters(tt.p, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.GeneratorOrder())
			assert.Equal(t, tt.primitive, params.IsPrimitiveRoot())
		})
	}
}

func TestGeneratorOrderFixtures(t *testing.T) {
	t.Parallel()
	for _, ex := range test.Exchanges {
		params, err := NewParameters(big.NewInt(ex.Modulus).String(), big.NewInt(ex.Generator).String())
		require.NoError(t, err)
		order := params.GeneratorOrder()
		assert.Equal(t, ex.GeneratorOrder, order, ex.Name)
		assert.Equal(t, ex.GeneratorIsPrimRt, params.IsPrimitiveRoot(), ex.Name)
		// g^order = 1 and the order divides p-1
		assert.Equal(t, int64(1), int2.ModExp(params.Generator(), new(big.Int).SetUint64(order), params.Modulus()).Int64())
		assert.Zero(t, (uint64(ex.Modulus)-1)%order)
	}
}

func TestGeneratorOrderZeroValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		params *Parameters
	}{
		{"nil", nil},
		{"zero value", &Parameters{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Zero(t, tt.params.GeneratorOrder())
				assert.False(t, tt.params.IsPrimitiveRoot())
			})
		})
	}
}
