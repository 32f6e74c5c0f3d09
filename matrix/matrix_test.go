// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wtsan/matrix"
)

func TestNewDense_Errors(t *testing.T) {
	_, err := matrix.NewDense(0, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewFromRows([][]float64{{math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestAtSet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 4.5))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	require.Equal(t, []float64{0, 0, 4.5}, m.Row(1))
	require.Nil(t, m.Row(5))
}

func TestCloneIndependent(t *testing.T) {
	m, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))

	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestValidators(t *testing.T) {
	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)

	asym, _ := matrix.NewFromRows([][]float64{{1, 2}, {2.5, 1}})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-9), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, 1))
}

func TestInverse(t *testing.T) {
	// needs a row swap: the first pivot is zero
	a, _ := matrix.NewFromRows([][]float64{{0, 2}, {4, 1}})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var s float64
			for k := 0; k < 2; k++ {
				aik, _ := a.At(i, k)
				bkj, _ := inv.At(k, j)
				s += aik * bkj
			}
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, s, 1e-12)
		}
	}

	sing, _ := matrix.NewFromRows([][]float64{{1, 2}, {2, 4}})
	_, err = matrix.Inverse(sing)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestVecMul(t *testing.T) {
	m, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})

	y, err := m.VecMul([]float64{1, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 6}, y)

	dst := []float64{7, 7}
	_, err = m.VecMul([]float64{0, 2}, dst)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 8}, dst)

	_, err = m.VecMul([]float64{1}, nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
