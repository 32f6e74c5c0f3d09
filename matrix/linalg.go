// SPDX-License-Identifier: MIT
//
// File: linalg.go
// Role: the two kernels the sampler needs: inversion (covariance -> inverse
// covariance) and the row-vector product x·M used by the acceptance form.

package matrix

import "math"

// pivotEps is the magnitude below which a pivot is treated as zero.
const pivotEps = 1e-12

// Inverse returns A^{-1} by Gauss–Jordan elimination with partial pivoting.
//
// Errors:
//   - ErrNilMatrix/ErrNonSquare from ValidateSquare.
//   - ErrSingular when no pivot above pivotEps exists in a column.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(a *Dense) (*Dense, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf("Inverse", err)
	}
	n := a.r
	w := a.Clone()
	inv, _ := Identity(n)

	for col := 0; col < n; col++ {
		// partial pivoting: largest |value| at or below the diagonal
		p, best := col, math.Abs(w.data[col*n+col])
		for i := col + 1; i < n; i++ {
			if v := math.Abs(w.data[i*n+col]); v > best {
				p, best = i, v
			}
		}
		if best < pivotEps {
			return nil, matrixErrorf("Inverse", ErrSingular)
		}
		if p != col {
			swapRows(w, p, col)
			swapRows(inv, p, col)
		}

		pivot := w.data[col*n+col]
		for j := 0; j < n; j++ {
			w.data[col*n+j] /= pivot
			inv.data[col*n+j] /= pivot
		}
		for i := 0; i < n; i++ {
			if i == col {
				continue
			}
			f := w.data[i*n+col]
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				w.data[i*n+j] -= f * w.data[col*n+j]
				inv.data[i*n+j] -= f * inv.data[col*n+j]
			}
		}
	}

	return inv, nil
}

func swapRows(m *Dense, i, k int) {
	c := m.c
	ri, rk := m.data[i*c:(i+1)*c], m.data[k*c:(k+1)*c]
	for j := 0; j < c; j++ {
		ri[j], rk[j] = rk[j], ri[j]
	}
}

// VecMul writes the row-vector product y = x·M into dst (len == Cols) and returns it.
// dst may be nil, in which case it is allocated.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != Rows or dst has the wrong length.
//
// Complexity:
//   - Time O(r*c), Space O(c) when dst is nil.
func (m *Dense) VecMul(x, dst []float64) ([]float64, error) {
	if err := ValidateVecLen(x, m.r); err != nil {
		return nil, matrixErrorf("VecMul", err)
	}
	if dst == nil {
		dst = make([]float64, m.c)
	} else if err := ValidateVecLen(dst, m.c); err != nil {
		return nil, matrixErrorf("VecMul", err)
	}
	for j := range dst {
		dst[j] = 0
	}
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			dst[j] += xi * v
		}
	}

	return dst, nil
}
