// zgemv.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Integral blocks are column-major (i fastest), gonum BLAS is row-major.
// A column-major m x n matrix with leading dimension lda is the row-major
// n x m matrix with stride lda, so the two helpers below swap the transpose
// flag and hand the block over unchanged.

// zgemvN: y[r] += alpha * sum_c a[r+lda*c] * x[c], r < m, c < n.
func zgemvN(m, n int, alpha complex128, a []complex128, lda int, x, y []complex128) {
	if m == 0 || n == 0 {
		return
	}
	cblas128.Gemv(blas.Trans, alpha,
		cblas128.General{Rows: n, Cols: m, Stride: lda, Data: a[:(n-1)*lda+m]},
		cblas128.Vector{N: n, Inc: 1, Data: x[:n]},
		1, cblas128.Vector{N: m, Inc: 1, Data: y[:m]})
}

// zgemvT: y[c] += alpha * sum_r a[r+lda*c] * x[r], r < m, c < n.
func zgemvT(m, n int, alpha complex128, a []complex128, lda int, x, y []complex128) {
	if m == 0 || n == 0 {
		return
	}
	cblas128.Gemv(blas.NoTrans, alpha,
		cblas128.General{Rows: n, Cols: m, Stride: lda, Data: a[:(n-1)*lda+m]},
		cblas128.Vector{N: m, Inc: 1, Data: x[:m]},
		1, cblas128.Vector{N: n, Inc: 1, Data: y[:n]})
}
