// timerev_test.go --  This file is part of goHF project.
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
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTimeReversalMap_Validate(t *testing.T) {
	tests := []struct {
		name string
		tao  TimeReversalMap
		nao  int
		ok   bool
	}{
		{"pair", TimeReversalMap{-2, 1}, 2, true},
		{"self partners", TimeReversalMap{1, -2}, 2, true},
		{"wrong length", TimeReversalMap{-2, 1}, 3, false},
		{"zero entry", TimeReversalMap{0, 1}, 2, false},
		{"out of range", TimeReversalMap{-3, 1}, 2, false},
		{"not an involution", TimeReversalMap{2, 3, 1}, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tao.Validate(tc.nao)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrBadTimeReversal)
			}
		})
	}
}

func TestTimeReversalMap_ValidateShells(t *testing.T) {
	tao := TimeReversalMap{-2, 1, -4, 3}
	require.NoError(t, tao.ValidateShells([]int{0, 2, 4}))
	require.ErrorIs(t, tao.ValidateShells([]int{0, 1, 4}), ErrBadTimeReversal)
}

func TestTimeReversalMap_Reverse(t *testing.T) {
	tao := TimeReversalMap{-2, 1}
	q, ph := tao.Reverse(0)
	require.Equal(t, 1, q)
	require.Equal(t, 1.0, ph)
	q, ph = tao.Reverse(1)
	require.Equal(t, 0, q)
	require.Equal(t, -1.0, ph)
}

func TestExtract_Values(t *testing.T) {
	tao := TimeReversalMap{-2, 1, -4, 3}
	src := mat.NewCDense(4, 4, nil)
	for p := 0; p < 4; p++ {
		for q := 0; q < 4; q++ {
			src.Set(p, q, complex(float64(10*p+q), 1))
		}
	}
	rows, cols := AORange{0, 2}, AORange{2, 4}

	dst := make([]complex128, 4)
	tao.Extract(dst, src, rows, cols, Plain)
	require.Equal(t, []complex128{src.At(0, 2), src.At(0, 3), src.At(1, 2), src.At(1, 3)}, dst)

	tao.Extract(dst, src, rows, cols, PlainT)
	require.Equal(t, []complex128{src.At(0, 2), src.At(1, 2), src.At(0, 3), src.At(1, 3)}, dst)

	// rows reversed: r=0 reads row 1 with phase(1)=+1, r=1 reads row 0 with phase(0)=-1
	tao.Extract(dst, src, rows, cols, RevRows)
	require.Equal(t, []complex128{src.At(1, 2), src.At(1, 3), -src.At(0, 2), -src.At(0, 3)}, dst)

	tao.Extract(dst, src, rows, cols, RevBlockT)
	require.Equal(t, []complex128{src.At(1, 3), -src.At(0, 3), -src.At(1, 2), src.At(0, 2)}, dst)

	tao.ExtractAdd(dst, src, rows, cols, RevBlockT, 2)
	require.Equal(t, []complex128{3 * src.At(1, 3), -3 * src.At(0, 3), -3 * src.At(1, 2), 3 * src.At(0, 2)}, dst)

	tao.Extract(dst, src, rows, cols, Orientation{Conj: true})
	require.Equal(t, cmplx.Conj(src.At(0, 2)), dst[0])
}

func TestBackAccumulate_RoundTrip(t *testing.T) {
	tao := TimeReversalMap{-2, 1, -4, 3, 5}
	src := RandomDensity(5, 3)
	orientations := []Orientation{Plain, PlainT, RevRows, RevRowsT, RevCols, RevColsT, RevBlock, RevBlockT,
		{Rows: true, Conj: true}, {Cols: true, Layout: ColMajor, Conj: true}}
	ranges := [][2]AORange{
		{{0, 2}, {2, 4}},
		{{2, 4}, {0, 2}},
		{{4, 5}, {0, 4}},
		{{0, 5}, {0, 5}},
	}
	for _, o := range orientations {
		for _, rc := range ranges {
			rows, cols := rc[0], rc[1]
			blk := make([]complex128, rows.Len()*cols.Len())
			tao.Extract(blk, src, rows, cols, o)
			dst := mat.NewCDense(5, 5, nil)
			tao.BackAccumulate(dst, blk, rows, cols, o, 1)
			for r := 0; r < rows.Len(); r++ {
				for c := 0; c < cols.Len(); c++ {
					p, q, _ := tao.locate(o, rows, cols, r, c)
					require.InDelta(t, 0, cmplx.Abs(dst.At(p, q)-src.At(p, q)), tol, "%+v %v", o, rc)
				}
			}
		}
	}
}

func TestBackAccumulate_Adds(t *testing.T) {
	tao := TimeReversalMap{-2, 1}
	dst := mat.NewCDense(2, 2, []complex128{1, 1, 1, 1})
	tao.BackAccumulate(dst, []complex128{2, 3, 4, 5}, AORange{0, 2}, AORange{0, 2}, RevRows, 0.5)
	// row 0 lands on row 1 with phase(1)=+1, row 1 on row 0 with phase(0)=-1
	require.Equal(t, []complex128{1 - 2, 1 - 2.5, 2, 2.5}, dst.RawCMatrix().Data)
}
