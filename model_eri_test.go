// model_eri_test.go --  This file is part of goHF project.
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
)

func TestModelERI_PairSymmetries(t *testing.T) {
	for _, fam := range families {
		f := newFixture(t, fam, 2)
		tao := f.tao
		eta1, eta2 := float64(fam.E1), float64(fam.E2)
		phi := func(p int) float64 { return tao.Phase(tao.Partner(p)) }
		nao := f.nao()
		for ic := 0; ic < 2; ic++ {
			for s := 0; s < nao; s++ {
				for r := 0; r < nao; r++ {
					for q := 0; q < nao; q++ {
						for p := 0; p < nao; p++ {
							v := f.eri.At(p, q, r, s, ic)
							w1 := f.eri.At(tao.Partner(q), tao.Partner(p), r, s, ic)
							w2 := f.eri.At(p, q, tao.Partner(s), tao.Partner(r), ic)
							require.InDelta(t, 0, cmplx.Abs(w1-complex(eta1*phi(p)*phi(q), 0)*v), tol, "%s", fam)
							require.InDelta(t, 0, cmplx.Abs(w2-complex(eta2*phi(r)*phi(s), 0)*v), tol, "%s", fam)
						}
					}
				}
			}
		}
	}
}

func TestModelERI_Deterministic(t *testing.T) {
	a := newFixture(t, RHA, 1)
	b := newFixture(t, RHA, 1)
	require.Equal(t, a.eri.data, b.eri.data)
	other, err := NewModelERI(a.aoLoc, a.tao, RHA, 1, 43, 0.1)
	require.NoError(t, err)
	require.NotEqual(t, a.eri.data, other.data)
}

func TestModelERI_Errors(t *testing.T) {
	_, err := NewModelERI([]int{0, 1, 3}, TimeReversalMap{1, -3, 2}, RHA, 1, 1, 0)
	require.ErrorIs(t, err, ErrBadTimeReversal)
	_, err = NewModelERI([]int{0, 2}, TimeReversalMap{-2, 1}, RHA, 0, 1, 0)
	require.ErrorIs(t, err, ErrInput)
	_, err = NewModelERI([]int{0, 3, 2}, TimeReversalMap{-2, 1}, RHA, 1, 1, 0)
	require.ErrorIs(t, err, ErrBadAOLoc)
}

func TestModelERI_EvaluateBlockLayout(t *testing.T) {
	f := newFixture(t, RS, 2)
	shls := [4]int{1, 0, 2, 1}
	g := NewBlockGeometry(shls, f.aoLoc)
	di, dj, dk, _ := g.Dims()
	n := g.Size()
	buf := make([]complex128, 2*n)
	require.True(t, f.eri.Evaluate(buf, shls))
	require.Equal(t, f.eri.At(g.I.Start+1, g.J.Start, g.K.Start+2, g.L.Start+3, 1), buf[n+1+di*(0+dj*(2+dk*3))])
}
