// testutil_test.go --  This file is part of goHF project.
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
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-10

// testShells mixes Kramers-paired shells of different sizes: 2 + 6 + 4 AOs.
var testShells = []SpinorShell{
	{L: 0, Kappa: 0, NCtr: 1},
	{L: 1, Kappa: 0, NCtr: 1},
	{L: 1, Kappa: -1, NCtr: 1},
}

type fixture struct {
	aoLoc []int
	tao   TimeReversalMap
	eri   *ModelERI
	dm    *mat.CDense
}

func newFixture(t *testing.T, fam Family, ncomp int) *fixture {
	t.Helper()
	b, err := NewSpinorBasis(testShells)
	require.NoError(t, err)
	f := &fixture{aoLoc: b.AOLoc(), tao: b.TimeReversalMap()}
	f.eri, err = NewModelERI(f.aoLoc, f.tao, fam, ncomp, 42, 0.1)
	require.NoError(t, err)
	f.dm = RandomDensity(b.NAO(), 7)
	return f
}

func (f *fixture) nao() int { return f.aoLoc[len(f.aoLoc)-1] }

func (f *fixture) nbas() int { return len(f.aoLoc) - 1 }

// block returns the integrals of shls followed by their 0213 copy.
func (f *fixture) block(t *testing.T, shls [4]int) ([]complex128, BlockGeometry) {
	t.Helper()
	g := NewBlockGeometry(shls, f.aoLoc)
	n := g.Size() * f.eri.NComp()
	buf := make([]complex128, 2*n)
	require.True(t, f.eri.Evaluate(buf[:n], shls))
	Permute0213(buf[n:], buf[:n], g, f.eri.NComp())
	return buf, g
}

func zeros(ncomp, nao int) []*mat.CDense {
	return newOutputs(1, ncomp, nao)[0]
}

func requireCDenseNear(t *testing.T, want, got *mat.CDense, eps float64, msgAndArgs ...interface{}) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, [2]int{wr, wc}, [2]int{gr, gc}, msgAndArgs...)
	require.LessOrEqual(t, MaxDeviation(want, got), eps, msgAndArgs...)
}

// catchViolation runs f and returns the *PreconditionViolation it panics with.
func catchViolation(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pv, ok := r.(*PreconditionViolation); ok {
				err = pv
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}

// addElement applies role to a single integral G(idx) = val.
func addElement(role Role, idx [4]int, val complex128, dm, out *mat.CDense) {
	p, q, r, s := idx[0], idx[1], idx[2], idx[3]
	switch role {
	case JIToKL:
		out.Set(r, s, out.At(r, s)+val*dm.At(q, p))
	case LKToIJ:
		out.Set(p, q, out.At(p, q)+val*dm.At(s, r))
	case JKToIL:
		out.Set(p, s, out.At(p, s)+val*dm.At(q, r))
	case LIToKJ:
		out.Set(r, q, out.At(r, q)+val*dm.At(s, p))
	}
}

// contractQuadruple is the element-by-element contraction of one shell
// quadruple of eri.
func contractQuadruple(eri *ModelERI, role Role, shls [4]int, aoLoc []int, dm *mat.CDense, out []*mat.CDense) {
	g := NewBlockGeometry(shls, aoLoc)
	for ic, o := range out {
		for p := g.I.Start; p < g.I.End; p++ {
			for q := g.J.Start; q < g.J.End; q++ {
				for r := g.K.Start; r < g.K.End; r++ {
					for s := g.L.Start; s < g.L.End; s++ {
						addElement(role, [4]int{p, q, r, s}, eri.At(p, q, r, s, ic), dm, o)
					}
				}
			}
		}
	}
}
