// screening.go --  This file is part of goHF project.
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
	"math"
	"math/cmplx"
)

// SchwarzScreener skips a quadruple when q[ij] q[kl] < Threshold, where
// q[ij] = sqrt(max |(ij|ij)|) over the shell pair and all components.
type SchwarzScreener struct {
	Threshold float64
	nbas      int
	q         []float64
}

func NewSchwarzScreener(ev Evaluator, aoLoc []int, threshold float64) *SchwarzScreener {
	nbas := len(aoLoc) - 1
	s := &SchwarzScreener{Threshold: threshold, nbas: nbas, q: make([]float64, nbas*nbas)}
	ncomp := ev.NComp()
	var buf []complex128
	for ish := 0; ish < nbas; ish++ {
		for jsh := 0; jsh < nbas; jsh++ {
			shls := [4]int{ish, jsh, ish, jsh}
			g := NewBlockGeometry(shls, aoLoc)
			if g.Empty() {
				continue
			}
			n := g.Size() * ncomp
			if cap(buf) < n {
				buf = make([]complex128, n)
			}
			if !ev.Evaluate(buf[:n], shls) {
				continue
			}
			di, dj, _, _ := g.Dims()
			dij := di * dj
			qmax := 0.0
			for ic := 0; ic < ncomp; ic++ {
				blk := buf[ic*g.Size():]
				// diagonal (ij|ij) sits at column ij of the dij x dij block
				for ij := 0; ij < dij; ij++ {
					qmax = math.Max(qmax, cmplx.Abs(blk[ij+dij*ij]))
				}
			}
			s.q[ish*nbas+jsh] = math.Sqrt(qmax)
		}
	}
	Log.Debugw("schwarz bounds", "nbas", nbas, "threshold", threshold, "qmax", s.MaxBound())
	return s
}

func (s *SchwarzScreener) Bound(ish, jsh int) float64 {
	return s.q[ish*s.nbas+jsh]
}

func (s *SchwarzScreener) MaxBound() float64 {
	res := 0.0
	for _, v := range s.q {
		res = math.Max(res, v)
	}
	return res
}

func (s *SchwarzScreener) Skip(shls [4]int) bool {
	return s.Bound(shls[0], shls[1])*s.Bound(shls[2], shls[3]) < s.Threshold
}
