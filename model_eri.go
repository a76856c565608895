// model_eri.go --  This file is part of goHF project.
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
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// ModelERI is a dense random two-particle tensor that obeys the pair
// symmetries of a family under a given Kramers map. It stands in for a real
// integral library and serves whole shell blocks out of memory.
type ModelERI struct {
	nao, ncomp int
	aoLoc      []int
	data       []complex128 // (p,q,r,s,c) at p + nao*(q + nao*(r + nao*(s + nao*c)))
}

// NewModelERI draws G0 from a seeded normal distribution, damps it by
// exp(-decay*(|p-q|+|r-s|)) and projects it onto the family:
//
//	G = (1 + eta2 P2)(1 + eta1 P1) G0 / 4
//	(P1 G)(p,q,r,s) = s(p) s(q) G(tau q, tau p, r, s)
//	(P2 G)(p,q,r,s) = s(r) s(s) G(p, q, tau s, tau r)
//
// P1 and P2 are involutions only when s(p) s(tau p) is the same for every p,
// which is checked.
func NewModelERI(aoLoc []int, tao TimeReversalMap, fam Family, ncomp int, seed uint64, decay float64) (*ModelERI, error) {
	nao := aoLoc[len(aoLoc)-1]
	if err := ValidateAOLoc(aoLoc, nao); err != nil {
		return nil, err
	}
	if err := tao.Validate(nao); err != nil {
		return nil, err
	}
	if nao > 0 {
		c0 := tao.Phase(0) * tao.Phase(tao.Partner(0))
		for p := range tao {
			if tao.Phase(p)*tao.Phase(tao.Partner(p)) != c0 {
				return nil, fmt.Errorf("%w: mixed pair parity at %d", ErrBadTimeReversal, p)
			}
		}
	}
	if ncomp < 1 {
		return nil, fmt.Errorf("%w: ncomp %d", ErrInput, ncomp)
	}

	m := &ModelERI{nao: nao, ncomp: ncomp, aoLoc: aoLoc}
	n4 := nao * nao * nao * nao
	m.data = make([]complex128, n4*ncomp)
	rnd := rand.New(rand.NewSource(seed))
	for ic := 0; ic < ncomp; ic++ {
		g0 := m.data[ic*n4 : (ic+1)*n4]
		for s := 0; s < nao; s++ {
			for r := 0; r < nao; r++ {
				for q := 0; q < nao; q++ {
					for p := 0; p < nao; p++ {
						damp := math.Exp(-decay * float64(absInt(p-q)+absInt(r-s)))
						g0[m.idx(p, q, r, s)] = complex(rnd.NormFloat64()*damp, rnd.NormFloat64()*damp)
					}
				}
			}
		}
		g1 := make([]complex128, n4)
		m.project(g1, g0, complex(float64(fam.E1), 0), tao, true)
		m.project(g0, g1, complex(float64(fam.E2), 0), tao, false)
	}
	Log.Debugw("model integrals", "nao", nao, "ncomp", ncomp, "family", fam, "seed", seed)
	return m, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (m *ModelERI) idx(p, q, r, s int) int {
	return p + m.nao*(q+m.nao*(r+m.nao*s))
}

// project sets dst = (src + eta P src) / 2 with P acting on the first pair
// when first is set and on the second pair otherwise.
func (m *ModelERI) project(dst, src []complex128, eta complex128, tao TimeReversalMap, first bool) {
	nao := m.nao
	for s := 0; s < nao; s++ {
		for r := 0; r < nao; r++ {
			for q := 0; q < nao; q++ {
				for p := 0; p < nao; p++ {
					var v complex128
					if first {
						v = complex(tao.Phase(p)*tao.Phase(q), 0) * src[m.idx(tao.Partner(q), tao.Partner(p), r, s)]
					} else {
						v = complex(tao.Phase(r)*tao.Phase(s), 0) * src[m.idx(p, q, tao.Partner(s), tao.Partner(r))]
					}
					dst[m.idx(p, q, r, s)] = (src[m.idx(p, q, r, s)] + eta*v) / 2
				}
			}
		}
	}
}

func (m *ModelERI) NComp() int { return m.ncomp }

func (m *ModelERI) NAO() int { return m.nao }

// At returns component ic of G(p,q,r,s).
func (m *ModelERI) At(p, q, r, s, ic int) complex128 {
	return m.data[m.idx(p, q, r, s)+ic*m.nao*m.nao*m.nao*m.nao]
}

func (m *ModelERI) Evaluate(buf []complex128, shls [4]int) bool {
	g := NewBlockGeometry(shls, m.aoLoc)
	di, dj, dk, dl := g.Dims()
	n := g.Size()
	for ic := 0; ic < m.ncomp; ic++ {
		blk := buf[ic*n : (ic+1)*n]
		for l := 0; l < dl; l++ {
			for k := 0; k < dk; k++ {
				for j := 0; j < dj; j++ {
					for i := 0; i < di; i++ {
						blk[i+di*(j+dj*(k+dk*l))] = m.At(g.I.Start+i, g.J.Start+j, g.K.Start+k, g.L.Start+l, ic)
					}
				}
			}
		}
	}
	return cmplxs.Norm(buf[:n*m.ncomp], math.Inf(1)) != 0
}

// ContractFull is the symmetry-free reference: for every component it applies
// role to the whole tensor and adds the result into out.
func (m *ModelERI) ContractFull(role Role, dm *mat.CDense, out []*mat.CDense) {
	nao := m.nao
	for ic, o := range out {
		for s := 0; s < nao; s++ {
			for r := 0; r < nao; r++ {
				for q := 0; q < nao; q++ {
					for p := 0; p < nao; p++ {
						v := m.At(p, q, r, s, ic)
						switch role {
						case JIToKL:
							o.Set(r, s, o.At(r, s)+v*dm.At(q, p))
						case LKToIJ:
							o.Set(p, q, o.At(p, q)+v*dm.At(s, r))
						case JKToIL:
							o.Set(p, s, o.At(p, s)+v*dm.At(q, r))
						case LIToKJ:
							o.Set(r, q, o.At(r, q)+v*dm.At(s, p))
						}
					}
				}
			}
		}
	}
}
