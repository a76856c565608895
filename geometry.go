// geometry.go --  This file is part of goHF project.
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

	"golang.org/x/exp/slices"
)

// AORange is a half-open range of AO (spinor) indices.
type AORange struct {
	Start, End int
}

func (r AORange) Len() int {
	return r.End - r.Start
}

// BlockGeometry holds the AO ranges of one shell quadruple. It is computed
// once per quadruple and handed by value to every contraction routine.
type BlockGeometry struct {
	Shells     [4]int
	I, J, K, L AORange
}

func NewBlockGeometry(shls [4]int, aoLoc []int) BlockGeometry {
	var g BlockGeometry
	g.Shells = shls
	g.I = AORange{aoLoc[shls[0]], aoLoc[shls[0]+1]}
	g.J = AORange{aoLoc[shls[1]], aoLoc[shls[1]+1]}
	g.K = AORange{aoLoc[shls[2]], aoLoc[shls[2]+1]}
	g.L = AORange{aoLoc[shls[3]], aoLoc[shls[3]+1]}
	return g
}

func (g BlockGeometry) Dims() (int, int, int, int) {
	return g.I.Len(), g.J.Len(), g.K.Len(), g.L.Len()
}

// Size is the number of integrals in one component of the block.
func (g BlockGeometry) Size() int {
	di, dj, dk, dl := g.Dims()
	return di * dj * dk * dl
}

func (g BlockGeometry) Empty() bool {
	return g.Size() == 0
}

func (g BlockGeometry) Range(pos int) AORange {
	switch pos {
	case 0:
		return g.I
	case 1:
		return g.J
	case 2:
		return g.K
	default:
		return g.L
	}
}

func (g BlockGeometry) String() string {
	return fmt.Sprintf("(%d %d|%d %d)", g.Shells[0], g.Shells[1], g.Shells[2], g.Shells[3])
}

// ShellSlice is the global shell range swept for each index of the quadruple:
// [ish0, ish1, jsh0, jsh1, ksh0, ksh1, lsh0, lsh1].
type ShellSlice [8]int

func (s ShellSlice) Pair(pos int) (int, int) {
	return s[2*pos], s[2*pos+1]
}

// MaxExtent is the largest shell extent found in [sh0, sh1).
func MaxExtent(aoLoc []int, sh0, sh1 int) int {
	res := 0
	for sh := sh0; sh < sh1; sh++ {
		res = max(res, aoLoc[sh+1]-aoLoc[sh])
	}
	return res
}

// Permute0213 writes the (i,k,j,l) rearrangement of every component of src
// into dst. Element (i,j,k,l) of src lands at i + di*k + di*dk*(j + dj*l).
func Permute0213(dst, src []complex128, g BlockGeometry, ncomp int) {
	di, dj, dk, dl := g.Dims()
	dij := di * dj
	dik := di * dk
	n := g.Size()
	for ic := 0; ic < ncomp; ic++ {
		s := src[ic*n : (ic+1)*n]
		d := dst[ic*n : (ic+1)*n]
		for l := 0; l < dl; l++ {
			for k := 0; k < dk; k++ {
				for j := 0; j < dj; j++ {
					for i := 0; i < di; i++ {
						d[i+di*k+dik*(j+dj*l)] = s[i+di*j+dij*(k+dk*l)]
					}
				}
			}
		}
	}
}

// ValidateAOLoc checks the offset table: non-decreasing, starting at zero,
// last entry equal to nao.
func ValidateAOLoc(aoLoc []int, nao int) error {
	if len(aoLoc) < 2 {
		return fmt.Errorf("%w: %d entries", ErrBadAOLoc, len(aoLoc))
	}
	if aoLoc[0] != 0 {
		return fmt.Errorf("%w: first offset is %d", ErrBadAOLoc, aoLoc[0])
	}
	if !slices.IsSorted(aoLoc) {
		return fmt.Errorf("%w: offsets are not monotonic", ErrBadAOLoc)
	}
	if aoLoc[len(aoLoc)-1] != nao {
		return fmt.Errorf("%w: sentinel %d, nao %d", ErrBadAOLoc, aoLoc[len(aoLoc)-1], nao)
	}
	return nil
}
