// timerev.go --  This file is part of goHF project.
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
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// TimeReversalMap stores, for every AO index p, the 1-based index of its
// Kramers partner. The sign of the entry is the phase picked up under time
// reversal.
type TimeReversalMap []int

func (t TimeReversalMap) Partner(p int) int {
	if t[p] < 0 {
		return -t[p] - 1
	}
	return t[p] - 1
}

func (t TimeReversalMap) Phase(p int) float64 {
	if t[p] < 0 {
		return -1
	}
	return 1
}

// Reverse returns the partner of p together with the partner's own phase.
// Both the forward and backward transforms use this pair.
func (t TimeReversalMap) Reverse(p int) (int, float64) {
	q := t.Partner(p)
	return q, t.Phase(q)
}

// Validate checks that t covers nao indices, stays in range and is an
// involution.
func (t TimeReversalMap) Validate(nao int) error {
	if len(t) != nao {
		return fmt.Errorf("%w: %d entries for %d AOs", ErrBadTimeReversal, len(t), nao)
	}
	for p := range t {
		if t[p] == 0 {
			return fmt.Errorf("%w: zero entry at %d", ErrBadTimeReversal, p)
		}
		q := t.Partner(p)
		if q >= nao {
			return fmt.Errorf("%w: partner %d of %d out of range", ErrBadTimeReversal, q, p)
		}
		if t.Partner(q) != p {
			return fmt.Errorf("%w: %d -> %d -> %d", ErrBadTimeReversal, p, q, t.Partner(q))
		}
	}
	return nil
}

// ValidateShells checks that every shell of aoLoc is mapped onto itself.
// The symmetric classes read partner indices inside the current block only.
func (t TimeReversalMap) ValidateShells(aoLoc []int) error {
	for sh := 0; sh+1 < len(aoLoc); sh++ {
		for p := aoLoc[sh]; p < aoLoc[sh+1]; p++ {
			if q := t.Partner(p); q < aoLoc[sh] || q >= aoLoc[sh+1] {
				return fmt.Errorf("%w: partner %d of %d leaves shell %d", ErrBadTimeReversal, q, p, sh)
			}
		}
	}
	return nil
}

// Layout is the storage order of a dense sub-block.
type Layout int

const (
	RowMajor Layout = iota // column index runs fastest
	ColMajor               // row index runs fastest
)

// Orientation says which axes of a sub-block go through the Kramers map and
// how the dense block is laid out.
type Orientation struct {
	Rows, Cols bool
	Layout     Layout
	Conj       bool
}

var (
	Plain     = Orientation{}
	PlainT    = Orientation{Layout: ColMajor}
	RevRows   = Orientation{Rows: true}
	RevRowsT  = Orientation{Rows: true, Layout: ColMajor}
	RevCols   = Orientation{Cols: true}
	RevColsT  = Orientation{Cols: true, Layout: ColMajor}
	RevBlock  = Orientation{Rows: true, Cols: true}
	RevBlockT = Orientation{Rows: true, Cols: true, Layout: ColMajor}
)

func (o Orientation) index(r, c, nr, nc int) int {
	if o.Layout == ColMajor {
		return r + nr*c
	}
	return r*nc + c
}

func (t TimeReversalMap) locate(o Orientation, rows, cols AORange, r, c int) (int, int, float64) {
	p, q := rows.Start+r, cols.Start+c
	ph := 1.0
	if o.Rows {
		var s float64
		p, s = t.Reverse(p)
		ph *= s
	}
	if o.Cols {
		var s float64
		q, s = t.Reverse(q)
		ph *= s
	}
	return p, q, ph
}

// Extract fills dst with the rows x cols block of src seen through the
// orientation o.
func (t TimeReversalMap) Extract(dst []complex128, src *mat.CDense, rows, cols AORange, o Orientation) {
	t.gather(dst, src, rows, cols, o, 1, false)
}

// ExtractAdd is Extract scaled by alpha and added to dst.
func (t TimeReversalMap) ExtractAdd(dst []complex128, src *mat.CDense, rows, cols AORange, o Orientation, alpha complex128) {
	t.gather(dst, src, rows, cols, o, alpha, true)
}

func (t TimeReversalMap) gather(dst []complex128, src *mat.CDense, rows, cols AORange, o Orientation, alpha complex128, add bool) {
	raw := src.RawCMatrix()
	nr, nc := rows.Len(), cols.Len()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			p, q, ph := t.locate(o, rows, cols, r, c)
			v := raw.Data[p*raw.Stride+q] * complex(ph, 0)
			if o.Conj {
				v = cmplx.Conj(v)
			}
			idx := o.index(r, c, nr, nc)
			if add {
				dst[idx] += alpha * v
			} else {
				dst[idx] = alpha * v
			}
		}
	}
}

// BackAccumulate adds alpha times the block blk into dst at the coordinates
// that Extract would have read with the same orientation.
func (t TimeReversalMap) BackAccumulate(dst *mat.CDense, blk []complex128, rows, cols AORange, o Orientation, alpha complex128) {
	raw := dst.RawCMatrix()
	nr, nc := rows.Len(), cols.Len()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			p, q, ph := t.locate(o, rows, cols, r, c)
			v := blk[o.index(r, c, nr, nc)]
			if o.Conj {
				v = cmplx.Conj(v)
			}
			raw.Data[p*raw.Stride+q] += alpha * complex(ph, 0) * v
		}
	}
}
