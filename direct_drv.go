// direct_drv.go --  This file is part of goHF project.
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
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// Evaluator fills buf with the integral block of one shell quadruple,
// column-major with the component index slowest. It returns false when the
// block vanishes.
type Evaluator interface {
	Evaluate(buf []complex128, shls [4]int) bool
	NComp() int
}

type Screener interface {
	Skip(shls [4]int) bool
}

type DriverStats struct {
	Visited, Screened, Zero, Contracted int
	Elapsed                             time.Duration
}

// DirectDriver sweeps a shell slice, asks the evaluator for every quadruple
// the operator class visits and hands the block to each operator.
// Ops[n] reads DMs[n] and adds into Outs[n], one matrix per component.
type DirectDriver struct {
	Evaluator Evaluator
	Screener  Screener
	Ops       []JKOperator
	DMs       []*mat.CDense
	Outs      [][]*mat.CDense
	Slice     ShellSlice
	AOLoc     []int
	Tao       TimeReversalMap
	Workers   int

	Stats DriverStats
}

func (d *DirectDriver) nao() int {
	return d.AOLoc[len(d.AOLoc)-1]
}

func (d *DirectDriver) validate() (Class, error) {
	if len(d.Ops) == 0 {
		return S1, fmt.Errorf("%w: no operators", ErrInput)
	}
	if len(d.DMs) != len(d.Ops) || len(d.Outs) != len(d.Ops) {
		return S1, fmt.Errorf("%w: %d operators, %d densities, %d outputs", ErrDims, len(d.Ops), len(d.DMs), len(d.Outs))
	}
	if len(d.AOLoc) == 0 {
		return S1, fmt.Errorf("%w: empty offset table", ErrBadAOLoc)
	}
	nao := d.nao()
	if err := ValidateAOLoc(d.AOLoc, nao); err != nil {
		return S1, err
	}
	if err := d.Tao.Validate(nao); err != nil {
		return S1, err
	}
	nbas := len(d.AOLoc) - 1
	for pos := 0; pos < 4; pos++ {
		if _, sh1 := d.Slice.Pair(pos); sh1 > nbas {
			return S1, fmt.Errorf("%w: shell %d beyond %d shells", ErrDims, sh1, nbas)
		}
	}
	class := d.Ops[0].Class()
	ncomp := d.Evaluator.NComp()
	for n, op := range d.Ops {
		if op.Class() != class {
			return S1, fmt.Errorf("%w: operators mix classes %s and %s", ErrPrecondition, class, op.Class())
		}
		if err := op.SanityCheck(d.Slice); err != nil {
			return S1, fmt.Errorf("operator %d (%s): %w", n, op.Role(), err)
		}
		if r, c := d.DMs[n].Dims(); r != nao || c != nao {
			return S1, fmt.Errorf("%w: density %d is %dx%d, nao %d", ErrDims, n, r, c, nao)
		}
		if len(d.Outs[n]) != ncomp {
			return S1, fmt.Errorf("%w: %d outputs for %d components", ErrDims, len(d.Outs[n]), ncomp)
		}
		for _, o := range d.Outs[n] {
			if r, c := o.Dims(); r != nao || c != nao {
				return S1, fmt.Errorf("%w: output %d is %dx%d, nao %d", ErrDims, n, r, c, nao)
			}
		}
	}
	if class != S1 {
		if err := d.Tao.ValidateShells(d.AOLoc); err != nil {
			return S1, err
		}
	}
	return class, nil
}

// Run performs the sweep. Worker w takes every outer shell i with
// (i - ish0) mod Workers == w and owns its own partial outputs, which are
// summed into Outs in worker order once all workers are done.
func (d *DirectDriver) Run(ctx context.Context) error {
	tstart := time.Now()
	class, err := d.validate()
	if err != nil {
		return err
	}
	nworkers := d.Workers
	if nworkers < 1 {
		nworkers = runtime.GOMAXPROCS(-1)
	}
	nao := d.nao()
	ncomp := d.Evaluator.NComp()
	bufSize := 0
	for _, op := range d.Ops {
		bufSize = max(bufSize, op.EstimateBufferSize(d.Slice, d.AOLoc, ncomp))
	}
	Log.Debugw("direct sweep", "class", class, "ops", len(d.Ops), "workers", nworkers, "buffer_bytes", bufSize)

	parts := make([][][]*mat.CDense, nworkers)
	stats := make([]DriverStats, nworkers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < nworkers; w++ {
		parts[w] = make([][]*mat.CDense, len(d.Ops))
		for n := range d.Ops {
			parts[w][n] = make([]*mat.CDense, ncomp)
			for ic := range parts[w][n] {
				parts[w][n][ic] = mat.NewCDense(nao, nao, nil)
			}
		}
		w := w
		g.Go(func() error {
			return d.sweep(ctx, class, w, nworkers, make([]complex128, bufSize/sizeofComplex), parts[w], &stats[w])
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("direct sweep: %w", err)
	}

	d.Stats = DriverStats{}
	for w := range parts {
		for n := range d.Ops {
			for ic, out := range d.Outs[n] {
				addCDense(out, parts[w][n][ic])
			}
		}
		d.Stats.Visited += stats[w].Visited
		d.Stats.Screened += stats[w].Screened
		d.Stats.Zero += stats[w].Zero
		d.Stats.Contracted += stats[w].Contracted
	}
	d.Stats.Elapsed = time.Since(tstart)
	Log.Infow("direct sweep done", "class", class, "visited", d.Stats.Visited, "screened", d.Stats.Screened,
		"zero", d.Stats.Zero, "contracted", d.Stats.Contracted, "elapsed", d.Stats.Elapsed)
	return nil
}

func (d *DirectDriver) sweep(ctx context.Context, class Class, w, nworkers int, buf []complex128, outs [][]*mat.CDense, st *DriverStats) error {
	ish0, ish1 := d.Slice.Pair(0)
	jsh0, jsh1 := d.Slice.Pair(1)
	ksh0, ksh1 := d.Slice.Pair(2)
	lsh0, lsh1 := d.Slice.Pair(3)
	ncomp := d.Evaluator.NComp()
	half := class.halves() > 1
	var ws Workspace
	for ish := ish0 + w; ish < ish1; ish += nworkers {
		if err := ctx.Err(); err != nil {
			return err
		}
		for jsh := jsh0; jsh < jsh1; jsh++ {
			for ksh := ksh0; ksh < ksh1; ksh++ {
				for lsh := lsh0; lsh < lsh1; lsh++ {
					shls := [4]int{ish, jsh, ksh, lsh}
					if !class.Visits(shls) {
						continue
					}
					st.Visited++
					if d.Screener != nil && d.Screener.Skip(shls) {
						st.Screened++
						continue
					}
					geom := NewBlockGeometry(shls, d.AOLoc)
					if geom.Empty() {
						continue
					}
					n := geom.Size() * ncomp
					if !d.Evaluator.Evaluate(buf[:n], shls) {
						st.Zero++
						continue
					}
					if half {
						Permute0213(buf[n:2*n], buf[:n], geom, ncomp)
					}
					for k, op := range d.Ops {
						op.Contract(buf, d.DMs[k], outs[k], geom, d.Tao, &ws)
					}
					st.Contracted++
				}
			}
		}
	}
	return nil
}

// addCDense adds src into dst row by row; dst may be a view with a wider
// stride.
func addCDense(dst, src *mat.CDense) {
	a, b := dst.RawCMatrix(), src.RawCMatrix()
	for r := 0; r < a.Rows; r++ {
		cmplxs.Add(a.Data[r*a.Stride:r*a.Stride+a.Cols], b.Data[r*b.Stride:r*b.Stride+b.Cols])
	}
}
