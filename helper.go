// helper.go --  This file is part of goHF project.
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
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

func ReadFileLines(fname string) ([]string, error) {
	var result []string
	var err error

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	err = scanner.Err()

	return result, err
}

// TxtFileFromCDense writes m as rows of "re im" pairs.
func TxtFileFromCDense(m *mat.CDense, fname string) error {
	var sb strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			fmt.Fprintf(&sb, "%14.8f%14.8f", real(v), imag(v))
		}
		sb.WriteString("\n")
	}
	return os.WriteFile(fname, []byte(sb.String()), 0644)
}

// TxtFilesFromOutputs writes every component of every output matrix into
// dir as <name>_<component>.txt.
func TxtFilesFromOutputs(outs [][]*mat.CDense, names []string, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for n := range outs {
		for ic, m := range outs[n] {
			fname := filepath.Join(dir, fmt.Sprintf("%s_%d.txt", names[n], ic))
			if err := TxtFileFromCDense(m, fname); err != nil {
				return err
			}
		}
	}
	return nil
}

// RandomDensity returns a seeded complex nao x nao matrix.
func RandomDensity(nao int, seed uint64) *mat.CDense {
	rnd := rand.New(rand.NewSource(seed))
	data := make([]complex128, nao*nao)
	for i := range data {
		data[i] = complex(rnd.Float64()-0.5, rnd.Float64()-0.5)
	}
	return mat.NewCDense(nao, nao, data)
}

func Trace(m *mat.CDense) complex128 {
	r, _ := m.Dims()
	var res complex128
	for i := 0; i < r; i++ {
		res += m.At(i, i)
	}
	return res
}

// MaxDeviation is max |a - b| over all entries.
func MaxDeviation(a, b *mat.CDense) float64 {
	ra, rb := a.RawCMatrix(), b.RawCMatrix()
	res := 0.0
	for r := 0; r < ra.Rows; r++ {
		res = math.Max(res, cmplxs.Distance(ra.Data[r*ra.Stride:r*ra.Stride+ra.Cols],
			rb.Data[r*rb.Stride:r*rb.Stride+rb.Cols], math.Inf(1)))
	}
	return res
}

func newOutputs(nops, ncomp, nao int) [][]*mat.CDense {
	res := make([][]*mat.CDense, nops)
	for n := range res {
		res[n] = make([]*mat.CDense, ncomp)
		for ic := range res[n] {
			res[n][ic] = mat.NewCDense(nao, nao, nil)
		}
	}
	return res
}

func MyMemDebug() {
	var memStats runtime.MemStats

	runtime.ReadMemStats(&memStats)

	Log.Debugw("memory",
		"alloc", memStats.Alloc,
		"total_alloc", memStats.TotalAlloc,
		"heap_alloc", memStats.HeapAlloc,
		"heap_sys", memStats.HeapSys)
}
