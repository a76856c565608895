// basis.go --  This file is part of goHF project.
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
	"strconv"
	"strings"
)

// SpinorShell is a contracted shell of two-component spinors. Kappa = 0
// holds both j = l-1/2 and j = l+1/2, kappa > 0 only j = l-1/2 and
// kappa < 0 only j = l+1/2.
type SpinorShell struct {
	L, Kappa, NCtr int
}

// degeneracies returns 2j+1 for every j block the shell carries.
func (sh SpinorShell) degeneracies() []int {
	switch {
	case sh.Kappa == 0:
		if sh.L == 0 {
			return []int{2}
		}
		return []int{2 * sh.L, 2*sh.L + 2}
	case sh.Kappa > 0:
		return []int{2 * sh.L}
	default:
		return []int{2*sh.L + 2}
	}
}

func (sh SpinorShell) NAO() int {
	res := 0
	for _, dj := range sh.degeneracies() {
		res += dj
	}
	return res * sh.NCtr
}

func (sh SpinorShell) validate() error {
	if sh.L < 0 || sh.NCtr < 1 {
		return fmt.Errorf("%w: shell l=%d nctr=%d", ErrInput, sh.L, sh.NCtr)
	}
	if sh.Kappa > 0 && sh.L == 0 {
		return fmt.Errorf("%w: kappa %d needs l > 0", ErrInput, sh.Kappa)
	}
	return nil
}

type SpinorBasis struct {
	Shells []SpinorShell
	nao    int
}

func NewSpinorBasis(shells []SpinorShell) (*SpinorBasis, error) {
	b := &SpinorBasis{}
	for i, sh := range shells {
		if err := sh.validate(); err != nil {
			return nil, fmt.Errorf("shell %d: %w", i, err)
		}
		b.Shells = append(b.Shells, sh)
		b.nao += sh.NAO()
	}
	return b, nil
}

// addShells reads "l kappa nctr" lines data[start..end].
func (b *SpinorBasis) addShells(data []string, start, end int) error {
	for i := start; i < end+1; i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		if len(words) < 3 {
			return fmt.Errorf("%w: line %d: shell needs l kappa nctr", ErrInput, i+1)
		}
		var v [3]int
		for k := range v {
			n, err := strconv.Atoi(words[k])
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrInput, i+1, err)
			}
			v[k] = n
		}
		sh := SpinorShell{L: v[0], Kappa: v[1], NCtr: v[2]}
		if err := sh.validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		b.Shells = append(b.Shells, sh)
		b.nao += sh.NAO()
	}
	return nil
}

func (b *SpinorBasis) NAO() int { return b.nao }

func (b *SpinorBasis) NShells() int { return len(b.Shells) }

func (b *SpinorBasis) AOLoc() []int {
	res := make([]int, len(b.Shells)+1)
	for i, sh := range b.Shells {
		res[i+1] = res[i] + sh.NAO()
	}
	return res
}

// TimeReversalMap pairs m_j with -m_j inside every j block. The phase
// alternates with l: for even l the first spinor of a pair carries -1.
func (b *SpinorBasis) TimeReversalMap() TimeReversalMap {
	tao := make(TimeReversalMap, 0, b.nao)
	i := 0
	for _, sh := range b.Shells {
		sign := 1
		if sh.L%2 == 0 {
			sign = -1
		}
		for n := 0; n < sh.NCtr; n++ {
			for _, dj := range sh.degeneracies() {
				for m := 0; m < dj; m += 2 {
					tao = append(tao, sign*(i+dj-m), -sign*(i+dj-m-1))
				}
				i += dj
			}
		}
	}
	return tao
}

func (b *SpinorBasis) String() string {
	var sb strings.Builder
	for i, sh := range b.Shells {
		fmt.Fprintf(&sb, "%4d  l=%d kappa=%2d nctr=%d nao=%d\n", i, sh.L, sh.Kappa, sh.NCtr, sh.NAO())
	}
	return sb.String()
}
