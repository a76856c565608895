// operator.go --  This file is part of goHF project.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

const sizeofComplex = 16

// Class is the permutational symmetry assumed for the visited quadruples.
type Class int

const (
	S1   Class = iota // no symmetry
	S2ij              // ish >= jsh
	S2kl              // ksh >= lsh
	S4                // both
)

var classNames = [...]string{S1: "s1", S2ij: "s2ij", S2kl: "s2kl", S4: "s4"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if strings.EqualFold(s, name) {
			return Class(i), nil
		}
	}
	return S1, fmt.Errorf("%w: unknown symmetry %q", ErrInput, s)
}

// halves is the number of integral blocks the evaluator buffer carries: the
// symmetric classes need the 0213 copy next to the block.
func (c Class) halves() int {
	if c == S1 {
		return 1
	}
	return 2
}

// Visits reports whether the quadruple is one the class expects to be handed.
func (c Class) Visits(shls [4]int) bool {
	if (c == S2ij || c == S4) && shls[0] < shls[1] {
		return false
	}
	if (c == S2kl || c == S4) && shls[2] < shls[3] {
		return false
	}
	return true
}

type Hermiticity int

const (
	Hermitian     Hermiticity = 1
	AntiHermitian Hermiticity = -1
)

// Family fixes the sign picked up under time reversal of each electron pair.
type Family struct {
	Name   string
	E1, E2 Hermiticity
}

var (
	RS  = Family{"rs", Hermitian, Hermitian}
	RHA = Family{"rha", Hermitian, AntiHermitian}
	RAH = Family{"rah", AntiHermitian, Hermitian}
	RAA = Family{"raa", AntiHermitian, AntiHermitian}
)

var families = []Family{RS, RHA, RAH, RAA}

func ParseFamily(s string) (Family, error) {
	for _, f := range families {
		if strings.EqualFold(s, f.Name) {
			return f, nil
		}
	}
	return RHA, fmt.Errorf("%w: unknown family %q", ErrInput, s)
}

func (f Family) String() string {
	return f.Name
}

// Role is the direction of a contraction.
type Role int

const (
	JIToKL Role = iota // vj[k,l] += (ij|kl) dm[j,i]
	LKToIJ             // vj[i,j] += (ij|kl) dm[l,k]
	JKToIL             // vk[i,l] += (ij|kl) dm[j,k]
	LIToKJ             // vk[k,j] += (ij|kl) dm[l,i]
)

var roleNames = [...]string{JIToKL: "ji->kl", LKToIJ: "lk->ij", JKToIL: "jk->il", LIToKJ: "li->kj"}

func (r Role) String() string {
	return roleNames[r]
}

func (r Role) IsExchange() bool {
	return r == JKToIL || r == LIToKJ
}

// IndexRoles gives the quadruple positions (0..3 for i,j,k,l) that index the
// rows and columns of the density block read and of the output block written.
type IndexRoles struct {
	InBra, InKet, OutBra, OutKet int
}

var roleIndex = [...]IndexRoles{
	JIToKL: {1, 0, 2, 3},
	LKToIJ: {3, 2, 0, 1},
	JKToIL: {1, 2, 0, 3},
	LIToKJ: {3, 0, 2, 1},
}

// JKOperator is one contraction routine together with its buffer estimate and
// precondition check. A driver holds a slice of them and never looks at the
// symmetry class itself.
type JKOperator interface {
	Class() Class
	Role() Role
	Family() Family
	Roles() IndexRoles
	// Contract adds the contribution of one quadruple to out, one matrix per
	// integral component. eri holds the block and, for symmetric classes,
	// its 0213 copy. ws may be nil.
	Contract(eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace)
	// EstimateBufferSize is the byte size of the largest eri buffer
	// Contract can be handed for quadruples in slice.
	EstimateBufferSize(slice ShellSlice, aoLoc []int, ncomp int) int
	SanityCheck(slice ShellSlice) error
}

type routines [4]func(*jkCall)

var (
	s1Routines   = routines{JIToKL: jiS1, LKToIJ: lkS1, JKToIL: jkS1, LIToKJ: liS1}
	s2ijRoutines = routines{JIToKL: jiS2ij, LKToIJ: lkS2ij, JKToIL: jkS2ij, LIToKJ: liS2ij}
	s2klRoutines = routines{JIToKL: jiS2kl, LKToIJ: lkS2kl, JKToIL: jkS2kl, LIToKJ: liS2kl}
	s4Routines   = routines{JIToKL: jiS4, LKToIJ: lkS4, JKToIL: jkS4, LIToKJ: liS4}
)

type jkBase struct {
	role Role
	fam  Family
}

func (b jkBase) Role() Role        { return b.role }
func (b jkBase) Family() Family    { return b.fam }
func (b jkBase) Roles() IndexRoles { return roleIndex[b.role] }

func (b jkBase) run(class Class, table routines, eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace) {
	assertOrdered(class, g.Shells)
	if g.Empty() || len(out) == 0 {
		return
	}
	c := &jkCall{
		eri:  eri,
		dm:   dm,
		out:  out,
		g:    g,
		tao:  tao,
		ws:   ws,
		eta1: complex(float64(b.fam.E1), 0),
		eta2: complex(float64(b.fam.E2), 0),
	}
	table[b.role](c)
}

func estimate(class Class, slice ShellSlice, aoLoc []int, ncomp int) int {
	res := class.halves() * ncomp * sizeofComplex
	for pos := 0; pos < 4; pos++ {
		sh0, sh1 := slice.Pair(pos)
		res *= MaxExtent(aoLoc, sh0, sh1)
	}
	return res
}

func checkSlice(class Class, slice ShellSlice) error {
	for pos := 0; pos < 4; pos++ {
		sh0, sh1 := slice.Pair(pos)
		if sh0 > sh1 || sh0 < 0 {
			return &PreconditionViolation{class, fmt.Sprintf("bad shell range [%d,%d) at index %d", sh0, sh1, pos)}
		}
	}
	if (class == S2ij || class == S4) && (slice[0] != slice[2] || slice[1] != slice[3]) {
		return &PreconditionViolation{class, fmt.Sprintf("i range [%d,%d) differs from j range [%d,%d)",
			slice[0], slice[1], slice[2], slice[3])}
	}
	if (class == S2kl || class == S4) && (slice[4] != slice[6] || slice[5] != slice[7]) {
		return &PreconditionViolation{class, fmt.Sprintf("k range [%d,%d) differs from l range [%d,%d)",
			slice[4], slice[5], slice[6], slice[7])}
	}
	return nil
}

type s1Operator struct{ jkBase }

func (o s1Operator) Class() Class { return S1 }

func (o s1Operator) Contract(eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace) {
	o.run(S1, s1Routines, eri, dm, out, g, tao, ws)
}

func (o s1Operator) EstimateBufferSize(slice ShellSlice, aoLoc []int, ncomp int) int {
	return estimate(S1, slice, aoLoc, ncomp)
}

func (o s1Operator) SanityCheck(slice ShellSlice) error { return checkSlice(S1, slice) }

type s2ijOperator struct{ jkBase }

func (o s2ijOperator) Class() Class { return S2ij }

func (o s2ijOperator) Contract(eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace) {
	o.run(S2ij, s2ijRoutines, eri, dm, out, g, tao, ws)
}

func (o s2ijOperator) EstimateBufferSize(slice ShellSlice, aoLoc []int, ncomp int) int {
	return estimate(S2ij, slice, aoLoc, ncomp)
}

func (o s2ijOperator) SanityCheck(slice ShellSlice) error { return checkSlice(S2ij, slice) }

type s2klOperator struct{ jkBase }

func (o s2klOperator) Class() Class { return S2kl }

func (o s2klOperator) Contract(eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace) {
	o.run(S2kl, s2klRoutines, eri, dm, out, g, tao, ws)
}

func (o s2klOperator) EstimateBufferSize(slice ShellSlice, aoLoc []int, ncomp int) int {
	return estimate(S2kl, slice, aoLoc, ncomp)
}

func (o s2klOperator) SanityCheck(slice ShellSlice) error { return checkSlice(S2kl, slice) }

type s4Operator struct{ jkBase }

func (o s4Operator) Class() Class { return S4 }

func (o s4Operator) Contract(eri []complex128, dm *mat.CDense, out []*mat.CDense, g BlockGeometry, tao TimeReversalMap, ws *Workspace) {
	o.run(S4, s4Routines, eri, dm, out, g, tao, ws)
}

func (o s4Operator) EstimateBufferSize(slice ShellSlice, aoLoc []int, ncomp int) int {
	return estimate(S4, slice, aoLoc, ncomp)
}

func (o s4Operator) SanityCheck(slice ShellSlice) error { return checkSlice(S4, slice) }

func NewJKOperator(class Class, role Role, fam Family) JKOperator {
	b := jkBase{role, fam}
	switch class {
	case S2ij:
		return s2ijOperator{b}
	case S2kl:
		return s2klOperator{b}
	case S4:
		return s4Operator{b}
	default:
		return s1Operator{b}
	}
}

// OperatorSet returns the J (ji, lk) and K (jk, li) operators of one class.
func OperatorSet(class Class, fam Family) []JKOperator {
	res := make([]JKOperator, 0, 4)
	for _, r := range []Role{JIToKL, LKToIJ, JKToIL, LIToKJ} {
		res = append(res, NewJKOperator(class, r, fam))
	}
	return res
}
