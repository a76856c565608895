// operator_test.go --  This file is part of goHF project.
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

func TestNewJKOperator_Variants(t *testing.T) {
	tests := []struct {
		class Class
		want  JKOperator
	}{
		{S1, s1Operator{}},
		{S2ij, s2ijOperator{}},
		{S2kl, s2klOperator{}},
		{S4, s4Operator{}},
	}
	for _, tc := range tests {
		op := NewJKOperator(tc.class, LIToKJ, RAA)
		require.IsType(t, tc.want, op)
		require.Equal(t, tc.class, op.Class())
		require.Equal(t, LIToKJ, op.Role())
		require.Equal(t, RAA, op.Family())
		require.Equal(t, IndexRoles{3, 0, 2, 1}, op.Roles())
	}
}

func TestOperatorSet(t *testing.T) {
	ops := OperatorSet(S2kl, RHA)
	require.Len(t, ops, 4)
	var exchange int
	for n, op := range ops {
		require.Equal(t, Role(n), op.Role())
		require.Equal(t, S2kl, op.Class())
		if op.Role().IsExchange() {
			exchange++
		}
	}
	require.Equal(t, 2, exchange)
}

func TestParseClassAndFamily(t *testing.T) {
	c, err := ParseClass("S4")
	require.NoError(t, err)
	require.Equal(t, S4, c)
	_, err = ParseClass("s8")
	require.ErrorIs(t, err, ErrInput)

	f, err := ParseFamily("RAH")
	require.NoError(t, err)
	require.Equal(t, RAH, f)
	_, err = ParseFamily("xyz")
	require.ErrorIs(t, err, ErrInput)

	require.Equal(t, "s2ij", S2ij.String())
	require.Equal(t, "Class(9)", Class(9).String())
	require.Equal(t, "jk->il", JKToIL.String())
}

func TestEstimateBufferSize(t *testing.T) {
	aoLoc := []int{0, 2, 8, 12}
	full := ShellSlice{0, 3, 0, 3, 0, 3, 0, 3}
	require.Equal(t, 6*6*6*6*2*16, NewJKOperator(S1, JIToKL, RHA).EstimateBufferSize(full, aoLoc, 2))
	for _, class := range []Class{S2ij, S2kl, S4} {
		require.Equal(t, 2*6*6*6*6*2*16, NewJKOperator(class, JKToIL, RHA).EstimateBufferSize(full, aoLoc, 2))
	}
	part := ShellSlice{0, 1, 2, 3, 0, 3, 2, 3}
	require.Equal(t, 2*4*6*4*16, NewJKOperator(S1, LKToIJ, RHA).EstimateBufferSize(part, aoLoc, 1))
}

func TestSanityCheck(t *testing.T) {
	square := ShellSlice{0, 3, 0, 3, 1, 3, 1, 3}
	ijOnly := ShellSlice{0, 3, 0, 3, 0, 3, 1, 3}
	klOnly := ShellSlice{0, 3, 0, 2, 1, 3, 1, 3}
	tests := []struct {
		class Class
		slice ShellSlice
		ok    bool
	}{
		{S1, klOnly, true},
		{S1, ShellSlice{2, 1, 0, 3, 0, 3, 0, 3}, false},
		{S2ij, square, true},
		{S2ij, ijOnly, true},
		{S2ij, klOnly, false},
		{S2kl, klOnly, true},
		{S2kl, ijOnly, false},
		{S4, square, true},
		{S4, ijOnly, false},
		{S4, klOnly, false},
	}
	for _, tc := range tests {
		err := NewJKOperator(tc.class, JIToKL, RHA).SanityCheck(tc.slice)
		if tc.ok {
			require.NoError(t, err, "%s %v", tc.class, tc.slice)
			continue
		}
		require.ErrorIs(t, err, ErrPrecondition, "%s %v", tc.class, tc.slice)
		var pv *PreconditionViolation
		require.ErrorAs(t, err, &pv)
		require.Equal(t, tc.class, pv.Class)
	}
}

func TestContract_PanicsOnBadOrdering(t *testing.T) {
	aoLoc := []int{0, 2, 4}
	tao := TimeReversalMap{-2, 1, -4, 3}
	dm := RandomDensity(4, 5)
	buf := make([]complex128, 2*16)
	tests := []struct {
		class Class
		shls  [4]int
		panic bool
	}{
		{S1, [4]int{0, 1, 0, 1}, false},
		{S2ij, [4]int{0, 1, 1, 0}, true},
		{S2ij, [4]int{1, 0, 0, 1}, false},
		{S2kl, [4]int{0, 1, 0, 1}, true},
		{S2kl, [4]int{0, 1, 1, 0}, false},
		{S4, [4]int{1, 0, 0, 1}, true},
		{S4, [4]int{0, 1, 1, 0}, true},
		{S4, [4]int{1, 0, 1, 0}, false},
	}
	for _, tc := range tests {
		require.Equal(t, !tc.panic, tc.class.Visits(tc.shls))
		g := NewBlockGeometry(tc.shls, aoLoc)
		out := []*mat.CDense{mat.NewCDense(4, 4, nil)}
		err := catchViolation(func() {
			NewJKOperator(tc.class, JKToIL, RHA).Contract(buf, dm, out, g, tao, nil)
		})
		if !tc.panic {
			require.NoError(t, err, "%s %v", tc.class, tc.shls)
			continue
		}
		require.ErrorIs(t, err, ErrPrecondition, "%s %v", tc.class, tc.shls)
	}
}
