// errors.go --  This file is part of goHF project.
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
	"errors"
	"fmt"
)

var (
	ErrPrecondition    = errors.New("symmetry precondition violated")
	ErrBadAOLoc        = errors.New("malformed AO offset table")
	ErrBadTimeReversal = errors.New("inconsistent time-reversal map")
	ErrDims            = errors.New("matrix dimension mismatch")
	ErrInput           = errors.New("bad input")
)

// PreconditionViolation reports a shell ordering that the symmetry class of
// an operator does not allow. Contract panics with it; SanityCheck returns it.
type PreconditionViolation struct {
	Class  Class
	Reason string
}

func (e *PreconditionViolation) Error() string {
	return fmt.Sprintf("%v (%s): %s", ErrPrecondition, e.Class, e.Reason)
}

func (e *PreconditionViolation) Unwrap() error {
	return ErrPrecondition
}

func assertOrdered(class Class, shls [4]int) {
	if (class == S2ij || class == S4) && shls[0] < shls[1] {
		panic(&PreconditionViolation{class, fmt.Sprintf("ish %d < jsh %d", shls[0], shls[1])})
	}
	if (class == S2kl || class == S4) && shls[2] < shls[3] {
		panic(&PreconditionViolation{class, fmt.Sprintf("ksh %d < lsh %d", shls[2], shls[3])})
	}
}
