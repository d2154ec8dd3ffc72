package wtstate

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/forestrie/go-deltamerge/internal/verrors"
)

// RecoverOOM recovers from an allocation panic raised while growing the
// byte arena or instruction vector (e.g. make() refusing an absurd
// request) and converts it into verrors.ErrOutOfMemory, so that allocation
// failure surfaces as the OUT_OF_MEMORY error kind spec §7 requires rather
// than a crash. Any panic that isn't a runtime allocation error is
// re-raised unchanged.
//
// Callers defer this at the outermost function of a merge or append call:
//
//	func Merge(source, input *wtstate.State) (out *wtstate.State, err error) {
//		defer wtstate.RecoverOOM(&err)
//		...
//	}
func RecoverOOM(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if re, ok := r.(runtime.Error); ok {
		if msg := re.Error(); strings.Contains(msg, "makeslice") || strings.Contains(msg, "growslice") {
			*errp = fmt.Errorf("%v: %w", r, verrors.ErrOutOfMemory)
			return
		}
	}
	panic(r)
}
