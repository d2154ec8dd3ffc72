// Package posindex locates the instruction covering a target-byte offset
// within a Whole-Target State, by binary search over instruction
// positions (spec §4.3).
package posindex

import (
	"github.com/forestrie/go-deltamerge/internal/verrors"
	"github.com/forestrie/go-deltamerge/wtstate"
)

// Find returns the index i such that
// state.InstAt(i).Position <= a < state.InstAt(i).Position + state.InstAt(i).Size,
// for a target-byte offset a < state.Length().
//
// The search maintains the loop invariant that the answer lies in
// [low, high). At each step mid = low + (high-low)/2; if a is before
// mid's span the answer is in [low, mid), if a is at-or-after mid's span
// the answer is in [mid+1, high), otherwise mid is the answer. Termination
// relies on the instruction vector being strictly ordered and contiguous
// (spec I1); ErrInternal is returned if the loop nonetheless runs out of
// room, which would indicate an I1 violation upstream.
func Find(state *wtstate.State, a uint64) (int, error) {
	if a >= state.Length() {
		return 0, verrors.ErrInvalidInput
	}

	low, high := 0, state.InstLen()
	for low != high {
		mid := low + (high-low)/2
		in := state.InstAt(mid)
		if a < in.Position {
			high = mid
			continue
		}
		if a >= in.End() {
			low = mid + 1
			continue
		}
		return mid, nil
	}

	return 0, verrors.ErrInternal
}
