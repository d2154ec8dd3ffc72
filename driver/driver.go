// Package driver implements the chain-reduction algorithm of spec §4.5:
// given a chain of ≥2 deltas identified by caller-supplied ids, it reduces
// them pairwise into a single delta from the source of the first to the
// target of the last.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-deltamerge/merge"
	"github.com/forestrie/go-deltamerge/wtstate"
)

// ErrChainTooShort is returned when fewer than two ids are supplied; a
// chain of one delta has nothing to reduce against (spec §4.5 requires
// n ≥ 2).
var ErrChainTooShort = errors.New("deltamerge: chain reduction requires at least two deltas")

// Loader resolves a delta id to its decoded Whole-Target State. Satisfied
// by *store.Store against persisted snapshots, or trivially by an
// in-memory map in tests.
type Loader interface {
	Load(ctx context.Context, id string) (*wtstate.State, error)
}

// Reduce walks ids[0]..ids[n-1] and replaces the accumulator with
// merge(accumulator, next) at each step, per spec §4.5: "for i from 2 to
// n, replace d₁ with merge(d₁, dᵢ)". The accumulator's scratch buffer is
// swapped into place after each merge and the pre-merge state released, so
// at most two Whole-Target States are live at once regardless of chain
// length. The result is Δ(source-of-ids[0] → target-of-ids[n-1]). log may
// be nil, in which case no progress tracing is emitted; passing one
// threads the caller's logger rather than reaching for the package-global
// logger.Sugar, matching store.Store's WithLogger convention.
func Reduce(ctx context.Context, loader Loader, ids []string, log logger.Logger) (*wtstate.State, error) {
	if len(ids) < 2 {
		return nil, ErrChainTooShort
	}

	accumulator, err := loader.Load(ctx, ids[0])
	if err != nil {
		return nil, fmt.Errorf("deltamerge: loading %q: %w", ids[0], err)
	}

	for i := 1; i < len(ids); i++ {
		next, err := loader.Load(ctx, ids[i])
		if err != nil {
			return nil, fmt.Errorf("deltamerge: loading %q: %w", ids[i], err)
		}

		merged, err := merge.Merge(accumulator, next)
		if err != nil {
			return nil, fmt.Errorf("deltamerge: reducing %q against %q: %w", ids[i], ids[i-1], err)
		}

		if log != nil {
			log.Debugf("driver.Reduce: merged %q into accumulator, %d insts, %d bytes",
				ids[i], merged.InstLen(), merged.Length())
		}

		// Swap the freshly produced state into the accumulator and release
		// the old one, exactly as spec §4.5's driver does with its scratch
		// state (whole_state_swap then free the displaced buffer).
		wtstate.Swap(accumulator, merged)
		wtstate.Free(merged)
	}

	return accumulator, nil
}
