// Package merge implements the delta-merge engine: given source =
// Δ(S→M) and input = Δ(M→T), it produces output = Δ(S→T) without
// materializing M or T (spec §4.4).
package merge

import (
	"github.com/forestrie/go-deltamerge/internal/textdiff"
	"github.com/forestrie/go-deltamerge/internal/verrors"
	"github.com/forestrie/go-deltamerge/posindex"
	"github.com/forestrie/go-deltamerge/wtstate"
)

// Merge composes source = Δ(S→M) and input = Δ(M→T) into output = Δ(S→T).
// On success output.Length() == input.Length() and output satisfies
// invariants I1-I3 (spec §4.4). source and input are borrowed immutably
// for the duration of the call; output is freshly allocated and exclusively
// owned by the caller on return.
func Merge(source, input *wtstate.State) (output *wtstate.State, err error) {
	defer wtstate.RecoverOOM(&err)

	output = wtstate.New()

	for i := 0; i < input.InstLen(); i++ {
		iinst := input.InstAt(i)
		if err := mergeOne(output, source, input, i, iinst); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func mergeOne(output, source, input *wtstate.State, idx int, iinst wtstate.Inst) error {
	switch iinst.Type {
	case wtstate.RUN:
		return mergeRun(output, input, iinst)
	case wtstate.ADD:
		return mergeAdd(output, input, iinst)
	default: // COPY
		switch iinst.Mode {
		case wtstate.ModeHere, wtstate.ModeTarget:
			return mergeTargetCopy(output, iinst)
		default: // ModeSource
			return mergeSourceCopy(output, source, idx, iinst)
		}
	}
}

// mergeRun copies the single repeat byte verbatim (spec §4.4's RUN row).
func mergeRun(output, input *wtstate.State, iinst wtstate.Inst) error {
	addr := output.AppendBytes(input.Adds()[iinst.Addr : iinst.Addr+1])
	output.AppendInst(wtstate.Inst{Type: wtstate.RUN, Size: iinst.Size, Addr: addr})
	return nil
}

// mergeAdd copies the literal payload verbatim (spec §4.4's ADD row).
func mergeAdd(output, input *wtstate.State, iinst wtstate.Inst) error {
	addr := output.AppendBytes(input.Adds()[iinst.Addr : iinst.Addr+uint64(iinst.Size)])
	output.AppendInst(wtstate.Inst{Type: wtstate.ADD, Size: iinst.Size, Addr: addr})
	return nil
}

// mergeTargetCopy emits a COPY that already references T (mode HERE) or an
// earlier window's target (mode TARGET) unchanged; it needs no resolution
// against source (spec §4.4's COPY mode=0/TARGET row; spec §9 flags the
// TARGET path as best-effort/untested in the original and a chosen, tested
// behavior here, see merge/target_mode_test.go).
func mergeTargetCopy(output *wtstate.State, iinst wtstate.Inst) error {
	output.AppendInst(iinst)
	return nil
}

// mergeSourceCopy resolves a COPY mode=SOURCE instruction against source
// (spec §4.4.1): it walks the source instructions covering
// [iinst.Addr, iinst.Addr+iinst.Size) and emits one output instruction per
// source instruction span intersected, the canonical minimal split.
func mergeSourceCopy(output, source *wtstate.State, idx int, iinst wtstate.Inst) error {
	a := iinst.Addr
	remaining := iinst.Size

	j, err := posindex.Find(source, a)
	if err != nil {
		return wrapFindErr(err, source, idx)
	}

	for remaining > 0 {
		if j >= source.InstLen() {
			// The requested [a, a+size) range ran past the last source
			// instruction: the original address+size exceeds source.Length().
			return verrors.NewInvalidInput(idx, textdiff.Context(source.Insts(), -1, 3))
		}
		sinst := source.InstAt(j)

		segOff := a - sinst.Position
		segLeft := uint64(sinst.Size) - segOff
		take := uint32(min64(uint64(remaining), segLeft))

		emitResolved(output, source, sinst, segOff, take)

		a += uint64(take)
		remaining -= take
		j++
	}
	return nil
}

// emitResolved emits the output instruction covering `take` bytes of
// source instruction sinst starting at its segOff, per spec §4.4.1 step 4.
func emitResolved(output, source *wtstate.State, sinst wtstate.Inst, segOff uint64, take uint32) {
	switch sinst.Type {
	case wtstate.RUN:
		addr := output.AppendBytes(source.Adds()[sinst.Addr : sinst.Addr+1])
		output.AppendInst(wtstate.Inst{Type: wtstate.RUN, Size: take, Addr: addr})
	case wtstate.ADD:
		start := sinst.Addr + segOff
		addr := output.AppendBytes(source.Adds()[start : start+uint64(take)])
		output.AppendInst(wtstate.Inst{Type: wtstate.ADD, Size: take, Addr: addr})
	default: // COPY: SOURCE copies collapse directly; HERE/TARGET propagate.
		output.AppendInst(wtstate.Inst{
			Type: wtstate.COPY,
			Mode: sinst.Mode,
			Size: take,
			Addr: sinst.Addr + segOff,
		})
	}
}

func wrapFindErr(err error, source *wtstate.State, idx int) error {
	if err == verrors.ErrInvalidInput {
		return verrors.NewInvalidInput(idx, textdiff.Context(source.Insts(), -1, 3))
	}
	return verrors.NewInternal(idx, textdiff.Context(source.Insts(), -1, 3))
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
