// Package textdiff renders Whole-Target State instruction vectors as text,
// for use in merge-failure diagnostics and in test output when two
// instruction streams that are supposed to describe the same bytes
// (spec §8.1's P5, associativity) turn out to diverge.
package textdiff

import (
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/forestrie/go-deltamerge/wtstate"
)

// DumpInsts renders each instruction as one line, for Context and Unified.
func DumpInsts(insts []wtstate.Inst) []string {
	lines := make([]string, len(insts))
	for i, in := range insts {
		if in.Type == wtstate.COPY {
			lines[i] = fmt.Sprintf("[%d] %s mode=%s addr=%d size=%d pos=%d\n", i, in.Type, in.Mode, in.Addr, in.Size, in.Position)
		} else {
			lines[i] = fmt.Sprintf("[%d] %s addr=%d size=%d pos=%d\n", i, in.Type, in.Addr, in.Size, in.Position)
		}
	}
	return lines
}

// Context renders a small window of instructions around idx, for embedding
// in a MergeError's diagnostic. radius <= 0 means "just idx itself". idx
// may be -1, meaning no specific instruction is implicated (the first
// 2*radius+1 instructions are rendered instead).
func Context(insts []wtstate.Inst, idx, radius int) string {
	if radius < 0 {
		radius = 0
	}
	lines := DumpInsts(insts)
	if idx < 0 {
		if len(lines) > 2*radius+1 {
			lines = lines[:2*radius+1]
		}
		return joinNoTrailingNL(lines)
	}
	lo := idx - radius
	if lo < 0 {
		lo = 0
	}
	hi := idx + radius + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	return joinNoTrailingNL(lines[lo:hi])
}

func joinNoTrailingNL(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l
	}
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out
}

// Unified renders a unified diff between two instruction vectors' text
// dumps, for debugging test failures where two different merge orderings
// (spec §8.1's P5) were expected to describe identical bytes but produced
// different instruction streams.
func Unified(aName, bName string, a, b []wtstate.Inst) (string, error) {
	u := difflib.UnifiedDiff{
		A:        DumpInsts(a),
		B:        DumpInsts(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(u)
}
