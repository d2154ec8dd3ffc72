// Package wtstate holds the Whole-Target State: a fully-decoded delta
// represented as a byte arena plus an instruction vector, grown by doubling
// as instructions are appended. It is the leaf data structure the window
// appender, merge engine, and driver all read and write.
package wtstate

// InstType is the operation kind carried by an instruction record.
type InstType uint8

const (
	// NOOP is a decoder-pairing placeholder; it carries no output bytes and
	// is never appended to a Whole-Target State.
	NOOP InstType = iota
	RUN
	ADD
	COPY
)

func (t InstType) String() string {
	switch t {
	case RUN:
		return "RUN"
	case ADD:
		return "ADD"
	case COPY:
		return "COPY"
	default:
		return "NOOP"
	}
}

// CopyMode distinguishes the three COPY address spaces. It is a closed set
// (spec §9: "should be represented by an explicit enum, not by magic
// constants").
type CopyMode uint8

const (
	// ModeHere is copy-from-already-emitted-target: addr is a position in
	// this state's own target, strictly less than the instruction's
	// position.
	ModeHere CopyMode = iota
	// ModeSource is copy-from-source: addr is an offset into the named
	// source byte sequence.
	ModeSource
	// ModeTarget is copy-from-earlier-window's-target, carried through from
	// a decoded window whose declared source was itself an earlier window's
	// target (spec §4.2, §9).
	ModeTarget
)

func (m CopyMode) String() string {
	switch m {
	case ModeSource:
		return "SOURCE"
	case ModeTarget:
		return "TARGET"
	default:
		return "HERE"
	}
}

// Inst is one instruction record (spec §3.1's winst). RUN and ADD always
// carry Mode == ModeHere; it is meaningless for them.
type Inst struct {
	Type     InstType
	Mode     CopyMode
	Size     uint32
	Position uint64
	Addr     uint64
}

// End returns Position + Size, the exclusive end of the target range this
// instruction produces.
func (in Inst) End() uint64 { return in.Position + uint64(in.Size) }
