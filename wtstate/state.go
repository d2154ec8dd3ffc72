package wtstate

// State is a Whole-Target State: the byte arena plus instruction vector
// for one fully-decoded delta (spec §3.2). The zero value is not usable;
// construct with Init.
//
// A State is exclusively owned by its current holder. Ownership transfers
// by value-swap (Swap), never by sharing a pointer into another state's
// buffers: every cross-reference in this package is an integer offset,
// never a pointer, so growing either buffer by reallocation never
// invalidates anything (spec §9).
type State struct {
	adds   []byte
	inst   []Inst
	length uint64
}

// Init prepares a zero-initialized state for use. Preconditions: s must
// not already hold data (spec §6.1).
func Init(s *State) {
	s.adds = make([]byte, 0, quantum)
	s.inst = make([]Inst, 0, quantum/instSize)
}

// instSize is a nominal unit used only to size the initial instruction
// vector allocation proportionally to the byte arena's quantum; it has no
// bearing on correctness.
const instSize = 40

// Free releases the state's buffers. Go's garbage collector reclaims the
// backing arrays once nothing references them; Free exists for symmetry
// with spec §6.1's API surface and so callers can assert, after release, a
// state is no longer in use.
func Free(s *State) {
	s.adds = nil
	s.inst = nil
	s.length = 0
}

// Swap exchanges ownership of two states' buffers (spec §6.1).
func Swap(a, b *State) {
	a.adds, b.adds = b.adds, a.adds
	a.inst, b.inst = b.inst, a.inst
	a.length, b.length = b.length, a.length
}

// New returns an initialized, empty state.
func New() *State {
	s := &State{}
	Init(s)
	return s
}

// Length is the number of target bytes described so far.
func (s *State) Length() uint64 { return s.length }

// Insts returns the instruction vector. The returned slice aliases the
// state's storage and must not be mutated by the caller.
func (s *State) Insts() []Inst { return s.inst }

// InstAt returns the i'th instruction.
func (s *State) InstAt(i int) Inst { return s.inst[i] }

// InstLen is the number of instructions held.
func (s *State) InstLen() int { return len(s.inst) }

// Adds returns the byte arena. The returned slice aliases the state's
// storage and must not be mutated by the caller.
func (s *State) Adds() []byte { return s.adds }

// AddsLen is the number of arena bytes held.
func (s *State) AddsLen() int { return len(s.adds) }

// AppendBytes reserves room for and appends data to the byte arena,
// returning the pre-append offset the appended bytes start at (spec
// §4.1, §4.2's "Data consumption").
func (s *State) AppendBytes(data []byte) uint64 {
	s.adds = reserveBytes(s.adds, len(data))
	off := uint64(len(s.adds))
	s.adds = append(s.adds, data...)
	return off
}

// AppendInst reserves room for and appends one instruction, advancing
// length by its size. The instruction's Position is set to the state's
// current length before advancing, so callers should leave in.Position
// unset (it is overwritten).
func (s *State) AppendInst(in Inst) {
	s.inst = reserveInsts(s.inst, 1)
	in.Position = s.length
	s.length += uint64(in.Size)
	s.inst = append(s.inst, in)
}
