package wtstate

import "fmt"

// Validate checks invariants I1-I3 (spec §3.1) against the state. sourceLen
// is the length of the external source sequence this state's SOURCE-mode
// copies reference; pass sourceLen == 0 and no SOURCE copies if the state has no source (a
// pure-ADD/RUN delta).
//
// This is a diagnostic used by tests (spec §8.1's P1-P3); the merge engine
// and window appender do not call it on every append, since doing so would
// make every append O(n).
func Validate(s *State, sourceLen uint64) error {
	var pos uint64
	for i, in := range s.inst {
		if in.Position != pos {
			return fmt.Errorf("I1 violated at inst %d: position %d, want %d", i, in.Position, pos)
		}
		if in.Size == 0 {
			return fmt.Errorf("I1 violated at inst %d: zero size", i)
		}
		switch in.Type {
		case RUN:
			if in.Addr+1 > uint64(len(s.adds)) {
				return fmt.Errorf("I2 violated at inst %d: RUN addr %d out of arena (len %d)", i, in.Addr, len(s.adds))
			}
		case ADD:
			if in.Addr+uint64(in.Size) > uint64(len(s.adds)) {
				return fmt.Errorf("I2 violated at inst %d: ADD addr %d size %d out of arena (len %d)", i, in.Addr, in.Size, len(s.adds))
			}
		case COPY:
			switch in.Mode {
			case ModeSource:
				if in.Addr+uint64(in.Size) > sourceLen {
					return fmt.Errorf("I2 violated at inst %d: SOURCE copy addr %d size %d exceeds source length %d", i, in.Addr, in.Size, sourceLen)
				}
			case ModeHere:
				if in.Addr+uint64(in.Size) > in.Position {
					return fmt.Errorf("I2 violated at inst %d: HERE copy addr %d size %d references un-emitted bytes (position %d)", i, in.Addr, in.Size, in.Position)
				}
			case ModeTarget:
				// Resolved against an earlier window's target; no local
				// bound to check here (spec §9's untested path).
			}
		default:
			return fmt.Errorf("I1 violated at inst %d: unexpected NOOP in instruction vector", i)
		}
		pos += uint64(in.Size)
	}
	if pos != s.length {
		return fmt.Errorf("I1 violated: final position %d != state length %d", pos, s.length)
	}
	return nil
}
