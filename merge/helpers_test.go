package merge

import "github.com/forestrie/go-deltamerge/wtstate"

// add appends a literal ADD instruction.
func add(s *wtstate.State, data string) {
	s.AppendInst(wtstate.Inst{Type: wtstate.ADD, Size: uint32(len(data)), Addr: s.AppendBytes([]byte(data))})
}

// run appends a RUN instruction of size n repeating byte b.
func run(s *wtstate.State, b byte, n uint32) {
	s.AppendInst(wtstate.Inst{Type: wtstate.RUN, Size: n, Addr: s.AppendBytes([]byte{b})})
}

// cpy appends a COPY instruction.
func cpy(s *wtstate.State, mode wtstate.CopyMode, addr uint64, size uint32) {
	s.AppendInst(wtstate.Inst{Type: wtstate.COPY, Mode: mode, Size: size, Addr: addr})
}

// apply reconstructs the bytes a state describes, given the external
// source bytes it may reference via mode=SOURCE copies. It is the
// reference applier spec §8.1's P4 calls for.
func apply(s *wtstate.State, source []byte) []byte {
	out := make([]byte, 0, s.Length())
	for _, in := range s.Insts() {
		switch in.Type {
		case wtstate.RUN:
			b := s.Adds()[in.Addr]
			for i := uint32(0); i < in.Size; i++ {
				out = append(out, b)
			}
		case wtstate.ADD:
			out = append(out, s.Adds()[in.Addr:in.Addr+uint64(in.Size)]...)
		case wtstate.COPY:
			switch in.Mode {
			case wtstate.ModeSource:
				out = append(out, source[in.Addr:in.Addr+uint64(in.Size)]...)
			default: // ModeHere / ModeTarget: already-emitted bytes of this same target
				out = append(out, out[in.Addr:in.Addr+uint64(in.Size)]...)
			}
		}
	}
	return out
}
