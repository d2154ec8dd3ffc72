package store

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"

	"github.com/forestrie/go-deltamerge/wtstate"
)

// snapshot is the CBOR wire form of a Whole-Target State (SPEC_FULL §4
// item 1). Field keys are fixed integers so the encoding is stable across
// struct field reordering, matching massifs.MMRState's `cbor:"N,keyasint"`
// convention.
type snapshot struct {
	Adds   []byte         `cbor:"1,keyasint"`
	Insts  []snapshotInst `cbor:"2,keyasint"`
	Length uint64         `cbor:"3,keyasint"`
}

type snapshotInst struct {
	Type     uint8  `cbor:"1,keyasint"`
	Mode     uint8  `cbor:"2,keyasint"`
	Size     uint32 `cbor:"3,keyasint"`
	Position uint64 `cbor:"4,keyasint"`
	Addr     uint64 `cbor:"5,keyasint"`
}

// NewCodec returns a deterministic CBOR codec suitable for snapshot
// encoding, mirroring massifs.NewRootSignerCodec's choice of deterministic
// options so that two processes snapshotting the same state produce
// byte-identical output (useful if callers hash or sign the encoding).
func NewCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

// EncodeSnapshot renders a Whole-Target State to its CBOR wire form.
func EncodeSnapshot(codec dtcbor.CBORCodec, s *wtstate.State) ([]byte, error) {
	snap := snapshot{
		Adds:   s.Adds(),
		Length: s.Length(),
	}
	for _, in := range s.Insts() {
		snap.Insts = append(snap.Insts, snapshotInst{
			Type:     uint8(in.Type),
			Mode:     uint8(in.Mode),
			Size:     in.Size,
			Position: in.Position,
			Addr:     in.Addr,
		})
	}
	return codec.MarshalCBOR(snap)
}

// DecodeSnapshot reconstructs a Whole-Target State from its CBOR wire
// form. The returned state is freshly allocated and owned by the caller.
func DecodeSnapshot(codec dtcbor.CBORCodec, data []byte) (*wtstate.State, error) {
	var snap snapshot
	if err := codec.UnmarshalInto(data, &snap); err != nil {
		return nil, err
	}

	s := wtstate.New()
	s.AppendBytes(snap.Adds)
	for _, in := range snap.Insts {
		s.AppendInst(wtstate.Inst{
			Type: wtstate.InstType(in.Type),
			Mode: wtstate.CopyMode(in.Mode),
			Size: in.Size,
			Addr: in.Addr,
		})
	}
	return s, nil
}
