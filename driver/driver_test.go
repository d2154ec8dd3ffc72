package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-deltamerge/wtstate"
)

func init() {
	logger.New("NOOP")
}

// memLoader resolves ids against an in-memory map, for tests.
type memLoader struct {
	deltas map[string]*wtstate.State
}

func (l memLoader) Load(_ context.Context, id string) (*wtstate.State, error) {
	s, ok := l.deltas[id]
	if !ok {
		return nil, errors.New("no such delta: " + id)
	}
	return s, nil
}

func addInst(s *wtstate.State, data string) {
	s.AppendInst(wtstate.Inst{Type: wtstate.ADD, Size: uint32(len(data)), Addr: s.AppendBytes([]byte(data))})
}

func copyInst(s *wtstate.State, mode wtstate.CopyMode, addr uint64, size uint32) {
	s.AppendInst(wtstate.Inst{Type: wtstate.COPY, Mode: mode, Size: size, Addr: addr})
}

func TestReduceTwoDeltas(t *testing.T) {
	a := wtstate.New() // M = "ABabcdefgh", from S = "abcdefgh"
	addInst(a, "AB")
	copyInst(a, wtstate.ModeSource, 0, 8)

	b := wtstate.New() // T = "AB", from M
	copyInst(b, wtstate.ModeSource, 0, 2)

	loader := memLoader{deltas: map[string]*wtstate.State{"a": a, "b": b}}

	out, err := Reduce(context.Background(), loader, []string{"a", "b"}, logger.Sugar.WithServiceName("driver_test"))
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if out.Length() != 2 {
		t.Fatalf("length = %d, want 2", out.Length())
	}
	if out.InstLen() != 1 || out.InstAt(0).Type != wtstate.ADD {
		t.Fatalf("insts = %+v, want one ADD", out.Insts())
	}
}

func TestReduceChainOfThree(t *testing.T) {
	a := wtstate.New()
	addInst(a, "XY")
	copyInst(a, wtstate.ModeSource, 0, 4) // M = "XYabcd"

	b := wtstate.New()
	copyInst(b, wtstate.ModeSource, 0, 6) // N = M verbatim = "XYabcd"

	c := wtstate.New()
	copyInst(c, wtstate.ModeSource, 2, 2) // T = N[2:4] = "ab"

	loader := memLoader{deltas: map[string]*wtstate.State{"a": a, "b": b, "c": c}}

	out, err := Reduce(context.Background(), loader, []string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if out.Length() != 2 {
		t.Fatalf("length = %d, want 2", out.Length())
	}
}

func TestReduceRejectsShortChain(t *testing.T) {
	loader := memLoader{deltas: map[string]*wtstate.State{"a": wtstate.New()}}
	_, err := Reduce(context.Background(), loader, []string{"a"}, nil)
	if !errors.Is(err, ErrChainTooShort) {
		t.Fatalf("err = %v, want ErrChainTooShort", err)
	}
}

func TestReducePropagatesLoaderError(t *testing.T) {
	loader := memLoader{deltas: map[string]*wtstate.State{"a": wtstate.New()}}
	_, err := Reduce(context.Background(), loader, []string{"a", "missing"}, nil)
	if err == nil {
		t.Fatalf("expected error for missing delta")
	}
}
