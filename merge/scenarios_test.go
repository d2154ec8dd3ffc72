package merge

import (
	"errors"
	"testing"

	"github.com/forestrie/go-deltamerge/internal/verrors"
	"github.com/forestrie/go-deltamerge/wtstate"
)

// Scenarios from spec §8.3. S = "abcdefgh" throughout.
const s8bytes = "abcdefgh"

func TestScenario1_AddAddMerge(t *testing.T) {
	source := wtstate.New() // A: M = "XY" as one ADD
	add(source, "XY")

	input := wtstate.New() // B: T = "XY" as one COPY mode=SOURCE addr=0 size=2
	cpy(input, wtstate.ModeSource, 0, 2)

	out, err := Merge(source, input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.Length() != 2 {
		t.Fatalf("length = %d, want 2", out.Length())
	}
	if out.InstLen() != 1 || out.InstAt(0).Type != wtstate.ADD || out.InstAt(0).Size != 2 {
		t.Fatalf("insts = %+v, want one ADD size 2", out.Insts())
	}
	if string(out.Adds()) != "XY" {
		t.Fatalf("adds = %q, want %q", out.Adds(), "XY")
	}
}

func TestScenario2_CopyPassthrough(t *testing.T) {
	source := wtstate.New() // A: M = "cdef" via COPY mode=SOURCE addr=2 size=4
	cpy(source, wtstate.ModeSource, 2, 4)

	input := wtstate.New() // B: T = "ZZZZ" via ADD "ZZ" + COPY mode=0 addr=0 size=2
	add(input, "ZZ")
	cpy(input, wtstate.ModeHere, 0, 2)

	out, err := Merge(source, input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.Length() != 4 {
		t.Fatalf("length = %d, want 4", out.Length())
	}
	want := []wtstate.Inst{
		{Type: wtstate.ADD, Size: 2, Position: 0},
		{Type: wtstate.COPY, Mode: wtstate.ModeHere, Addr: 0, Size: 2, Position: 2},
	}
	assertInsts(t, out, want)
}

func TestScenario3_SourceCopySplitting(t *testing.T) {
	source := wtstate.New() // A: ADD "PQ" + COPY mode=SOURCE addr=0 size=6 -> M = "PQabcdef"
	add(source, "PQ")
	cpy(source, wtstate.ModeSource, 0, 6)

	input := wtstate.New() // B: COPY mode=SOURCE addr=1 size=5 -> T = "Qabcd"
	cpy(input, wtstate.ModeSource, 1, 5)

	out, err := Merge(source, input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.Length() != 5 {
		t.Fatalf("length = %d, want 5", out.Length())
	}
	if out.InstLen() != 2 {
		t.Fatalf("instlen = %d, want 2", out.InstLen())
	}
	first := out.InstAt(0)
	if first.Type != wtstate.ADD || first.Size != 1 || string(out.Adds()[first.Addr:first.Addr+1]) != "Q" {
		t.Fatalf("first inst = %+v, want ADD size 1 byte 'Q'", first)
	}
	second := out.InstAt(1)
	if second.Type != wtstate.COPY || second.Mode != wtstate.ModeSource || second.Addr != 0 || second.Size != 4 {
		t.Fatalf("second inst = %+v, want COPY mode=SOURCE addr=0 size=4", second)
	}
}

func TestScenario4_RunTranslation(t *testing.T) {
	source := wtstate.New() // A: RUN 'x' size=5 -> M = "xxxxx"
	run(source, 'x', 5)

	input := wtstate.New() // B: COPY mode=SOURCE addr=1 size=3 -> T = "xxx"
	cpy(input, wtstate.ModeSource, 1, 3)

	out, err := Merge(source, input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.Length() != 3 {
		t.Fatalf("length = %d, want 3", out.Length())
	}
	if out.InstLen() != 1 || out.InstAt(0).Type != wtstate.RUN || out.InstAt(0).Size != 3 {
		t.Fatalf("insts = %+v, want one RUN size 3", out.Insts())
	}
	if len(out.Adds()) != 1 || out.Adds()[0] != 'x' {
		t.Fatalf("arena = %q, want single byte 'x'", out.Adds())
	}
}

func TestScenario5_OutOfRangeSourceCopy(t *testing.T) {
	source := wtstate.New() // A describes M of length 4
	add(source, "abcd")

	input := wtstate.New() // B: COPY mode=SOURCE addr=10 size=1, out of range
	cpy(input, wtstate.ModeSource, 10, 1)

	_, err := Merge(source, input)
	if !errors.Is(err, verrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestScenario6_ChainedIdentity(t *testing.T) {
	source := wtstate.New() // A = identity delta over S
	cpy(source, wtstate.ModeSource, 0, uint32(len(s8bytes)))

	input := wtstate.New() // B = arbitrary delta producing T = "abXYcdefgh"
	cpy(input, wtstate.ModeSource, 0, 2)
	add(input, "XY")
	cpy(input, wtstate.ModeSource, 2, 6)

	out, err := Merge(source, input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got := apply(out, []byte(s8bytes))
	want := apply(input, []byte(s8bytes))
	if string(got) != string(want) {
		t.Fatalf("merge(identity, B) applied to S = %q, want %q", got, want)
	}
}

func assertInsts(t *testing.T, out *wtstate.State, want []wtstate.Inst) {
	t.Helper()
	if out.InstLen() != len(want) {
		t.Fatalf("instlen = %d, want %d (%+v)", out.InstLen(), len(want), out.Insts())
	}
	for i, w := range want {
		got := out.InstAt(i)
		if got.Type != w.Type || got.Mode != w.Mode || got.Addr != w.Addr || got.Size != w.Size || got.Position != w.Position {
			t.Fatalf("inst %d = %+v, want %+v", i, got, w)
		}
	}
}
