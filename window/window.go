// Package window appends one decoded VCDIFF window's instructions to a
// Whole-Target State, rewriting window-local copy addresses into flat
// target-absolute or source-absolute form (spec §4.2).
package window

import (
	"github.com/forestrie/go-deltamerge/wtstate"
)

// DecodedInst is one instruction as delivered by the (external) decoder:
// addr is window-local (spec §6.2). The decoder may emit two of these per
// macro-op; NOOP is a permitted placeholder and is skipped.
type DecodedInst struct {
	Type wtstate.InstType
	Size uint32
	Addr uint64
}

// Cursor is a simple forward-only reader over a window's immediate-data
// section, consumed one RUN byte or one ADD payload at a time (spec
// §4.2's "Data consumption").
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential consumption.
func NewCursor(data []byte) *Cursor { return &Cursor{data: data} }

// Take returns the next n bytes and advances the cursor.
func (c *Cursor) Take(n int) []byte {
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

// Window describes one decoded window: its declared source span (possibly
// empty) and the mode that span should be attributed to, plus the
// instructions to append (spec §6.2).
type Window struct {
	// SrcOffset and SrcLen describe the window's source span. SrcLen == 0
	// means the window has no source span at all; every copy in Insts must
	// then fall in the window's-own-output range.
	SrcOffset uint64
	SrcLen    uint64
	// SrcMode is ModeSource or ModeTarget: whether the window's source span
	// comes from the external source or an earlier window's target.
	SrcMode wtstate.CopyMode
	Insts   []DecodedInst
	Data    *Cursor
}

// Append appends win's non-NOOP instructions to state, rewriting copy
// addresses per spec §4.2: a copy with addr < win.SrcLen is rewritten to
// win.SrcMode with addr = win.SrcOffset + addr; otherwise it targets this
// window's own already-produced output and is rewritten to ModeHere with
// addr = baseTargetLen + (addr - win.SrcLen).
//
// baseTargetLen is the target length accumulated by this delta before this
// window started (state.Length() may be ahead of it if earlier windows of
// the *same* delta already extended state; baseTargetLen anchors
// window-own-output addressing to the start of this specific window, not
// to whatever state held when appending began).
func Append(state *wtstate.State, win Window, baseTargetLen uint64) (err error) {
	defer wtstate.RecoverOOM(&err)

	for _, d := range win.Insts {
		if d.Type == wtstate.NOOP {
			continue
		}
		appendOne(state, win, baseTargetLen, d)
	}
	return nil
}

func appendOne(state *wtstate.State, win Window, baseTargetLen uint64, d DecodedInst) {
	switch d.Type {
	case wtstate.RUN:
		addr := state.AppendBytes(win.Data.Take(1))
		state.AppendInst(wtstate.Inst{Type: wtstate.RUN, Size: d.Size, Addr: addr})
	case wtstate.ADD:
		addr := state.AppendBytes(win.Data.Take(int(d.Size)))
		state.AppendInst(wtstate.Inst{Type: wtstate.ADD, Size: d.Size, Addr: addr})
	default: // COPY
		if win.SrcLen > 0 && d.Addr < win.SrcLen {
			state.AppendInst(wtstate.Inst{
				Type: wtstate.COPY,
				Mode: win.SrcMode,
				Size: d.Size,
				Addr: win.SrcOffset + d.Addr,
			})
			return
		}
		state.AppendInst(wtstate.Inst{
			Type: wtstate.COPY,
			Mode: wtstate.ModeHere,
			Size: d.Size,
			Addr: baseTargetLen + (d.Addr - win.SrcLen),
		})
	}
}
