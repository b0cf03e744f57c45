package buffer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// PosIndex maps display columns to byte offsets within one row. Entry x
// holds the byte offset of the glyph occupying column x; the columns
// interior to a tab or a wide glyph repeat the owning glyph's offset and
// count as tombstones. The final entry is a sentinel equal to the row's
// byte length, so the index always holds MaxX()+1 entries.
//
// Storage is width-tiered: entries start as uint8 and promote to uint16
// and then uint32 the first time an offset outgrows the tier. Long rows
// pay four bytes per column, short rows one.
type PosIndex struct {
	u8  []uint8
	u16 []uint16
	u32 []uint32
}

// Rebuild recomputes the whole index from row content. Tabs advance to
// the next multiple of tabWidth; other runes advance by their display
// width (zero-width runes are counted as one column so offsets stay
// strictly increasing across glyph boundaries).
func (ix *PosIndex) Rebuild(content string, tabWidth int) {
	ix.reset()
	col := 0
	for off := 0; off < len(content); {
		r, size := utf8.DecodeRuneInString(content[off:])
		w := 1
		if r == '\t' {
			w = tabWidth - col%tabWidth
		} else if rw := runewidth.RuneWidth(r); rw > 1 {
			w = rw
		}
		for i := 0; i < w; i++ {
			ix.push(off)
		}
		col += w
		off += size
	}
	ix.push(len(content))
}

// Get returns the byte offset for column x. Asking past the sentinel is
// a caller bug and panics.
func (ix *PosIndex) Get(x int) int {
	if x < 0 || x > ix.MaxX() {
		panic(fmt.Sprintf("buffer: column %d out of range [0,%d]", x, ix.MaxX()))
	}
	switch {
	case ix.u32 != nil:
		return int(ix.u32[x])
	case ix.u16 != nil:
		return int(ix.u16[x])
	default:
		return int(ix.u8[x])
	}
}

// MaxX is the greatest addressable column: the sentinel one past the
// last glyph.
func (ix *PosIndex) MaxX() int {
	return ix.len() - 1
}

// IsTombstone reports whether column x lies inside a multi-column glyph.
// The sentinel is never a tombstone.
func (ix *PosIndex) IsTombstone(x int) bool {
	return x > 0 && ix.Get(x) == ix.Get(x-1)
}

// PrevValid returns the nearest non-tombstone column at or before x.
func (ix *PosIndex) PrevValid(x int) int {
	for x > 0 && ix.IsTombstone(x) {
		x--
	}
	return x
}

// NextValid returns the nearest non-tombstone column at or after x.
func (ix *PosIndex) NextValid(x int) int {
	for x < ix.MaxX() && ix.IsTombstone(x) {
		x++
	}
	return x
}

// NearestValidNotExceeding clamps x to the row and rounds left off any
// tombstone. Used when vertical movement carries a remembered column
// onto a shorter or differently shaped row.
func (ix *PosIndex) NearestValidNotExceeding(x int) int {
	if x > ix.MaxX() {
		x = ix.MaxX()
	}
	if x < 0 {
		x = 0
	}
	return ix.PrevValid(x)
}

// NearestValidExceeding clamps x to the row and rounds right off any
// tombstone.
func (ix *PosIndex) NearestValidExceeding(x int) int {
	if x > ix.MaxX() {
		x = ix.MaxX()
	}
	if x < 0 {
		x = 0
	}
	return ix.NextValid(x)
}

func (ix *PosIndex) len() int {
	switch {
	case ix.u32 != nil:
		return len(ix.u32)
	case ix.u16 != nil:
		return len(ix.u16)
	default:
		return len(ix.u8)
	}
}

func (ix *PosIndex) reset() {
	ix.u8 = ix.u8[:0]
	ix.u16 = nil
	ix.u32 = nil
}

func (ix *PosIndex) push(off int) {
	switch {
	case ix.u32 != nil:
		ix.u32 = append(ix.u32, uint32(off))
	case ix.u16 != nil:
		if off > math.MaxUint16 {
			ix.u32 = make([]uint32, len(ix.u16), cap(ix.u16))
			for i, v := range ix.u16 {
				ix.u32[i] = uint32(v)
			}
			ix.u16 = nil
			ix.u32 = append(ix.u32, uint32(off))
			return
		}
		ix.u16 = append(ix.u16, uint16(off))
	default:
		if off > math.MaxUint8 {
			ix.u16 = make([]uint16, len(ix.u8), cap(ix.u8))
			for i, v := range ix.u8 {
				ix.u16[i] = uint16(v)
			}
			ix.u8 = ix.u8[:0]
			ix.u16 = append(ix.u16, uint16(off))
			return
		}
		ix.u8 = append(ix.u8, uint8(off))
	}
}
