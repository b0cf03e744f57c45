package buffer

import (
	"strings"
	"testing"
)

func docFrom(t *testing.T, content string) *Document {
	t.Helper()
	return FromLines(strings.Split(content, "\n"), 4)
}

func TestJoinRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"one line",
		"two\nlines",
		"trailing break\n",
		"\n\n",
	}
	for _, content := range cases {
		d := docFrom(t, content)
		if got := d.Join(); got != content {
			t.Fatalf("round trip of %q gave %q", content, got)
		}
	}
}

func TestTrailingBreakKeepsEmptyRow(t *testing.T) {
	d := docFrom(t, "a\n")
	if got := d.RowCount(); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if got := d.Row(1).String(); got != "" {
		t.Fatalf("expected empty trailing row, got %q", got)
	}
}

func TestInsertSingleRow(t *testing.T) {
	d := docFrom(t, "held")
	end := d.InsertText(Pos(2, 0), "lme")
	if got := d.Row(0).String(); got != "helmeld" {
		t.Fatalf("expected helmeld, got %q", got)
	}
	if end != Pos(5, 0) {
		t.Fatalf("expected end (5,0), got %v", end)
	}
}

func TestInsertMultiRowSplitsAndRejoins(t *testing.T) {
	d := docFrom(t, "headtail")
	end := d.InsertText(Pos(4, 0), "A\nB\nC")

	want := []string{"headA", "B", "Ctail"}
	if got := d.RowCount(); got != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), got)
	}
	for y, w := range want {
		if got := d.Row(y).String(); got != w {
			t.Fatalf("row %d: expected %q, got %q", y, w, got)
		}
	}
	if end != Pos(1, 2) {
		t.Fatalf("expected end (1,2), got %v", end)
	}

	// RemoveText over the same range is the exact inverse.
	if got := d.RemoveText(Pos(4, 0), end); got != "A\nB\nC" {
		t.Fatalf("expected removed A\\nB\\nC, got %q", got)
	}
	if got := d.Join(); got != "headtail" {
		t.Fatalf("expected headtail after removal, got %q", got)
	}
}

func TestInsertNewlineAtEndOfRow(t *testing.T) {
	d := docFrom(t, "ab")
	end := d.InsertText(Pos(2, 0), "\n")
	if got := d.RowCount(); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if end != Pos(0, 1) {
		t.Fatalf("expected end (0,1), got %v", end)
	}
}

func TestRemoveAcrossRows(t *testing.T) {
	d := docFrom(t, "aaa\nbbb\nccc")
	removed := d.RemoveText(Pos(1, 0), Pos(2, 2))
	if removed != "aa\nbbb\ncc" {
		t.Fatalf("expected removed aa\\nbbb\\ncc, got %q", removed)
	}
	if got := d.Join(); got != "ac" {
		t.Fatalf("expected ac, got %q", got)
	}
}

func TestRemoveOutOfOrderPanics(t *testing.T) {
	d := docFrom(t, "ab")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-order remove")
		}
	}()
	d.RemoveText(Pos(2, 0), Pos(1, 0))
}

func TestReadTextMatchesRemoveText(t *testing.T) {
	d := docFrom(t, "fn main() {\n    body\n}")
	p1, p2 := Pos(3, 0), Pos(4, 1)
	read := d.ReadText(p1, p2)
	removed := d.RemoveText(p1, p2)
	if read != removed {
		t.Fatalf("ReadText %q disagrees with RemoveText %q", read, removed)
	}
}

func TestPrevNextPosWrapRows(t *testing.T) {
	d := docFrom(t, "ab\ncd")

	p, ok := d.NextPos(Pos(2, 0))
	if !ok || p != Pos(0, 1) {
		t.Fatalf("expected wrap to (0,1), got %v ok=%v", p, ok)
	}
	p, ok = d.PrevPos(Pos(0, 1))
	if !ok || p != Pos(2, 0) {
		t.Fatalf("expected wrap to (2,0), got %v ok=%v", p, ok)
	}

	if _, ok := d.PrevPos(Pos(0, 0)); ok {
		t.Fatalf("expected no move before document start")
	}
	if _, ok := d.NextPos(Pos(2, 1)); ok {
		t.Fatalf("expected no move past document end")
	}
}

func TestNextPosSkipsWideGlyphInterior(t *testing.T) {
	d := docFrom(t, "a世b")
	p, ok := d.NextPos(Pos(1, 0))
	if !ok || p != Pos(3, 0) {
		t.Fatalf("expected (3,0) past the wide glyph, got %v ok=%v", p, ok)
	}
	p, ok = d.PrevPos(Pos(3, 0))
	if !ok || p != Pos(1, 0) {
		t.Fatalf("expected (1,0) back over the wide glyph, got %v ok=%v", p, ok)
	}
}

func TestVerticalMotionKeepsFitColumn(t *testing.T) {
	d := docFrom(t, "longer line\nab\nanother long line")

	// Down from column 8 onto a 2-column row clamps; down again with the
	// same remembered column restores it.
	p, ok := d.LowerPos(Pos(8, 0), 8)
	if !ok || p != Pos(2, 1) {
		t.Fatalf("expected clamp to (2,1), got %v ok=%v", p, ok)
	}
	p, ok = d.LowerPos(p, 8)
	if !ok || p != Pos(8, 2) {
		t.Fatalf("expected restore to (8,2), got %v ok=%v", p, ok)
	}
}

func TestVerticalMotionRoundsOffTombstone(t *testing.T) {
	d := docFrom(t, "abcdef\n\tx")
	// Column 2 on row 1 is inside the tab; motion lands on its leading
	// column.
	p, ok := d.LowerPos(Pos(2, 0), 2)
	if !ok || p != Pos(0, 1) {
		t.Fatalf("expected (0,1), got %v ok=%v", p, ok)
	}
}

func TestWordMotion(t *testing.T) {
	d := docFrom(t, "foo bar_baz 42")

	if got := d.NextWordPos(Pos(0, 0)); got != Pos(3, 0) {
		t.Fatalf("expected (3,0) after foo, got %v", got)
	}
	if got := d.NextWordPos(Pos(4, 0)); got != Pos(11, 0) {
		t.Fatalf("expected (11,0) after bar_baz, got %v", got)
	}
	if got := d.PrevWordPos(Pos(11, 0)); got != Pos(4, 0) {
		t.Fatalf("expected (4,0) at start of bar_baz, got %v", got)
	}
}

func TestWordMotionCrossesRows(t *testing.T) {
	d := docFrom(t, "end\nstart")
	if got := d.NextWordPos(Pos(3, 0)); got != Pos(5, 1) {
		t.Fatalf("expected (5,1) past the next word, got %v", got)
	}
	if got := d.PrevWordPos(Pos(0, 1)); got != Pos(0, 0) {
		t.Fatalf("expected (0,0) at the start of the previous word, got %v", got)
	}
}

func TestFirstLetterX(t *testing.T) {
	if got := NewRow("\t  code", 4).FirstLetterX(); got != 6 {
		t.Fatalf("expected first letter at column 6, got %d", got)
	}
	blank := NewRow(" \t ", 4)
	if got := blank.FirstLetterX(); got != blank.MaxX() {
		t.Fatalf("expected MaxX for blank row, got %d", got)
	}
}

func TestRowMutationDropsTags(t *testing.T) {
	r := NewRow("abc", 4)
	r.Tags = []byte{1, 1, 1}
	r.InsertStr(1, "x")
	if r.Tags != nil {
		t.Fatalf("expected tags dropped after mutation")
	}
	if got := r.String(); got != "axbc" {
		t.Fatalf("expected axbc, got %q", got)
	}
}

func TestRowRejectsLineBreak(t *testing.T) {
	r := NewRow("ab", 4)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on embedded line break")
		}
	}()
	r.InsertStr(1, "x\ny")
}
