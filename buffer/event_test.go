package buffer

import "testing"

func TestInsertApplyYieldsExactInverse(t *testing.T) {
	d := docFrom(t, "hello")
	ev := Insert(Pos(5, 0), " world\nnext", true)

	inv, caret := ev.Apply(d)
	if got := d.Join(); got != "hello world\nnext" {
		t.Fatalf("expected inserted text, got %q", got)
	}
	if caret != Pos(4, 1) {
		t.Fatalf("expected caret (4,1), got %v", caret)
	}
	if inv.Kind != KindDelete || inv.Pos != Pos(5, 0) || inv.End != Pos(4, 1) {
		t.Fatalf("unexpected inverse %+v", inv)
	}

	inv2, caret2 := inv.Apply(d)
	if got := d.Join(); got != "hello" {
		t.Fatalf("expected original text after inverse, got %q", got)
	}
	if caret2 != Pos(5, 0) {
		t.Fatalf("expected caret back at (5,0), got %v", caret2)
	}
	if inv2.Kind != KindInsert || inv2.Text != " world\nnext" {
		t.Fatalf("unexpected double inverse %+v", inv2)
	}
}

func TestIndentUnindentInverse(t *testing.T) {
	d := docFrom(t, "line")
	ev := Indent(Pos(0, 0), "\t")

	inv, caret := ev.Apply(d)
	if got := d.Row(0).String(); got != "\tline" {
		t.Fatalf("expected tab prefix, got %q", got)
	}
	if caret != Pos(4, 0) {
		t.Fatalf("expected caret (4,0) past the tab, got %v", caret)
	}
	if inv.Kind != KindUnindent || inv.Width != 4 {
		t.Fatalf("unexpected inverse %+v", inv)
	}

	inv2, _ := inv.Apply(d)
	if got := d.Row(0).String(); got != "line" {
		t.Fatalf("expected indent removed, got %q", got)
	}
	if inv2.Kind != KindIndent || inv2.Text != "\t" {
		t.Fatalf("unexpected double inverse %+v", inv2)
	}
}

func TestMergeTypingRun(t *testing.T) {
	// Inverses of typing a, b, c at advancing positions.
	a := Delete(Pos(0, 0), Pos(1, 0), true)
	a.Text = "a"
	b := Delete(Pos(1, 0), Pos(2, 0), true)
	b.Text = "b"

	if !a.CanMerge(b) {
		t.Fatalf("expected contiguous deletes to merge")
	}
	m := a.Merge(b)
	if m.Pos != Pos(0, 0) || m.End != Pos(2, 0) || m.Text != "ab" {
		t.Fatalf("unexpected merge result %+v", m)
	}
}

func TestMergeBackspaceRun(t *testing.T) {
	// Inverses of backspacing at decreasing positions.
	first := Insert(Pos(3, 0), "d", true)
	first.End = Pos(4, 0)
	second := Insert(Pos(2, 0), "c", true)
	second.End = Pos(3, 0)

	if !first.CanMerge(second) {
		t.Fatalf("expected backspace inverses to merge")
	}
	m := first.Merge(second)
	if m.Pos != Pos(2, 0) || m.Text != "cd" {
		t.Fatalf("unexpected merge result %+v", m)
	}
}

func TestMergeRejectsGaps(t *testing.T) {
	a := Delete(Pos(0, 0), Pos(1, 0), true)
	b := Delete(Pos(5, 0), Pos(6, 0), true)
	if a.CanMerge(b) {
		t.Fatalf("expected non-contiguous deletes not to merge")
	}
}

func TestMergeRejectsMultiline(t *testing.T) {
	a := Delete(Pos(0, 0), Pos(1, 0), true)
	b := Delete(Pos(1, 0), Pos(0, 1), true)
	if a.CanMerge(b) {
		t.Fatalf("expected multi-row delete not to merge")
	}
}

func TestMergeIncompatiblePanics(t *testing.T) {
	a := Delete(Pos(0, 0), Pos(1, 0), true)
	b := Insert(Pos(1, 0), "x", true)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on merging different kinds")
		}
	}()
	a.Merge(b)
}
