package highlight

import (
	"strings"
	"testing"

	"mako/buffer"
)

func rowsOf(lines ...string) []*buffer.Row {
	rows := make([]*buffer.Row, len(lines))
	for i, line := range lines {
		rows[i] = buffer.NewRow(line, 4)
	}
	return rows
}

func assertTag(t *testing.T, row *buffer.Row, sub string, tag byte) {
	t.Helper()
	i := strings.Index(row.String(), sub)
	if i < 0 {
		t.Fatalf("substring %q not found in %q", sub, row.String())
	}
	if row.Tags == nil {
		t.Fatalf("row %q has no tags", row.String())
	}
	for j := i; j < i+len(sub); j++ {
		if row.Tags[j] != tag {
			t.Fatalf("byte %d of %q in %q: expected tag %d, got %d",
				j-i, sub, row.String(), tag, row.Tags[j])
		}
	}
}

func TestRustKeywordsTypesNumbers(t *testing.T) {
	rows := rowsOf("fn add(n: i32) -> Vec { return n + 42; }")
	Rust().Highlight(rows, 0)

	assertTag(t, rows[0], "fn", TagKeyword)
	assertTag(t, rows[0], "return", TagKeyword)
	assertTag(t, rows[0], "i32", TagType)
	assertTag(t, rows[0], "Vec", TagType)
	assertTag(t, rows[0], "42", TagNumber)
	assertTag(t, rows[0], "add", TagDefault)
}

func TestRustBlockCommentSpansRows(t *testing.T) {
	rows := rowsOf(
		"fn main() {",
		"    /* start",
		"    still open",
		"    done */ let x = 1;",
		"}",
	)
	n := Rust().Highlight(rows, 0)
	if n != 5 {
		t.Fatalf("expected 5 rows consumed, got %d", n)
	}

	if rows[1].Context != "" {
		t.Fatalf("expected empty context entering row 1, got %q", rows[1].Context)
	}
	if rows[2].Context != "c1" {
		t.Fatalf("expected c1 entering row 2, got %q", rows[2].Context)
	}
	if rows[3].Context != "c1" {
		t.Fatalf("expected c1 entering row 3, got %q", rows[3].Context)
	}
	if rows[4].Context != "" {
		t.Fatalf("expected comment closed entering row 4, got %q", rows[4].Context)
	}

	assertTag(t, rows[2], "still open", TagComment)
	assertTag(t, rows[3], "done */", TagComment)
	assertTag(t, rows[3], "let", TagKeyword)
}

func TestRustNestedBlockComment(t *testing.T) {
	rows := rowsOf("/* a /* b */ inner */ fn")
	Rust().Highlight(rows, 0)

	assertTag(t, rows[0], "inner */", TagComment)
	assertTag(t, rows[0], "fn", TagKeyword)
}

func TestRustRehighlightStopsWhenContextStabilizes(t *testing.T) {
	rows := rowsOf(
		"let a = 1;",
		"let b = 2;",
		"let c = 3;",
	)
	Rust().Highlight(rows, 0)

	// An edit on row 1 that opens nothing re-scans that row alone.
	rows[1].InsertStr(4, "x")
	n := Rust().Highlight(rows, 1)
	if n != 1 {
		t.Fatalf("expected 1 row consumed after local edit, got %d", n)
	}
	if rows[2].Tags == nil {
		t.Fatalf("expected row 2 tags untouched")
	}
}

func TestRustOpeningCommentRescansBelow(t *testing.T) {
	rows := rowsOf(
		"let a = 1;",
		"let b = 2;",
		"let c = 3;",
	)
	Rust().Highlight(rows, 0)

	// Opening a block comment on row 0 drags every row below into it.
	rows[0].InsertStr(0, "/* ")
	n := Rust().Highlight(rows, 0)
	if n != 3 {
		t.Fatalf("expected full re-scan, got %d rows", n)
	}
	assertTag(t, rows[1], "let b", TagComment)
	assertTag(t, rows[2], "let c", TagComment)
	if rows[2].Context != "c1" {
		t.Fatalf("expected c1 entering row 2, got %q", rows[2].Context)
	}
}

func TestRustRemovingCommentOpenerRescansThroughCloser(t *testing.T) {
	rows := rowsOf(
		"fn main() {",
		"    /* start",
		"    still open */",
		"}",
	)
	Rust().Highlight(rows, 0)
	if rows[2].Context != "c1" {
		t.Fatalf("expected c1 entering row 2, got %q", rows[2].Context)
	}
	if rows[3].Context != "" {
		t.Fatalf("expected comment closed entering row 3, got %q", rows[3].Context)
	}

	// Deleting the opener re-scans rows 1 and 2; row 3's context is
	// already correct so the pass stops there.
	rows[1].RemoveStr(4, 6)
	n := Rust().Highlight(rows, 1)
	if n != 2 {
		t.Fatalf("expected 2 rows consumed, got %d", n)
	}
	if rows[2].Context != "" {
		t.Fatalf("expected empty context entering row 2, got %q", rows[2].Context)
	}
	if rows[3].Tags == nil {
		t.Fatalf("expected row 3 tags untouched")
	}
	assertTag(t, rows[2], "still", TagDefault)
}

func TestRustRawStringCarriesHashCount(t *testing.T) {
	rows := rowsOf(
		`let s = r#"one`,
		`two"# let x = 1;`,
	)
	Rust().Highlight(rows, 0)

	if rows[1].Context != "r1" {
		t.Fatalf("expected r1 entering row 1, got %q", rows[1].Context)
	}
	assertTag(t, rows[0], `r#"one`, TagString)
	assertTag(t, rows[1], `two"#`, TagString)
	assertTag(t, rows[1], "let", TagKeyword)
}

func TestRustStringEscapes(t *testing.T) {
	rows := rowsOf(`let s = "a\"b"; fn`)
	Rust().Highlight(rows, 0)

	assertTag(t, rows[0], `"a\"b"`, TagString)
	assertTag(t, rows[0], "fn", TagKeyword)
}

func TestRustLifetimeVsCharLiteral(t *testing.T) {
	rows := rowsOf(`fn f<'a>(x: &'a str, c: char) { let y = 'z'; }`)
	Rust().Highlight(rows, 0)

	assertTag(t, rows[0], "'a", TagLifetime)
	i := strings.Index(rows[0].String(), "'a>")
	if rows[0].Tags[i+2] == TagLifetime {
		t.Fatalf("expected > untagged after lifetime")
	}
	assertTag(t, rows[0], "'z'", TagString)
}

func TestRustAttribute(t *testing.T) {
	rows := rowsOf(`#[derive(Debug)] struct S;`)
	Rust().Highlight(rows, 0)

	assertTag(t, rows[0], "#[derive(Debug)]", TagAttribute)
	assertTag(t, rows[0], "struct", TagKeyword)
}

func TestRustIndentTracksBrackets(t *testing.T) {
	rows := rowsOf(
		"fn main() {",
		"    let v = vec![",
		"    ];",
		"}",
	)
	Rust().Highlight(rows, 0)

	if rows[0].Indent != 1 {
		t.Fatalf("expected net indent 1 on row 0, got %d", rows[0].Indent)
	}
	if rows[1].Indent != 1 {
		t.Fatalf("expected net indent 1 on row 1, got %d", rows[1].Indent)
	}
	if rows[2].Indent != -1 {
		t.Fatalf("expected net indent -1 on row 2, got %d", rows[2].Indent)
	}
	if rows[3].Indent != -1 {
		t.Fatalf("expected net indent -1 on row 3, got %d", rows[3].Indent)
	}
}
