package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func renderBar(t *testing.T, s *StatusBar) string {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 1)

	s.Render(screen, 0, 0, 60)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for i := 0; i < w; i++ {
		sb.WriteRune(cells[i].Runes[0])
	}
	return sb.String()
}

func TestStatusBarShowsFileStateAndPosition(t *testing.T) {
	bar := NewStatusBar()
	bar.Filename = "main.rs"
	bar.Modified = true
	bar.DiskStale = true
	bar.Line = 9
	bar.Col = 4
	bar.Language = "Rust"

	line := renderBar(t, bar)
	if !strings.Contains(line, "main.rs [+] [disk]") {
		t.Fatalf("expected file flags in %q", line)
	}
	if !strings.Contains(line, "Ln 10, Col 5") {
		t.Fatalf("expected 1-based position in %q", line)
	}
	if !strings.Contains(line, "Rust") {
		t.Fatalf("expected language name in %q", line)
	}
}

func TestStatusBarMessageReplacesFilename(t *testing.T) {
	bar := NewStatusBar()
	bar.Filename = "main.rs"
	bar.Message = "Saved main.rs"

	line := renderBar(t, bar)
	if !strings.Contains(line, "Saved main.rs") {
		t.Fatalf("expected message in %q", line)
	}
	if strings.Contains(line, "[+]") {
		t.Fatalf("expected no modified flag while message shows, got %q", line)
	}
}

func TestStatusBarEmptyFilenamePlaceholder(t *testing.T) {
	bar := NewStatusBar()
	line := renderBar(t, bar)
	if !strings.Contains(line, "[no name]") {
		t.Fatalf("expected placeholder in %q", line)
	}
}
