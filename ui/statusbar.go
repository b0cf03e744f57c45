package ui

import (
	"fmt"

	"mako/config"

	"github.com/gdamore/tcell/v2"
)

// StatusBar is the one-line summary at the bottom of the screen: file
// name, modified flags, cursor position, and the active tokenizer.
type StatusBar struct {
	Filename  string
	Modified  bool
	DiskStale bool // file changed on disk under us
	Line      int
	Col       int
	Language  string
	Message   string // temporary status message, shown instead of the file name
	IsError   bool
	Theme     *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Language: "Plain"}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["dark"]
	}
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	left := s.Message
	leftStyle := style
	if s.IsError {
		leftStyle = style.Foreground(tcell.ColorRed).Bold(true)
	}
	if left == "" {
		left = s.Filename
		leftStyle = style
		if left == "" {
			left = "[no name]"
		}
		if s.Modified {
			left += " [+]"
		}
		if s.DiskStale {
			left += " [disk]"
		}
	}
	col := x + 1
	for _, ch := range left {
		if col >= x+width {
			break
		}
		screen.SetContent(col, y, ch, nil, leftStyle)
		col++
	}

	right := fmt.Sprintf("Ln %d, Col %d │ %s ", s.Line+1, s.Col+1, s.Language)
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}
