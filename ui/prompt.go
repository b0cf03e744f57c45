package ui

import (
	"mako/config"

	"github.com/gdamore/tcell/v2"
)

// Prompt is the one-line minibuffer used for find, goto-line, and
// save-as. It owns only the input line; the editor decides what the
// submitted text means.
type Prompt struct {
	Label string
	Input string
	Theme *config.ColorScheme

	OnSubmit func(text string)
	OnCancel func()
	OnChange func(text string) // fired after every edit, for incremental find

	cursor int // byte offset into Input
}

func NewPrompt(label string) *Prompt {
	return &Prompt{Label: label}
}

// SetInput prefills the input line and puts the cursor after it.
func (p *Prompt) SetInput(s string) {
	p.Input = s
	p.cursor = len(s)
}

// HandleKey consumes every key while the prompt is open.
func (p *Prompt) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		if p.OnSubmit != nil {
			p.OnSubmit(p.Input)
		}
		return true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if p.OnCancel != nil {
			p.OnCancel()
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursor > 0 {
			runes := []rune(p.Input[:p.cursor])
			cut := len(string(runes[len(runes)-1]))
			p.Input = p.Input[:p.cursor-cut] + p.Input[p.cursor:]
			p.cursor -= cut
			p.changed()
		}
		return true
	case tcell.KeyLeft:
		if p.cursor > 0 {
			runes := []rune(p.Input[:p.cursor])
			p.cursor -= len(string(runes[len(runes)-1]))
		}
		return true
	case tcell.KeyRight:
		if p.cursor < len(p.Input) {
			r := []rune(p.Input[p.cursor:])
			p.cursor += len(string(r[0]))
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.Input)
		return true
	case tcell.KeyCtrlU:
		p.Input = p.Input[p.cursor:]
		p.cursor = 0
		p.changed()
		return true
	case tcell.KeyRune:
		s := string(ev.Rune())
		p.Input = p.Input[:p.cursor] + s + p.Input[p.cursor:]
		p.cursor += len(s)
		p.changed()
		return true
	}
	return true
}

func (p *Prompt) changed() {
	if p.OnChange != nil {
		p.OnChange(p.Input)
	}
}

func (p *Prompt) Render(screen tcell.Screen, x, y, width int) {
	theme := p.Theme
	if theme == nil {
		theme = config.Themes["dark"]
	}
	style := tcell.StyleDefault.Background(theme.PromptBg).Foreground(theme.PromptFg)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x + 1
	for _, ch := range p.Label + p.Input {
		if col >= x+width {
			break
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	cursorCol := x + 1 + len([]rune(p.Label)) + len([]rune(p.Input[:p.cursor]))
	if cursorCol < x+width {
		screen.ShowCursor(cursorCol, y)
	}
}
