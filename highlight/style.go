package highlight

import "github.com/gdamore/tcell/v2"

// StyleFor maps a style tag to the terminal style used to draw it.
func StyleFor(tag byte) tcell.Style {
	base := tcell.StyleDefault
	switch tag {
	case TagKeyword:
		return base.Foreground(tcell.ColorBlue).Bold(true)
	case TagType:
		return base.Foreground(tcell.ColorFuchsia)
	case TagNumber:
		return base.Foreground(tcell.ColorDarkCyan)
	case TagString:
		return base.Foreground(tcell.ColorGreen)
	case TagRegex:
		return base.Foreground(tcell.ColorOlive)
	case TagComment:
		return base.Foreground(tcell.ColorGray).Italic(true)
	case TagSymbol:
		return base.Foreground(tcell.ColorTeal)
	case TagAttribute:
		return base.Foreground(tcell.ColorYellow)
	case TagLifetime:
		return base.Foreground(tcell.ColorAqua).Italic(true)
	default:
		return base
	}
}
