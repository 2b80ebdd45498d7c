package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme styles inline text. The zero Theme is plain: no colour, no links.
type Theme struct {
	r     *lipgloss.Renderer
	links bool
}

// NewTheme creates a theme rendering through r. links enables OSC 8 hyperlinks.
func NewTheme(r *lipgloss.Renderer, links bool) Theme {
	return Theme{r: r, links: links}
}

// PlainTheme returns a theme that leaves text untouched.
func PlainTheme() Theme { return Theme{} }

// Paint colours s with tone.
func (t Theme) Paint(tone Tone, s string) string {
	if t.r == nil || s == "" {
		return s
	}
	return t.style(tone).Render(s)
}

// Bold emphasises s.
func (t Theme) Bold(s string) string {
	if t.r == nil || s == "" {
		return s
	}
	return t.r.NewStyle().Bold(true).Render(s)
}

// Strong colours s with tone and emphasises it.
func (t Theme) Strong(tone Tone, s string) string {
	if t.r == nil || s == "" {
		return s
	}
	return t.style(tone).Bold(true).Render(s)
}

// Link makes text a terminal hyperlink to url when links are enabled.
func (t Theme) Link(text, url string) string {
	if !t.links || url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

func (t Theme) style(tone Tone) lipgloss.Style {
	s := t.r.NewStyle()
	if c, ok := toneColor(tone); ok {
		s = s.Foreground(c)
	}
	return s
}

func toneColor(tone Tone) (lipgloss.TerminalColor, bool) {
	switch tone {
	case ToneInfo:
		return lipgloss.Color("12"), true
	case ToneSuccess:
		return lipgloss.Color("10"), true
	case ToneAccent:
		return lipgloss.Color("14"), true
	case ToneMuted:
		return lipgloss.Color("8"), true
	case ToneWarn, ToneHighlight:
		return lipgloss.Color("11"), true
	case ToneError:
		return lipgloss.Color("9"), true
	}
	return nil, false
}
