package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	minPanelWidth = 20
)

// Terminal renders to a writer, usually stdout. Colours and hyperlinks are
// only emitted when the writer is a terminal.
type Terminal struct {
	out   io.Writer
	lr    *lipgloss.Renderer
	theme Theme
	width int
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	lr := lipgloss.NewRenderer(out)
	return &Terminal{
		out:   out,
		lr:    lr,
		theme: NewTheme(lr, IsTerminal(out)),
		width: terminalWidth(out),
	}
}

// Theme returns the inline text styles matching this terminal.
func (t *Terminal) Theme() Theme { return t.theme }

func (t *Terminal) Heading(tone Tone, s string) {
	fmt.Fprintln(t.out, t.theme.Strong(tone, s))
	fmt.Fprintln(t.out)
}

func (t *Terminal) Notice(tone Tone, s string) {
	fmt.Fprintln(t.out, t.theme.Paint(tone, s))
}

func (t *Terminal) GroupHeader(name string, first bool) {
	if !first {
		fmt.Fprintln(t.out)
	}
	fmt.Fprintln(t.out, t.theme.Strong(ToneAccent, name))
	fmt.Fprintln(t.out)
}

func (t *Terminal) Panel(p Panel) {
	style := t.lr.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(t.width-2, minPanelWidth))
	if c, ok := toneColor(p.Border); ok {
		style = style.BorderForeground(c)
	}
	fmt.Fprintln(t.out, style.Render(p.Body))
	fmt.Fprintln(t.out)
}

func (t *Terminal) Table(tbl Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(t.out)

	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(tbl.Columns))
	configs := make([]table.ColumnConfig, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c.Title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       textAlign(c.Align),
			AlignHeader: textAlign(c.Align),
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range tbl.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func (t *Terminal) Prompt() {
	fmt.Fprint(t.out,
		t.theme.Paint(ToneMuted, "Press ")+
			t.theme.Bold("Space")+
			t.theme.Paint(ToneMuted, " for more, or any other key to exit..."))
}

func (t *Terminal) Line(s string) {
	fmt.Fprintln(t.out, s)
}

func (t *Terminal) Blank() {
	fmt.Fprintln(t.out)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func textAlign(a Align) text.Align {
	switch a {
	case AlignCenter:
		return text.AlignCenter
	case AlignRight:
		return text.AlignRight
	}
	return text.AlignLeft
}
