// Package render draws listings to a terminal. The Renderer interface is what
// the pager and listing flow call; Terminal is the lipgloss and go-pretty
// implementation.
package render

// Tone is a semantic colour.
type Tone int

const (
	ToneDefault Tone = iota
	ToneInfo
	ToneSuccess
	ToneAccent
	ToneMuted
	ToneWarn
	ToneError
	ToneHighlight
)

// Align is a table column alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Panel is one bordered box.
type Panel struct {
	Body   string
	Border Tone
}

// Column is one table column header.
type Column struct {
	Title string
	Align Align
}

// Table is a bordered table of pre-formatted cells.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Renderer is the set of drawing primitives a listing needs.
type Renderer interface {
	Heading(tone Tone, text string)
	Notice(tone Tone, text string)
	GroupHeader(name string, first bool)
	Panel(p Panel)
	Table(t Table)
	Prompt()
	Line(text string)
	Blank()
}
