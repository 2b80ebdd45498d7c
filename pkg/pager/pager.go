// Package pager displays an arranged sequence either in one pass or in
// fixed-size pages separated by a "press Space for more" gate.
package pager

import (
	"context"
	"errors"
	"fmt"

	"github.com/elonfeng/ardalis/pkg/arrange"
	"github.com/elonfeng/ardalis/pkg/present"
	"github.com/elonfeng/ardalis/pkg/render"
)

// DefaultPageSize is the number of items per page unless overridden.
const DefaultPageSize = 10

// ErrInvalidPageSize is returned for a page size below 1 in paged mode.
var ErrInvalidPageSize = errors.New("page size must be at least 1")

// Mode selects paged or unpaged display.
type Mode int

const (
	Paged Mode = iota
	Unpaged
)

// Result summarises one display.
type Result struct {
	Shown   int
	Total   int
	Pages   int
	Prompts int
	// Stopped is set when the user ended paging before the last page.
	Stopped bool
}

type state int

const (
	stateRendering state = iota
	stateAwaitingInput
	stateDone
)

// Pager drives a Renderer page by page.
type Pager struct {
	r    render.Renderer
	keys render.KeyReader
}

// New creates a pager drawing with r and reading continuation keys from keys.
func New(r render.Renderer, keys render.KeyReader) *Pager {
	return &Pager{r: r, keys: keys}
}

// groupCursor remembers the last group header shown, across pages.
type groupCursor struct {
	name string
	seen bool
}

// Display renders seq with pol. In Paged mode it waits for a key after every
// page that is followed by more items: Space continues, any other key prints
// how much was shown and stops. A cancelled ctx aborts the wait.
func (p *Pager) Display(ctx context.Context, seq arrange.Sequence, pageSize int, mode Mode, pol present.Policy) (Result, error) {
	res := Result{Total: seq.Len()}
	var cur groupCursor

	if mode == Unpaged {
		p.renderPage(seq, seq.Entries, 0, pol, &cur)
		res.Shown = res.Total
		if res.Total > 0 {
			res.Pages = 1
		}
		return res, nil
	}

	if pageSize <= 0 {
		return res, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	st := stateRendering
	if res.Total == 0 {
		st = stateDone
	}

	for st != stateDone {
		switch st {
		case stateRendering:
			end := min(res.Shown+pageSize, res.Total)
			p.renderPage(seq, seq.Entries[res.Shown:end], res.Shown, pol, &cur)
			res.Shown = end
			res.Pages++
			if res.Shown < res.Total {
				st = stateAwaitingInput
			} else {
				st = stateDone
			}

		case stateAwaitingInput:
			if pol.Layout == present.LayoutTable {
				p.r.Blank()
			}
			p.r.Prompt()
			res.Prompts++
			key, err := p.keys.ReadKey(ctx)
			p.r.Blank()
			if err != nil {
				return res, err
			}
			if key != ' ' {
				p.r.Notice(render.ToneMuted, fmt.Sprintf("Showing %d of %d %s", res.Shown, res.Total, pol.Noun))
				res.Stopped = true
				st = stateDone
				continue
			}
			p.r.Blank()
			st = stateRendering
		}
	}
	return res, nil
}

// renderPage draws page, emitting a group header whenever the group changes.
// offset is the index of page[0] in the whole sequence.
func (p *Pager) renderPage(seq arrange.Sequence, page []arrange.Entry, offset int, pol present.Policy, cur *groupCursor) {
	for start := 0; start < len(page); {
		end := len(page)
		if seq.Grouped {
			end = start + 1
			for end < len(page) && page[end].Group == page[start].Group {
				end++
			}
			if !cur.seen || cur.name != page[start].Group {
				p.r.GroupHeader(page[start].Group, !cur.seen)
				cur.name, cur.seen = page[start].Group, true
			}
		}
		p.renderRun(page[start:end], offset+start, pol)
		start = end
	}
}

func (p *Pager) renderRun(run []arrange.Entry, offset int, pol present.Policy) {
	if pol.Layout == present.LayoutTable {
		rows := make([][]string, len(run))
		for i, e := range run {
			rows[i] = pol.Row(e.Item, offset+i+1)
		}
		p.r.Table(render.Table{Columns: pol.Columns, Rows: rows})
		return
	}
	for _, e := range run {
		p.r.Panel(render.Panel{Body: pol.Panel(e.Item), Border: pol.Border})
	}
}
