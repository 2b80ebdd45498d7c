// Package rendertest provides a recording Renderer and a scripted KeyReader
// for tests.
package rendertest

import (
	"context"
	"strings"
	"sync"

	"github.com/elonfeng/ardalis/pkg/render"
)

// Call is one recorded Renderer call.
type Call struct {
	Op    string
	Text  string
	Tone  render.Tone
	First bool
	Panel render.Panel
	Table render.Table
}

// Recorder implements render.Renderer by recording every call.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call
}

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) Heading(tone render.Tone, text string) {
	r.add(Call{Op: "heading", Tone: tone, Text: text})
}

func (r *Recorder) Notice(tone render.Tone, text string) {
	r.add(Call{Op: "notice", Tone: tone, Text: text})
}

func (r *Recorder) GroupHeader(name string, first bool) {
	r.add(Call{Op: "group", Text: name, First: first})
}

func (r *Recorder) Panel(p render.Panel) { r.add(Call{Op: "panel", Panel: p, Text: p.Body}) }
func (r *Recorder) Table(t render.Table) { r.add(Call{Op: "table", Table: t}) }
func (r *Recorder) Prompt()              { r.add(Call{Op: "prompt"}) }
func (r *Recorder) Line(text string)     { r.add(Call{Op: "line", Text: text}) }
func (r *Recorder) Blank()               { r.add(Call{Op: "blank"}) }

// Ops returns the recorded calls of kind op.
func (r *Recorder) Ops(op string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls of kind op were recorded.
func (r *Recorder) Count(op string) int { return len(r.Ops(op)) }

// Items returns how many items were drawn: one per panel plus every table row.
func (r *Recorder) Items() int {
	n := r.Count("panel")
	for _, c := range r.Ops("table") {
		n += len(c.Table.Rows)
	}
	return n
}

// Texts returns the text of every notice, heading and line, in order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.Calls {
		switch c.Op {
		case "notice", "heading", "line":
			out = append(out, c.Text)
		}
	}
	return out
}

// HasText reports whether any notice, heading or line contains s.
func (r *Recorder) HasText(s string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// Keys is a KeyReader returning scripted keys in order. Once the script is
// exhausted it blocks until ctx is done.
type Keys struct {
	mu    sync.Mutex
	keys  []rune
	Reads int
}

// NewKeys creates a scripted KeyReader.
func NewKeys(keys ...rune) *Keys {
	return &Keys{keys: keys}
}

func (k *Keys) ReadKey(ctx context.Context) (rune, error) {
	k.mu.Lock()
	k.Reads++
	if len(k.keys) > 0 {
		r := k.keys[0]
		k.keys = k.keys[1:]
		k.mu.Unlock()
		return r, nil
	}
	k.mu.Unlock()

	<-ctx.Done()
	return 0, ctx.Err()
}
