package render

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl-C is read while the terminal is in raw
// mode and so never reaches the process as a signal.
var ErrInterrupted = errors.New("interrupted")

const keyCtrlC = 0x03

// KeyReader blocks until a single key is pressed or ctx is done.
type KeyReader interface {
	ReadKey(ctx context.Context) (rune, error)
}

// Keyboard reads single key presses from an input, normally stdin. When the
// input is a terminal it is switched to raw mode for the duration of each
// read so the key is delivered without Enter and without echo.
type Keyboard struct {
	in     io.Reader
	reader *bufio.Reader
}

// NewKeyboard creates a Keyboard reading from in.
func NewKeyboard(in io.Reader) *Keyboard {
	return &Keyboard{in: in, reader: bufio.NewReader(in)}
}

type keyResult struct {
	r   rune
	err error
}

// ReadKey returns the next key. End of input yields the zero rune with no
// error, which callers treat as "not space".
func (k *Keyboard) ReadKey(ctx context.Context) (rune, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	raw := false
	if f, ok := k.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return 0, fmt.Errorf("enter raw mode: %w", err)
		}
		raw = true
		defer func() { _ = term.Restore(int(f.Fd()), state) }()
	}

	// A read cannot be interrupted; on cancellation the goroutine is left
	// blocked until input arrives or the process exits.
	ch := make(chan keyResult, 1)
	go func() {
		r, _, err := k.reader.ReadRune()
		if raw {
			// Drop the tail of escape sequences such as arrow keys.
			_, _ = k.reader.Discard(k.reader.Buffered())
		}
		ch <- keyResult{r: r, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		switch {
		case errors.Is(res.err, io.EOF):
			return 0, nil
		case res.err != nil:
			return 0, fmt.Errorf("read key: %w", res.err)
		case res.r == keyCtrlC:
			return 0, ErrInterrupted
		}
		return res.r, nil
	}
}
