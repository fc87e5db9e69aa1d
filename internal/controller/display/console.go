package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Console is a Display that mirrors the status surface to a writer,
// normally stdout. It exists for bench runs without the LCD attached.
//
// When the writer is an interactive terminal, Clear emits an ANSI erase so
// the surface redraws in place; otherwise every line is printed plainly so
// piped output stays readable.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	ansi  bool
	clear string
}

// NewConsole returns a Console writing to w. Pass os.Stdout for normal use.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w, clear: "\033[2J\033[H"}
	if f, ok := w.(*os.File); ok {
		c.ansi = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *Console) Text(s string, row int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	if c.ansi {
		_, err = fmt.Fprintf(c.w, "\033[%d;1H\033[2K%s\n", row, s)
	} else {
		_, err = fmt.Fprintf(c.w, "[%d] %s\n", row, s)
	}
	return err
}

func (c *Console) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ansi {
		return nil
	}
	_, err := io.WriteString(c.w, c.clear)
	return err
}
