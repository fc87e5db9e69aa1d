// Package display abstracts the operator-facing status surface: short text
// lines addressed to fixed rows, plus a clear operation. Output is purely
// presentational; no session logic reads it back.
package display

// Display renders short status lines on a fixed-row surface.
type Display interface {
	// Text writes s on the given 1-based row, replacing its content.
	Text(s string, row int) error

	// Clear blanks the whole surface.
	Clear() error
}

// Nop is a Display that discards all output. Useful when no surface is
// attached and for tests that do not inspect display traffic.
type Nop struct{}

func (Nop) Text(string, int) error { return nil }
func (Nop) Clear() error           { return nil }
