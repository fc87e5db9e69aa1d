package display

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// PCF8574 backpack bit layout for the HD44780 bus.
const (
	lcdRS        = 0x01
	lcdEN        = 0x04
	lcdBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // cursor moves right, no shift
	cmdDisplayOn   = 0x0C // display on, cursor off, blink off
	cmdFunctionSet = 0x28 // 4-bit bus, 2-line mode, 5x8 font
	cmdSetDDRAM    = 0x80
)

// ddramRowBase maps 1-based rows to DDRAM start addresses (20x4 panels).
var ddramRowBase = []byte{0x00, 0x40, 0x14, 0x54}

// LCD drives a character LCD behind a PCF8574 I2C backpack in 4-bit mode.
// It is the hardware implementation of Display used on the vehicle unit.
type LCD struct {
	mu   sync.Mutex
	dev  *i2c.Dev
	rows int
	cols int
}

// NewLCD initializes the panel and returns a ready LCD. rows and cols
// describe the panel geometry, e.g. 4 and 20.
func NewLCD(dev *i2c.Dev, rows, cols int) (*LCD, error) {
	l := &LCD{dev: dev, rows: rows, cols: cols}

	// Standard HD44780 4-bit wake-up sequence.
	for _, nib := range []byte{0x03, 0x03, 0x03, 0x02} {
		if err := l.writeNibble(nib<<4, 0); err != nil {
			return nil, fmt.Errorf("lcd init: %w", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	for _, cmd := range []byte{cmdFunctionSet, cmdDisplayOn, cmdEntryMode, cmdClear} {
		if err := l.command(cmd); err != nil {
			return nil, fmt.Errorf("lcd init: %w", err)
		}
	}
	time.Sleep(2 * time.Millisecond)
	return l, nil
}

// Text writes s on the given 1-based row, padded or truncated to the panel
// width. Rows outside the panel are dropped: the surface is presentational
// and callers may address rows a bigger panel would have.
func (l *LCD) Text(s string, row int) error {
	if row < 1 || row > l.rows {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(s) > l.cols {
		s = s[:l.cols]
	}
	for len(s) < l.cols {
		s += " "
	}

	if err := l.command(cmdSetDDRAM | ddramRowBase[row-1]); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := l.writeByte(s[i], lcdRS); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks the panel.
func (l *LCD) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.command(cmdClear); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

func (l *LCD) command(cmd byte) error {
	return l.writeByte(cmd, 0)
}

// writeByte clocks one byte onto the 4-bit bus, high nibble first.
func (l *LCD) writeByte(b, flags byte) error {
	if err := l.writeNibble(b&0xF0, flags); err != nil {
		return err
	}
	return l.writeNibble((b<<4)&0xF0, flags)
}

// writeNibble latches the nibble already positioned in the high bits,
// strobing EN with the backlight held on.
func (l *LCD) writeNibble(nib, flags byte) error {
	data := nib | flags | lcdBacklight
	for _, out := range []byte{data | lcdEN, data} {
		if err := l.dev.Tx([]byte{out}, nil); err != nil {
			return fmt.Errorf("lcd write: %w", err)
		}
	}
	time.Sleep(50 * time.Microsecond)
	return nil
}
