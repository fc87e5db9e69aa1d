package controller

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/autolock/internal/common"
	"github.com/dmitrijs2005/autolock/internal/controller/actuate"
	"github.com/dmitrijs2005/autolock/internal/controller/config"
	"github.com/dmitrijs2005/autolock/internal/controller/display"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// gpioLine adapts a periph GPIO pin to the actuate.Line interface.
// activeLow inverts the electrical level: the ignition relay on the unit
// closes on logic low, so its de-energized rest state is a high pin.
type gpioLine struct {
	pin       gpio.PinOut
	activeLow bool
}

func (l *gpioLine) Set(energized bool) error {
	level := gpio.Level(energized != l.activeLow)
	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrOutputFault, l.pin.Name(), err)
	}
	return nil
}

// outputs bundles the four discrete output lines in rest state.
type outputs struct {
	relay, busy, grant, deny actuate.Line
}

// openOutputs initializes the host GPIO and resolves the configured lines,
// driving each to rest immediately.
func openOutputs(cfg *config.Config) (*outputs, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init gpio host: %w", err)
	}

	relay, err := openLine(cfg.RelayPin, true)
	if err != nil {
		return nil, err
	}
	busy, err := openLine(cfg.BusyLEDPin, false)
	if err != nil {
		return nil, err
	}
	grant, err := openLine(cfg.GrantLEDPin, false)
	if err != nil {
		return nil, err
	}
	deny, err := openLine(cfg.DenyLEDPin, false)
	if err != nil {
		return nil, err
	}
	return &outputs{relay: relay, busy: busy, grant: grant, deny: deny}, nil
}

func openLine(name string, activeLow bool) (actuate.Line, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: no gpio line %q", common.ErrOutputFault, name)
	}
	line := &gpioLine{pin: pin, activeLow: activeLow}
	if err := line.Set(false); err != nil {
		return nil, err
	}
	return line, nil
}

// openSensorPort opens the fingerprint sensor UART. The read timeout bounds
// every ack read so a dead module surfaces as a sensor fault instead of a
// hang.
func openSensorPort(cfg *config.Config) (io.ReadWriteCloser, error) {
	mode := &serial.Mode{BaudRate: cfg.SensorBaud}
	port, err := serial.Open(cfg.SensorPort, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrSensorFault, cfg.SensorPort, err)
	}
	if err := port.SetReadTimeout(time.Second); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("%w: set read timeout: %v", common.ErrSensorFault, err)
	}
	return port, nil
}

// openDisplay returns the configured status surface and an optional closer
// for the underlying bus.
func openDisplay(cfg *config.Config) (display.Display, io.Closer, error) {
	if cfg.ConsoleDisplay {
		return display.NewConsole(os.Stdout), nil, nil
	}

	bus, err := i2creg.Open(cfg.LCDBus)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open i2c bus %q: %v", common.ErrDisplayFault, cfg.LCDBus, err)
	}
	dev := &i2c.Dev{Bus: bus, Addr: cfg.LCDAddr}
	lcd, err := display.NewLCD(dev, cfg.LCDRows, cfg.LCDCols)
	if err != nil {
		_ = bus.Close()
		return nil, nil, fmt.Errorf("%w: %v", common.ErrDisplayFault, err)
	}
	return lcd, bus, nil
}
