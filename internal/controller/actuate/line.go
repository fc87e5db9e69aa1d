// Package actuate owns the discrete outputs of the controller: the ignition
// relay line and the busy/grant/deny indicator LEDs. It exposes timed grant
// and deny pulses whose return-to-rest step is unconditional.
package actuate

// Line is one discrete output. Set(true) energizes it, Set(false) returns
// it to rest. Implementations map "energized" to the electrical level the
// wiring needs (the relay on the vehicle unit is active-low).
type Line interface {
	Set(energized bool) error
}

// LineFunc adapts a function to the Line interface.
type LineFunc func(energized bool) error

func (f LineFunc) Set(energized bool) error { return f(energized) }
