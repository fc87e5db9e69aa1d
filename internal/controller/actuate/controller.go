package actuate

import (
	"context"
	"fmt"
	"time"
)

// Controller holds the four output lines and realizes the timed pulses.
// Pulses are blocking holds, not deferred timers: the caller does not get
// control back until the output is at rest again. A canceled context cuts
// the hold short but never skips the release.
type Controller struct {
	relay    Line
	busyLED  Line
	grantLED Line
	denyLED  Line

	// hold blocks for d or until ctx is done. Replaced in tests.
	hold func(ctx context.Context, d time.Duration)
}

// New returns a Controller over the given lines. All lines are required.
func New(relay, busyLED, grantLED, denyLED Line) *Controller {
	if relay == nil || busyLED == nil || grantLED == nil || denyLED == nil {
		panic("actuate.New: all output lines are required")
	}
	return &Controller{
		relay:    relay,
		busyLED:  busyLED,
		grantLED: grantLED,
		denyLED:  denyLED,
		hold:     sleepHold,
	}
}

func sleepHold(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// SetBusy reflects "a session is in progress" on the busy indicator.
// Idempotent: setting an already-set state is harmless.
func (c *Controller) SetBusy(on bool) error {
	if err := c.busyLED.Set(on); err != nil {
		return fmt.Errorf("busy indicator: %w", err)
	}
	return nil
}

// PulseGrant energizes the ignition relay and the grant indicator for d,
// then de-energizes both. The release runs even if the hold is cut short
// by ctx or if energizing partially failed.
func (c *Controller) PulseGrant(ctx context.Context, d time.Duration) error {
	defer func() {
		_ = c.relay.Set(false)
		_ = c.grantLED.Set(false)
	}()

	if err := c.grantLED.Set(true); err != nil {
		return fmt.Errorf("grant indicator: %w", err)
	}
	if err := c.relay.Set(true); err != nil {
		return fmt.Errorf("ignition relay: %w", err)
	}
	c.hold(ctx, d)
	return ctx.Err()
}

// PulseDeny sets the deny indicator for d, then clears it. The ignition
// relay is never touched on a denial.
func (c *Controller) PulseDeny(ctx context.Context, d time.Duration) error {
	defer func() {
		_ = c.denyLED.Set(false)
	}()

	if err := c.denyLED.Set(true); err != nil {
		return fmt.Errorf("deny indicator: %w", err)
	}
	c.hold(ctx, d)
	return ctx.Err()
}

// Rest forces every output to its de-energized rest state. Safe to call
// repeatedly and at any time; the lifecycle handler calls it on shutdown
// regardless of what the session was doing.
func (c *Controller) Rest() error {
	var firstErr error
	for _, line := range []Line{c.relay, c.busyLED, c.grantLED, c.denyLED} {
		if err := line.Set(false); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("rest state: %w", firstErr)
	}
	return nil
}
