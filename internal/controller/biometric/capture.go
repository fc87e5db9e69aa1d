package biometric

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/autolock/internal/controller/display"
	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/logging"
)

// DefaultPollInterval is how often the sensor is polled while waiting for
// a finger. The wait itself is unbounded: a finger is physically required.
const DefaultPollInterval = 100 * time.Millisecond

// Capture runs the three-stage capture pipeline against a Sensor, emitting
// human-readable progress to the display at each stage transition. One
// Capture value serves one session; there is no retry inside a session.
type Capture struct {
	sensor  Sensor
	display display.Display
	logger  logging.Logger
	poll    time.Duration
}

// NewCapture wires a capture pipeline. poll <= 0 selects the default
// poll interval.
func NewCapture(sensor Sensor, d display.Display, logger logging.Logger, poll time.Duration) *Capture {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Capture{sensor: sensor, display: d, logger: logger, poll: poll}
}

// Run blocks until the pipeline produces a MatchResult. The image wait is
// the single unbounded step; it is a cooperative poll, so a canceled ctx
// ends it with CaptureFailureNoImage and the ctx error. Transport faults
// from the sensor propagate as errors with a zero-value result.
func (c *Capture) Run(ctx context.Context) (models.MatchResult, error) {
	_ = c.display.Text("Waiting for image...", 1)
	c.logger.Info(ctx, "waiting for finger image")

	if err := c.awaitImage(ctx); err != nil {
		if ctx.Err() != nil {
			return models.MatchResult{Failure: models.CaptureFailureNoImage}, err
		}
		return models.MatchResult{}, fmt.Errorf("await image: %w", err)
	}

	_ = c.display.Text("Templating...", 1)
	c.logger.Info(ctx, "templating captured image")

	ok, err := c.sensor.ExtractTemplate(ctx)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("extract template: %w", err)
	}
	if !ok {
		_ = c.display.Text("Templating failed", 1)
		c.logger.Warn(ctx, "templating failed")
		return models.MatchResult{Failure: models.CaptureFailureTemplate}, nil
	}

	_ = c.display.Text("Searching...", 1)
	c.logger.Info(ctx, "searching template set")

	id, ok, err := c.sensor.SearchTemplate(ctx)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("search template: %w", err)
	}
	if !ok {
		_ = c.display.Text("No match found", 1)
		c.logger.Warn(ctx, "no matching fingerprint")
		return models.MatchResult{Failure: models.CaptureFailureSearch}, nil
	}

	c.logger.Info(ctx, "fingerprint matched", "fingerprint_id", id)
	return models.MatchResult{Matched: true, FingerprintID: id}, nil
}

// awaitImage polls until the sensor reports image-ready or ctx ends.
func (c *Capture) awaitImage(ctx context.Context) error {
	t := time.NewTicker(c.poll)
	defer t.Stop()
	for {
		ready, err := c.sensor.AwaitImage(ctx)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
