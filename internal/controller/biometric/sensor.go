// Package biometric drives the fingerprint sensor through the fixed
// capture → template → search pipeline and yields exactly one match result
// per attempt.
package biometric

import "context"

// Sensor is the collaborator protocol of the fingerprint module. The three
// calls mirror the module's own command set; protocol-level negatives
// (finger not present, poor image, no matching template) are ordinary
// return values, while the error return carries transport faults only
// (lost serial link, malformed frame).
type Sensor interface {
	// AwaitImage performs one image poll. ready is true once the sensor
	// has a finger image buffered.
	AwaitImage(ctx context.Context) (ready bool, err error)

	// ExtractTemplate converts the buffered image into a search template.
	// ok is false when the image is not usable (noise, partial contact).
	ExtractTemplate(ctx context.Context) (ok bool, err error)

	// SearchTemplate matches the template against the enrolled set. On a
	// hit ok is true and id is the sensor-internal template slot.
	SearchTemplate(ctx context.Context) (id int, ok bool, err error)
}
