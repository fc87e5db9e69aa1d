package models

// CaptureFailure names the pipeline stage a biometric capture failed at.
type CaptureFailure string

const (
	// CaptureFailureNone means the capture matched.
	CaptureFailureNone CaptureFailure = ""

	// CaptureFailureNoImage means no finger image was obtained (the wait
	// was interrupted before the sensor reported image-ready).
	CaptureFailureNoImage CaptureFailure = "no_image"

	// CaptureFailureTemplate means the image could not be converted to a
	// matchable template.
	CaptureFailureTemplate CaptureFailure = "template"

	// CaptureFailureSearch means the template matched no stored print.
	CaptureFailureSearch CaptureFailure = "search"
)

// MatchResult is the outcome of exactly one capture attempt. Either Matched
// is true and FingerprintID is set, or Failure names the failed stage.
type MatchResult struct {
	Matched       bool
	FingerprintID int
	Failure       CaptureFailure
}
