package models

import "time"

// OutcomeKind classifies how a verification session terminated.
type OutcomeKind string

const (
	OutcomeGranted               OutcomeKind = "granted"
	OutcomeDeniedExpired         OutcomeKind = "denied_expired"
	OutcomeDeniedUnknownIdentity OutcomeKind = "denied_unknown_identity"
	OutcomeDeniedBiometric       OutcomeKind = "denied_biometric"
)

// Outcome is the terminal classification of one verification session.
// Exactly one Outcome is produced per session; it is the sole input to
// logging and actuation decisions made by the caller.
type Outcome struct {
	Kind      OutcomeKind
	SessionID string
	Timestamp time.Time

	// Name is set for granted and denied_expired outcomes.
	Name string

	// FingerprintID is the raw sensor slot; set whenever a search matched,
	// including denied_unknown_identity.
	FingerprintID int

	// ExpiredField is set only for denied_expired.
	ExpiredField CredentialField

	// Failure is set only for denied_biometric.
	Failure CaptureFailure
}

// Granted reports whether the session ended in an access grant.
func (o *Outcome) Granted() bool {
	return o.Kind == OutcomeGranted
}
