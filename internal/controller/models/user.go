// Package models defines the data types flowing through one verification
// session: the credential record, the biometric match result, the expiry
// verdict, the terminal session outcome, and the access-log entry.
package models

// DateLayout is the calendar-date format used for the expiry fields.
// Dates are stored zero-padded so lexical ordering equals chronological
// ordering; the store boundary enforces this contract.
const DateLayout = "2006-01-02"

// User is one credential record from the external user store: an identity
// plus four regulatory expiry dates. The core never mutates it.
type User struct {
	// FingerprintID is the sensor-internal template slot the record is
	// keyed by. It is assigned at enrollment time, outside this system.
	FingerprintID int

	// Name is the display name shown on grant and written to the log.
	Name string

	LicenseExpiry      string
	EmissionsExpiry    string
	InsuranceExpiry    string
	RegistrationExpiry string
}
