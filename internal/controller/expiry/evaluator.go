// Package expiry judges a credential record against a reference date.
//
// Evaluation is pure and deterministic: fields are checked in the fixed
// order license → emissions → insurance → registration, and the first
// expired field decides the verdict. Dates are zero-padded ISO-8601
// strings, so lexical comparison is chronological comparison; the store
// boundary enforces that format.
package expiry

import (
	"time"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
)

// FieldDate pairs one credential field with its stored expiry date.
type FieldDate struct {
	Field models.CredentialField
	Date  string
}

// FieldDates returns the record's expiry fields in evaluation order.
func FieldDates(u models.User) []FieldDate {
	return []FieldDate{
		{models.FieldLicense, u.LicenseExpiry},
		{models.FieldEmissions, u.EmissionsExpiry},
		{models.FieldInsurance, u.InsuranceExpiry},
		{models.FieldRegistration, u.RegistrationExpiry},
	}
}

// Evaluate returns a valid verdict iff every expiry date is on or after the
// reference date. Equality counts as valid: a document expiring today still
// passes. The check short-circuits on the first expired field.
func Evaluate(u models.User, ref time.Time) models.Verdict {
	refDate := ref.Format(models.DateLayout)
	for _, fd := range FieldDates(u) {
		if fd.Date < refDate {
			return models.Verdict{Valid: false, ExpiredField: fd.Field}
		}
	}
	return models.Verdict{Valid: true}
}

// Trail returns the fields Evaluate actually examined for the given verdict,
// in order. For a valid verdict that is all four fields; for an expired one
// it ends at the failing field. Used for operator-facing progress output.
func Trail(u models.User, v models.Verdict) []FieldDate {
	all := FieldDates(u)
	if v.Valid {
		return all
	}
	for i, fd := range all {
		if fd.Field == v.ExpiredField {
			return all[:i+1]
		}
	}
	return all
}
