package models

// CredentialField names one of the four expiry fields of a User record,
// in the fixed order they are checked.
type CredentialField string

const (
	FieldLicense      CredentialField = "license"
	FieldEmissions    CredentialField = "emissions"
	FieldInsurance    CredentialField = "insurance"
	FieldRegistration CredentialField = "registration"
)

// CredentialFields lists the fields in evaluation order.
var CredentialFields = []CredentialField{
	FieldLicense,
	FieldEmissions,
	FieldInsurance,
	FieldRegistration,
}

// Verdict is the result of evaluating a record against a reference date.
// When Valid is false, ExpiredField is the first field (in fixed order)
// found expired; later fields are not reported.
type Verdict struct {
	Valid        bool
	ExpiredField CredentialField
}
