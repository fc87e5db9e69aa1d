package expiry

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() models.User {
	return models.User{
		FingerprintID:      1,
		Name:               "A",
		LicenseExpiry:      "2099-01-01",
		EmissionsExpiry:    "2099-01-01",
		InsuranceExpiry:    "2099-01-01",
		RegistrationExpiry: "2099-01-01",
	}
}

func refDate(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return ts
}

func TestEvaluate_AllValid(t *testing.T) {
	v := Evaluate(validUser(), refDate(t, "2024-01-01"))
	assert.True(t, v.Valid)
	assert.Empty(t, v.ExpiredField)
}

func TestEvaluate_ExpiryIsInclusiveOfToday(t *testing.T) {
	u := validUser()
	u.LicenseExpiry = "2024-01-01"
	v := Evaluate(u, refDate(t, "2024-01-01"))
	assert.True(t, v.Valid, "a document expiring today must still pass")
}

func TestEvaluate_FirstExpiredFieldWins(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.User)
		want   models.CredentialField
	}{
		{"license", func(u *models.User) { u.LicenseExpiry = "2020-01-01" }, models.FieldLicense},
		{"emissions", func(u *models.User) { u.EmissionsExpiry = "2020-01-01" }, models.FieldEmissions},
		{"insurance", func(u *models.User) { u.InsuranceExpiry = "2020-01-01" }, models.FieldInsurance},
		{"registration", func(u *models.User) { u.RegistrationExpiry = "2020-01-01" }, models.FieldRegistration},
		{"license shadows registration", func(u *models.User) {
			u.LicenseExpiry = "2020-01-01"
			u.RegistrationExpiry = "2019-01-01"
		}, models.FieldLicense},
		{"emissions shadows insurance", func(u *models.User) {
			u.EmissionsExpiry = "2020-01-01"
			u.InsuranceExpiry = "2020-01-01"
		}, models.FieldEmissions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			tc.mutate(&u)
			v := Evaluate(u, refDate(t, "2024-01-01"))
			require.False(t, v.Valid)
			assert.Equal(t, tc.want, v.ExpiredField)
		})
	}
}

func TestTrail_StopsAtFailingField(t *testing.T) {
	u := validUser()
	u.EmissionsExpiry = "2020-01-01"
	v := Evaluate(u, refDate(t, "2024-01-01"))

	trail := Trail(u, v)
	require.Len(t, trail, 2)
	assert.Equal(t, models.FieldLicense, trail[0].Field)
	assert.Equal(t, models.FieldEmissions, trail[1].Field)
}

func TestTrail_AllFieldsWhenValid(t *testing.T) {
	u := validUser()
	v := Evaluate(u, refDate(t, "2024-01-01"))

	trail := Trail(u, v)
	require.Len(t, trail, 4)
	assert.Equal(t, models.FieldRegistration, trail[3].Field)
}
