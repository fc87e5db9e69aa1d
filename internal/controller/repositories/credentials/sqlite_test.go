package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/autolock/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  fingerprint_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  license_expiry_date TEXT NOT NULL,
  puc_expiry_date TEXT NOT NULL,
  insurance_expiry_date TEXT NOT NULL,
  rc_validity_date TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestGetByFingerprintID_Found(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO users VALUES (3, 'A', '2099-01-01', '2098-06-30', '2097-12-31', '2096-01-01')`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	u, err := r.GetByFingerprintID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, u.FingerprintID)
	assert.Equal(t, "A", u.Name)
	assert.Equal(t, "2099-01-01", u.LicenseExpiry)
	assert.Equal(t, "2098-06-30", u.EmissionsExpiry)
	assert.Equal(t, "2097-12-31", u.InsuranceExpiry)
	assert.Equal(t, "2096-01-01", u.RegistrationExpiry)
}

func TestGetByFingerprintID_NotFound(t *testing.T) {
	db := setupDB(t)

	r := NewSQLiteRepository(db)
	u, err := r.GetByFingerprintID(context.Background(), 42)

	assert.Nil(t, u)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
