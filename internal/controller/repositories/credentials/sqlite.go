package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/autolock/internal/common"
	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByFingerprintID performs the single-key lookup against the users table.
func (r *SQLiteRepository) GetByFingerprintID(ctx context.Context, fingerprintID int) (*models.User, error) {
	query := `select fingerprint_id, name, license_expiry_date, puc_expiry_date,
			insurance_expiry_date, rc_validity_date
		from users where fingerprint_id=?`
	row := r.db.QueryRowContext(ctx, query, fingerprintID)

	u := &models.User{}
	err := row.Scan(&u.FingerprintID, &u.Name, &u.LicenseExpiry,
		&u.EmissionsExpiry, &u.InsuranceExpiry, &u.RegistrationExpiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return u, nil
}
