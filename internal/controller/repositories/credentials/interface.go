package credentials

import (
	"context"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
)

// Repository is the read-only view of the external user-credential store.
// Implementations are typically backed by a local SQLite database that an
// external enrollment tool maintains.
type Repository interface {
	// GetByFingerprintID returns the record keyed by the sensor template
	// slot, or common.ErrorNotFound when no record exists. Absence is an
	// expected outcome (stale template vs. removed user), not a fault.
	GetByFingerprintID(ctx context.Context, fingerprintID int) (*models.User, error)
}
