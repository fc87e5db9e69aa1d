package accesslog

import (
	"context"

	"github.com/dmitrijs2005/autolock/internal/controller/models"
)

// Repository is the append-only access log. The controller only ever
// inserts; rows are read back by external reporting tools.
type Repository interface {
	// Append inserts one entry and fills in its store-assigned ID.
	Append(ctx context.Context, entry *models.LogEntry) error
}
