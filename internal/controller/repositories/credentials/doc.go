// Package credentials provides the read-only persistence layer for user
// credential records.
//
// # Overview
//
// The package defines a Repository interface with a single keyed lookup by
// fingerprint id. A SQLite-backed implementation (SQLiteRepository) reads
// from the users database maintained by the external enrollment tooling;
// the controller never writes to it.
//
// # Data Contract
//
// The four expiry columns hold zero-padded ISO-8601 dates (YYYY-MM-DD) so
// that lexical string comparison is equivalent to chronological comparison.
// That contract is owned by the store boundary; the expiry evaluator relies
// on it without re-validating.
//
// Typical Usage
//
//	repo := credentials.NewSQLiteRepository(db)
//	u, err := repo.GetByFingerprintID(ctx, id)
//	if errors.Is(err, common.ErrorNotFound) { ... } // unknown identity
package credentials
