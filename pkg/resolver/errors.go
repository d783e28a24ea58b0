package resolver

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors for the two failure classes the fallback chain
// recovers from. Datastore implementations wrap these when they can
// recognize the condition themselves.
var (
	// ErrAmbiguousRelationship means the store rejected a combined join
	// because more than one foreign-key path connects two tables.
	ErrAmbiguousRelationship = errors.New("more than one relationship path between tables")
	// ErrEmbeddingFailure means the store could not embed related rows
	// into the parent result.
	ErrEmbeddingFailure = errors.New("could not embed related rows")
)

// Postgres error codes in the ambiguous-reference class.
const (
	pgAmbiguousColumn = "42702"
	pgAmbiguousAlias  = "42P09"
)

// IsRelationshipAmbiguity classifies an error as recoverable by the
// fallback chain. Classification must be precise: treating a real
// failure as ambiguity hides it, and the inverse skips the fallback
// and surfaces a spurious error to the user.
func IsRelationshipAmbiguity(err error) bool {
	if errors.Is(err, ErrAmbiguousRelationship) || errors.Is(err, ErrEmbeddingFailure) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgAmbiguousColumn, pgAmbiguousAlias:
			return true
		}
	}
	return errors.Is(err, gorm.ErrUnsupportedRelation)
}
