package ports

import (
	"context"

	"github.com/aretw0/cfrac/pkg/domain"
)

// ExpansionCache stores continued-fraction coefficients keyed by a reduced rational.
// Implementations must be safe for concurrent use.
type ExpansionCache interface {
	// Get returns the cached coefficients for r.
	// Returns domain.ErrCacheMiss if no entry exists.
	Get(ctx context.Context, r domain.Rational) ([]int64, error)

	// Put stores the coefficients for r, replacing any previous entry.
	Put(ctx context.Context, r domain.Rational, coefficients []int64) error

	// Delete removes the entry for r. Deleting a missing entry is not an error.
	Delete(ctx context.Context, r domain.Rational) error

	// List returns the rationals currently cached.
	List(ctx context.Context) ([]domain.Rational, error)
}
