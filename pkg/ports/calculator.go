package ports

import (
	"context"

	"github.com/aretw0/cfrac/pkg/domain"
)

// Calculator is the surface that driving adapters (HTTP, MCP, CLI) use.
type Calculator interface {
	// Expand returns the continued fraction of p/q.
	Expand(ctx context.Context, p, q int64) (domain.ContinuedFraction, error)

	// Reconstruct folds coefficients back into a rational.
	Reconstruct(ctx context.Context, coefficients []int64) (domain.Rational, error)

	// Convergents returns the convergents of the expansion of p/q.
	Convergents(ctx context.Context, p, q int64) ([]domain.Convergent, error)

	// Approximate returns the best approximation of p/q with denominator at most maxDen.
	Approximate(ctx context.Context, p, q, maxDen int64) (domain.Rational, error)
}
