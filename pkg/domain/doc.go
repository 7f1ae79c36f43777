/*
Package domain contains the continued-fraction engine of cfrac.

It owns the arithmetic of the system: reduction of a rational pair to lowest
terms, forward expansion into partial quotients with the Euclidean algorithm,
reconstruction of the rational value from its coefficients and computation of
convergents. The package is pure and free of I/O, following the same
Hexagonal Architecture split as the adapters that drive it.

# Key Entities

  - Rational: a transient (numerator, denominator) pair.
  - ContinuedFraction: an immutable sequence of coefficients [a0; a1, a2, ...].
  - Convergent: the pair (h, k) of a partial approximation h/k.
  - OperationEvent: what the engine reports to observability hooks.

# Arithmetic

Every value lives in int64. Expansion uses Go's truncating division, so the
coefficients of a negative numerator follow the sign of the dividend rather
than mathematical floor division. Reconstruction and convergents wrap on
overflow like any other int64 arithmetic.
*/
package domain
