package domain

import "errors"

// ErrDegenerateRational is returned when both numerator and denominator are zero.
var ErrDegenerateRational = errors.New("degenerate rational 0/0")

// ErrOutOfRange is returned when an input has no representable absolute value.
var ErrOutOfRange = errors.New("value out of range")

// ErrInvalidFormat is returned when a rational or coefficient list cannot be parsed.
var ErrInvalidFormat = errors.New("invalid format")

// ErrInvalidBound is returned when an approximation bound is not positive.
var ErrInvalidBound = errors.New("denominator bound must be positive")

// ErrCacheMiss is returned by expansion caches when no entry exists for a rational.
var ErrCacheMiss = errors.New("expansion not cached")
