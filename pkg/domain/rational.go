package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Rational is a (numerator, denominator) pair.
// It is a transient input/output shape and is not reduced unless built with Reduce.
type Rational struct {
	Num int64 `json:"num" yaml:"num" mapstructure:"num"`
	Den int64 `json:"den" yaml:"den" mapstructure:"den"`
}

// Reduce returns p/q in lowest terms with a non-negative denominator.
// Reduce(0, 0) returns 0/0 unchanged and Reduce(p, 0) returns ±1/0.
func Reduce(p, q int64) Rational {
	d := GCD(p, q)
	if d == 0 {
		return Rational{Num: p, Den: q}
	}
	p /= d
	q /= d
	if q < 0 {
		p, q = -p, -q
	}
	return Rational{Num: p, Den: q}
}

// Reduced returns r in lowest terms with a non-negative denominator.
func (r Rational) Reduced() Rational {
	return Reduce(r.Num, r.Den)
}

// Equivalent reports whether r and o denote the same fraction,
// comparing by cross-multiplication.
func (r Rational) Equivalent(o Rational) bool {
	return r.Num*o.Den == o.Num*r.Den
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// ParseRational parses "p/q" or a bare integer "p" in base 10.
// The result is returned as written, not reduced.
func ParseRational(s string) (Rational, error) {
	s, err := SanitizeInput(s)
	if err != nil {
		return Rational{}, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("empty rational: %w", ErrInvalidFormat)
	}

	numStr, denStr, hasDen := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing numerator %q: %w", numStr, ErrInvalidFormat)
	}
	if !hasDen {
		return Rational{Num: num, Den: 1}, nil
	}

	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing denominator %q: %w", denStr, ErrInvalidFormat)
	}
	return Rational{Num: num, Den: den}, nil
}
