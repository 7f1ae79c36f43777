package domain

import (
	"fmt"
	"math"
	"math/big"
)

// Approximate returns the fraction nearest to the expansion's value whose
// denominator does not exceed maxDen. An empty expansion approximates to 0/1.
func (cf ContinuedFraction) Approximate(maxDen int64) (Rational, error) {
	if maxDen < 1 {
		return Rational{}, fmt.Errorf("max denominator %d: %w", maxDen, ErrInvalidBound)
	}
	if cf.IsEmpty() {
		return Rational{Num: 0, Den: 1}, nil
	}
	return Approximate(cf.ToRational(), maxDen)
}

// Approximate returns the best rational approximation of r with a denominator
// of at most maxDen. Candidates are the last convergent that fits the bound and
// the largest semiconvergent after it; on a tie the convergent wins.
func Approximate(r Rational, maxDen int64) (Rational, error) {
	if maxDen < 1 {
		return Rational{}, fmt.Errorf("max denominator %d: %w", maxDen, ErrInvalidBound)
	}
	if r.Num == 0 && r.Den == 0 {
		return Rational{}, ErrDegenerateRational
	}
	if r.Num == math.MinInt64 || r.Den == math.MinInt64 {
		return Rational{}, fmt.Errorf("rational %s: %w", r, ErrOutOfRange)
	}

	r = r.Reduced()
	if r.Den == 0 {
		return Rational{Num: 0, Den: 1}, nil
	}
	if r.Den <= maxDen {
		return r, nil
	}

	// Work on |r| so every quotient is a floor.
	sign := int64(1)
	n, d := r.Num, r.Den
	if n < 0 {
		sign, n = -1, -n
	}

	p0, q0, p1, q1 := int64(0), int64(1), int64(1), int64(0)
	for {
		a := n / d
		q2 := q0 + a*q1
		if q2 > maxDen {
			break
		}
		p0, q0, p1, q1 = p1, q1, p0+a*p1, q2
		n, d = d, n-a*d
	}

	k := (maxDen - q0) / q1
	semi := Rational{Num: p0 + k*p1, Den: q0 + k*q1}
	conv := Rational{Num: p1, Den: q1}

	target := big.NewRat(sign*r.Num, r.Den)
	best := conv
	if distance(semi, target).Cmp(distance(conv, target)) < 0 {
		best = semi
	}
	best.Num *= sign
	return best, nil
}

func distance(x Rational, target *big.Rat) *big.Rat {
	diff := new(big.Rat).Sub(big.NewRat(x.Num, x.Den), target)
	return diff.Abs(diff)
}
