package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ContinuedFraction is the finite simple continued fraction [a0; a1, a2, ...]
// of a rational number, where p/q = a0 + 1/(a1 + 1/(a2 + ...)).
// It is an immutable value; the zero value is the empty expansion.
type ContinuedFraction struct {
	coefficients []int64
}

// Convergent is the partial approximation H/K built from a prefix of the coefficients.
type Convergent struct {
	H int64 `json:"h"`
	K int64 `json:"k"`
}

// Rational converts the convergent into a Rational pair.
func (c Convergent) Rational() Rational {
	return Rational{Num: c.H, Den: c.K}
}

func (c Convergent) String() string {
	return fmt.Sprintf("%d/%d", c.H, c.K)
}

// FromRational expands p/q into its continued fraction.
//
// The pair is reduced first and the sign is moved onto the numerator. A zero
// denominator with a non-zero numerator produces an empty expansion, while 0/0
// is rejected with ErrDegenerateRational.
func FromRational(p, q int64) (ContinuedFraction, error) {
	if err := CheckRational(p, q); err != nil {
		return ContinuedFraction{}, err
	}

	r := Reduce(p, q)
	return ContinuedFraction{coefficients: expand(r.Num, r.Den)}, nil
}

// CheckRational reports whether p/q can be expanded: 0/0 is degenerate and
// math.MinInt64 has no representable absolute value.
func CheckRational(p, q int64) error {
	if p == 0 && q == 0 {
		return ErrDegenerateRational
	}
	if p == math.MinInt64 || q == math.MinInt64 {
		return fmt.Errorf("rational %d/%d: %w", p, q, ErrOutOfRange)
	}
	return nil
}

// expand runs the Euclidean algorithm on a reduced pair.
// Quotient and remainder come from the same truncating division, so a negative
// p yields coefficients that follow the sign of the dividend.
func expand(p, q int64) []int64 {
	var coefficients []int64
	for q != 0 {
		a, rem := p/q, p%q
		coefficients = append(coefficients, a)
		p, q = q, rem
	}
	return coefficients
}

// FromCoefficients wraps an existing coefficient sequence. The slice is copied.
func FromCoefficients(coefficients []int64) ContinuedFraction {
	if len(coefficients) == 0 {
		return ContinuedFraction{}
	}
	return ContinuedFraction{coefficients: append([]int64(nil), coefficients...)}
}

// Coefficients returns a copy of the coefficients, first term first.
func (cf ContinuedFraction) Coefficients() []int64 {
	return append([]int64{}, cf.coefficients...)
}

// Len returns the number of coefficients.
func (cf ContinuedFraction) Len() int {
	return len(cf.coefficients)
}

// IsEmpty reports whether the expansion has no coefficients, which is the case
// for a rational with a zero denominator.
func (cf ContinuedFraction) IsEmpty() bool {
	return len(cf.coefficients) == 0
}

// ToRational folds the coefficients back into a rational, last term first.
// An empty expansion yields 0/1. The result is not re-reduced.
func (cf ContinuedFraction) ToRational() Rational {
	n := len(cf.coefficients)
	if n == 0 {
		return Rational{Num: 0, Den: 1}
	}

	num, den := cf.coefficients[n-1], int64(1)
	for i := n - 2; i >= 0; i-- {
		num, den = cf.coefficients[i]*num+den, num
	}
	return Rational{Num: num, Den: den}
}

// Convergents returns one convergent per coefficient using the recurrence
// h_n = a_n*h_{n-1} + h_{n-2}, k_n = a_n*k_{n-1} + k_{n-2}
// seeded with h_{-2}/k_{-2} = 0/1 and h_{-1}/k_{-1} = 1/0.
func (cf ContinuedFraction) Convergents() []Convergent {
	result := make([]Convergent, 0, len(cf.coefficients))

	h2, k2 := int64(0), int64(1) // h_{n-2}, k_{n-2}
	h1, k1 := int64(1), int64(0) // h_{n-1}, k_{n-1}

	for _, a := range cf.coefficients {
		h := a*h1 + h2
		k := a*k1 + k2
		result = append(result, Convergent{H: h, K: k})

		h2, k2 = h1, k1
		h1, k1 = h, k
	}
	return result
}

// String renders the canonical notation [a0; a1, a2, ...].
func (cf ContinuedFraction) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range cf.coefficients {
		switch i {
		case 0:
		case 1:
			b.WriteString("; ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(a, 10))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseContinuedFraction parses the canonical notation "[a0; a1, a2]" as well as
// plain lists separated by commas, semicolons or spaces ("3 7 15", "3,7,15").
func ParseContinuedFraction(s string) (ContinuedFraction, error) {
	s, err := SanitizeInput(s)
	if err != nil {
		return ContinuedFraction{}, err
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	coefficients := make([]int64, 0, len(fields))
	for _, f := range fields {
		a, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return ContinuedFraction{}, fmt.Errorf("parsing coefficient %q: %w", f, ErrInvalidFormat)
		}
		coefficients = append(coefficients, a)
	}
	return ContinuedFraction{coefficients: coefficients}, nil
}

type continuedFractionJSON struct {
	Coefficients []int64 `json:"coefficients"`
}

// MarshalJSON encodes the expansion as {"coefficients": [...]}.
func (cf ContinuedFraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(continuedFractionJSON{Coefficients: cf.Coefficients()})
}

// UnmarshalJSON decodes the {"coefficients": [...]} form.
func (cf *ContinuedFraction) UnmarshalJSON(data []byte) error {
	var v continuedFractionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*cf = FromCoefficients(v.Coefficients)
	return nil
}
