package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproximate(t *testing.T) {
	tests := []struct {
		name   string
		value  Rational
		maxDen int64
		want   Rational
	}{
		{"Semiconvergent Beats Convergent", Rational{314159, 100000}, 100, Rational{311, 99}},
		{"Negative Value", Rational{-314159, 100000}, 100, Rational{-311, 99}},
		{"Integer Bound", Rational{22, 7}, 1, Rational{3, 1}},
		{"Exact Fit", Rational{22, 7}, 7, Rational{22, 7}},
		{"Reduced Before Fit", Rational{44, 14}, 7, Rational{22, 7}},
		{"Pi Convergent", Rational{314159, 100000}, 113, Rational{355, 113}},
		{"Semiconvergent Below One", Rational{1, 3}, 2, Rational{1, 2}},
		{"Tie Prefers Convergent", Rational{1, 2}, 1, Rational{0, 1}},
		{"Infinite Value", Rational{5, 0}, 10, Rational{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Approximate(tt.value, tt.maxDen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Den, tt.maxDen)
		})
	}
}

func TestApproximate_Errors(t *testing.T) {
	_, err := Approximate(Rational{22, 7}, 0)
	assert.ErrorIs(t, err, ErrInvalidBound)

	_, err = Approximate(Rational{0, 0}, 10)
	assert.ErrorIs(t, err, ErrDegenerateRational)
}

func TestContinuedFraction_Approximate(t *testing.T) {
	cf, err := FromRational(314159, 100000)
	require.NoError(t, err)

	got, err := cf.Approximate(100)
	require.NoError(t, err)
	assert.Equal(t, Rational{311, 99}, got)

	got, err = ContinuedFraction{}.Approximate(10)
	require.NoError(t, err)
	assert.Equal(t, Rational{0, 1}, got)

	_, err = cf.Approximate(-1)
	assert.ErrorIs(t, err, ErrInvalidBound)
}
