package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type gcdCase struct {
	a, b, want int64
}

var gcdCases = []gcdCase{
	{48, 18, 6},
	{17, 13, 1},
	{7, 7, 7},
	{9, 3, 3},
	{100, 25, 25},
	{24, 120, 24},
	{36, 120, 12},
	{7, 360, 1},
	{360, 92822, 2},
	{123456789, 987654321, 9},
	{5, 0, 5},
	{0, 0, 0},
}

func TestGCD(t *testing.T) {
	for _, c := range gcdCases {
		t.Run(fmt.Sprintf("gcd(%d,%d)", c.a, c.b), func(t *testing.T) {
			assert.Equal(t, c.want, GCD(c.a, c.b))
			assert.Equal(t, c.want, GCD(c.b, c.a), "gcd must be symmetric")
		})
	}
}

func TestGCD_Signs(t *testing.T) {
	assert.Equal(t, int64(6), GCD(-48, 18))
	assert.Equal(t, int64(6), GCD(48, -18))
	assert.Equal(t, int64(6), GCD(-48, -18))
}

func TestGCD_Properties(t *testing.T) {
	for a := int64(0); a <= 40; a++ {
		assert.Equal(t, a, GCD(a, 0))
		for b := int64(1); b <= 40; b++ {
			g := GCD(a, b)
			if g <= 0 {
				t.Fatalf("gcd(%d,%d) = %d, want positive", a, b, g)
			}
			if a%g != 0 || b%g != 0 {
				t.Errorf("gcd(%d,%d) = %d does not divide both inputs", a, b, g)
			}
			assert.Equal(t, g, GCD(b, a))
		}
	}
}
