package domain

// GCD returns the greatest common divisor of |a| and |b|.
// The result is 0 only when both a and b are 0.
func GCD(a, b int64) int64 {
	a, b = abs64(a), abs64(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
