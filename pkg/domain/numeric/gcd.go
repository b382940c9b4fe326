package numeric

import "math"

// GCD returns the greatest common divisor of |a| and |b| using Euclid's
// algorithm. GCD(a, 0) == |a| and GCD(0, 0) == 0.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|. LCM(0, x) == 0.
// The caller is responsible for overflow; see CheckedLCM.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return abs(a) / GCD(a, b) * abs(b)
}

// CheckedLCM is LCM with overflow detection. ok is false when the result
// does not fit in an int.
func CheckedLCM(a, b int) (lcm int, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	q := abs(a) / GCD(a, b)
	m := abs(b)
	if q > math.MaxInt/m {
		return 0, false
	}
	return q * m, true
}

// LCMOfSequence left-folds LCM over values, seeded with 1. An empty
// sequence yields 1.
func LCMOfSequence(values []int) int {
	acc := 1
	for _, v := range values {
		acc = LCM(acc, v)
	}
	return acc
}

// CheckedLCMOfSequence is LCMOfSequence that stops at the first overflow or
// as soon as the running value exceeds limit (limit <= 0 disables it).
func CheckedLCMOfSequence(values []int, limit int) (lcm int, ok bool) {
	acc := 1
	for _, v := range values {
		next, fits := CheckedLCM(acc, v)
		if !fits || (limit > 0 && next > limit) {
			return 0, false
		}
		acc = next
	}
	return acc, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
