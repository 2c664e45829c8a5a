package helper

import "math"

// RoundToMixedFraction approximates input as whole + numerator/denominator
// with denominator dividing precision, e.g. 5.5 -> 5 + 1/2.
// The fractional part is rounded to the nearest multiple of 1/precision,
// ties go up. A zero fraction yields 0/1.
func RoundToMixedFraction(input float64, precision int) (whole, numerator, denominator int) {
	acc := float64(precision)
	whole = int(math.Trunc(input))
	fraction := math.Abs(input - float64(whole))
	if fraction == 0 || precision < 1 {
		return whole, 0, 1
	}
	// n is the smallest step with n/precision >= fraction
	n := int(math.Ceil(fraction * acc))
	for n > 0 && float64(n-1)/acc >= fraction {
		n--
	}
	for float64(n)/acc < fraction {
		n++
	}
	hi := float64(n) / acc
	lo := float64(n-1) / acc
	if fraction-lo < hi-fraction {
		n--
	}
	if n >= precision {
		return whole + 1, 0, 1
	}
	if n == 0 {
		return whole, 0, 1
	}
	g := GCD(n, precision)
	return whole, n / g, precision / g
}

// GCD returns the greatest common divisor of a and b
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b, 0 if either is 0
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}
