package stl

import (
	"math"
	"strconv"
)

// Interval returns the time bounds of a temporal operator node.
// ok is false for operators without an interval.
func Interval(n Node) (low, high float64, ok bool) {
	switch n := n.(type) {
	case Always:
		return n.Low, n.High, true
	case Eventually:
		return n.Low, n.High, true
	case Until:
		return n.Low, n.High, true
	case Release:
		return n.Low, n.High, true
	}
	return 0, 0, false
}

// Magnitudes outside [expSmall, expLarge) are printed with an exponent.
const (
	expSmall = 1e-4
	expLarge = 1e16
)

// FormatNumber prints v in its shortest round-trip form: 10, 0.5, -3.25.
// Very large and very small magnitudes use an exponent, as in 1e+21 and
// 1e-05. Values are never rounded.
func FormatNumber(v float64) string {
	if a := math.Abs(v); a != 0 && (a < expSmall || a >= expLarge) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
