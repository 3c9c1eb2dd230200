// Package dtoa formats float64 values as the shortest decimal string that
// parses back to the identical bit pattern.
package dtoa

import (
	"math"
	"strconv"
)

// maxDigits bounds the shortest representation of a double (17) with room
// for the exact generator.
const maxDigits = 32

// Format returns the shortest round-trip representation of d.
func Format(d float64) string {
	var buf [40]byte
	return string(AppendFloat(buf[:0], d))
}

// AppendFloat appends the shortest round-trip representation of d to dst.
//
// Fixed notation is used while the decimal point position n satisfies
// -6 < n <= 21, exponential notation otherwise; exponents carry no '+' and no
// padding. Negative zero keeps its sign. NaN and infinities render as NaN,
// Infinity and -Infinity.
func AppendFloat(dst []byte, d float64) []byte {
	switch {
	case math.IsNaN(d):
		return append(dst, "NaN"...)
	case math.IsInf(d, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(d, -1):
		return append(dst, "-Infinity"...)
	}
	if math.Signbit(d) {
		dst = append(dst, '-')
		d = -d
	}
	if d == 0 {
		return append(dst, '0')
	}
	var scratch [maxDigits]byte
	digits, point := Shortest(d, scratch[:0])
	return appendDecimal(dst, digits, point)
}

// Shortest appends the shortest digit string of a positive finite d to buf
// and returns it with the decimal point position: d = 0.DIGITS * 10^point.
func Shortest(d float64, buf []byte) ([]byte, int) {
	digits, exponent, ok := grisu3(d, buf)
	if ok {
		return digits, len(digits) + exponent
	}
	return exactShortest(d, buf[:0])
}

func appendDecimal(dst, digits []byte, n int) []byte {
	k := len(digits)
	switch {
	case k <= n && n <= 21:
		dst = append(dst, digits...)
		for i := k; i < n; i++ {
			dst = append(dst, '0')
		}
	case 0 < n && n <= 21:
		dst = append(dst, digits[:n]...)
		dst = append(dst, '.')
		dst = append(dst, digits[n:]...)
	case -6 < n && n <= 0:
		dst = append(dst, '0', '.')
		for i := n; i < 0; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
	default:
		dst = append(dst, digits[0])
		if k > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		dst = strconv.AppendInt(dst, int64(n-1), 10)
	}
	return dst
}
