package dtoa

import (
	"math"
	"math/bits"
)

const (
	significandSize  = 64
	hiddenBit        = uint64(1) << 52
	significandMask  = hiddenBit - 1
	exponentBias     = 0x3FF + 52
	denormalExponent = -exponentBias + 1
)

// diyFp is an unnormalized floating point number f * 2^e.
type diyFp struct {
	f uint64
	e int
}

func (x diyFp) minus(y diyFp) diyFp {
	return diyFp{f: x.f - y.f, e: x.e}
}

// times returns the product rounded to the upper 64 bits.
func (x diyFp) times(y diyFp) diyFp {
	hi, lo := bits.Mul64(x.f, y.f)
	return diyFp{f: hi + lo>>63, e: x.e + y.e + 64}
}

func (x diyFp) normalize() diyFp {
	shift := bits.LeadingZeros64(x.f)
	return diyFp{f: x.f << shift, e: x.e - shift}
}

// decompose splits a positive finite double into significand and exponent.
func decompose(d float64) diyFp {
	u := math.Float64bits(d)
	biased := int(u>>52) & 0x7FF
	f := u & significandMask
	if biased == 0 {
		return diyFp{f: f, e: denormalExponent}
	}
	return diyFp{f: f | hiddenBit, e: biased - exponentBias}
}

func lowerBoundaryIsCloser(d float64) bool {
	u := math.Float64bits(d)
	return u&significandMask == 0 && int(u>>52)&0x7FF != 0
}

// boundaries returns the normalized midpoints between d and its neighbours,
// both sharing the exponent of the upper one.
func boundaries(d float64) (minus, plus diyFp) {
	v := decompose(d)
	plus = diyFp{f: v.f<<1 + 1, e: v.e - 1}.normalize()
	if lowerBoundaryIsCloser(d) {
		minus = diyFp{f: v.f<<2 - 1, e: v.e - 2}
	} else {
		minus = diyFp{f: v.f<<1 - 1, e: v.e - 1}
	}
	minus.f <<= uint(minus.e - plus.e)
	minus.e = plus.e
	return minus, plus
}
