package dtoa

import (
	"math"
	"math/big"
	"math/bits"
)

const log10Of2 = 0.30102999566398114

// exactShortest generates the shortest digits of a positive finite d with
// exact rational arithmetic. It returns the digits and the decimal point
// position, so d = 0.D * 10^point.
func exactShortest(d float64, buf []byte) ([]byte, int) {
	v := decompose(d)
	even := v.f&1 == 0
	r, s := new(big.Int), new(big.Int)
	mPlus, mMinus := new(big.Int), new(big.Int)
	f := new(big.Int).SetUint64(v.f)
	if v.e >= 0 {
		be := new(big.Int).Lsh(big.NewInt(1), uint(v.e))
		if !lowerBoundaryIsCloser(d) {
			r.Lsh(f, uint(v.e)+1)
			s.SetInt64(2)
			mPlus.Set(be)
			mMinus.Set(be)
		} else {
			r.Lsh(f, uint(v.e)+2)
			s.SetInt64(4)
			mPlus.Lsh(be, 1)
			mMinus.Set(be)
		}
	} else {
		if !lowerBoundaryIsCloser(d) {
			r.Lsh(f, 1)
			s.Lsh(big.NewInt(1), uint(1-v.e))
			mPlus.SetInt64(1)
			mMinus.SetInt64(1)
		} else {
			r.Lsh(f, 2)
			s.Lsh(big.NewInt(1), uint(2-v.e))
			mPlus.SetInt64(2)
			mMinus.SetInt64(1)
		}
	}

	// Estimate from the leading bit's binary exponent; short subnormal
	// significands would skew a logarithm of d.
	k := int(math.Ceil(float64(v.e+bits.Len64(v.f)-1)*log10Of2 - 1e-10))
	ten := big.NewInt(10)
	if k >= 0 {
		s.Mul(s, new(big.Int).Exp(ten, big.NewInt(int64(k)), nil))
	} else {
		scale := new(big.Int).Exp(ten, big.NewInt(int64(-k)), nil)
		r.Mul(r, scale)
		mPlus.Mul(mPlus, scale)
		mMinus.Mul(mMinus, scale)
	}
	high := new(big.Int)
	// Settle k so the upper boundary lies below one and its tenfold does not.
	for {
		high.Add(r, mPlus)
		c := high.Cmp(s)
		if c > 0 || (even && c == 0) {
			s.Mul(s, ten)
			k++
			continue
		}
		break
	}
	for {
		high.Add(r, mPlus)
		high.Mul(high, ten)
		c := high.Cmp(s)
		if c < 0 || (!even && c == 0) {
			r.Mul(r, ten)
			mPlus.Mul(mPlus, ten)
			mMinus.Mul(mMinus, ten)
			k--
			continue
		}
		break
	}
	digit, rem := new(big.Int), new(big.Int)
	twice := new(big.Int)
	for {
		r.Mul(r, ten)
		mPlus.Mul(mPlus, ten)
		mMinus.Mul(mMinus, ten)
		digit.QuoRem(r, s, rem)
		r, rem = rem, r
		dig := byte(digit.Int64())
		c1 := r.Cmp(mMinus)
		low := c1 < 0 || (even && c1 == 0)
		high.Add(r, mPlus)
		c2 := high.Cmp(s)
		up := c2 > 0 || (even && c2 == 0)
		switch {
		case !low && !up:
			buf = append(buf, '0'+dig)
			continue
		case low && !up:
		case !low && up:
			dig++
		default:
			// Ties go to the even digit.
			if c := twice.Lsh(r, 1).Cmp(s); c > 0 || (c == 0 && dig&1 == 1) {
				dig++
			}
		}
		buf = append(buf, '0'+dig)
		return buf, k
	}
}
