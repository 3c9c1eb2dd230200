package dtoa

var smallPowersOfTen = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// biggestPowerTen returns the largest power of ten not above n and its
// digit count. Zero yields (0, 0).
func biggestPowerTen(n uint32) (uint32, int) {
	for k := len(smallPowersOfTen) - 1; k >= 0; k-- {
		if n >= smallPowersOfTen[k] {
			return smallPowersOfTen[k], k + 1
		}
	}
	return 0, 0
}

// grisu3 generates the shortest digits of a positive finite d. It reports
// false when the approximation cannot guarantee the result; the caller must
// then use the exact generator.
func grisu3(d float64, buf []byte) ([]byte, int, bool) {
	w := decompose(d).normalize()
	minus, plus := boundaries(d)
	cached := cachedPowerFor(minTargetExponent - (w.e + significandSize))
	ten := diyFp{f: cached.f, e: cached.e}
	scaledW := w.times(ten)
	scaledMinus := minus.times(ten)
	scaledPlus := plus.times(ten)
	digits, kappa, ok := digitGen(scaledMinus, scaledW, scaledPlus, buf)
	return digits, -cached.exponent + kappa, ok
}

// digitGen emits digits of high until the result falls inside the unsafe
// interval (low, high), then trims the last digit toward w.
func digitGen(low, w, high diyFp, buf []byte) ([]byte, int, bool) {
	unit := uint64(1)
	tooLow := diyFp{f: low.f - unit, e: low.e}
	tooHigh := diyFp{f: high.f + unit, e: high.e}
	unsafeInterval := tooHigh.minus(tooLow)
	one := diyFp{f: uint64(1) << uint(-w.e), e: w.e}
	integrals := uint32(tooHigh.f >> uint(-one.e))
	fractionals := tooHigh.f & (one.f - 1)
	divisor, kappa := biggestPowerTen(integrals)
	for kappa > 0 {
		digit := integrals / divisor
		buf = append(buf, byte('0'+digit))
		integrals %= divisor
		kappa--
		rest := uint64(integrals)<<uint(-one.e) + fractionals
		if rest < unsafeInterval.f {
			ok := roundWeed(buf, tooHigh.minus(w).f, unsafeInterval.f, rest, uint64(divisor)<<uint(-one.e), unit)
			return buf, kappa, ok
		}
		divisor /= 10
	}
	for {
		fractionals *= 10
		unit *= 10
		unsafeInterval.f *= 10
		digit := fractionals >> uint(-one.e)
		buf = append(buf, byte('0'+digit))
		fractionals &= one.f - 1
		kappa--
		if fractionals < unsafeInterval.f {
			ok := roundWeed(buf, tooHigh.minus(w).f*unit, unsafeInterval.f, fractionals, one.f, unit)
			return buf, kappa, ok
		}
	}
}

// roundWeed moves the last digit closer to w and reports whether the result
// is provably the shortest correct representation.
func roundWeed(buf []byte, distanceTooHighW, unsafeInterval, rest, tenKappa, unit uint64) bool {
	smallDistance := distanceTooHighW - unit
	bigDistance := distanceTooHighW + unit
	last := len(buf) - 1
	for rest < smallDistance &&
		unsafeInterval-rest >= tenKappa &&
		(rest+tenKappa < smallDistance || smallDistance-rest >= rest+tenKappa-smallDistance) {
		buf[last]--
		rest += tenKappa
	}
	if rest < bigDistance &&
		unsafeInterval-rest >= tenKappa &&
		(rest+tenKappa < bigDistance || bigDistance-rest > rest+tenKappa-bigDistance) {
		return false
	}
	return 2*unit <= rest && rest <= unsafeInterval-4*unit
}
