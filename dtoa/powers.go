package dtoa

import (
	"math"
	"math/big"
)

const (
	minCachedExponent   = -348
	maxCachedExponent   = 340
	cachedExponentStep  = 8
	minTargetExponent   = -60
	maxTargetExponent   = -32
	inverseLog2Of10     = 0.30102999566398114
	cachedPowersOffset  = -minCachedExponent
	cachedPowersEntries = (maxCachedExponent-minCachedExponent)/cachedExponentStep + 1
)

type cachedPower struct {
	f        uint64
	e        int
	exponent int
}

var cachedPowers = buildCachedPowers()

// buildCachedPowers computes 10^k, k = -348..340 step 8, as normalized
// 64-bit significands rounded to nearest.
func buildCachedPowers() [cachedPowersEntries]cachedPower {
	var table [cachedPowersEntries]cachedPower
	ten := big.NewInt(10)
	limit := new(big.Int).Lsh(big.NewInt(1), 64)
	for i := range table {
		k := minCachedExponent + i*cachedExponentStep
		pow := new(big.Int).Exp(ten, big.NewInt(int64(abs(k))), nil)
		var q, r, num, den *big.Int
		var e int
		if k >= 0 {
			e = pow.BitLen() - 64
			num, den = pow, big.NewInt(1)
			if e > 0 {
				den = new(big.Int).Lsh(den, uint(e))
			} else {
				num = new(big.Int).Lsh(num, uint(-e))
			}
		} else {
			shift := 63 + pow.BitLen()
			e = -shift
			num, den = new(big.Int).Lsh(big.NewInt(1), uint(shift)), pow
		}
		q, r = new(big.Int).QuoRem(num, den, new(big.Int))
		if r.Lsh(r, 1).Cmp(den) >= 0 {
			q.Add(q, big.NewInt(1))
		}
		if q.Cmp(limit) >= 0 {
			q.Rsh(q, 1)
			e++
		}
		table[i] = cachedPower{f: q.Uint64(), e: e, exponent: k}
	}
	return table
}

func abs(k int) int {
	if k < 0 {
		return -k
	}
	return k
}

// cachedPowerFor returns the first cached power whose binary exponent is at
// least minExponent.
func cachedPowerFor(minExponent int) cachedPower {
	k := int(math.Ceil(float64(minExponent+significandSize-1) * inverseLog2Of10))
	index := (cachedPowersOffset+k-1)/cachedExponentStep + 1
	return cachedPowers[index]
}
