package dtoa

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	var testCases = []struct {
		description string
		value       float64
		expect      string
	}{
		{description: "zero", value: 0, expect: "0"},
		{description: "negative zero", value: math.Copysign(0, -1), expect: "-0"},
		{description: "one", value: 1, expect: "1"},
		{description: "minus one", value: -1, expect: "-1"},
		{description: "fraction", value: 1.5, expect: "1.5"},
		{description: "smallest denormal", value: 5e-324, expect: "5e-324"},
		{description: "largest finite", value: 1.7976931348623157e308, expect: "1.7976931348623157e308"},
		{description: "uint32 near max", value: 4294967272.0, expect: "4294967272"},
		{description: "int32 overflow", value: 2147483648.0, expect: "2147483648"},
		{description: "fixed up to 21 digits", value: 1.2345678901e20, expect: "123456789010000000000"},
		{description: "exponential past 21 digits", value: 1.2345678901e21, expect: "1.2345678901e21"},
		{description: "negative fixed", value: -1.2345678901e20, expect: "-123456789010000000000"},
		{description: "negative exponential", value: -1.2345678901e21, expect: "-1.2345678901e21"},
		{description: "seventeen digits", value: 1.2345678901234567, expect: "1.2345678901234567"},
		{description: "small fixed", value: 1.2345678901e-6, expect: "0.0000012345678901"},
		{description: "small exponential", value: 1.2345678901e-7, expect: "1.2345678901e-7"},
		{description: "negative small fixed", value: -1.2345678901e-6, expect: "-0.0000012345678901"},
		{description: "negative small exponential", value: -1.2345678901e-7, expect: "-1.2345678901e-7"},
		{description: "large boundary", value: 4.1855804968213567e298, expect: "4.185580496821357e298"},
		{description: "denormal boundary", value: 5.5626846462680035e-309, expect: "5.562684646268003e-309"},
		{description: "seventeen digit large", value: 3.5844466002796428e298, expect: "3.5844466002796428e298"},
		{description: "smallest normal", value: math.Float64frombits(0x0010000000000000), expect: "2.2250738585072014e-308"},
		{description: "largest denormal", value: math.Float64frombits(0x000FFFFFFFFFFFFF), expect: "2.225073858507201e-308"},
		{description: "subnormal", value: 3.79668692692622e-309, expect: "3.79668692692622e-309"},
		{description: "halfway tie", value: 1.7594904321259962e14, expect: "175949043212599.62"},
		{description: "power of ten", value: 1e21, expect: "1e21"},
		{description: "tenth", value: 0.1, expect: "0.1"},
		{description: "sum artifact", value: math.Float64frombits(0x3FD3333333333334), expect: "0.30000000000000004"},
		{description: "infinity", value: math.Inf(1), expect: "Infinity"},
		{description: "negative infinity", value: math.Inf(-1), expect: "-Infinity"},
		{description: "nan", value: math.NaN(), expect: "NaN"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Format(testCase.value))
		})
	}
}

// oracle returns shortest digits and point position via strconv.
func oracle(d float64) (string, int) {
	s := strconv.FormatFloat(d, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	return strings.Replace(mantissa, ".", "", 1), e + 1
}

func randomFloat(rnd *rand.Rand) float64 {
	for {
		d := math.Float64frombits(rnd.Uint64() &^ (1 << 63))
		if !math.IsNaN(d) && !math.IsInf(d, 0) && d != 0 {
			return d
		}
	}
}

func randomSubnormal(rnd *rand.Rand) float64 {
	for {
		if u := rnd.Uint64() & significandMask; u != 0 {
			return math.Float64frombits(u)
		}
	}
}

// exponentBoundaries returns, for every binary exponent, the power of two
// and its immediate neighbours.
func exponentBoundaries() []float64 {
	var ret []float64
	for e := uint64(1); e < 0x7FF; e++ {
		ret = append(ret,
			math.Float64frombits(e<<52),
			math.Float64frombits(e<<52|1),
			math.Float64frombits(e<<52-1))
	}
	return ret
}

func TestShortest_MatchesOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	values := append(exponentBoundaries(), 1.7594904321259962e14)
	for i := 0; i < 200000; i++ {
		values = append(values, randomFloat(rnd))
		if i%4 == 0 {
			values = append(values, randomSubnormal(rnd))
		}
	}
	for _, d := range values {
		digits, point := Shortest(d, nil)
		expectDigits, expectPoint := oracle(d)
		require.Equal(t, expectDigits, string(digits), "digits of %v", d)
		require.Equal(t, expectPoint, point, "point of %v", d)
	}
}

func TestExactShortest_MatchesOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	values := []float64{5e-324, 1.7976931348623157e308, math.Float64frombits(0x0010000000000000), math.Float64frombits(0x000FFFFFFFFFFFFF), 1, 1e23, 9007199254740993, 0.3}
	for i := 0; i < 5000; i++ {
		values = append(values, randomFloat(rnd), randomSubnormal(rnd))
	}
	values = append(values, exponentBoundaries()...)
	for _, d := range values {
		digits, point := exactShortest(d, nil)
		expectDigits, expectPoint := oracle(d)
		require.Equal(t, expectDigits, string(digits), "digits of %v", d)
		require.Equal(t, expectPoint, point, "point of %v", d)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	values := exponentBoundaries()
	for i := 0; i < 100000; i++ {
		values = append(values, randomFloat(rnd))
		if i%10 == 0 {
			values = append(values, randomSubnormal(rnd))
		}
	}
	for i, d := range values {
		if i%2 == 0 {
			d = -d
		}
		text := Format(d)
		parsed, err := strconv.ParseFloat(text, 64)
		require.NoError(t, err, text)
		require.Equal(t, math.Float64bits(d), math.Float64bits(parsed), text)
	}
}

func TestFormat_Subnormals(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for i := 0; i < 100000; i++ {
		d := randomSubnormal(rnd)
		expect := strings.Replace(strconv.FormatFloat(d, 'g', -1, 64), "e-0", "e-", 1)
		require.Equal(t, expect, Format(d), "bits %x", math.Float64bits(d))
	}
}

func TestCachedPowers(t *testing.T) {
	first := cachedPowers[0]
	assert.Equal(t, uint64(0xfa8fd5a0081c0288), first.f)
	assert.Equal(t, -1220, first.e)
	assert.Equal(t, -348, first.exponent)
	last := cachedPowers[len(cachedPowers)-1]
	assert.Equal(t, uint64(0xaf87023b9bf0ee6b), last.f)
	assert.Equal(t, 1066, last.e)
	for _, p := range cachedPowers {
		assert.True(t, p.f>>63 == 1, "normalized 10^%d", p.exponent)
	}
}

func TestBiggestPowerTen(t *testing.T) {
	var testCases = []struct {
		n           uint32
		expectPower uint32
		expectCount int
	}{
		{n: 0, expectPower: 0, expectCount: 0},
		{n: 1, expectPower: 1, expectCount: 1},
		{n: 9, expectPower: 1, expectCount: 1},
		{n: 10, expectPower: 10, expectCount: 2},
		{n: 4294967295, expectPower: 1000000000, expectCount: 10},
	}
	for _, testCase := range testCases {
		power, count := biggestPowerTen(testCase.n)
		assert.Equal(t, testCase.expectPower, power, testCase.n)
		assert.Equal(t, testCase.expectCount, count, testCase.n)
	}
}
